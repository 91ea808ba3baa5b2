// Package viewstate models the tri-state projection of an asynchronous query:
// Loading, Success with data, or Failure with an error.
//
// A State is an immutable value; exactly one of the three variants holds at
// a time, so a view never has to reconcile stale data with an error.
//
//	st := viewstate.Loading[[]string]()
//	st = viewstate.Success([]string{"Goku"})
//	if data, ok := st.Data(); ok { ... }
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package viewstate
