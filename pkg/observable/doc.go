// Package observable provides a single-value reactive container.
//
// A Cell holds at most one value and pushes the latest value to its
// subscribers whenever it changes. Subscribers either receive values on a
// conflating channel (Subscribe) or through a callback (Observe). Neither
// form depends on a UI framework, so the same cell can drive a terminal UI,
// a CLI or a test.
//
// Writers hold the concrete *Cell; readers should be handed the Readable
// interface so they cannot publish into it.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package observable
