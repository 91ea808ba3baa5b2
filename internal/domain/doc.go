// Package domain contains the core entities and value objects for charview.
//
// This package is the innermost layer: it has no dependencies on HTTP,
// logging or the terminal and holds only the data model and its rules.
//
// # Entities
//
//   - [Character]: a single character as returned by the character API
//   - [Page]: an ordered list of characters from one list response
//   - [Envelope]: the success/failure wrapper around an API response
//   - [FetchError]: a failed fetch, either protocol (non-2xx) or transport
package domain
