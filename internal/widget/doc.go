// Package widget models the state of the document's interactive widgets.
//
// The browser script owns the live state. These types describe the same
// state transitions so the server can render an initial state and the
// verifier can compare what the browser shows against what it should show.
package widget
