// Package dashboard is the interaction controller. It binds the two client
// inputs (site selection, payload range) to the two derived views:
//
//   - Summary depends on the site selection only.
//   - Correlation depends on the site selection and the payload range.
//
// Every view is recomputed from the store on each call; the Controller keeps
// no per-client state. Apply encodes the dependency rule for clients that
// hold their own input state (see package ws).
package dashboard
