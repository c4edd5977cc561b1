// Package query holds the two pure functions behind the dashboard:
//
//   - Filter narrows the dataset to one site selection and payload range.
//   - Summarize counts outcomes over any slice of records.
//
// Neither function has side effects; calling them twice with the same input
// yields the same output. Unknown sites and inverted ranges produce empty
// results rather than errors.
package query
