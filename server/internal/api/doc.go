// Package api implements the HTTP REST API of the launchboard server.
//
// New(store, controller) returns an http.Handler that serves:
//
//	GET /api/v1/controls: dropdown options and payload slider configuration
//	GET /api/v1/sites: the site domain (ALL plus every site in the data)
//	GET /api/v1/summary?site=: outcome counts for the selection (pie chart data)
//	GET /api/v1/correlation?site=&low=&high=: payload vs outcome points plus hints
//	GET /api/v1/records?site=&low=&high=: the filtered launch rows
//	GET /api/v1/charts/summary.png: summary rendered as a PNG pie chart
//	GET /api/v1/charts/correlation.png: correlation rendered as a PNG scatter chart
//	GET /api/v1/health: dataset size, site count, payload bounds
//
// All endpoints:
//   - Return 405 for non-GET methods
//   - Return 400 with a JSON error body when low, high, width or height are not numbers
//   - Treat an unknown site or an inverted range as an empty selection, never an error
//
// JSON endpoints respond with Content-Type: application/json. Chart endpoints
// respond with image/png, or 204 No Content when the selection is empty.
// JSON types are defined in types.go. No external HTTP framework is used.
package api
