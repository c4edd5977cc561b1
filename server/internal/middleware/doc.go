// Package middleware provides the HTTP middleware stack wrapped around the
// API, chart and session handlers:
//
//   - CorrelationID: reads X-Correlation-ID / X-Request-ID or generates a
//     UUIDv7, echoes it back and stores it in the request context.
//   - Logging: one slog line per request with status, size and latency.
//   - Recover: turns handler panics into a 500 JSON body.
//   - CORS: rs/cors with the configured allowed origins.
//   - Observe: reports route and status to a metrics observer.
//
// Chain(h, mws...) applies middleware so that the first listed runs first.
package middleware
