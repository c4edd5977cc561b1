// Package metrics keeps the server's own counters and gauges and exposes them
// in the Prometheus text exposition format at /metrics.
//
// Families are built as client_model MetricFamily values and encoded with
// prometheus/common/expfmt, so the output parses with any Prometheus scraper.
package metrics
