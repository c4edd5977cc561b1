// Package types defines the shared Go types used by the dashboard server and
// the report CLI: launch records, outcomes, site selections, payload ranges
// and outcome summaries. These are the canonical in-memory representations;
// the JSON wire shapes live in server/internal/api.
package types
