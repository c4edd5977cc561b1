package query

import "github.com/launchboard/launchboard/pkg/types"

// Summarize counts records per outcome. Groups appear in the order their
// outcome is first seen; an empty input gives an empty summary.
func Summarize(records []types.LaunchRecord) types.OutcomeSummary {
	var s types.OutcomeSummary
	for _, r := range records {
		s.Add(r.Outcome)
	}
	return s
}
