package query

import (
	"github.com/launchboard/launchboard/pkg/types"
)

// Source is the read-only view of the dataset that Filter needs.
// *store.Store satisfies it.
type Source interface {
	All() []types.LaunchRecord
	BySite(site string) []types.LaunchRecord
}

// Filter returns the records matching sel whose payload mass lies in r,
// bounds included. Order follows the source's iteration order.
func Filter(src Source, sel types.SiteSelection, r types.PayloadRange) []types.LaunchRecord {
	if !r.Valid() {
		return []types.LaunchRecord{}
	}

	var candidates []types.LaunchRecord
	if sel.IsAll() {
		candidates = src.All()
	} else {
		candidates = src.BySite(string(sel))
	}

	out := make([]types.LaunchRecord, 0, len(candidates))
	for _, rec := range candidates {
		if sel.Matches(rec.Site) && r.Contains(rec.PayloadMassKg) {
			out = append(out, rec)
		}
	}
	return out
}
