package store

import (
	"github.com/launchboard/launchboard/pkg/types"
)

// Bounds is the observed payload mass interval of the dataset.
type Bounds struct {
	Min float64
	Max float64
}

// Range converts b to the inclusive PayloadRange covering the whole dataset.
func (b Bounds) Range() types.PayloadRange {
	return types.PayloadRange{Low: b.Min, High: b.Max}
}

// Store is an immutable, read-only collection of launch records.
type Store struct {
	records []types.LaunchRecord
	sites   []string
	bySite  map[string][]int // indices into records, in dataset order
	bounds  Bounds
}

// New builds a Store from records. The slice is copied; later changes to it
// by the caller have no effect on the Store.
func New(records []types.LaunchRecord) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	s := &Store{
		records: make([]types.LaunchRecord, len(records)),
		bySite:  make(map[string][]int),
	}
	copy(s.records, records)

	s.bounds = Bounds{Min: s.records[0].PayloadMassKg, Max: s.records[0].PayloadMassKg}
	for i, r := range s.records {
		if _, seen := s.bySite[r.Site]; !seen {
			s.sites = append(s.sites, r.Site)
		}
		s.bySite[r.Site] = append(s.bySite[r.Site], i)

		if r.PayloadMassKg < s.bounds.Min {
			s.bounds.Min = r.PayloadMassKg
		}
		if r.PayloadMassKg > s.bounds.Max {
			s.bounds.Max = r.PayloadMassKg
		}
	}
	return s, nil
}

// All returns a copy of every record in dataset order.
func (s *Store) All() []types.LaunchRecord {
	out := make([]types.LaunchRecord, len(s.records))
	copy(out, s.records)
	return out
}

// BySite returns a copy of the records launched from site, in dataset order.
// An unknown site yields an empty slice.
func (s *Store) BySite(site string) []types.LaunchRecord {
	idx := s.bySite[site]
	out := make([]types.LaunchRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}

// Each calls fn for every record in dataset order until fn returns false.
// fn receives the record by value.
func (s *Store) Each(fn func(types.LaunchRecord) bool) {
	for _, r := range s.records {
		if !fn(r) {
			return
		}
	}
}

// Sites returns the distinct launch sites in order of first appearance.
func (s *Store) Sites() []string {
	out := make([]string, len(s.sites))
	copy(out, s.sites)
	return out
}

// HasSite reports whether site occurs in the dataset.
func (s *Store) HasSite(site string) bool {
	_, ok := s.bySite[site]
	return ok
}

// PayloadBounds returns the global min and max payload mass.
func (s *Store) PayloadBounds() Bounds { return s.bounds }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }
