package types

// OutcomeCount is one group of an OutcomeSummary.
type OutcomeCount struct {
	Outcome Outcome
	Count   int
}

// OutcomeSummary maps outcome to occurrence count. Groups keep the order in
// which each outcome was first seen so that comparisons are reproducible.
type OutcomeSummary struct {
	groups []OutcomeCount
}

// Add increments the count for o, appending a new group on first sight.
func (s *OutcomeSummary) Add(o Outcome) {
	for i := range s.groups {
		if s.groups[i].Outcome == o {
			s.groups[i].Count++
			return
		}
	}
	s.groups = append(s.groups, OutcomeCount{Outcome: o, Count: 1})
}

// Groups returns a copy of the groups in first-appearance order.
func (s OutcomeSummary) Groups() []OutcomeCount {
	out := make([]OutcomeCount, len(s.groups))
	copy(out, s.groups)
	return out
}

// Count returns the count recorded for o, or 0.
func (s OutcomeSummary) Count(o Outcome) int {
	for _, g := range s.groups {
		if g.Outcome == o {
			return g.Count
		}
	}
	return 0
}

// Total is the sum of all group counts.
func (s OutcomeSummary) Total() int {
	n := 0
	for _, g := range s.groups {
		n += g.Count
	}
	return n
}

// Len is the number of distinct outcomes.
func (s OutcomeSummary) Len() int { return len(s.groups) }

// Map returns the summary as a plain map.
func (s OutcomeSummary) Map() map[Outcome]int {
	m := make(map[Outcome]int, len(s.groups))
	for _, g := range s.groups {
		m[g.Outcome] = g.Count
	}
	return m
}
