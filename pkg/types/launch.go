package types

import "strconv"

// AllSites is the SiteSelection sentinel that matches every launch site.
const AllSites SiteSelection = "ALL"

// Outcome is the binary launch result stored in the dataset's class column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// Label returns the human-readable name used for chart legends.
func (o Outcome) Label() string {
	switch o {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Outcome " + strconv.Itoa(int(o))
	}
}

// Valid reports whether o is one of the two known outcomes.
func (o Outcome) Valid() bool {
	return o == Success || o == Failure
}

// LaunchRecord is one row of the launch dataset. Records are immutable once
// loaded.
type LaunchRecord struct {
	Site            string
	PayloadMassKg   float64
	Outcome         Outcome
	BoosterCategory string

	// Optional columns; zero when the source does not carry them.
	FlightNumber   int
	BoosterVersion string
}

// SiteSelection is either AllSites or one concrete launch site identifier.
type SiteSelection string

// IsAll reports whether s selects every site.
func (s SiteSelection) IsAll() bool { return s == AllSites }

// Matches reports whether a record from site satisfies the selection.
func (s SiteSelection) Matches(site string) bool {
	return s.IsAll() || string(s) == site
}

// DisplayName is the selection as shown in chart titles.
func (s SiteSelection) DisplayName() string {
	if s.IsAll() {
		return "All Sites"
	}
	return string(s)
}

// PayloadRange is an inclusive payload mass interval in kg.
type PayloadRange struct {
	Low  float64
	High float64
}

// Valid reports whether Low <= High.
func (r PayloadRange) Valid() bool { return r.Low <= r.High }

// Contains reports whether mass lies inside the range, bounds included.
// An inverted range contains nothing.
func (r PayloadRange) Contains(mass float64) bool {
	return r.Valid() && mass >= r.Low && mass <= r.High
}
