package api

import "github.com/launchboard/launchboard/server/internal/dashboard"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status     string  `json:"status"`
	Records    int     `json:"records"`
	Sites      int     `json:"sites"`
	PayloadMin float64 `json:"payload_min"`
	PayloadMax float64 `json:"payload_max"`
}

// SitesResponse is the payload for GET /api/v1/sites.
type SitesResponse struct {
	All   string   `json:"all"`
	Sites []string `json:"sites"`
}

// CorrelationResponse is the payload for GET /api/v1/correlation.
type CorrelationResponse struct {
	dashboard.CorrelationView
	Hints []Hint `json:"hints"`
}

// RecordResponse is one launch row in GET /api/v1/records.
type RecordResponse struct {
	Site            string  `json:"site"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	Class           int     `json:"class"`
	Outcome         string  `json:"outcome"`
	BoosterCategory string  `json:"booster_category"`
	FlightNumber    int     `json:"flight_number,omitempty"`
	BoosterVersion  string  `json:"booster_version,omitempty"`
}

// RecordsResponse is the payload for GET /api/v1/records.
type RecordsResponse struct {
	Site    string           `json:"site"`
	Low     float64          `json:"low"`
	High    float64          `json:"high"`
	Count   int              `json:"count"`
	Records []RecordResponse `json:"records"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
