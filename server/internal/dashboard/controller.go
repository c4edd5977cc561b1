package dashboard

import (
	"sort"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/query"
	"github.com/launchboard/launchboard/server/internal/store"
)

// Recorder is notified each time a view is recomputed. *metrics.Registry
// satisfies it; a nil Recorder is allowed.
type Recorder interface {
	ViewComputed(view string)
}

// View names passed to Recorder.
const (
	ViewSummary     = "summary"
	ViewCorrelation = "correlation"
)

// Controller derives chart-ready views from the dataset.
type Controller struct {
	store  *store.Store
	slider SliderBounds
	rec    Recorder
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSliderBounds overrides the payload control's display bounds.
func WithSliderBounds(b SliderBounds) ControllerOption {
	return func(c *Controller) { c.slider = b }
}

// WithRecorder attaches a recomputation observer.
func WithRecorder(r Recorder) ControllerOption {
	return func(c *Controller) { c.rec = r }
}

// New creates a Controller over st.
func New(st *store.Store, opts ...ControllerOption) *Controller {
	c := &Controller{store: st, slider: DefaultSliderBounds}
	for _, o := range opts {
		o(c)
	}
	return c
}

// DefaultRange is the observed payload range of the dataset.
func (c *Controller) DefaultRange() types.PayloadRange {
	return c.store.PayloadBounds().Range()
}

// Defaults is the input state of a fresh client.
func (c *Controller) Defaults() Inputs {
	return Inputs{Site: types.AllSites, Payload: c.DefaultRange()}
}

// SummarySlice is one slice of the summary (pie) chart.
type SummarySlice struct {
	Label   string        `json:"label"`
	Outcome types.Outcome `json:"outcome"`
	Count   int           `json:"count"`
}

// SummaryView is the outcome-count chart for one site selection.
type SummaryView struct {
	Site   string         `json:"site"`
	Title  string         `json:"title"`
	Total  int            `json:"total"`
	Slices []SummarySlice `json:"slices"`
}

// Summary aggregates outcomes for sel over the whole payload range.
func (c *Controller) Summary(sel types.SiteSelection) SummaryView {
	var records []types.LaunchRecord
	if sel.IsAll() {
		records = c.store.All()
	} else {
		records = query.Filter(c.store, sel, c.DefaultRange())
	}
	s := query.Summarize(records)

	view := SummaryView{
		Site:   string(sel),
		Title:  "Launch Success Counts for " + sel.DisplayName(),
		Total:  s.Total(),
		Slices: make([]SummarySlice, 0, s.Len()),
	}
	for _, g := range s.Groups() {
		view.Slices = append(view.Slices, SummarySlice{
			Label:   g.Outcome.Label(),
			Outcome: g.Outcome,
			Count:   g.Count,
		})
	}
	c.record(ViewSummary)
	return view
}

// Point is one marker of the correlation (scatter) chart.
type Point struct {
	PayloadMassKg   float64       `json:"payload_mass_kg"`
	Outcome         types.Outcome `json:"outcome"`
	BoosterCategory string        `json:"booster_category"`
	BoosterVersion  string        `json:"booster_version,omitempty"`
	FlightNumber    int           `json:"flight_number,omitempty"`
	Site            string        `json:"site"`
}

// Axis labels of the correlation chart.
const (
	LabelPayload  = "Payload Mass (kg)"
	LabelOutcome  = "Launch Outcome"
	LabelCategory = "Booster Version"
)

// CorrelationView is the payload-vs-outcome chart for one selection and range.
type CorrelationView struct {
	Site       string   `json:"site"`
	Title      string   `json:"title"`
	Low        float64  `json:"low"`
	High       float64  `json:"high"`
	XLabel     string   `json:"x_label"`
	YLabel     string   `json:"y_label"`
	ColorLabel string   `json:"color_label"`
	Categories []string `json:"categories"`
	Points     []Point  `json:"points"`
}

// Correlation projects the filtered records into scatter points. Categories
// holds the distinct booster categories of those points, sorted so that
// colour and legend assignment stays stable across re-renders.
func (c *Controller) Correlation(sel types.SiteSelection, r types.PayloadRange) CorrelationView {
	records := query.Filter(c.store, sel, r)

	view := CorrelationView{
		Site:       string(sel),
		Title:      "Launch Success vs Payload Mass for " + sel.DisplayName(),
		Low:        r.Low,
		High:       r.High,
		XLabel:     LabelPayload,
		YLabel:     LabelOutcome,
		ColorLabel: LabelCategory,
		Categories: []string{},
		Points:     make([]Point, 0, len(records)),
	}

	seen := make(map[string]struct{})
	for _, rec := range records {
		view.Points = append(view.Points, Point{
			PayloadMassKg:   rec.PayloadMassKg,
			Outcome:         rec.Outcome,
			BoosterCategory: rec.BoosterCategory,
			BoosterVersion:  rec.BoosterVersion,
			FlightNumber:    rec.FlightNumber,
			Site:            rec.Site,
		})
		if _, ok := seen[rec.BoosterCategory]; !ok {
			seen[rec.BoosterCategory] = struct{}{}
			view.Categories = append(view.Categories, rec.BoosterCategory)
		}
	}
	sort.Strings(view.Categories)

	c.record(ViewCorrelation)
	return view
}

// Records returns the filtered rows behind a correlation view.
func (c *Controller) Records(sel types.SiteSelection, r types.PayloadRange) []types.LaunchRecord {
	return query.Filter(c.store, sel, r)
}

func (c *Controller) record(view string) {
	if c.rec != nil {
		c.rec.ViewComputed(view)
	}
}
