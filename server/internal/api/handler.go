package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/dashboard"
	"github.com/launchboard/launchboard/server/internal/render"
	"github.com/launchboard/launchboard/server/internal/store"
)

// Chart canvas limits accepted from the width and height query parameters.
const (
	minChartSide = 100
	maxChartSide = 4096
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads the dataset through the dashboard controller and returns JSON or
// PNG responses.
type Handler struct {
	store *store.Store
	ctl   *dashboard.Controller
	mux   *http.ServeMux
}

// New creates a Handler wired to the given dataset and controller and
// registers all routes.
func New(st *store.Store, ctl *dashboard.Controller) http.Handler {
	h := &Handler{store: st, ctl: ctl, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/controls", h.controls)
	h.mux.HandleFunc("/api/v1/sites", h.sites)
	h.mux.HandleFunc("/api/v1/summary", h.summary)
	h.mux.HandleFunc("/api/v1/correlation", h.correlation)
	h.mux.HandleFunc("/api/v1/records", h.records)
	h.mux.HandleFunc("/api/v1/charts/summary.png", h.summaryChart)
	h.mux.HandleFunc("/api/v1/charts/correlation.png", h.correlationChart)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: dataset size and payload bounds.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	b := h.store.PayloadBounds()
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Records:    h.store.Len(),
		Sites:      len(h.store.Sites()),
		PayloadMin: b.Min,
		PayloadMax: b.Max,
	})
}

// controls returns GET /api/v1/controls: dropdown and slider configuration.
func (h *Handler) controls(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	jsonResp(w, http.StatusOK, h.ctl.Controls())
}

// sites returns GET /api/v1/sites: the distinct sites in dataset order.
func (h *Handler) sites(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	jsonResp(w, http.StatusOK, SitesResponse{
		All:   string(types.AllSites),
		Sites: h.store.Sites(),
	})
}

// summary returns GET /api/v1/summary?site=.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	jsonResp(w, http.StatusOK, h.ctl.Summary(selection(r)))
}

// correlation returns GET /api/v1/correlation?site=&low=&high=.
func (h *Handler) correlation(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	rng, err := h.payloadRange(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	sel := selection(r)
	v := h.ctl.Correlation(sel, rng)
	jsonResp(w, http.StatusOK, CorrelationResponse{
		CorrelationView: v,
		Hints:           computeHints(v, h.ctl.ValidSite(sel), h.ctl.Controls().Payload),
	})
}

// records returns GET /api/v1/records?site=&low=&high=: the filtered rows.
func (h *Handler) records(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	rng, err := h.payloadRange(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	sel := selection(r)
	recs := h.ctl.Records(sel, rng)

	out := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResponse(rec))
	}
	jsonResp(w, http.StatusOK, RecordsResponse{
		Site:    string(sel),
		Low:     rng.Low,
		High:    rng.High,
		Count:   len(out),
		Records: out,
	})
}

// summaryChart returns GET /api/v1/charts/summary.png?site=&width=&height=.
func (h *Handler) summaryChart(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	size, err := chartSize(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	img, err := render.Pie(h.ctl.Summary(selection(r)), size)
	writePNG(w, r, img, err)
}

// correlationChart returns GET /api/v1/charts/correlation.png?site=&low=&high=&width=&height=.
func (h *Handler) correlationChart(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	rng, err := h.payloadRange(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := chartSize(r)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	img, err := render.Scatter(h.ctl.Correlation(selection(r), rng), size)
	writePNG(w, r, img, err)
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writePNG sends a rendered chart. An empty selection is 204, not an error.
func writePNG(w http.ResponseWriter, r *http.Request, img []byte, err error) {
	switch {
	case errors.Is(err, render.ErrNoData):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		slog.ErrorContext(r.Context(), "chart render failed", "path", r.URL.Path, "err", err)
		jsonErr(w, http.StatusInternalServerError, "chart render failed")
	default:
		w.Header().Set("Content-Type", render.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(img)))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		w.Write(img) //nolint:errcheck
	}
}

// selection reads ?site=, defaulting to every site.
func selection(r *http.Request) types.SiteSelection {
	if s := r.URL.Query().Get("site"); s != "" {
		return types.SiteSelection(s)
	}
	return types.AllSites
}

// payloadRange reads ?low= and ?high=. Missing bounds default to the
// observed payload range of the dataset.
func (h *Handler) payloadRange(r *http.Request) (types.PayloadRange, error) {
	rng := h.ctl.DefaultRange()
	q := r.URL.Query()
	if v := q.Get("low"); v != "" {
		f, err := parseNumber("low", v)
		if err != nil {
			return rng, err
		}
		rng.Low = f
	}
	if v := q.Get("high"); v != "" {
		f, err := parseNumber("high", v)
		if err != nil {
			return rng, err
		}
		rng.High = f
	}
	// Inverted ranges are valid and select nothing; a span too wide for a
	// float64 axis is not.
	if math.IsInf(rng.High-rng.Low, 1) {
		return rng, fmt.Errorf("invalid payload range [%g, %g]: span overflows", rng.Low, rng.High)
	}
	return rng, nil
}

func parseNumber(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q: want a finite number", name, v)
	}
	return f, nil
}

// chartSize reads ?width= and ?height=. Missing values use the renderer defaults.
func chartSize(r *http.Request) (render.Size, error) {
	var size render.Size
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &size.Width}, {"height", &size.Height}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < minChartSide || n > maxChartSide {
			return size, fmt.Errorf("invalid %s %q: want an integer in [%d, %d]", p.name, v, minChartSide, maxChartSide)
		}
		*p.dst = n
	}
	return size, nil
}

// toRecordResponse maps a launch record to its JSON representation.
func toRecordResponse(rec types.LaunchRecord) RecordResponse {
	return RecordResponse{
		Site:            rec.Site,
		PayloadMassKg:   rec.PayloadMassKg,
		Class:           int(rec.Outcome),
		Outcome:         rec.Outcome.Label(),
		BoosterCategory: rec.BoosterCategory,
		FlightNumber:    rec.FlightNumber,
		BoosterVersion:  rec.BoosterVersion,
	}
}
