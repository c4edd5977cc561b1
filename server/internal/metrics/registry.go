package metrics

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names exposed by the server.
const (
	nameViews          = "launchboard_view_recomputations_total"
	nameRequests       = "launchboard_http_requests_total"
	nameSessions       = "launchboard_sessions_opened_total"
	nameActiveSessions = "launchboard_sessions_active"
	nameRecords        = "launchboard_dataset_records"
	nameSites          = "launchboard_dataset_sites"
)

type requestKey struct {
	route string
	class string // "2xx", "4xx", ...
}

// Registry holds all server metrics. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	views    map[string]float64
	requests map[requestKey]float64
	sessions float64
	records  float64
	sites    float64
	active   func() int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		views:    make(map[string]float64),
		requests: make(map[requestKey]float64),
	}
}

// ViewComputed counts one recomputation of the named view.
func (r *Registry) ViewComputed(view string) {
	r.mu.Lock()
	r.views[view]++
	r.mu.Unlock()
}

// ObserveRequest counts one HTTP request by route and status class.
func (r *Registry) ObserveRequest(route string, status int) {
	k := requestKey{route: route, class: strconv.Itoa(status/100) + "xx"}
	r.mu.Lock()
	r.requests[k]++
	r.mu.Unlock()
}

// SessionOpened counts one new interactive session.
func (r *Registry) SessionOpened() {
	r.mu.Lock()
	r.sessions++
	r.mu.Unlock()
}

// SetDataset records the size of the loaded dataset.
func (r *Registry) SetDataset(records, sites int) {
	r.mu.Lock()
	r.records = float64(records)
	r.sites = float64(sites)
	r.mu.Unlock()
}

// SetActiveSessions registers the source of the active-session gauge.
func (r *Registry) SetActiveSessions(fn func() int) {
	r.mu.Lock()
	r.active = fn
	r.mu.Unlock()
}

// Gather snapshots every family, sorted by name.
func (r *Registry) Gather() []*dto.MetricFamily {
	r.mu.Lock()
	defer r.mu.Unlock()

	views := counterFamily(nameViews, "View recomputations by view.")
	for _, v := range sortedKeys(r.views) {
		views.Metric = append(views.Metric, counter(r.views[v], "view", v))
	}

	reqs := counterFamily(nameRequests, "HTTP requests by route and status class.")
	keys := make([]requestKey, 0, len(r.requests))
	for k := range r.requests {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].route != keys[j].route {
			return keys[i].route < keys[j].route
		}
		return keys[i].class < keys[j].class
	})
	for _, k := range keys {
		reqs.Metric = append(reqs.Metric, counter(r.requests[k], "route", k.route, "code", k.class))
	}

	sessions := counterFamily(nameSessions, "Interactive sessions opened.")
	sessions.Metric = append(sessions.Metric, counter(r.sessions))

	var active float64
	if r.active != nil {
		active = float64(r.active())
	}

	out := []*dto.MetricFamily{
		views,
		reqs,
		sessions,
		gaugeFamily(nameActiveSessions, "Interactive sessions currently connected.", active),
		gaugeFamily(nameRecords, "Launch records loaded at startup.", r.records),
		gaugeFamily(nameSites, "Distinct launch sites in the dataset.", r.sites),
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// ServeHTTP writes the text exposition of all families.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	for _, mf := range r.Gather() {
		// Families without samples are not valid exposition.
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			slog.Warn("metrics: write family failed", "family", mf.GetName(), "err", err)
			return
		}
	}
}

func counterFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
}

func gaugeFamily(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(v)}}},
	}
}

// counter builds one counter sample; labels are name/value pairs.
func counter(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Counter: &dto.Counter{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}

func sortedKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
