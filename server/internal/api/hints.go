package api

import (
	"fmt"
	"sort"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/dashboard"
)

// Hint is one human-readable note about a correlation view. Clients show
// these next to the chart to explain an empty or one-sided result.
type Hint struct {
	// Key is a stable machine-readable identifier.
	Key string `json:"key"`
	// Level is "info" | "warning".
	Level string `json:"level"`
	// Title is a short label.
	Title string `json:"title"`
	// Detail is the full explanation.
	Detail string `json:"detail"`
}

var levelRank = map[string]int{"warning": 0, "info": 1}

// computeHints derives hints for a correlation view. Warnings come first.
func computeHints(v dashboard.CorrelationView, known bool, slider dashboard.SliderConfig) []Hint {
	hints := []Hint{}
	sel := types.SiteSelection(v.Site)

	if !known {
		hints = append(hints, Hint{
			Key:   "unknown_site",
			Level: "warning",
			Title: "Unknown site",
			Detail: fmt.Sprintf("No launches are recorded for site %q. "+
				"Pick a site from /api/v1/sites or use %s for every site.", v.Site, types.AllSites),
		})
	}

	if v.Low > v.High {
		hints = append(hints, Hint{
			Key:   "inverted_range",
			Level: "warning",
			Title: "Range is inverted",
			Detail: fmt.Sprintf("The lower payload bound (%g kg) is above the upper bound (%g kg), "+
				"so no launch can match. Swap the two values.", v.Low, v.High),
		})
	}

	if v.Low < slider.Min || v.High > slider.Max {
		hints = append(hints, Hint{
			Key:   "outside_slider",
			Level: "info",
			Title: "Beyond slider bounds",
			Detail: fmt.Sprintf("The selected range [%g, %g] kg extends past the slider's %g to %g kg scale.",
				v.Low, v.High, slider.Min, slider.Max),
		})
	}

	if known && v.Low <= v.High && len(v.Points) == 0 {
		hints = append(hints, Hint{
			Key:   "empty_range",
			Level: "info",
			Title: "No launches in range",
			Detail: fmt.Sprintf("%s has no launches with a payload between %g and %g kg. "+
				"Widen the payload range to see results.", sel.DisplayName(), v.Low, v.High),
		})
	}

	if len(v.Points) > 0 {
		if o, ok := uniformOutcome(v.Points); ok {
			hints = append(hints, Hint{
				Key:   "uniform_outcome",
				Level: "info",
				Title: "Single outcome",
				Detail: fmt.Sprintf("Every one of the %d launches in this selection is a %s, "+
					"so the chart shows a single row.", len(v.Points), o.Label()),
			})
		}
	}

	sort.SliceStable(hints, func(i, j int) bool {
		return levelRank[hints[i].Level] < levelRank[hints[j].Level]
	})
	return hints
}

func uniformOutcome(points []dashboard.Point) (types.Outcome, bool) {
	first := points[0].Outcome
	for _, p := range points[1:] {
		if p.Outcome != first {
			return 0, false
		}
	}
	return first, true
}
