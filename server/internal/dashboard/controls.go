package dashboard

import (
	"fmt"

	"github.com/launchboard/launchboard/pkg/types"
)

// SliderConfig describes the payload range control. Min and Max are the
// display bounds and are independent of the data; Value is the default
// selection and is the observed payload range of the dataset.
type SliderConfig struct {
	Min   float64           `json:"min"`
	Max   float64           `json:"max"`
	Step  float64           `json:"step"`
	Marks map[string]string `json:"marks"`
	Value [2]float64        `json:"value"`
}

// Option is one dropdown entry.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Controls is the full input-control configuration sent to clients.
type Controls struct {
	Sites       []Option     `json:"sites"`
	DefaultSite string       `json:"default_site"`
	Payload     SliderConfig `json:"payload"`
}

// SliderBounds holds the fixed display bounds of the payload control.
type SliderBounds struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultSliderBounds matches the dashboard's 0–10000 kg control.
var DefaultSliderBounds = SliderBounds{Min: 0, Max: 10000, Step: 1000}

// Controls returns the dropdown options (All Sites first, then every site in
// the data) and the slider configuration.
func (c *Controller) Controls() Controls {
	sites := c.store.Sites()
	opts := make([]Option, 0, len(sites)+1)
	opts = append(opts, Option{Label: "All Sites", Value: string(types.AllSites)})
	for _, s := range sites {
		opts = append(opts, Option{Label: s, Value: s})
	}

	def := c.DefaultRange()
	return Controls{
		Sites:       opts,
		DefaultSite: string(types.AllSites),
		Payload: SliderConfig{
			Min:   c.slider.Min,
			Max:   c.slider.Max,
			Step:  c.slider.Step,
			Marks: marks(c.slider),
			Value: [2]float64{def.Low, def.High},
		},
	}
}

// ValidSite reports whether sel is ALL or a site present in the dataset.
func (c *Controller) ValidSite(sel types.SiteSelection) bool {
	return sel.IsAll() || c.store.HasSite(string(sel))
}

// marks labels every step between the display bounds, e.g. "1000" → "1000Kg".
func marks(b SliderBounds) map[string]string {
	out := make(map[string]string)
	if b.Step <= 0 || b.Max < b.Min {
		return out
	}
	for v := b.Min; v <= b.Max; v += b.Step {
		k := fmt.Sprintf("%g", v)
		out[k] = k + "Kg"
	}
	return out
}
