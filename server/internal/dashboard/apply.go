package dashboard

import "github.com/launchboard/launchboard/pkg/types"

// Inputs is the current state of one client's controls.
type Inputs struct {
	Site    types.SiteSelection `json:"site"`
	Payload types.PayloadRange  `json:"payload"`
}

// Change carries the inputs a client touched. Nil fields are unchanged.
type Change struct {
	Site    *types.SiteSelection
	Payload *types.PayloadRange
}

// Update holds the views recomputed for one Change. A nil view did not need
// recomputing.
type Update struct {
	Summary     *SummaryView
	Correlation *CorrelationView
}

// Empty reports whether nothing was recomputed.
func (u Update) Empty() bool { return u.Summary == nil && u.Correlation == nil }

// Apply folds ch into in and recomputes the views that depend on what
// changed: a site change recomputes both views, a payload change only the
// correlation view. Setting an input to its current value counts as a change.
func (c *Controller) Apply(in Inputs, ch Change) (Inputs, Update) {
	var u Update
	if ch.Site == nil && ch.Payload == nil {
		return in, u
	}

	next := in
	if ch.Site != nil {
		next.Site = *ch.Site
	}
	if ch.Payload != nil {
		next.Payload = *ch.Payload
	}

	if ch.Site != nil {
		s := c.Summary(next.Site)
		u.Summary = &s
	}
	v := c.Correlation(next.Site, next.Payload)
	u.Correlation = &v
	return next, u
}

// Initial computes both views for in, as sent to a newly connected client.
func (c *Controller) Initial(in Inputs) Update {
	s := c.Summary(in.Site)
	v := c.Correlation(in.Site, in.Payload)
	return Update{Summary: &s, Correlation: &v}
}
