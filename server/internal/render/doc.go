// Package render draws dashboard views as PNG images with go-chart.
//
// Pie(SummaryView) renders the outcome counts; Scatter(CorrelationView) renders
// payload mass against outcome with one colour per booster category. Colours
// are assigned by position in the view's sorted category list, so the same
// category keeps its colour across re-renders of the same selection.
//
// Views without data return ErrNoData; callers decide how to present that.
package render
