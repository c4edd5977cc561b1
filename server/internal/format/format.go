// Package format renders dashboard views as terminal or Markdown tables.
package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/dashboard"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Table is a go-pretty table bound to one output Mode.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns a Table that renders in the given Mode.
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

// Header sets the column headers.
func (t *Table) Header(cols ...any) { t.writer.AppendHeader(table.Row(cols)) }

// Row appends a data row.
func (t *Table) Row(vals ...any) { t.writer.AppendRow(table.Row(vals)) }

// Footer appends a footer row.
func (t *Table) Footer(vals ...any) { t.writer.AppendFooter(table.Row(vals)) }

// AlignRight right-aligns the given 1-based columns.
func (t *Table) AlignRight(cols ...int) {
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for _, n := range cols {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	t.writer.SetColumnConfigs(cfgs)
}

// String renders the table.
func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

// SiteCount is one row of the sites table.
type SiteCount struct {
	Site     string
	Launches int
}

// Sites renders the site domain, ALL first.
func Sites(sites []SiteCount, m Mode) string {
	t := NewTable(m)
	t.Header("Value", "Label", "Launches")
	total := 0
	for _, s := range sites {
		total += s.Launches
	}
	t.Row(string(types.AllSites), types.AllSites.DisplayName(), total)
	for _, s := range sites {
		t.Row(s.Site, s.Site, s.Launches)
	}
	t.AlignRight(3)
	return t.String()
}

// Summary renders the outcome counts of a summary view.
func Summary(v dashboard.SummaryView, m Mode) string {
	t := NewTable(m)
	t.Header("Outcome", "Launches", "Share")
	for _, s := range v.Slices {
		t.Row(s.Label, s.Count, Percent(s.Count, v.Total))
	}
	t.Footer("Total", v.Total, Percent(v.Total, v.Total))
	t.AlignRight(2, 3)
	return v.Title + "\n" + t.String()
}

// Correlation renders the points of a correlation view in dataset order.
func Correlation(v dashboard.CorrelationView, m Mode) string {
	t := NewTable(m)
	t.Header("Flight", "Site", dashboard.LabelPayload, dashboard.LabelOutcome, dashboard.LabelCategory)
	for _, p := range v.Points {
		flight := "-"
		if p.FlightNumber > 0 {
			flight = fmt.Sprint(p.FlightNumber)
		}
		t.Row(flight, p.Site, Kg(p.PayloadMassKg), p.Outcome.Label(), p.BoosterCategory)
	}
	t.Footer("", "Launches", len(v.Points), "", "")
	t.AlignRight(1, 3)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s to %s kg)\n", v.Title, Kg(v.Low), Kg(v.High))
	b.WriteString(t.String())
	if len(v.Categories) > 0 {
		fmt.Fprintf(&b, "\n%s: %s", dashboard.LabelCategory, strings.Join(v.Categories, ", "))
	}
	return b.String()
}

// Percent formats part/total as a percentage with one decimal. A zero total
// yields "-".
func Percent(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// Kg formats a payload mass without trailing zeros.
func Kg(v float64) string {
	return fmt.Sprintf("%g", v)
}
