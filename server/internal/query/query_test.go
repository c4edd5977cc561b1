package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/launchboard/launchboard/pkg/types"
	"github.com/launchboard/launchboard/server/internal/store"
)

func rec(site string, payload float64, outcome types.Outcome) types.LaunchRecord {
	return types.LaunchRecord{Site: site, PayloadMassKg: payload, Outcome: outcome, BoosterCategory: "FT"}
}

// scenario is the three-record dataset used by the worked examples.
func scenario(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New([]types.LaunchRecord{
		rec("A", 500, types.Success),
		rec("A", 1500, types.Failure),
		rec("B", 800, types.Success),
	})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return st
}

func wideStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New([]types.LaunchRecord{
		rec("CCAFS LC-40", 0, types.Failure),
		rec("CCAFS LC-40", 525, types.Failure),
		rec("VAFB SLC-4E", 500, types.Failure),
		rec("KSC LC-39A", 2490, types.Success),
		rec("CCAFS SLC-40", 3600, types.Success),
		rec("VAFB SLC-4E", 9600, types.Success),
		rec("KSC LC-39A", 5300, types.Failure),
		rec("CCAFS LC-40", 4535, types.Success),
		rec("CCAFS SLC-40", 1000, types.Failure),
	})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return st
}

func TestFilter_SingleSite(t *testing.T) {
	got := Filter(scenario(t), "A", types.PayloadRange{Low: 0, High: 1000})
	want := []types.LaunchRecord{rec("A", 500, types.Success)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter(A, [0,1000]) mismatch (-want +got):\n%s", diff)
	}

	s := Summarize(got)
	if diff := cmp.Diff(map[types.Outcome]int{types.Success: 1}, s.Map()); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_AllSites(t *testing.T) {
	got := Filter(scenario(t), types.AllSites, types.PayloadRange{Low: 0, High: 1000})
	want := []types.LaunchRecord{
		rec("A", 500, types.Success),
		rec("B", 800, types.Success),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter(ALL, [0,1000]) mismatch (-want +got):\n%s", diff)
	}

	s := Summarize(got)
	if diff := cmp.Diff(map[types.Outcome]int{types.Success: 2}, s.Map()); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_FullRangeReturnsDataset(t *testing.T) {
	st := wideStore(t)
	got := Filter(st, types.AllSites, st.PayloadBounds().Range())
	if diff := cmp.Diff(st.All(), got); diff != "" {
		t.Errorf("full-range filter should return the whole dataset (-want +got):\n%s", diff)
	}
}

func TestFilter_InclusiveBounds(t *testing.T) {
	st := scenario(t)

	got := Filter(st, types.AllSites, types.PayloadRange{Low: 500, High: 800})
	if len(got) != 2 {
		t.Fatalf("[500,800]: got %d records, want 2 (both bounds included)", len(got))
	}

	got = Filter(st, "A", types.PayloadRange{Low: 1500, High: 1500})
	if len(got) != 1 || got[0].PayloadMassKg != 1500 {
		t.Errorf("[1500,1500]: got %+v, want the single 1500kg record", got)
	}
}

func TestFilter_UnknownSiteIsEmpty(t *testing.T) {
	got := Filter(scenario(t), "Z", types.PayloadRange{Low: 0, High: 10000})
	if got == nil || len(got) != 0 {
		t.Errorf("unknown site: got %v, want empty non-nil slice", got)
	}
}

func TestFilter_InvertedRangeIsEmpty(t *testing.T) {
	got := Filter(scenario(t), types.AllSites, types.PayloadRange{Low: 1000, High: 0})
	if got == nil || len(got) != 0 {
		t.Errorf("inverted range: got %v, want empty non-nil slice", got)
	}
}

func TestFilter_Conjunction(t *testing.T) {
	st := wideStore(t)
	sels := append([]types.SiteSelection{types.AllSites, "nowhere"}, siteSelections(st)...)
	ranges := []types.PayloadRange{
		{Low: 0, High: 10000},
		{Low: 0, High: 0},
		{Low: 500, High: 3600},
		{Low: 4000, High: 9600},
		{Low: 9601, High: 10000},
	}

	for _, sel := range sels {
		for _, r := range ranges {
			got := Filter(st, sel, r)

			for _, x := range got {
				if !sel.Matches(x.Site) || x.PayloadMassKg < r.Low || x.PayloadMassKg > r.High {
					t.Errorf("Filter(%q, %+v) returned non-matching record %+v", sel, r, x)
				}
			}

			// Every matching record in the store must be present.
			want := 0
			st.Each(func(x types.LaunchRecord) bool {
				if sel.Matches(x.Site) && x.PayloadMassKg >= r.Low && x.PayloadMassKg <= r.High {
					want++
				}
				return true
			})
			if len(got) != want {
				t.Errorf("Filter(%q, %+v): got %d records, want %d", sel, r, len(got), want)
			}

			if total := Summarize(got).Total(); total != len(got) {
				t.Errorf("Summarize(Filter(%q, %+v)).Total() = %d, want %d", sel, r, total, len(got))
			}
		}
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	st := wideStore(t)
	got := Filter(st, "CCAFS LC-40", types.PayloadRange{Low: 0, High: 10000})
	var payloads []float64
	for _, r := range got {
		payloads = append(payloads, r.PayloadMassKg)
	}
	if diff := cmp.Diff([]float64{0, 525, 4535}, payloads); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestIdempotence(t *testing.T) {
	st := wideStore(t)
	r := types.PayloadRange{Low: 500, High: 5300}

	a := Filter(st, types.AllSites, r)
	b := Filter(st, types.AllSites, r)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Filter not idempotent:\n%s", diff)
	}

	sa, sb := Summarize(a), Summarize(b)
	if diff := cmp.Diff(sa.Groups(), sb.Groups()); diff != "" {
		t.Errorf("Summarize not idempotent:\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Len() != 0 || s.Total() != 0 || len(s.Map()) != 0 {
		t.Errorf("Summarize(nil): got %+v, want empty", s.Groups())
	}
}

func TestSummarize_FirstAppearanceOrder(t *testing.T) {
	s := Summarize([]types.LaunchRecord{
		rec("A", 1, types.Failure),
		rec("A", 2, types.Success),
		rec("A", 3, types.Failure),
	})
	want := []types.OutcomeCount{
		{Outcome: types.Failure, Count: 2},
		{Outcome: types.Success, Count: 1},
	}
	if diff := cmp.Diff(want, s.Groups()); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func siteSelections(st *store.Store) []types.SiteSelection {
	var out []types.SiteSelection
	for _, s := range st.Sites() {
		out = append(out, types.SiteSelection(s))
	}
	return out
}
