package catalog

import (
	"testing"
	"time"
)

var rankNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func tfRange(startY, endY int) Timeframe {
	return Timeframe{
		Start: time.Date(startY, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(endY, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestRank_ContainmentBeatsPartialBeatsNone(t *testing.T) {
	contained := Descriptor{ID: "contained", Start: date(2000, 1, 1), End: date(2024, 1, 1)}
	partial := Descriptor{ID: "partial", Start: date(2014, 1, 1), End: date(2016, 1, 1)}
	none := Descriptor{ID: "none", Start: date(1980, 1, 1), End: date(1990, 1, 1)}

	got := rank([]Descriptor{none, partial, contained}, tfRange(2010, 2020), rankNow)
	want := []string{"contained", "partial", "none"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s (full order %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func TestRank_OngoingBonusBreaksEqualOverlap(t *testing.T) {
	closed := Descriptor{ID: "closed", Start: date(2000, 1, 1), End: date(2024, 1, 1)}
	ongoing := Descriptor{ID: "ongoing", Start: date(2000, 1, 1)}

	got := rank([]Descriptor{closed, ongoing}, tfRange(2010, 2020), rankNow)
	if got[0].ID != "ongoing" {
		t.Fatalf("expected ongoing dataset first, got %v", ids(got))
	}
}

func TestRank_NoTimeframeRanksByRecency(t *testing.T) {
	old := Descriptor{ID: "old", Start: date(1984, 1, 1), End: date(1990, 1, 1)}
	recent := Descriptor{ID: "recent", Start: date(2020, 1, 1), End: date(2023, 1, 1)}
	longOngoing := Descriptor{ID: "long-ongoing", Start: date(2000, 1, 1)}
	newOngoing := Descriptor{ID: "new-ongoing", Start: date(2024, 1, 1)}

	got := rank([]Descriptor{old, recent, newOngoing, longOngoing}, Timeframe{}, rankNow)
	want := []string{"long-ongoing", "new-ongoing", "recent", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s (full order %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func TestRank_StableTotalOrder(t *testing.T) {
	// Two datasets with identical scores keep catalog order; repeated runs
	// produce identical ordering.
	a := Descriptor{ID: "a", Start: date(2000, 1, 1), End: date(2020, 1, 1)}
	b := Descriptor{ID: "b", Start: date(2000, 1, 1), End: date(2020, 1, 1)}
	c := Descriptor{ID: "c", Start: date(2005, 1, 1), End: date(2006, 1, 1)}
	in := []Descriptor{a, b, c}
	tf := tfRange(2001, 2019)

	first := rank(in, tf, rankNow)
	for run := 0; run < 10; run++ {
		again := rank(in, tf, rankNow)
		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("run %d: order changed: %v vs %v", run, ids(again), ids(first))
			}
		}
	}
	if first[0].ID != "a" || first[1].ID != "b" {
		t.Fatalf("ties must keep catalog order, got %v", ids(first))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []Descriptor{
		{ID: "z", Start: date(2020, 1, 1)},
		{ID: "y", Start: date(1990, 1, 1), End: date(1991, 1, 1)},
	}
	_ = rank(in, Timeframe{}, rankNow)
	if in[0].ID != "z" || in[1].ID != "y" {
		t.Fatalf("input slice mutated: %v", ids(in))
	}
}

func ids(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}
