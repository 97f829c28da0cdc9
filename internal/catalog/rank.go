package catalog

import (
	"sort"
	"time"
)

// Match scores for timeframe ranking. Full containment beats partial
// overlap beats none; open-ended coverage earns a flat bonus.
const (
	scoreContained = 100
	scoreOverlap   = 50
	scoreOngoing   = 10
)

// rank orders candidates by descending score. The sort is stable, so equal
// scores keep catalog order; repeated runs over the same candidates yield
// byte-identical ordering.
func rank(candidates []Descriptor, tf Timeframe, now time.Time) []Descriptor {
	out := make([]Descriptor, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i], tf, now) > score(out[j], tf, now)
	})
	return out
}

func score(d Descriptor, tf Timeframe, now time.Time) int {
	if tf.Empty() {
		return recencyScore(d, now)
	}
	return overlapScore(d, tf, now)
}

// overlapScore classifies the dataset coverage against the requested window.
func overlapScore(d Descriptor, tf Timeframe, now time.Time) int {
	ds, de := coverageBounds(d, now)
	rs, re := tf.Start, tf.End
	if rs.IsZero() {
		rs = ds
	}
	if re.IsZero() {
		re = now
	}

	s := 0
	switch {
	case !ds.After(rs) && !de.Before(re):
		s = scoreContained
	case !ds.After(re) && !de.Before(rs):
		s = scoreOverlap
	}
	if d.Ongoing() {
		s += scoreOngoing
	}
	return s
}

// recencyScore ranks by coverage end; ongoing datasets rank by the current
// year plus a reward for how long they have been running.
func recencyScore(d Descriptor, now time.Time) int {
	if d.Ongoing() {
		return now.Year() + (now.Year() - d.Start.Year())
	}
	if d.End.IsZero() {
		return 0
	}
	return d.End.Year()
}

func coverageBounds(d Descriptor, now time.Time) (time.Time, time.Time) {
	start := d.Start.Time
	end := d.End.Time
	if end.IsZero() {
		end = now
	}
	return start, end
}
