package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind is the coarse dataset shape tag.
type Kind string

const (
	KindRaster       Kind = "raster"
	KindRasterSeries Kind = "raster_series"
	KindVector       Kind = "vector"
)

// IsRasterKind reports whether k names a single raster or a raster time series.
func IsRasterKind(k Kind) bool {
	return k == KindRaster || k == KindRasterSeries
}

// Date is a calendar date that unmarshals from "YYYY-MM-DD", RFC 3339,
// or an empty string (zero value, meaning open-ended).
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("catalog: unparseable date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// Descriptor is one read-only catalog entry. The pipeline filters, ranks,
// and copies descriptors; it never mutates them.
type Descriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        Kind   `json:"type"`
	Provider    string `json:"provider,omitempty"`
	Start       Date   `json:"start,omitempty"`
	End         Date   `json:"end,omitempty"` // zero = ongoing
	DocsURL     string `json:"docs,omitempty"`
}

// Ongoing reports whether the dataset's coverage is open-ended.
func (d Descriptor) Ongoing() bool {
	return !d.Start.IsZero() && d.End.IsZero()
}

// Timeframe is an optional requested temporal window; either bound may be zero.
type Timeframe struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether no temporal bound was requested.
func (tf Timeframe) Empty() bool {
	return tf.Start.IsZero() && tf.End.IsZero()
}

func (tf Timeframe) key() string {
	f := func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return f(tf.Start) + ".." + f(tf.End)
}
