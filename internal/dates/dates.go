// Package dates provides calendar-day arithmetic for the diary.
//
// The API works in whole calendar days: the server keys diary records by
// ISO date strings, and every range computation here is inclusive on both
// ends.
package dates

import (
	"fmt"
	"sort"
	"time"
)

// ISOLayout is the wire format for calendar days.
const ISOLayout = "2006-01-02"

// Day is a single calendar day at midnight in the local zone.
type Day struct {
	t time.Time
}

// NewDay builds a Day from year, month, day values.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// FromTime truncates a timestamp to its local calendar day.
func FromTime(t time.Time) Day {
	local := t.Local()
	return NewDay(local.Year(), local.Month(), local.Day())
}

// Today returns the current local calendar day.
func Today() Day {
	return FromTime(time.Now())
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(value string) (Day, error) {
	t, err := time.ParseInLocation(ISOLayout, value, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", value, err)
	}
	return FromTime(t), nil
}

// ISO renders the day as YYYY-MM-DD.
func (d Day) ISO() string {
	return d.t.Format(ISOLayout)
}

// Time returns local midnight of the day.
func (d Day) Time() time.Time {
	return d.t
}

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// Add returns the day shifted by n calendar days.
func (d Day) Add(n int) Day {
	return FromTime(d.t.AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d is later than other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// Equal reports whether two days are the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// DaysBetween returns the calendar-day distance from a to b. Negative when
// b is earlier than a. The count goes through UTC so that 23- and 25-hour
// local days around DST transitions still count as one day.
func DaysBetween(a, b Day) int {
	ay, am, ad := a.t.Date()
	by, bm, bd := b.t.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start Day
	End   Day
}

// NewRange orders start and end if given backwards.
func NewRange(start, end Day) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Contains reports whether day falls inside the range, endpoints included.
func (r Range) Contains(day Day) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Days returns the number of calendar days the range covers.
func (r Range) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// DistanceTo returns the minimal whole-day distance from day to either
// endpoint. A day inside the range still reports its distance to the
// nearest edge; that is what the prefetch trigger cares about.
func (r Range) DistanceTo(day Day) int {
	toStart := abs(DaysBetween(day, r.Start))
	toEnd := abs(DaysBetween(day, r.End))
	if toStart < toEnd {
		return toStart
	}
	return toEnd
}

// MergeRanges folds a set of ranges into its minimal representation: the
// result is sorted by start and any two ranges that overlap or touch
// (separated by fewer than one day) are merged. The input is not mutated.
func MergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Range{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !last.End.Add(1).Before(next.Start) {
			if next.End.After(last.End) {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
