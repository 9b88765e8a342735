// utils/dates.go
package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayFormat is the canonical calendar-date layout used everywhere in the API.
const DayFormat = "2006-01-02"

// NormalizeDate accepts "YYYY-MM-DD" or a longer timestamp string and returns
// the canonical day, truncating any time-of-day part. ok is false for anything
// that does not start with a valid date.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) > len(DayFormat) {
		s = s[:len(DayFormat)]
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return "", false
	}
	return t.Format(DayFormat), true
}

// ParseDay parses a canonical day into a UTC midnight time.Time.
func ParseDay(day string) (time.Time, bool) {
	s, ok := NormalizeDate(day)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDay renders a time as a canonical calendar day, dropping time-of-day.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// NextDay returns the calendar day after the given one ("" for bad input).
// Month, year and leap-year rollover follow normal calendar arithmetic.
func NextDay(day string) string {
	t, ok := ParseDay(day)
	if !ok {
		return ""
	}
	return FormatDay(t.AddDate(0, 0, 1))
}

// EnumerateDays returns the inclusive ascending day sequence from start to
// end. Empty when start is after end or either input is malformed.
func EnumerateDays(start, end string) []string {
	s, okStart := ParseDay(start)
	e, okEnd := ParseDay(end)
	if !okStart || !okEnd {
		return nil
	}
	var days []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDay(d))
	}
	return days
}

// DateRange is an inclusive run of calendar days.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GroupContiguous collapses a set of days into the minimal list of maximal
// contiguous ranges, ordered by start date. Input order does not matter;
// duplicates and malformed entries are dropped.
func GroupContiguous(dates []string) []DateRange {
	seen := make(map[string]struct{}, len(dates))
	uniq := make([]string, 0, len(dates))
	for _, d := range dates {
		day, ok := NormalizeDate(d)
		if !ok {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		uniq = append(uniq, day)
	}
	sort.Strings(uniq)

	var ranges []DateRange
	for _, day := range uniq {
		if n := len(ranges); n > 0 && NextDay(ranges[n-1].End) == day {
			ranges[n-1].End = day
			continue
		}
		ranges = append(ranges, DateRange{Start: day, End: day})
	}
	return ranges
}

// FormatRange compresses a range for display, omitting the year and month
// when they repeat: "3-7/1", "3/1-7/2" or "3/1/2024-7/2/2025".
func FormatRange(r DateRange) string {
	start, okStart := ParseDay(r.Start)
	end, okEnd := ParseDay(r.End)
	if !okStart || !okEnd {
		return ""
	}
	switch {
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("%d-%d/%d", start.Day(), end.Day(), int(start.Month()))
	case start.Year() == end.Year():
		return fmt.Sprintf("%d/%d-%d/%d", start.Day(), int(start.Month()), end.Day(), int(end.Month()))
	default:
		return fmt.Sprintf("%d/%d/%d-%d/%d/%d",
			start.Day(), int(start.Month()), start.Year(),
			end.Day(), int(end.Month()), end.Year())
	}
}
