// Package week parses ISO week identifiers ("2026-W02") and resolves
// them to their Monday–Sunday date spans.
package week

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DayNames lists weekdays in canonical Monday→Sunday order.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var idPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// Parse validates an ISO week identifier and returns the Monday of that
// week at midnight UTC. A malformed or out-of-range identifier is a
// distinct failure from a valid week with no data and yields an error.
func Parse(id string) (time.Time, error) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid ISO week %q: expected YYYY-Www", id)
	}
	year, _ := strconv.Atoi(m[1])
	wk, _ := strconv.Atoi(m[2])
	if wk < 1 || wk > weeksInYear(year) {
		return time.Time{}, fmt.Errorf("invalid ISO week %q: year %d has %d weeks", id, year, weeksInYear(year))
	}
	return mondayOf(year, wk), nil
}

// Span returns the Monday and Sunday bounding the given ISO week.
func Span(id string) (start, end time.Time, err error) {
	start, err = Parse(id)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 6), nil
}

// ID formats the ISO week identifier containing t.
func ID(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", y, w)
}

// Truncate normalizes t to midnight UTC of its calendar day.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex maps a time to 0..6 in Monday→Sunday order.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// mondayOf returns the Monday of ISO week wk in isoYear. January 4 is
// always inside week 1, which anchors the calculation.
func mondayOf(isoYear, wk int) time.Time {
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -WeekdayIndex(jan4))
	return week1Monday.AddDate(0, 0, (wk-1)*7)
}

// weeksInYear reports how many ISO weeks isoYear has (52 or 53).
func weeksInYear(isoYear int) int {
	// December 28 is always in the last ISO week of its year.
	dec28 := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC)
	_, w := dec28.ISOWeek()
	return w
}
