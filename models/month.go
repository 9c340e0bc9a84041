package models

import "time"

const monthLayout = "2006-01"

// Month is a calendar month, always represented in UTC
type Month struct {
	start time.Time
}

// ParseMonth parses a YYYY-MM key. ok is false for anything else.
func ParseMonth(value string) (Month, bool) {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return Month{}, false
	}
	return Month{start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)}, true
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// Start is the first day of the month
func (m Month) Start() time.Time {
	return m.start
}

// End is the last day of the month
func (m Month) End() time.Time {
	return m.start.AddDate(0, 1, -1)
}

// Days is the calendar length of the month
func (m Month) Days() int {
	return m.End().Day()
}

// Contains reports whether the calendar date of t falls inside the month
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.start.Year() && t.Month() == m.start.Month()
}

// String returns the YYYY-MM key
func (m Month) String() string {
	return m.start.Format(monthLayout)
}

// DateOnly truncates t to its calendar date at UTC midnight
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
