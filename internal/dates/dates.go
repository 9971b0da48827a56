// Package dates resolves instants to calendar days.
//
// A day is identified by its civil date key (YYYY-MM-DD). The key of an
// instant is its calendar date in the instant's own location, so callers
// decide the timezone by choosing the location of the time they pass in.
package dates

import (
	"errors"
	"slices"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

var (
	ErrInvalidDate    = errors.New("invalid date: expected YYYY-MM-DD")
	ErrInvalidTime    = errors.New("invalid time: expected HH:MM")
	ErrInvalidWeekday = errors.New("invalid day of week")
)

// Weekdays lists the weekday names Monday first.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// indexed by time.Weekday (Sunday = 0)
var weekdayNames = [7]string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Key returns the calendar day of t as YYYY-MM-DD.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// Weekday returns the locale independent weekday name of t, e.g. MONDAY.
func Weekday(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// Parse reads a YYYY-MM-DD string as midnight UTC of that day.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// NormalizeDate validates a YYYY-MM-DD string and returns its canonical form.
func NormalizeDate(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Key(t), nil
}

// NormalizeTime validates an HH:MM string and returns its canonical form.
func NormalizeTime(s string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidTime
	}
	return t.Format(TimeLayout), nil
}

// ParseWeekday accepts a weekday name in any case and returns its canonical name.
func ParseWeekday(s string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if !slices.Contains(Weekdays, name) {
		return "", ErrInvalidWeekday
	}
	return name, nil
}

// NormalizeWeekdays validates, de-duplicates and orders a weekday set Monday first.
func NormalizeWeekdays(days []string) ([]string, error) {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		name, err := ParseWeekday(d)
		if err != nil {
			return nil, err
		}
		seen[name] = true
	}

	normalized := make([]string, 0, len(seen))
	for _, name := range Weekdays {
		if seen[name] {
			normalized = append(normalized, name)
		}
	}
	return normalized, nil
}

// Today returns midnight of the current day in loc.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := time.Now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
