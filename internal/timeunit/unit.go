// Package timeunit provides calendar units, unit arithmetic and the header
// granularity selection used by the timeline.
package timeunit

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownUnit is returned by Parse for unsupported unit names.
var ErrUnknownUnit = errors.New("unknown time unit")

// Unit is a calendar unit.
type Unit string

const (
	Second  Unit = "second"
	Minute  Unit = "minute"
	Hour    Unit = "hour"
	Day     Unit = "day"
	Week    Unit = "week"
	Month   Unit = "month"
	Quarter Unit = "quarter"
	Year    Unit = "year"
)

var allUnits = []Unit{Second, Minute, Hour, Day, Week, Month, Quarter, Year}

// Parse parses a unit name. Plural forms are accepted.
func Parse(s string) (Unit, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for _, u := range allUnits {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// IsTimeframe reports whether u can be used to bucket hidden items.
func (u Unit) IsTimeframe() bool {
	switch u {
	case Hour, Day, Week, Month, Quarter, Year:
		return true
	default:
		return false
	}
}

// NextUnit returns the unit shown in the header row above u, or "" for year.
func NextUnit(u Unit) Unit {
	switch u {
	case Second:
		return Minute
	case Minute:
		return Hour
	case Hour:
		return Day
	case Day:
		return Month
	case Month:
		return Year
	default:
		return ""
	}
}

// StartOf truncates t to the start of the unit containing it, in t's location.
// Weeks start on Monday.
func StartOf(t time.Time, u Unit) time.Time {
	loc := t.Location()
	y, m, d := t.Date()
	switch u {
	case Second:
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	case Minute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
	case Hour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Quarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, first, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

// Add adds n units to t. Calendar units use AddDate so they follow the
// calendar rather than a fixed duration.
func Add(t time.Time, u Unit, n int) time.Time {
	switch u {
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	case Quarter:
		return t.AddDate(0, 3*n, 0)
	case Year:
		return t.AddDate(n, 0, 0)
	default:
		return t
	}
}

// Label formats the unit containing t for a popup title.
func (u Unit) Label(t time.Time) string {
	switch u {
	case Second:
		return t.Format("Jan 2, 2006 15:04:05")
	case Minute:
		return t.Format("Jan 2, 2006 15:04")
	case Hour:
		return t.Format("Mon, Jan 2, 2006 3:04 PM")
	case Day:
		return t.Format("Monday, January 2, 2006")
	case Week:
		year, week := t.ISOWeek()
		return fmt.Sprintf("Week #%d, %d", week, year)
	case Month:
		return t.Format("January, 2006")
	case Quarter:
		return fmt.Sprintf("Q%d, %d", quarterOf(t), t.Year())
	case Year:
		return t.Format("2006")
	default:
		return t.Format(time.RFC3339)
	}
}

// ShortLabel formats the unit containing t for a header cell.
func (u Unit) ShortLabel(t time.Time) string {
	switch u {
	case Second:
		return t.Format(":05")
	case Minute:
		return t.Format("15:04")
	case Hour:
		return t.Format("15:00")
	case Day:
		return t.Format("Mon 2")
	case Week:
		_, week := t.ISOWeek()
		return fmt.Sprintf("W%d", week)
	case Month:
		return t.Format("Jan")
	case Quarter:
		return fmt.Sprintf("Q%d", quarterOf(t))
	case Year:
		return t.Format("2006")
	default:
		return t.Format(time.RFC3339)
	}
}

// SlotKey returns a compact, sortable key for the unit containing t.
func (u Unit) SlotKey(t time.Time) string {
	return StartOf(t, u).Format("20060102T150405")
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
