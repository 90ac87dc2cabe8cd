// Package feed loads timeline items from outside sources: YAML documents
// written by hand and iCalendar feeds fetched over HTTP.
package feed

import "errors"

// Feed errors.
var (
	ErrEmptyBody     = errors.New("empty feed body")
	ErrMissingUID    = errors.New("event has no UID")
	ErrMissingStart  = errors.New("event has no DTSTART")
	ErrUnknownGroup  = errors.New("item references an unknown group")
	ErrBadTimeFormat = errors.New("time must be RFC3339, YYYY-MM-DD HH:MM or YYYY-MM-DD")
)

// Source is one iCalendar subscription. Its events land in the lane whose
// group id equals the source id.
type Source struct {
	ID   string
	Name string
	URL  string
}
