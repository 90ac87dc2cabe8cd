package feed

import (
	"cmp"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/timelane/internal/item"
)

// MaxOccurrences caps the number of instances one recurring event may
// produce in a single expansion.
const MaxOccurrences = 5000

const occurrenceIDLayout = "20060102T150405Z"

// Expand turns events into items overlapping [from, to], both inclusive.
// Recurring events yield one item per occurrence, identified by the event
// UID and the occurrence start. Times are converted to loc.
func Expand(events []Event, from, to time.Time, loc *time.Location) []item.Item {
	if loc == nil {
		loc = time.Local
	}

	items := make([]item.Item, 0, len(events))
	for _, ev := range events {
		if ev.RRule == "" {
			if overlaps(ev.Start, ev.End, from, to) {
				items = append(items, toItem(ev, ev.UID, ev.Start, ev.End, loc))
			}
			continue
		}

		starts, err := occurrences(ev, from, to)
		if err != nil {
			log.Warn().Err(err).Str("uid", ev.UID).Str("rrule", ev.RRule).
				Msg("bad recurrence rule, keeping first instance only")
			if overlaps(ev.Start, ev.End, from, to) {
				items = append(items, toItem(ev, ev.UID, ev.Start, ev.End, loc))
			}
			continue
		}

		length := ev.End.Sub(ev.Start)
		for _, start := range starts {
			id := ev.UID + "-" + start.UTC().Format(occurrenceIDLayout)
			items = append(items, toItem(ev, id, start, start.Add(length), loc))
		}
	}

	slices.SortFunc(items, func(a, b item.Item) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return items
}

// occurrences lists the instance starts of a recurring event whose span
// touches [from, to].
func occurrences(ev Event, from, to time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil, err
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Instances that start before the window but are still running count.
	length := ev.End.Sub(ev.Start)
	starts := set.Between(from.Add(-length), to, true)
	if len(starts) > MaxOccurrences {
		log.Warn().Str("uid", ev.UID).Int("count", len(starts)).Msg("recurrence truncated")
		starts = starts[:MaxOccurrences]
	}
	return starts, nil
}

func overlaps(start, end, from, to time.Time) bool {
	return !end.Before(from) && !start.After(to)
}

func toItem(ev Event, id string, start, end time.Time, loc *time.Location) item.Item {
	return item.Item{
		ID:      id,
		GroupID: ev.GroupID,
		Title:   ev.Summary,
		Start:   start.In(loc),
		End:     end.In(loc),
	}
}
