// Package overflow collects items hidden by fixed-height lanes into
// time-slot buckets that back the "show more" popups.
package overflow

import (
	"time"

	"github.com/javiermolinar/timelane/internal/timeunit"
)

// Item is a hidden item as seen by a show-more popup.
type Item struct {
	ID      string
	GroupID string
	Title   string
	Start   time.Time
	End     time.Time
}

// Button describes one "show more" affordance: the hidden items of a group
// that touch a single timeframe slot.
type Button struct {
	ID      string
	GroupID string
	Slot    time.Time
	Label   string
	Items   []Item
}

// Bucketer groups hidden items by (group, slot).
type Bucketer struct {
	unit    timeunit.Unit
	loc     *time.Location
	index   map[string]int
	members map[string]map[string]bool
	buttons []Button
}

// New creates a Bucketer for the given timeframe unit. Units that are not
// timeframes fall back to days. A nil location means time.Local.
func New(unit timeunit.Unit, loc *time.Location) *Bucketer {
	if !unit.IsTimeframe() {
		unit = timeunit.Day
	}
	if loc == nil {
		loc = time.Local
	}
	return &Bucketer{
		unit:    unit,
		loc:     loc,
		index:   make(map[string]int),
		members: make(map[string]map[string]bool),
	}
}

// Unit returns the timeframe unit the bucketer slots items by.
func (b *Bucketer) Unit() timeunit.Unit {
	return b.unit
}

// Add registers it in every slot its interval touches. Adding the same item
// twice does not duplicate it.
func (b *Bucketer) Add(it Item) {
	start := it.Start.In(b.loc)
	end := it.End.In(b.loc)

	for _, slot := range timeunit.Slots(start, end, b.unit) {
		id := it.GroupID + "-" + b.unit.SlotKey(slot)

		idx, ok := b.index[id]
		if !ok {
			idx = len(b.buttons)
			b.index[id] = idx
			b.members[id] = make(map[string]bool)
			b.buttons = append(b.buttons, Button{
				ID:      id,
				GroupID: it.GroupID,
				Slot:    slot,
				Label:   b.unit.Label(slot),
			})
		}

		if b.members[id][it.ID] {
			continue
		}
		b.members[id][it.ID] = true
		b.buttons[idx].Items = append(b.buttons[idx].Items, it)
	}
}

// Len returns the number of non-empty buckets.
func (b *Bucketer) Len() int {
	return len(b.buttons)
}

// Buttons returns one descriptor per non-empty bucket in the order the
// buckets were first filled.
func (b *Bucketer) Buttons() []Button {
	out := make([]Button, len(b.buttons))
	for i, btn := range b.buttons {
		btn.Items = append([]Item(nil), btn.Items...)
		out[i] = btn
	}
	return out
}

// ForGroup returns the buttons of a single group.
func ForGroup(buttons []Button, groupID string) []Button {
	var out []Button
	for _, btn := range buttons {
		if btn.GroupID == groupID {
			out = append(out, btn)
		}
	}
	return out
}

// Find returns the button with the given id.
func Find(buttons []Button, id string) (Button, bool) {
	for _, btn := range buttons {
		if btn.ID == id {
			return btn, true
		}
	}
	return Button{}, false
}
