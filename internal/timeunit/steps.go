package timeunit

import "time"

// MinCellWidth is the narrowest header cell, in pixels, that still fits a label.
const MinCellWidth = 17

// Steps maps a unit to the number of units one header cell spans.
type Steps map[Unit]int

// DefaultSteps returns a one-unit step for every header unit.
func DefaultSteps() Steps {
	return Steps{
		Second: 1,
		Minute: 1,
		Hour:   1,
		Day:    1,
		Month:  1,
		Year:   1,
	}
}

// Of returns the step for u, treating missing or non-positive values as 1.
func (s Steps) Of(u Unit) int {
	if v := s[u]; v > 0 {
		return v
	}
	return 1
}

// divider is how many of the previous unit make one of this unit.
var minUnitChain = []struct {
	unit    Unit
	divider float64
}{
	{Second, 1000},
	{Minute, 60},
	{Hour, 60},
	{Day, 24},
	{Month, 30},
	{Year, 12},
}

// MinUnit picks the finest unit whose header cells stay at least MinCellWidth
// wide (three times that when the unit uses a step above one) for a visible
// span of zoom milliseconds drawn over width pixels. Year is the fallback.
func MinUnit(zoom, width float64, steps Steps) Unit {
	breakCount := zoom
	for _, c := range minUnitChain {
		breakCount /= c.divider
		step := steps.Of(c.unit)
		cellCount := breakCount / float64(step)

		cellWidth := float64(MinCellWidth)
		if step > 1 {
			cellWidth *= 3
		}
		if cellCount < width/cellWidth {
			return c.unit
		}
	}
	return Year
}

// Iterate calls fn for every step-sized cell of unit u that starts before end,
// beginning with the cell containing start. Cells are aligned to multiples of
// the step within the parent unit.
func Iterate(start, end time.Time, u Unit, steps Steps, fn func(from, to time.Time)) {
	step := steps.Of(u)
	t := StartOf(start, u)
	if step > 1 {
		if v, ok := component(t, u); ok {
			t = Add(t, u, -(v % step))
		}
	}

	for t.Before(end) {
		next := Add(t, u, step)
		if !next.After(t) {
			return
		}
		fn(t, next)
		t = next
	}
}

// Slots returns the start of every unit touched by [start, end]. A zero-length
// or inverted interval yields the slot containing start.
func Slots(start, end time.Time, u Unit) []time.Time {
	t := StartOf(start, u)
	slots := []time.Time{t}
	for {
		next := Add(t, u, 1)
		if !next.After(t) || !next.Before(end) {
			return slots
		}
		t = next
		slots = append(slots, t)
	}
}

func component(t time.Time, u Unit) (int, bool) {
	switch u {
	case Second:
		return t.Second(), true
	case Minute:
		return t.Minute(), true
	case Hour:
		return t.Hour(), true
	case Day:
		return t.Day() - 1, true
	case Month:
		return int(t.Month()) - 1, true
	case Year:
		return t.Year(), true
	default:
		return 0, false
	}
}
