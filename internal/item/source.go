package item

import (
	"fmt"
	"strconv"
	"time"
)

// Source is a collection of items the layout engine can read. It is resolved
// once per layout pass, so implementations may convert on every At call.
type Source interface {
	Len() int
	At(i int) Item
}

// GroupSource is a collection of groups in lane order.
type GroupSource interface {
	Len() int
	At(i int) Group
}

// List is a Source over plain Item values.
type List []Item

// Len implements Source.
func (l List) Len() int { return len(l) }

// At implements Source.
func (l List) At(i int) Item { return l[i] }

// Groups is a GroupSource over plain Group values.
type Groups []Group

// Len implements GroupSource.
func (g Groups) Len() int { return len(g) }

// At implements GroupSource.
func (g Groups) At(i int) Group { return g[i] }

// Keys names the fields read from keyed records.
type Keys struct {
	GroupID     string
	GroupTitle  string
	ItemID      string
	ItemGroup   string
	ItemTitle   string
	ItemStart   string
	ItemEnd     string
	ItemOverlay string
}

// DefaultKeys returns the field names used when none are configured.
func DefaultKeys() Keys {
	return Keys{
		GroupID:     "id",
		GroupTitle:  "title",
		ItemID:      "id",
		ItemGroup:   "group",
		ItemTitle:   "title",
		ItemStart:   "start_time",
		ItemEnd:     "end_time",
		ItemOverlay: "overlay",
	}
}

// Records is a Source over keyed containers such as decoded JSON objects.
type Records struct {
	Rows []map[string]any
	Keys Keys
}

// Len implements Source.
func (r Records) Len() int { return len(r.Rows) }

// At implements Source. Fields that are missing or cannot be converted are
// left at their zero value.
func (r Records) At(i int) Item {
	row := r.Rows[i]
	return Item{
		ID:      stringField(row, r.Keys.ItemID),
		GroupID: stringField(row, r.Keys.ItemGroup),
		Title:   stringField(row, r.Keys.ItemTitle),
		Start:   timeField(row, r.Keys.ItemStart),
		End:     timeField(row, r.Keys.ItemEnd),
		Overlay: boolField(row, r.Keys.ItemOverlay),
	}
}

// GroupRecords is a GroupSource over keyed containers.
type GroupRecords struct {
	Rows []map[string]any
	Keys Keys
}

// Len implements GroupSource.
func (r GroupRecords) Len() int { return len(r.Rows) }

// At implements GroupSource.
func (r GroupRecords) At(i int) Group {
	row := r.Rows[i]
	return Group{
		ID:    stringField(row, r.Keys.GroupID),
		Title: stringField(row, r.Keys.GroupTitle),
	}
}

// Collect materializes a Source into a slice.
func Collect(src Source) []Item {
	if src == nil {
		return nil
	}
	out := make([]Item, src.Len())
	for i := range out {
		out[i] = src.At(i)
	}
	return out
}

// CollectGroups materializes a GroupSource into a slice.
func CollectGroups(src GroupSource) []Group {
	if src == nil {
		return nil
	}
	out := make([]Group, src.Len())
	for i := range out {
		out[i] = src.At(i)
	}
	return out
}

func stringField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// timeField accepts time.Time, unix milliseconds (int, int64, float64) and
// RFC 3339 strings.
func timeField(row map[string]any, key string) time.Time {
	switch v := row[key].(type) {
	case time.Time:
		return v
	case int:
		return time.UnixMilli(int64(v))
	case int64:
		return time.UnixMilli(v)
	case float64:
		return time.UnixMilli(int64(v))
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

func boolField(row map[string]any, key string) bool {
	v, _ := row[key].(bool)
	return v
}
