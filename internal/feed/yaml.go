package feed

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/timelane/internal/item"
)

// Document is the YAML import format.
//
//	groups:
//	  - id: ops
//	    title: Operations
//	items:
//	  - id: deploy
//	    group: ops
//	    title: Deploy
//	    start: 2025-03-03 09:00
//	    end: 2025-03-03 10:30
type Document struct {
	Groups []GroupDoc `yaml:"groups"`
	Items  []ItemDoc  `yaml:"items"`
}

// GroupDoc is one lane in a Document.
type GroupDoc struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// ItemDoc is one item in a Document. Times stay strings so that date-only
// and local values are read in the caller's location.
type ItemDoc struct {
	ID      string `yaml:"id"`
	Group   string `yaml:"group"`
	Title   string `yaml:"title"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Overlay bool   `yaml:"overlay"`
}

var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// LoadFile reads a YAML document from disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode reads a YAML document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &doc, nil
}

// LaneGroups returns the document's groups in file order.
func (d *Document) LaneGroups() []item.Group {
	groups := make([]item.Group, 0, len(d.Groups))
	for _, g := range d.Groups {
		groups = append(groups, item.Group{ID: strings.TrimSpace(g.ID), Title: g.Title})
	}
	return groups
}

// ToItems converts the document's items, reading zone-less times in loc.
// Every item must reference a group declared in the document.
func (d *Document) ToItems(loc *time.Location) ([]item.Item, error) {
	if loc == nil {
		loc = time.Local
	}
	known := make(map[string]bool, len(d.Groups))
	for _, g := range d.Groups {
		known[strings.TrimSpace(g.ID)] = true
	}

	items := make([]item.Item, 0, len(d.Items))
	for i, doc := range d.Items {
		start, err := ParseTime(doc.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): start: %w", i, doc.ID, err)
		}
		end, err := ParseTime(doc.End, loc)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): end: %w", i, doc.ID, err)
		}
		it := item.Item{
			ID:      strings.TrimSpace(doc.ID),
			GroupID: strings.TrimSpace(doc.Group),
			Title:   doc.Title,
			Start:   start,
			End:     end,
			Overlay: doc.Overlay,
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, doc.ID, err)
		}
		if !known[it.GroupID] {
			return nil, fmt.Errorf("item %s: %w: %s", it.ID, ErrUnknownGroup, it.GroupID)
		}
		items = append(items, it)
	}
	return items, nil
}

// ParseTime accepts RFC3339 or one of the local layouts, read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, item.ErrMissingTime
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimeFormat
}
