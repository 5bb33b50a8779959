// Package outline turns a free-text idea into a structured, ordered deck
// outline and flattens it into the page list the rest of the pipeline works
// from.
//
// The generator may reply in either of two JSON shapes: a flat list of pages,
// or a list of named parts each containing pages. Both parse into the same
// tagged Entry variant so downstream traversal is exhaustive.
package outline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Page is a single deck page: a title plus its bullet points.
type Page struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// Part is a named section grouping pages. A part's pages are never further
// nested.
type Part struct {
	Name  string `json:"part"`
	Pages []Page `json:"pages"`
}

// Entry is a tagged variant: exactly one of Page or Part is set.
type Entry struct {
	Page *Page
	Part *Part
}

// IsPart reports whether the entry is a named section.
func (e Entry) IsPart() bool {
	return e.Part != nil
}

// Label returns the entry's display name: the part name for sections, the
// page title otherwise.
func (e Entry) Label() string {
	if e.Part != nil {
		return e.Part.Name
	}
	if e.Page != nil {
		return e.Page.Title
	}
	return ""
}

// UnmarshalJSON decodes a top-level outline entry, enforcing that it is
// exclusively a page or a part.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title  *string  `json:"title"`
		Points []string `json:"points"`
		Part   *string  `json:"part"`
		Pages  []Page   `json:"pages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.Part != nil && raw.Title != nil:
		return fmt.Errorf("outline entry has both %q and %q", "part", "title")
	case raw.Part != nil:
		e.Part = &Part{Name: *raw.Part, Pages: raw.Pages}
	case raw.Title != nil:
		e.Page = &Page{Title: *raw.Title, Points: raw.Points}
	default:
		return fmt.Errorf("outline entry has neither %q nor %q", "title", "part")
	}
	return nil
}

// MarshalJSON encodes the entry back into the shape it was parsed from.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Part != nil {
		return json.Marshal(e.Part)
	}
	if e.Page != nil {
		return json.Marshal(e.Page)
	}
	return nil, fmt.Errorf("outline entry is empty")
}

// Outline is the ordered sequence of top-level entries. Order is significant
// and preserved end-to-end.
type Outline []Entry

// PageCount returns the total number of pages across all entries.
func (o Outline) PageCount() int {
	count := 0
	for _, entry := range o {
		if entry.Part != nil {
			count += len(entry.Part.Pages)
		} else if entry.Page != nil {
			count++
		}
	}
	return count
}

// Text renders the outline one line per top-level entry, numbered from 1.
// Parts render as their name, standalone pages as their title. This compact
// form is embedded in downstream prompts for cross-page context.
func (o Outline) Text() string {
	lines := make([]string, 0, len(o))
	for i, entry := range o {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, entry.Label()))
	}
	return strings.Join(lines, "\n")
}

// JSON returns the outline serialized back to JSON, used to give the
// description stage the full outline as context.
func (o Outline) JSON() string {
	data, err := json.Marshal(o)
	if err != nil {
		// Entries are validated at parse time; a marshal failure here would
		// mean an empty Entry was constructed by hand.
		return "[]"
	}
	return string(data)
}
