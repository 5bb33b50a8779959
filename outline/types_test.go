package outline

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOutlineUnmarshalFlatShape(t *testing.T) {
	input := `[
		{"title": "Intro", "points": ["who", "why"]},
		{"title": "Closing", "points": ["recap"]}
	]`

	var o Outline
	if err := json.Unmarshal([]byte(input), &o); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(o) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(o))
	}
	for i, entry := range o {
		if entry.IsPart() {
			t.Errorf("entry %d: expected page, got part", i)
		}
	}
	if o[0].Page.Title != "Intro" {
		t.Errorf("expected title 'Intro', got %q", o[0].Page.Title)
	}
	if len(o[0].Page.Points) != 2 {
		t.Errorf("expected 2 points, got %d", len(o[0].Page.Points))
	}
	if o.PageCount() != 2 {
		t.Errorf("expected PageCount 2, got %d", o.PageCount())
	}
}

func TestOutlineUnmarshalPartsShape(t *testing.T) {
	input := `[
		{"title": "Cover", "points": []},
		{"part": "Fundamentals", "pages": [
			{"title": "Basics", "points": ["a"]},
			{"title": "Terms", "points": ["b", "c"]}
		]},
		{"title": "Summary", "points": ["done"]}
	]`

	var o Outline
	if err := json.Unmarshal([]byte(input), &o); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(o) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(o))
	}
	if o[0].IsPart() || o[2].IsPart() {
		t.Error("cover and summary should be pages")
	}
	if !o[1].IsPart() {
		t.Fatal("middle entry should be a part")
	}
	if o[1].Part.Name != "Fundamentals" {
		t.Errorf("expected part name 'Fundamentals', got %q", o[1].Part.Name)
	}
	if len(o[1].Part.Pages) != 2 {
		t.Errorf("expected 2 pages in part, got %d", len(o[1].Part.Pages))
	}
	if o.PageCount() != 4 {
		t.Errorf("expected PageCount 4, got %d", o.PageCount())
	}
}

func TestEntryUnmarshalRejectsAmbiguousShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "both title and part",
			input: `{"title": "X", "part": "Y"}`,
		},
		{
			name:  "neither title nor part",
			input: `{"points": ["orphan"]}`,
		},
		{
			name:  "empty object",
			input: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Entry
			if err := json.Unmarshal([]byte(tt.input), &e); err == nil {
				t.Errorf("expected error for %s", tt.input)
			}
		})
	}
}

func TestEntryLabel(t *testing.T) {
	page := Entry{Page: &Page{Title: "Intro"}}
	if page.Label() != "Intro" {
		t.Errorf("expected 'Intro', got %q", page.Label())
	}

	part := Entry{Part: &Part{Name: "Fundamentals"}}
	if part.Label() != "Fundamentals" {
		t.Errorf("expected 'Fundamentals', got %q", part.Label())
	}
}

func TestOutlineText(t *testing.T) {
	o := Outline{
		{Page: &Page{Title: "Cover"}},
		{Part: &Part{Name: "Deep Dive", Pages: []Page{{Title: "Inner"}}}},
		{Page: &Page{Title: "Summary"}},
	}

	got := o.Text()
	want := "1. Cover\n2. Deep Dive\n3. Summary"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestOutlineJSONRoundTrip(t *testing.T) {
	input := `[{"title":"A","points":["x"]},{"part":"B","pages":[{"title":"C","points":null}]}]`

	var o Outline
	if err := json.Unmarshal([]byte(input), &o); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	out := o.JSON()
	var again Outline
	if err := json.Unmarshal([]byte(out), &again); err != nil {
		t.Fatalf("re-Unmarshal of JSON() output failed: %v (output: %s)", err, out)
	}
	if len(again) != len(o) {
		t.Errorf("round trip changed entry count: %d -> %d", len(o), len(again))
	}
	if !strings.Contains(out, `"part":"B"`) {
		t.Errorf("JSON() output missing part entry: %s", out)
	}
}
