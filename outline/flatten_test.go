package outline

import "testing"

func TestFlattenFlatOutline(t *testing.T) {
	o := Outline{
		{Page: &Page{Title: "One", Points: []string{"a"}}},
		{Page: &Page{Title: "Two", Points: []string{"b", "c"}}},
		{Page: &Page{Title: "Three"}},
	}

	pages := Flatten(o)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	for i, p := range pages {
		if p.Index != i+1 {
			t.Errorf("page %d: expected index %d, got %d", i, i+1, p.Index)
		}
		if p.HasPart() {
			t.Errorf("page %d: expected no part, got %q", i, p.Part)
		}
	}
	if pages[1].Title != "Two" || len(pages[1].Points) != 2 {
		t.Errorf("page 2 content not preserved: %+v", pages[1])
	}
}

func TestFlattenExpandsParts(t *testing.T) {
	o := Outline{
		{Page: &Page{Title: "Cover"}},
		{Part: &Part{Name: "Middle", Pages: []Page{
			{Title: "M1"},
			{Title: "M2"},
		}}},
		{Page: &Page{Title: "End"}},
	}

	pages := Flatten(o)
	if len(pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(pages))
	}

	wantTitles := []string{"Cover", "M1", "M2", "End"}
	wantParts := []string{"", "Middle", "Middle", ""}
	for i, p := range pages {
		if p.Index != i+1 {
			t.Errorf("page %d: expected dense index %d, got %d", i, i+1, p.Index)
		}
		if p.Title != wantTitles[i] {
			t.Errorf("page %d: expected title %q, got %q", i, wantTitles[i], p.Title)
		}
		if p.Part != wantParts[i] {
			t.Errorf("page %d: expected part %q, got %q", i, wantParts[i], p.Part)
		}
	}
}

func TestFlattenEmptyOutline(t *testing.T) {
	pages := Flatten(Outline{})
	if len(pages) != 0 {
		t.Errorf("expected no pages, got %d", len(pages))
	}
}

func TestFlatPageSection(t *testing.T) {
	tests := []struct {
		name string
		page FlatPage
		want string
	}{
		{
			name: "page inside a part uses the part name",
			page: FlatPage{Title: "Detail", Part: "Chapter 2"},
			want: "Chapter 2",
		},
		{
			name: "standalone page uses its own title",
			page: FlatPage{Title: "Cover"},
			want: "Cover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Section(); got != tt.want {
				t.Errorf("Section() = %q, want %q", got, tt.want)
			}
		})
	}
}
