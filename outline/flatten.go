package outline

// FlatPage is one page of the deck after flattening, stamped with its
// 1-based position and, when it came from inside a part, the part's name.
type FlatPage struct {
	Index  int      // Dense 1..N sequence in traversal order
	Title  string   // Page title
	Points []string // Page bullet points
	Part   string   // Owning part name; empty for standalone pages
}

// HasPart reports whether the page came from inside a named section.
func (p FlatPage) HasPart() bool {
	return p.Part != ""
}

// Section returns the label used for style continuity in render prompts:
// the owning part name when there is one, the page's own title otherwise.
func (p FlatPage) Section() string {
	if p.Part != "" {
		return p.Part
	}
	return p.Title
}

// Flatten normalizes an outline into a single ordered page list. Parts are
// expanded in place, each of their pages stamped with the part name; indices
// are assigned 1..N in emission order. Deterministic, no failure modes:
// outlines reaching this point are already shape-validated.
func Flatten(o Outline) []FlatPage {
	pages := make([]FlatPage, 0, o.PageCount())
	for _, entry := range o {
		switch {
		case entry.Part != nil:
			for _, page := range entry.Part.Pages {
				pages = append(pages, FlatPage{
					Index:  len(pages) + 1,
					Title:  page.Title,
					Points: page.Points,
					Part:   entry.Part.Name,
				})
			}
		case entry.Page != nil:
			pages = append(pages, FlatPage{
				Index:  len(pages) + 1,
				Title:  entry.Page.Title,
				Points: entry.Page.Points,
			})
		}
	}
	return pages
}
