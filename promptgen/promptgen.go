// Package promptgen builds the final per-page image instructions from the
// outline and the generated descriptions.
//
// The builder is pure: no I/O, no generator calls. It exists as its own
// stage so the expensive render fan-out starts from a fully validated,
// index-aligned instruction set.
package promptgen

import (
	"fmt"

	"deckgen/describe"
	"deckgen/outline"
	"deckgen/prompts"
	"deckgen/render"
)

// Build produces one render instruction per page.
//
// Each instruction embeds the page's description, the compact outline text
// for whole-deck context, and the page's section label for style continuity
// across a part's pages.
//
// Precondition: descs must be index-aligned with pages (same length, same
// order). The description stage guarantees this for its own output; Build
// re-checks because a mismatch here would render the wrong text onto the
// wrong page.
func Build(o outline.Outline, pages []outline.FlatPage, descs []describe.PageDescription, templates prompts.Set) ([]render.Instruction, error) {
	if len(pages) != len(descs) {
		return nil, fmt.Errorf("promptgen: %d pages but %d descriptions", len(pages), len(descs))
	}

	outlineText := o.Text()
	instructions := make([]render.Instruction, len(pages))

	for i, page := range pages {
		desc := descs[i]
		if desc.Index != page.Index {
			return nil, fmt.Errorf("promptgen: description at slot %d has index %d, page has %d", i, desc.Index, page.Index)
		}

		text := prompts.Expand(templates.Render, map[string]string{
			"description":  desc.Text,
			"outline_text": outlineText,
			"section":      page.Section(),
		})

		instructions[i] = render.Instruction{Index: page.Index, Text: text}
	}

	return instructions, nil
}
