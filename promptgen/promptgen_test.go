package promptgen

import (
	"strings"
	"testing"

	"deckgen/describe"
	"deckgen/outline"
	"deckgen/prompts"
)

func testOutline() outline.Outline {
	return outline.Outline{
		{Page: &outline.Page{Title: "Cover"}},
		{Part: &outline.Part{Name: "Main", Pages: []outline.Page{
			{Title: "Inner"},
		}}},
	}
}

func TestBuildEmbedsPageContext(t *testing.T) {
	o := testOutline()
	pages := outline.Flatten(o)
	descs := []describe.PageDescription{
		{Index: 1, Text: "cover description"},
		{Index: 2, Text: "inner description"},
	}

	instructions, err := Build(o, pages, descs, prompts.Default())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(instructions))
	}

	for i, inst := range instructions {
		if inst.Index != i+1 {
			t.Errorf("instruction %d: expected index %d, got %d", i, i+1, inst.Index)
		}
		if !strings.Contains(inst.Text, "1. Cover") || !strings.Contains(inst.Text, "2. Main") {
			t.Errorf("instruction %d missing outline context:\n%s", i, inst.Text)
		}
	}

	if !strings.Contains(instructions[0].Text, "cover description") {
		t.Error("page 1 instruction missing its description")
	}
	if strings.Contains(instructions[0].Text, "inner description") {
		t.Error("page 1 instruction holds page 2's description")
	}

	// Standalone page labels itself; page inside a part carries the part name.
	if !strings.Contains(instructions[0].Text, "Current section: Cover") {
		t.Errorf("page 1 section label wrong:\n%s", instructions[0].Text)
	}
	if !strings.Contains(instructions[1].Text, "Current section: Main") {
		t.Errorf("page 2 section label wrong:\n%s", instructions[1].Text)
	}
}

func TestBuildRejectsMisalignedInputs(t *testing.T) {
	o := testOutline()
	pages := outline.Flatten(o)

	tests := []struct {
		name  string
		descs []describe.PageDescription
	}{
		{
			name:  "length mismatch",
			descs: []describe.PageDescription{{Index: 1, Text: "only one"}},
		},
		{
			name: "index mismatch",
			descs: []describe.PageDescription{
				{Index: 1, Text: "a"},
				{Index: 3, Text: "b"},
			},
		},
		{
			name: "swapped order",
			descs: []describe.PageDescription{
				{Index: 2, Text: "b"},
				{Index: 1, Text: "a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(o, pages, tt.descs, prompts.Default()); err == nil {
				t.Error("expected alignment error")
			}
		})
	}
}

func TestBuildEmptyDeck(t *testing.T) {
	instructions, err := Build(outline.Outline{}, nil, nil, prompts.Default())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(instructions) != 0 {
		t.Errorf("expected no instructions, got %d", len(instructions))
	}
}
