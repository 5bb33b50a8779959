// Package prompts holds the prompt templates sent to the content generator.
//
// The pipeline treats prompt wording as an opaque payload: templates can be
// overridden from a YAML file without touching pipeline code. Placeholders
// use {{name}} syntax and are expanded by each stage with a string replacer.
package prompts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Set holds one template per generator-facing stage.
type Set struct {
	// Outline turns the user's idea into a structured outline.
	// Placeholders: {{idea}}
	Outline string `yaml:"outline"`

	// Description turns one flattened page into its textual description.
	// Placeholders: {{idea}}, {{outline}}, {{part_info}}, {{index}}, {{page}}
	Description string `yaml:"description"`

	// Render turns a page description into the final image instruction.
	// Placeholders: {{description}}, {{outline_text}}, {{section}}
	Render string `yaml:"render"`
}

// Default returns the built-in templates.
func Default() Set {
	return Set{
		Outline: `You are a helpful assistant that generates an outline for a slide deck.

You can organize the content in two ways:

1. Simple format (for short decks without major sections):
[{"title": "title1", "points": ["point1", "point2"]}, {"title": "title2", "points": ["point1", "point2"]}]

2. Part-based format (for longer decks with major sections):
[
  {
    "part": "Part 1: Introduction",
    "pages": [
      {"title": "Welcome", "points": ["point1", "point2"]},
      {"title": "Overview", "points": ["point1", "point2"]}
    ]
  },
  {
    "part": "Part 2: Main Content",
    "pages": [
      {"title": "Topic 1", "points": ["point1", "point2"]},
      {"title": "Topic 2", "points": ["point1", "point2"]}
    ]
  }
]

Choose the format that best fits the content. Use parts when the deck has clear major sections.

The user's request: {{idea}}. Now generate the outline, don't include any other text.`,

		Description: `We are generating the text description for each page of a slide deck.
The original user request is:
{{idea}}

We already have the entire outline:
{{outline}}
{{part_info}}
Now please generate the description for page {{index}}:
{{page}}

The description includes the page title and the text to render (keep it concise),
formatted as a short title line followed by bullet points.`,

		Render: `Using professional graphic design knowledge, generate one slide page matching
the color palette and style of the reference image, as one page of a larger deck.
The page content is:
{{description}}

The outline of the whole deck is:
{{outline_text}}

Current section: {{section}}

Text must be crisp and legible. 16:9 aspect ratio. Keep style and palette strictly
consistent with the reference.`,
	}
}

// Load reads a YAML template file and overlays it on the defaults: any
// template left empty in the file keeps its default. A missing path returns
// the defaults unchanged.
func Load(path string) (Set, error) {
	set := Default()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("prompts: failed to read template file %s: %w", path, err)
	}

	var overlay Set
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Set{}, fmt.Errorf("prompts: failed to parse template file %s: %w", path, err)
	}

	if overlay.Outline != "" {
		set.Outline = overlay.Outline
	}
	if overlay.Description != "" {
		set.Description = overlay.Description
	}
	if overlay.Render != "" {
		set.Render = overlay.Render
	}
	return set, nil
}

// Expand substitutes {{name}} placeholders in a template.
// Unknown placeholders are left in place so template mistakes are visible in
// the generated prompt rather than silently dropped.
func Expand(template string, replacements map[string]string) string {
	pairs := make([]string, 0, len(replacements)*2)
	for name, value := range replacements {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
