// Package outline provides outline generation and flattening.
//
// atoms.go contains pure text utilities with no dependencies.
package outline

import (
	"strings"
)

// StripCodeFence removes leading/trailing Markdown code-fence markers from a
// generator reply. Generators frequently wrap JSON payloads in ```json ...
// ``` fences even when asked not to; parsing must tolerate that.
//
// Only fences at the very start and end of the (trimmed) text are removed;
// fences inside the payload are left alone.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "```") {
		// Drop the opening fence line, including any language tag.
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
	}

	trimmed = strings.TrimSpace(trimmed)
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}

	return trimmed
}

// Dedent removes the longest common leading whitespace from all non-blank
// lines of text. Generator replies sometimes arrive uniformly indented;
// descriptions should not carry that indentation into render prompts.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	margin := ""
	marginSet := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !marginSet {
			margin = indent
			marginSet = true
			continue
		}
		for !strings.HasPrefix(indent, margin) {
			margin = margin[:len(margin)-1]
		}
		if margin == "" {
			return text
		}
	}

	if margin == "" {
		return text
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}
