// Package render provides page image rendering.
//
// atoms.go contains pure helpers for artifact naming and sizing.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Artifact file names are zero-padded so lexical order equals page order for
// decks up to 999 pages. The assembler still parses the index back out and
// sorts numerically, so longer decks only lose the cosmetic property.
const (
	pageFilePrefix = "page_"
	pageFileExt    = ".png"
)

// PageFileName returns the artifact file name for a page index, e.g.
// PageFileName(7) == "page_007.png".
func PageFileName(index int) string {
	return fmt.Sprintf("%s%03d%s", pageFilePrefix, index, pageFileExt)
}

// ParsePageIndex extracts the page index from an artifact file name.
// Returns false for names that are not page artifacts.
func ParsePageIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, pageFilePrefix) || !strings.HasSuffix(name, pageFileExt) {
		return 0, false
	}
	digits := name[len(pageFilePrefix) : len(name)-len(pageFileExt)]
	if digits == "" {
		return 0, false
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}

// SizeForAspect maps a deck aspect ratio to the generation size string the
// image API accepts. Unknown ratios fall back to square.
func SizeForAspect(aspectRatio string) string {
	switch aspectRatio {
	case "16:9":
		return "1536x1024"
	case "9:16":
		return "1024x1536"
	default:
		return "1024x1024"
	}
}
