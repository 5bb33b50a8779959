// Package ideasource resolves the user's deck idea from its various input
// forms: inline text, a plain-text file, or a PDF brief.
package ideasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyIdea is returned when the resolved idea contains no text.
var ErrEmptyIdea = errors.New("ideasource: idea text is empty")

// ErrNoPDFContent is returned when a PDF brief contains no extractable text.
var ErrNoPDFContent = errors.New("ideasource: no text content found in PDF")

// MaxPDFPages bounds how much of a brief is read. Long appendices past this
// point add prompt cost without adding outline signal.
const MaxPDFPages = 20

// ReadIdea resolves the idea argument into the idea text.
//
// Dispatch is by form:
//   - a path ending in .pdf: text is extracted from the PDF
//   - a path ending in .txt or .md that names an existing file: file contents
//   - anything else: the argument itself is the idea
//
// A .txt/.md suffix on a non-existent path is treated as inline text rather
// than an error, so ideas that merely end in a file-like word still work.
func ReadIdea(arg string) (string, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return "", ErrEmptyIdea
	}

	switch strings.ToLower(filepath.Ext(trimmed)) {
	case ".pdf":
		return readPDF(trimmed)
	case ".txt", ".md":
		if _, err := os.Stat(trimmed); err == nil {
			return readTextFile(trimmed)
		}
	}

	return trimmed, nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("ideasource: reading idea file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyIdea, path)
	}
	return text, nil
}

// readPDF extracts the brief's text page by page. Pages that fail to parse
// are skipped; only a fully empty result is an error.
func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("ideasource: opening PDF brief: %w", err)
	}
	defer f.Close()

	pages := reader.NumPage()
	if pages > MaxPDFPages {
		pages = MaxPDFPages
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= pages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(text)
	}

	if builder.Len() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoPDFContent, path)
	}
	return builder.String(), nil
}
