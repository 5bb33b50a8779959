// Package pipeline sequences the deck generation stages for one run.
//
// report.go holds the run report handed back to the caller and its console
// rendering.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// FailedPage records one page that rendered as a hole.
type FailedPage struct {
	Index int
	Cause error
}

// RunReport summarizes one deck generation run.
type RunReport struct {
	RunID     string
	Idea      string
	PageCount int          // Pages in the flattened outline
	Described int          // Pages that got a description
	Rendered  int          // Pages that produced an artifact
	Failed    []FailedPage // Pages recorded as holes
	DeckPath  string       // Final deck path; empty if packaging never ran
	Duration  time.Duration
}

// Complete reports whether every page made it into the deck.
func (r *RunReport) Complete() bool {
	return r.DeckPath != "" && len(r.Failed) == 0 && r.Rendered == r.PageCount
}

// Summary returns a one-line human-readable summary.
func (r *RunReport) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("run %s: %d/%d pages rendered", r.RunID, r.Rendered, r.PageCount))
	if len(r.Failed) > 0 {
		indices := make([]string, len(r.Failed))
		for i, f := range r.Failed {
			indices[i] = fmt.Sprintf("%d", f.Index)
		}
		sb.WriteString(fmt.Sprintf(" (holes: %s)", strings.Join(indices, ", ")))
	}
	if r.DeckPath != "" {
		sb.WriteString(" -> " + r.DeckPath)
	}
	return sb.String()
}

// Print renders the report to w with colored status lines.
func (r *RunReport) Print(w io.Writer) {
	fmt.Fprintln(w)
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(w, "━━━ Run %s ━━━\n", r.RunID)

	fmt.Fprintf(w, "  Idea:     %s\n", r.Idea)
	fmt.Fprintf(w, "  Pages:    %d outlined, %d described, %d rendered\n", r.PageCount, r.Described, r.Rendered)

	if len(r.Failed) > 0 {
		warn := color.New(color.FgYellow)
		warn.Fprintf(w, "  Holes:    %d page(s) failed to render\n", len(r.Failed))
		for _, f := range r.Failed {
			warn.Fprintf(w, "    - page %d: %v\n", f.Index, f.Cause)
		}
	}

	if r.DeckPath != "" {
		ok := color.New(color.FgGreen, color.Bold)
		ok.Fprintf(w, "  Deck:     %s\n", r.DeckPath)
	} else {
		fail := color.New(color.FgRed, color.Bold)
		fail.Fprintln(w, "  Deck:     not produced")
	}

	fmt.Fprintf(w, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintln(w)
}
