// Package describe fans page-description generation out over a bounded
// worker pool.
//
// Each flattened page gets one text-generation call producing the page's
// textual content (title plus bullets, concise). One failed page aborts the
// whole pass: a deck with a silently missing description is worse than a
// retried run, so the policy here is strict, unlike the render stage's.
package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"deckgen/core"
	"deckgen/logging"
	"deckgen/outline"
	"deckgen/prompts"

	"go.uber.org/zap"
)

// DefaultWorkers is the description pool size. Description calls are cheap
// relative to image generation, but the text endpoint is still rate-limited.
const DefaultWorkers = 5

// PageDescription is one page's generated textual content, tagged with the
// page's 1-based index so downstream stages can verify alignment.
type PageDescription struct {
	Index int
	Text  string
}

// Stage generates descriptions for all pages of a flattened outline.
type Stage struct {
	gen       core.TextGenerator
	templates prompts.Set
	workers   int
	logger    *logging.Logger
}

// NewStage creates a description stage.
//
// Parameters:
//   - gen: the text generator shared with the outline stage
//   - templates: prompt templates (Description is the one used here)
//   - workers: pool size; values < 1 fall back to DefaultWorkers
//   - logger: parent logger; the stage logs under the "describe" name
func NewStage(gen core.TextGenerator, templates prompts.Set, workers int, logger *logging.Logger) (*Stage, error) {
	if gen == nil {
		return nil, fmt.Errorf("describe: text generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("describe: logger cannot be nil")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Stage{
		gen:       gen,
		templates: templates,
		workers:   workers,
		logger:    logger.Named("describe"),
	}, nil
}

// Run generates a description for every page, at most `workers` requests in
// flight at a time.
//
// Results come back index-aligned with pages regardless of completion order:
// each worker writes into its own slot. The first failure cancels the
// remaining work and Run returns a core.DescriptionError for that page; a
// partial description set is never returned.
func (s *Stage) Run(ctx context.Context, idea string, o outline.Outline, pages []outline.FlatPage) ([]PageDescription, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("describe: no pages to describe")
	}

	s.logger.Info("describing pages",
		zap.Int("pages", len(pages)),
		zap.Int("workers", s.workers))

	outlineJSON := o.JSON()
	results := make([]PageDescription, len(pages))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for i, page := range pages {
		slot := i
		page := page
		group.Go(func() error {
			text, err := s.describePage(groupCtx, idea, outlineJSON, page)
			if err != nil {
				return &core.DescriptionError{Index: page.Index, Title: page.Title, Cause: err}
			}
			results[slot] = PageDescription{Index: page.Index, Text: text}
			s.logger.Info("page described",
				zap.Int("index", page.Index),
				zap.String("progress", fmt.Sprintf("%d/%d", page.Index, len(pages))),
				zap.String("title", page.Title))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// describePage issues the single description request for one page.
func (s *Stage) describePage(ctx context.Context, idea, outlineJSON string, page outline.FlatPage) (string, error) {
	pageJSON, err := json.Marshal(outline.Page{Title: page.Title, Points: page.Points})
	if err != nil {
		return "", fmt.Errorf("encoding page: %w", err)
	}

	partInfo := ""
	if page.HasPart() {
		partInfo = fmt.Sprintf("This page belongs to the section %q; keep its content within that section's scope.\n", page.Part)
	}

	prompt := prompts.Expand(s.templates.Description, map[string]string{
		"idea":      idea,
		"outline":   outlineJSON,
		"part_info": partInfo,
		"index":     strconv.Itoa(page.Index),
		"page":      string(pageJSON),
	})

	reply, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return outline.Dedent(reply), nil
}
