// Package outline provides outline generation and flattening.
//
// generator.go implements the Generator that issues the single outline
// request to the content generator and parses the reply into an Outline.
package outline

import (
	"context"
	"encoding/json"
	"fmt"

	"deckgen/core"
	"deckgen/logging"
	"deckgen/prompts"

	"go.uber.org/zap"
)

// Generator turns a free-text idea into a structured Outline.
//
// It issues exactly one text-generation request per call. There is no retry
// at this layer; a malformed reply surfaces as a core.OutlineParseError and
// the decision to retry belongs to the caller.
type Generator struct {
	gen       core.TextGenerator
	templates prompts.Set
	logger    *logging.Logger
}

// NewGenerator creates an outline generator.
func NewGenerator(gen core.TextGenerator, templates prompts.Set, logger *logging.Logger) (*Generator, error) {
	if gen == nil {
		return nil, fmt.Errorf("outline: text generator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("outline: logger cannot be nil")
	}
	return &Generator{
		gen:       gen,
		templates: templates,
		logger:    logger.Named("outline"),
	}, nil
}

// Generate requests an outline for the idea and parses the reply.
//
// The prompt offers the generator two JSON shapes (flat pages, or parts with
// pages) and lets it pick whichever fits. The reply may arrive wrapped in
// code fences; those are stripped before parsing. Replies that are not valid
// JSON, or whose entries match neither shape, fail with core.OutlineParseError.
func (g *Generator) Generate(ctx context.Context, idea string) (Outline, error) {
	prompt := prompts.Expand(g.templates.Outline, map[string]string{
		"idea": idea,
	})

	g.logger.Debug("requesting outline",
		zap.String("idea_preview", core.TruncateText(idea, 80)))

	reply, err := g.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("outline: generation request failed: %w", err)
	}

	outline, err := Parse(reply)
	if err != nil {
		g.logger.Error("outline reply unusable", zap.Error(err))
		return nil, err
	}

	g.logger.Info("outline generated",
		zap.Int("entries", len(outline)),
		zap.Int("pages", outline.PageCount()))

	return outline, nil
}

// Parse strips code fences from a generator reply and decodes it into an
// Outline. Exposed separately from Generate so replies captured elsewhere
// (or fixtures) can be parsed directly.
func Parse(reply string) (Outline, error) {
	stripped := StripCodeFence(reply)

	var outline Outline
	if err := json.Unmarshal([]byte(stripped), &outline); err != nil {
		return nil, core.NewOutlineParseError(stripped, err)
	}
	if len(outline) == 0 {
		return nil, core.NewOutlineParseError(stripped, fmt.Errorf("outline is empty"))
	}
	return outline, nil
}
