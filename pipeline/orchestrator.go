// Package pipeline sequences the deck generation stages for one run.
//
// orchestrator.go wires outline -> flatten -> describe -> prompt build ->
// render -> assemble, owns the run's identity and output directory, and
// records the run in history when a database is configured.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deckgen/assemble"
	"deckgen/core"
	"deckgen/db"
	"deckgen/describe"
	"deckgen/logging"
	"deckgen/outline"
	"deckgen/promptgen"
	"deckgen/prompts"
	"deckgen/render"

	"go.uber.org/zap"
)

// DeckFileName is the packaged deck's file name inside the run directory.
const DeckFileName = "deck.pptx"

// Orchestrator runs the full idea-to-deck pipeline.
//
// Stage policies differ and the orchestrator preserves them: an outline or
// description failure aborts the run; render failures become holes and the
// run proceeds to packaging with whatever pages survived.
type Orchestrator struct {
	cfg       *core.Config
	outliner  *outline.Generator
	describer *describe.Stage
	renderer  *render.Stage
	assembler *assemble.Assembler
	templates prompts.Set
	runs      *db.RunRepository
	logger    *logging.Logger
}

// NewOrchestrator creates an orchestrator from already-constructed stages.
// runs may be nil; the pipeline then keeps no history.
func NewOrchestrator(
	cfg *core.Config,
	outliner *outline.Generator,
	describer *describe.Stage,
	renderer *render.Stage,
	assembler *assemble.Assembler,
	templates prompts.Set,
	runs *db.RunRepository,
	logger *logging.Logger,
) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: config cannot be nil")
	}
	if outliner == nil || describer == nil || renderer == nil || assembler == nil {
		return nil, fmt.Errorf("pipeline: all stages are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("pipeline: logger cannot be nil")
	}
	return &Orchestrator{
		cfg:       cfg,
		outliner:  outliner,
		describer: describer,
		renderer:  renderer,
		assembler: assembler,
		templates: templates,
		runs:      runs,
		logger:    logger.Named("pipeline"),
	}, nil
}

// Run generates one deck from the idea and returns its report.
//
// The report is returned even on failure, with however far the run got; the
// error says why it stopped. A run with holes but a packaged deck returns a
// nil error.
func (o *Orchestrator) Run(ctx context.Context, idea string) (*RunReport, error) {
	startTime := time.Now()

	runID := core.NewRunID()
	runDir := filepath.Join(o.cfg.OutputRoot, runID)
	report := &RunReport{RunID: runID, Idea: idea}

	logger := o.logger.With(zap.String("run_id", runID))
	logger.Info("run starting",
		zap.String("idea_preview", core.TruncateText(idea, 80)),
		zap.String("run_dir", runDir))

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		report.Duration = time.Since(startTime)
		return report, fmt.Errorf("pipeline: creating run directory: %w", err)
	}

	o.recordStart(ctx, logger, runID, idea)

	fail := func(err error) (*RunReport, error) {
		report.Duration = time.Since(startTime)
		o.recordFinish(ctx, logger, report, db.StatusFailed, err)
		return report, err
	}

	// Outline: one generation call, fatal on a bad reply.
	deckOutline, err := o.outliner.Generate(ctx, idea)
	if err != nil {
		return fail(err)
	}
	o.echoOutline(logger, deckOutline)

	pages := outline.Flatten(deckOutline)
	report.PageCount = len(pages)

	// Descriptions: bounded fan-out, one failure aborts the run.
	descriptions, err := o.describer.Run(ctx, idea, deckOutline, pages)
	if err != nil {
		return fail(err)
	}
	report.Described = len(descriptions)

	instructions, err := promptgen.Build(deckOutline, pages, descriptions, o.templates)
	if err != nil {
		return fail(err)
	}

	// Render: bounded fan-out, failures become holes.
	results, err := o.renderer.Run(ctx, instructions, runDir)
	if err != nil {
		return fail(err)
	}
	for _, result := range results {
		if result.Succeeded() {
			report.Rendered++
			continue
		}
		report.Failed = append(report.Failed, FailedPage{Index: result.Index, Cause: result.Err})
	}

	// Assemble whatever survived. Zero artifacts fails here, after the
	// holes have been recorded.
	deckPath := filepath.Join(runDir, DeckFileName)
	if err := o.assembler.Assemble(ctx, runDir, o.cfg.AspectRatio, deckPath); err != nil {
		return fail(err)
	}
	report.DeckPath = deckPath
	report.Duration = time.Since(startTime)

	o.recordFinish(ctx, logger, report, db.StatusCompleted, nil)

	logger.Info("run finished",
		zap.Int("pages", report.PageCount),
		zap.Int("rendered", report.Rendered),
		zap.Int("holes", len(report.Failed)),
		zap.String("deck", report.DeckPath),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// echoOutline logs the parsed outline structure before page work starts, so
// a bad outline is visible without waiting out the whole run.
func (o *Orchestrator) echoOutline(logger *logging.Logger, deckOutline outline.Outline) {
	logger.Info("outline parsed",
		zap.Int("entries", len(deckOutline)),
		zap.Int("pages", deckOutline.PageCount()))

	for i, entry := range deckOutline {
		if entry.IsPart() {
			titles := make([]string, len(entry.Part.Pages))
			for j, page := range entry.Part.Pages {
				titles[j] = page.Title
			}
			logger.Info("outline part",
				zap.Int("position", i+1),
				zap.String("part", entry.Part.Name),
				zap.Strings("pages", titles))
			continue
		}
		logger.Info("outline page",
			zap.Int("position", i+1),
			zap.String("title", entry.Label()))
	}
}

// recordStart inserts the run into history. History failures are logged and
// swallowed: losing a history row must not kill a deck run.
func (o *Orchestrator) recordStart(ctx context.Context, logger *logging.Logger, runID, idea string) {
	if o.runs == nil {
		return
	}
	_, err := o.runs.Insert(ctx, db.RunRecord{
		RunID: runID,
		Idea:  idea,
	})
	if err != nil {
		logger.Warn("failed to record run start", zap.Error(err))
	}
}

func (o *Orchestrator) recordFinish(ctx context.Context, logger *logging.Logger, report *RunReport, status string, runErr error) {
	if o.runs == nil {
		return
	}

	record := db.RunRecord{
		RunID:          report.RunID,
		PageCount:      report.PageCount,
		DescribedCount: report.Described,
		RenderedCount:  report.Rendered,
		Status:         status,
		OutputPath:     report.DeckPath,
	}
	for _, f := range report.Failed {
		record.FailedIndices = append(record.FailedIndices, f.Index)
	}
	if runErr != nil {
		record.ErrorMessage = runErr.Error()
	}

	if err := o.runs.Update(ctx, record); err != nil {
		logger.Warn("failed to record run finish", zap.Error(err))
	}
}
