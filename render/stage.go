// Package render provides page image rendering.
//
// stage.go implements the fan-out over the bounded render pool and the
// persistence of each page artifact.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"deckgen/core"
	"deckgen/logging"

	"go.uber.org/zap"
)

// DefaultWorkers is the render pool size. Image generation is the slow,
// expensive stage; this bounds concurrent requests against the image
// endpoint's rate limits.
const DefaultWorkers = 8

// Stage renders page instructions into PNG artifacts under a run directory.
type Stage struct {
	provider     Provider
	refImagePath string
	workers      int
	logger       *logging.Logger
}

// NewStage creates a render stage.
//
// Parameters:
//   - provider: the image backend
//   - refImagePath: style-reference image sent with every page
//   - workers: pool size; values < 1 fall back to DefaultWorkers
//   - logger: parent logger; the stage logs under the "render" name
func NewStage(provider Provider, refImagePath string, workers int, logger *logging.Logger) (*Stage, error) {
	if provider == nil {
		return nil, fmt.Errorf("render: provider cannot be nil")
	}
	if refImagePath == "" {
		return nil, fmt.Errorf("render: reference image path cannot be empty")
	}
	if logger == nil {
		return nil, fmt.Errorf("render: logger cannot be nil")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Stage{
		provider:     provider,
		refImagePath: refImagePath,
		workers:      workers,
		logger:       logger.Named("render"),
	}, nil
}

// Run renders every instruction, at most `workers` requests in flight at a
// time, writing each success to outputDir as its page artifact.
//
// Run never aborts on page failures: a failed page is recorded in its Result
// (wrapped as a core.RenderError) and the remaining pages keep going. The
// returned slice always has one Result per instruction, in instruction
// order. The only error Run itself returns is a failure to create the
// output directory.
func (s *Stage) Run(ctx context.Context, instructions []Instruction, outputDir string) ([]Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("render: creating output directory: %w", err)
	}

	s.logger.Info("rendering pages",
		zap.Int("pages", len(instructions)),
		zap.Int("workers", s.workers),
		zap.String("output_dir", outputDir))

	results := make([]Result, len(instructions))

	// Plain errgroup, not WithContext: one page's failure must not cancel
	// its siblings. Workers report failures through their Result slot and
	// always return nil.
	var group errgroup.Group
	group.SetLimit(s.workers)

	for i, inst := range instructions {
		slot := i
		inst := inst
		group.Go(func() error {
			results[slot] = s.renderPage(ctx, inst, outputDir, len(instructions))
			return nil
		})
	}
	group.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Succeeded() {
			succeeded++
		}
	}
	s.logger.Info("render pass finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(instructions)-succeeded))

	return results, nil
}

// renderPage generates and persists one page, converting any failure into
// the page's Result.
func (s *Stage) renderPage(ctx context.Context, inst Instruction, outputDir string, total int) Result {
	payload, err := s.provider.GenerateImage(ctx, inst.Text, s.refImagePath)
	if err != nil {
		s.logger.Warn("page render failed",
			zap.Int("index", inst.Index),
			zap.Error(err))
		return Result{Index: inst.Index, Err: &core.RenderError{Index: inst.Index, Cause: err}}
	}

	path := filepath.Join(outputDir, PageFileName(inst.Index))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		s.logger.Warn("page artifact write failed",
			zap.Int("index", inst.Index),
			zap.Error(err))
		return Result{Index: inst.Index, Err: &core.RenderError{Index: inst.Index, Cause: err}}
	}

	s.logger.Info("page rendered",
		zap.Int("index", inst.Index),
		zap.String("progress", fmt.Sprintf("%d/%d", inst.Index, total)),
		zap.String("artifact", path))
	return Result{Index: inst.Index, ArtifactPath: path}
}

// EditPage regenerates one existing page from a natural-language
// instruction, using the page's current image as the reference so the edit
// keeps its look. Only that page's artifact is overwritten; the rest of the
// run directory is untouched.
func (s *Stage) EditPage(ctx context.Context, index int, instruction, outputDir string) Result {
	current := filepath.Join(outputDir, PageFileName(index))
	if _, err := os.Stat(current); err != nil {
		return Result{Index: index, Err: &core.RenderError{Index: index, Cause: fmt.Errorf("%w: %s", ErrRefImageNotFound, current)}}
	}

	payload, err := s.provider.GenerateImage(ctx, instruction, current)
	if err != nil {
		return Result{Index: index, Err: &core.RenderError{Index: index, Cause: err}}
	}
	if err := os.WriteFile(current, payload, 0o644); err != nil {
		return Result{Index: index, Err: &core.RenderError{Index: index, Cause: err}}
	}

	s.logger.Info("page edited",
		zap.Int("index", index),
		zap.String("artifact", current))
	return Result{Index: index, ArtifactPath: current}
}
