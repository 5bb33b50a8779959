// Package assemble collects the rendered page artifacts of a run and hands
// them, in page order, to a deck packager.
//
// Collection works off the filesystem rather than the render stage's results
// so a deck can also be re-packaged from an existing run directory.
package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"deckgen/core"
	"deckgen/logging"
	"deckgen/render"

	"go.uber.org/zap"
)

// Packager writes an ordered set of page images into a deck file.
// Implementations receive paths already sorted by page index.
type Packager interface {
	Pack(ctx context.Context, imagePaths []string, aspectRatio, outputPath string) error
}

// Assembler packages a run directory's artifacts into the final deck.
type Assembler struct {
	packager Packager
	logger   *logging.Logger
}

// NewAssembler creates an assembler.
func NewAssembler(packager Packager, logger *logging.Logger) (*Assembler, error) {
	if packager == nil {
		return nil, fmt.Errorf("assemble: packager cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("assemble: logger cannot be nil")
	}
	return &Assembler{
		packager: packager,
		logger:   logger.Named("assemble"),
	}, nil
}

// Collect returns the page artifacts in dir sorted by page index.
//
// Only files matching the page artifact naming scheme count; logs, prompt
// dumps and other run files in the same directory are ignored. The sort is
// numeric on the parsed index, so ordering holds even past the zero-padding
// width.
func Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("assemble: reading run directory: %w", err)
	}

	type artifact struct {
		index int
		path  string
	}
	artifacts := make([]artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		index, ok := render.ParsePageIndex(entry.Name())
		if !ok {
			continue
		}
		artifacts = append(artifacts, artifact{index: index, path: filepath.Join(dir, entry.Name())})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].index < artifacts[j].index
	})

	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.path
	}
	return paths, nil
}

// Assemble collects dir's artifacts and packages them into outputPath.
//
// A run with zero artifacts fails with core.EmptyArtifactSetError before the
// packager is ever invoked; holes from failed pages are simply absent, the
// surviving pages keep their relative order.
func (a *Assembler) Assemble(ctx context.Context, dir, aspectRatio, outputPath string) error {
	paths, err := Collect(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return &core.EmptyArtifactSetError{Dir: dir}
	}

	a.logger.Info("packaging deck",
		zap.Int("pages", len(paths)),
		zap.String("output", outputPath))

	if err := a.packager.Pack(ctx, paths, aspectRatio, outputPath); err != nil {
		return fmt.Errorf("assemble: packaging failed: %w", err)
	}
	return nil
}
