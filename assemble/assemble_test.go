package assemble

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"deckgen/core"
	"deckgen/logging"
)

type recordingPackager struct {
	calls  int
	paths  []string
	aspect string
	output string
}

func (p *recordingPackager) Pack(ctx context.Context, imagePaths []string, aspectRatio, outputPath string) error {
	p.calls++
	p.paths = imagePaths
	p.aspect = aspectRatio
	p.output = outputPath
	return nil
}

func seedArtifacts(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatalf("seeding %s: %v", name, err)
		}
	}
}

func TestCollectSortsNumerically(t *testing.T) {
	dir := t.TempDir()
	// Mixed padding: lexical order would put page_2 after page_11.
	seedArtifacts(t, dir, "page_11.png", "page_2.png", "page_001.png", "page_010.png")

	paths, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := []string{"page_001.png", "page_2.png", "page_010.png", "page_11.png"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(paths))
	}
	for i, w := range want {
		if filepath.Base(paths[i]) != w {
			t.Errorf("position %d: expected %s, got %s", i, w, filepath.Base(paths[i]))
		}
	}
}

func TestCollectIgnoresNonArtifacts(t *testing.T) {
	dir := t.TempDir()
	seedArtifacts(t, dir, "page_001.png", "page_002.png", "deck.pptx", "run.log", "page_bad.png")
	if err := os.Mkdir(filepath.Join(dir, "page_003.png"), 0o755); err != nil {
		t.Fatalf("creating decoy dir: %v", err)
	}

	paths, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 artifacts, got %d: %v", len(paths), paths)
	}
}

func TestAssembleInvokesPackagerInOrder(t *testing.T) {
	dir := t.TempDir()
	// Page 2 is a hole; survivors keep relative order.
	seedArtifacts(t, dir, "page_003.png", "page_001.png")

	packager := &recordingPackager{}
	assembler, err := NewAssembler(packager, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}

	outPath := filepath.Join(dir, "deck.pptx")
	if err := assembler.Assemble(context.Background(), dir, "16:9", outPath); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if packager.calls != 1 {
		t.Fatalf("expected 1 Pack call, got %d", packager.calls)
	}
	if len(packager.paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", packager.paths)
	}
	if filepath.Base(packager.paths[0]) != "page_001.png" || filepath.Base(packager.paths[1]) != "page_003.png" {
		t.Errorf("paths out of order: %v", packager.paths)
	}
	if packager.aspect != "16:9" || packager.output != outPath {
		t.Errorf("packager received aspect=%q output=%q", packager.aspect, packager.output)
	}
}

func TestAssembleEmptyRunDirectory(t *testing.T) {
	dir := t.TempDir()
	seedArtifacts(t, dir, "run.log")

	packager := &recordingPackager{}
	assembler, err := NewAssembler(packager, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewAssembler failed: %v", err)
	}

	err = assembler.Assemble(context.Background(), dir, "16:9", filepath.Join(dir, "deck.pptx"))
	if err == nil {
		t.Fatal("expected error for empty artifact set")
	}
	if _, ok := core.AsEmptyArtifactSetError(err); !ok {
		t.Errorf("expected EmptyArtifactSetError, got %T: %v", err, err)
	}
	if packager.calls != 0 {
		t.Errorf("packager must not be invoked with nothing to pack, got %d calls", packager.calls)
	}
}

func TestCollectMissingDirectory(t *testing.T) {
	if _, err := Collect(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
