package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckgen/assemble"
)

var _ assemble.Packager = (*Writer)(nil)

// writePNG writes a solid test image of the given pixel size.
func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 80, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
}

func packDeck(t *testing.T, pages int) (string, *zip.ReadCloser) {
	t.Helper()
	dir := t.TempDir()

	paths := make([]string, pages)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("page_%03d.png", i+1))
		writePNG(t, paths[i], 160, 90)
	}

	outPath := filepath.Join(dir, "deck.pptx")
	if err := NewWriter().Pack(context.Background(), paths, "16:9", outPath); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	reader, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("output is not a readable zip: %v", err)
	}
	t.Cleanup(func() { reader.Close() })
	return outPath, reader
}

func readPart(t *testing.T, reader *zip.Reader, name string) string {
	t.Helper()
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening part %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading part %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s missing from package", name)
	return ""
}

func TestPackProducesRequiredParts(t *testing.T) {
	_, reader := packDeck(t, 3)

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels",
		"ppt/media/image1.png",
		"ppt/media/image3.png",
	}
	have := make(map[string]bool, len(reader.File))
	for _, f := range reader.File {
		have[f.Name] = true
	}
	for _, name := range required {
		if !have[name] {
			t.Errorf("missing part %s", name)
		}
	}
}

func TestPackPreservesSlideOrder(t *testing.T) {
	_, reader := packDeck(t, 3)

	presentation := readPart(t, &reader.Reader, "ppt/presentation.xml")
	first := strings.Index(presentation, `r:id="rId1"`)
	second := strings.Index(presentation, `r:id="rId2"`)
	third := strings.Index(presentation, `r:id="rId3"`)
	if first < 0 || second < 0 || third < 0 || !(first < second && second < third) {
		t.Errorf("slide references out of order:\n%s", presentation)
	}

	rels := readPart(t, &reader.Reader, "ppt/_rels/presentation.xml.rels")
	for i := 1; i <= 3; i++ {
		want := fmt.Sprintf(`Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"`, i, i)
		if !strings.Contains(rels, want) {
			t.Errorf("relationship for slide %d missing:\n%s", i, rels)
		}
	}

	// Each slide must reference its own media file.
	slideRels := readPart(t, &reader.Reader, "ppt/slides/_rels/slide2.xml.rels")
	if !strings.Contains(slideRels, "../media/image2.png") {
		t.Errorf("slide 2 does not reference image 2:\n%s", slideRels)
	}
}

func TestPackDeclaresSlideSize(t *testing.T) {
	_, reader := packDeck(t, 1)

	presentation := readPart(t, &reader.Reader, "ppt/presentation.xml")
	if !strings.Contains(presentation, `<p:sldSz cx="12192000" cy="6858000"/>`) {
		t.Errorf("expected 16:9 slide size:\n%s", presentation)
	}
}

func TestPackEmbedsImagePayload(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "page_001.png")
	writePNG(t, src, 32, 18)
	want, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "deck.pptx")
	if err := NewWriter().Pack(context.Background(), []string{src}, "16:9", outPath); err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	reader, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("opening deck: %v", err)
	}
	defer reader.Close()

	got := readPart(t, &reader.Reader, "ppt/media/image1.png")
	if !bytes.Equal([]byte(got), want) {
		t.Error("embedded media differs from source image")
	}
}

func TestPackRejectsEmptyInput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "deck.pptx")
	if err := NewWriter().Pack(context.Background(), nil, "16:9", outPath); err == nil {
		t.Fatal("expected error for empty image set")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("no output file should exist after a rejected pack")
	}
}

func TestFitBox(t *testing.T) {
	// 160x90 matches 16:9 exactly: fills the box.
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 160, 90))); err != nil {
		t.Fatal(err)
	}
	box := fitBox(buf.Bytes(), sizeWide16x9Cx, sizeWide16x9Cy)
	if box.cy != sizeWide16x9Cy {
		t.Errorf("16:9 image should fill slide height, got cy=%d", box.cy)
	}
	if box.offY != 0 {
		t.Errorf("16:9 image should not be offset vertically, got %d", box.offY)
	}

	// Square image in a wide box: height binds, centered horizontally.
	buf.Reset()
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 100))); err != nil {
		t.Fatal(err)
	}
	box = fitBox(buf.Bytes(), sizeWide16x9Cx, sizeWide16x9Cy)
	if box.cy != sizeWide16x9Cy || box.cx != sizeWide16x9Cy {
		t.Errorf("square image should fit height, got %dx%d", box.cx, box.cy)
	}
	if box.offX == 0 || box.offX != (sizeWide16x9Cx-box.cx)/2 {
		t.Errorf("square image should be centered, got offX=%d", box.offX)
	}

	// Undecodable payload falls back to the full box.
	box = fitBox([]byte("not an image"), sizeWide16x9Cx, sizeWide16x9Cy)
	if box.cx != sizeWide16x9Cx || box.cy != sizeWide16x9Cy || box.offX != 0 || box.offY != 0 {
		t.Errorf("fallback should fill the slide, got %+v", box)
	}
}
