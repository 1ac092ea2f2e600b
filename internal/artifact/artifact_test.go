package artifact

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPNGWriterCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames", "nested", "3.png")
	want := color.RGBA{R: 200, G: 10, B: 30, A: 255}

	if err := (PNGWriter{}).WriteImage(path, solid(4, 3, want)); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}
	if got := color.RGBAModel.Convert(img.At(1, 1)); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestPNGWriterFailsOnFileAsDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (PNGWriter{}).WriteImage(filepath.Join(blocker, "0.png"), solid(1, 1, color.RGBA{})); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestDirResolver(t *testing.T) {
	r := DirResolver{Dir: "/tmp/out", FramePattern: "frame-%05d.png", SingleName: "fractal.png"}
	if got := r.FramePath(42); got != "/tmp/out/frame-00042.png" {
		t.Errorf("FramePath(42) = %q", got)
	}
	if got := r.SingleFramePath(); got != "/tmp/out/fractal.png" {
		t.Errorf("SingleFramePath() = %q", got)
	}
}

func TestFitSameSizeCopies(t *testing.T) {
	want := color.RGBA{G: 255, A: 255}
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Fit(dst, solid(8, 8, want))
	if got := dst.RGBAAt(7, 7); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestFitScales(t *testing.T) {
	want := color.RGBA{B: 255, A: 255}
	dst := image.NewRGBA(image.Rect(0, 0, 16, 10))
	Fit(dst, solid(4, 4, want))
	for _, p := range []image.Point{{0, 0}, {8, 5}, {15, 9}} {
		if got := dst.RGBAAt(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}
