// Package artifact persists rendered images and fits them to display surfaces.
package artifact

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// PNGWriter writes images as PNG files, creating parent directories.
type PNGWriter struct{}

// WriteImage encodes img to path. The file is written to a temporary name
// first so a failed write never leaves a truncated artifact behind.
func (PNGWriter) WriteImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// DirResolver names chain frames and the single full-resolution render
// inside one output directory.
type DirResolver struct {
	Dir string
	// FramePattern is a fmt pattern taking the frame index, e.g. "%d.png".
	FramePattern string
	SingleName   string
}

func (r DirResolver) FramePath(index int) string {
	return filepath.Join(r.Dir, fmt.Sprintf(r.FramePattern, index))
}

func (r DirResolver) SingleFramePath() string {
	return filepath.Join(r.Dir, r.SingleName)
}

// Fit draws src onto dst, scaling it when the sizes differ.
func Fit(dst draw.Image, src image.Image) {
	db, sb := dst.Bounds(), src.Bounds()
	if db.Dx() == sb.Dx() && db.Dy() == sb.Dy() {
		draw.Draw(dst, db, src, sb.Min, draw.Src)
		return
	}
	xdraw.CatmullRom.Scale(dst, db, src, sb, xdraw.Src, nil)
}
