package engine

import (
	"fmt"
	"image"

	mandel "github.com/marben/mandel_explorer"
)

//go:generate irpc service.go

// engineService is offered by a Host on every connection.
// Init and Render are only valid after the host called Ready.
type engineService interface {
	Init(digits int) error
	Render(p wireParams) error
}

// callbackService is offered by a Remote. The host reports the progress of
// its engine through it, one call at a time.
type callbackService interface {
	Ready() error
	Begun() error
	Region(rect image.Rectangle) error
	Stats(stats mandel.Statistics) error
	Ended(img *image.RGBA) error
	Failed(msg string) error
}

// wireParams is RenderParameters with decimals kept as strings so no
// precision is lost in transit.
type wireParams struct {
	MinX, MaxX, MinY, MaxY string
	Width, Height          int
	IterationLimit         int
	PrecisionDigits        int
	ArbitraryPrecision     bool
	SampleSize             int
	Variant                int
	Colouring              int
}

func toWire(p mandel.RenderParameters) wireParams {
	return wireParams{
		MinX:               p.Region.MinX.String(),
		MaxX:               p.Region.MaxX.String(),
		MinY:               p.Region.MinY.String(),
		MaxY:               p.Region.MaxY.String(),
		Width:              p.Size.Width,
		Height:             p.Size.Height,
		IterationLimit:     p.IterationLimit,
		PrecisionDigits:    p.PrecisionDigits,
		ArbitraryPrecision: p.ArbitraryPrecision,
		SampleSize:         p.SampleSize,
		Variant:            int(p.Variant),
		Colouring:          int(p.Colouring),
	}
}

func (w wireParams) params() (mandel.RenderParameters, error) {
	r, err := mandel.ParseRegion(w.MinX, w.MaxX, w.MinY, w.MaxY)
	if err != nil {
		return mandel.RenderParameters{}, err
	}
	return mandel.RenderParameters{
		Region:             r,
		Size:               mandel.OutputSize{Width: w.Width, Height: w.Height},
		IterationLimit:     w.IterationLimit,
		PrecisionDigits:    w.PrecisionDigits,
		ArbitraryPrecision: w.ArbitraryPrecision,
		SampleSize:         w.SampleSize,
		Variant:            mandel.Variant(w.Variant),
		Colouring:          mandel.ColouringMethod(w.Colouring),
	}, nil
}

// checkImage rejects images whose pixel buffer does not cover their bounds.
func checkImage(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("no image received")
	}
	b := img.Bounds()
	if b.Empty() || img.Stride < 4*b.Dx() || len(img.Pix) < img.PixOffset(b.Max.X-1, b.Max.Y-1)+4 {
		return fmt.Errorf("image %s: got %d bytes of pixels with stride %d", b, len(img.Pix), img.Stride)
	}
	return nil
}
