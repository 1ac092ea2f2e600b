package viewport

import (
	"fmt"
	"image"

	"github.com/cockroachdb/apd/v3"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/precision"
)

// CoordinateSystem maps between pixel space and the current plane region.
// It is the single writer of the current region.
type CoordinateSystem struct {
	full    precision.Full
	display precision.Display

	size   mandel.OutputSize
	region mandel.Region

	// plane extent of one pixel; extent/(dimension+1)
	unitX, unitY *apd.Decimal
}

// NewCoordinateSystem starts at mandel.DefaultRegion.
func NewCoordinateSystem(full precision.Full, display precision.Display, size mandel.OutputSize) (*CoordinateSystem, error) {
	cs := &CoordinateSystem{full: full, display: display, size: size}
	if err := cs.Commit(mandel.DefaultRegion()); err != nil {
		return nil, err
	}
	return cs, nil
}

// SetOutputSize changes the output size and recomputes the pixel unit from
// the existing region. A zero dimension behaves as a single pixel.
func (cs *CoordinateSystem) SetOutputSize(size mandel.OutputSize) error {
	if size.Width < 0 || size.Height < 0 {
		return &mandel.InvalidInputError{Field: "output size", Value: size.String(), Reason: "negative dimension"}
	}
	cs.size = size
	return cs.recomputeUnit()
}

// Commit makes r the current region.
func (cs *CoordinateSystem) Commit(r mandel.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	cs.region = r
	return cs.recomputeUnit()
}

func (cs *CoordinateSystem) recomputeUnit() error {
	c := cs.full.Calc()
	unitX := c.Quo(c.Sub(cs.region.MaxX, cs.region.MinX), c.Int(cs.size.Width+1))
	unitY := c.Quo(c.Sub(cs.region.MaxY, cs.region.MinY), c.Int(cs.size.Height+1))
	if err := c.Err(); err != nil {
		return fmt.Errorf("pixel unit: %w", err)
	}
	cs.unitX, cs.unitY = unitX, unitY
	return nil
}

// MapPixelRect maps a pixel rectangle of the output onto the plane. Pixel
// rows grow downwards while plane Y grows upwards. The result is not
// aspect-locked.
func (cs *CoordinateSystem) MapPixelRect(rect image.Rectangle) (mandel.Region, error) {
	c := cs.full.Calc()
	minX := c.Add(cs.region.MinX, c.Mul(cs.unitX, c.Int(rect.Min.X)))
	maxY := c.Sub(cs.region.MaxY, c.Mul(cs.unitY, c.Int(rect.Min.Y)))
	maxX := c.Add(minX, c.Mul(cs.unitX, c.Int(rect.Dx()+1)))
	minY := c.Sub(maxY, c.Mul(cs.unitY, c.Int(rect.Dy()+1)))
	if err := c.Err(); err != nil {
		return mandel.Region{}, fmt.Errorf("map %v: %w", rect, err)
	}
	return mandel.Region{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, nil
}

func (cs *CoordinateSystem) Region() mandel.Region { return cs.region }

func (cs *CoordinateSystem) Size() mandel.OutputSize { return cs.size }

// Unit returns the plane extent of one pixel.
func (cs *CoordinateSystem) Unit() (x, y *apd.Decimal) { return cs.unitX, cs.unitY }

func (cs *CoordinateSystem) Full() precision.Full { return cs.full }

func (cs *CoordinateSystem) Display() precision.Display { return cs.display }

// DisplayRegion returns the current bounds rounded for display, in
// minX, maxX, minY, maxY order.
func (cs *CoordinateSystem) DisplayRegion() [4]string {
	return DisplayRegion(cs.display, cs.region)
}

// DisplayRegion rounds the bounds of r for display.
func DisplayRegion(d precision.Display, r mandel.Region) [4]string {
	return [4]string{d.Format(r.MinX), d.Format(r.MaxX), d.Format(r.MinY), d.Format(r.MaxY)}
}

// ScaleText returns the magnification of r relative to the default view.
func (cs *CoordinateSystem) ScaleText(r mandel.Region) string {
	def := mandel.DefaultRegion()
	c := cs.full.Calc()
	scale := c.Quo(c.Sub(def.MaxX, def.MinX), c.Sub(r.MaxX, r.MinX))
	if c.Err() != nil {
		return "?x"
	}
	return cs.display.Format(scale) + "x"
}
