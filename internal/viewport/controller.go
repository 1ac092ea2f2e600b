package viewport

import (
	"fmt"
	"image"
	"math"

	mandel "github.com/marben/mandel_explorer"
)

// Gate reports whether a job is in flight.
type Gate interface {
	Busy() bool
}

// Controller turns zoom and selection gestures into plane regions.
type Controller struct {
	coords    *CoordinateSystem
	gate      Gate
	render    func() error
	selection mandel.Region
}

// NewController creates a controller whose selection starts at the current
// region of coords. render is invoked after every zoom.
func NewController(coords *CoordinateSystem, gate Gate, render func() error) *Controller {
	return &Controller{
		coords:    coords,
		gate:      gate,
		render:    render,
		selection: coords.Region(),
	}
}

// Select maps a dragged pixel rectangle to an aspect-locked selection.
func (vc *Controller) Select(rect image.Rectangle) (mandel.Region, error) {
	rect = rect.Canon()
	r, err := vc.coords.MapPixelRect(rect)
	if err != nil {
		return mandel.Region{}, err
	}
	c := vc.coords.Full().Calc()
	r = AspectLock(c, r, vc.coords.Size())
	if err := c.Err(); err != nil {
		return mandel.Region{}, fmt.Errorf("aspect lock: %w", err)
	}
	vc.selection = r
	return r, nil
}

// Selection returns the region the next render will commit.
func (vc *Controller) Selection() mandel.Region { return vc.selection }

// Commit makes the selection the current region.
func (vc *Controller) Commit() (mandel.Region, error) {
	if err := vc.coords.Commit(vc.selection); err != nil {
		return mandel.Region{}, err
	}
	return vc.selection, nil
}

// Reset selects the canonical default region.
func (vc *Controller) Reset() {
	vc.selection = mandel.DefaultRegion()
}

// Zoom zooms by factor around pixel pt and renders the result. Factors
// below one zoom out. It does nothing and reports false while a job is in
// flight.
func (vc *Controller) Zoom(pt image.Point, factor float64) (bool, error) {
	if vc.gate.Busy() {
		return false, nil
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return false, &mandel.InvalidInputError{Field: "zoom factor", Value: fmt.Sprint(factor), Reason: "must be a positive finite number"}
	}

	size := vc.coords.Size()
	cur := vc.coords.Region()
	unitX, unitY := vc.coords.Unit()
	c := vc.coords.Full().Calc()

	// fractional position of pt within the output
	rX := c.Quo(c.Int(pt.X), c.Int(max(size.Width, 1)))
	rY := c.Quo(c.Int(pt.Y), c.Int(max(size.Height, 1)))

	zf := c.Float(factor)
	sizeX := c.Quo(c.Sub(cur.MaxX, cur.MinX), zf)
	sizeY := c.Quo(c.Sub(cur.MaxY, cur.MinY), zf)
	sizeX, sizeY = lockExtents(c, sizeX, sizeY, targetRatio(c, size))

	x := c.Sub(c.Add(cur.MinX, c.Mul(unitX, c.Int(pt.X))), c.Mul(sizeX, rX))
	y := c.Sub(c.Sub(cur.MaxY, c.Mul(unitY, c.Int(pt.Y))), c.Mul(sizeY, c.Sub(c.Int(1), rY)))
	next := mandel.Region{MinX: x, MinY: y, MaxX: c.Add(x, sizeX), MaxY: c.Add(y, sizeY)}
	if err := c.Err(); err != nil {
		return false, fmt.Errorf("zoom: %w", err)
	}

	vc.selection = next
	if err := vc.render(); err != nil {
		return true, err
	}
	return true, nil
}
