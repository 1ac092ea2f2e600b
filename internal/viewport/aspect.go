package viewport

import (
	"github.com/cockroachdb/apd/v3"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/precision"
)

// targetRatio returns width/height of the output; zero dimensions count as
// one pixel, matching the pixel unit.
func targetRatio(c *precision.Calc, size mandel.OutputSize) *apd.Decimal {
	return c.Quo(c.Int(max(size.Width, 1)), c.Int(max(size.Height, 1)))
}

// lockExtents grows whichever of w and h is too small for ratio.
// Extents already at ratio are returned unchanged.
func lockExtents(c *precision.Calc, w, h, ratio *apd.Decimal) (*apd.Decimal, *apd.Decimal) {
	switch c.Quo(w, h).Cmp(ratio) {
	case 1:
		return w, c.Quo(w, ratio)
	case -1:
		return c.Mul(h, ratio), h
	}
	return w, h
}

// AspectLock grows r symmetrically about its centre until its aspect ratio
// matches size. The region never shrinks.
func AspectLock(c *precision.Calc, r mandel.Region, size mandel.OutputSize) mandel.Region {
	w := c.Sub(r.MaxX, r.MinX)
	h := c.Sub(r.MaxY, r.MinY)
	lw, lh := lockExtents(c, w, h, targetRatio(c, size))

	if lh != h {
		delta := c.Half(c.Sub(lh, h))
		r.MinY = c.Sub(r.MinY, delta)
		r.MaxY = c.Add(r.MaxY, delta)
	}
	if lw != w {
		delta := c.Half(c.Sub(lw, w))
		r.MinX = c.Sub(r.MinX, delta)
		r.MaxX = c.Add(r.MaxX, delta)
	}
	return r
}
