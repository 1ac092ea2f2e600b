package engine

import (
	"image"
	"image/color"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cockroachdb/apd/v3"
	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/precision"
)

// maxGrid bounds the supersampling grid of the escape-time variant.
const maxGrid = 4

// escapeRenderer renders the escape-time variant of one job.
type escapeRenderer struct {
	p    mandel.RenderParameters
	img  *image.RGBA
	grid int

	// float64 mapping
	minX, maxY   float64
	unitX, unitY float64

	// decimal mapping, used when ArbitraryPrecision is set
	full           precision.Full
	dMinX, dMaxY   *apd.Decimal
	dUnitX, dUnitY *apd.Decimal
}

func (l *Local) renderEscape(p mandel.RenderParameters, cb mandel.EngineCallbacks) (*image.RGBA, accumulator, error) {
	r, err := newEscapeRenderer(p)
	if err != nil {
		return nil, accumulator{}, err
	}

	var (
		mu  sync.Mutex
		acc accumulator
	)
	ts := newTileScheduler(r.img.Bounds(), l.tileSize)
	err = ts.run(l.workers, func(tile image.Rectangle) {
		a := r.renderTile(tile)
		mu.Lock()
		acc.merge(a)
		mu.Unlock()
		done := ts.tileFinished(tile)
		l.log.Debug("tile rendered", "tile", tile, "finished", done)
		cb.RegionRendered(tile)
	})
	if err != nil {
		return nil, accumulator{}, err
	}
	return r.img, acc, nil
}

func newEscapeRenderer(p mandel.RenderParameters) (*escapeRenderer, error) {
	w, h := p.Size.Width, p.Size.Height
	r := &escapeRenderer{
		p:    p,
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		grid: min(max(int(math.Sqrt(float64(p.SampleSize))), 1), maxGrid),
	}

	minX, maxX, minY, maxY := p.Region.Float64()
	r.minX, r.maxY = minX, maxY
	r.unitX = (maxX - minX) / float64(w+1)
	r.unitY = (maxY - minY) / float64(h+1)

	if !p.ArbitraryPrecision {
		return r, nil
	}
	full, err := precision.NewFull(max(p.PrecisionDigits, 1))
	if err != nil {
		return nil, err
	}
	c := full.Calc()
	r.full = full
	r.dMinX, r.dMaxY = p.Region.MinX, p.Region.MaxY
	r.dUnitX = c.Quo(c.Sub(p.Region.MaxX, p.Region.MinX), c.Int(w+1))
	r.dUnitY = c.Quo(c.Sub(p.Region.MaxY, p.Region.MinY), c.Int(h+1))
	if err := c.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// renderTile fills tile and returns per-pixel statistics. A pixel's
// statistics come from its first sample.
func (r *escapeRenderer) renderTile(tile image.Rectangle) accumulator {
	var acc accumulator
	n := r.grid * r.grid
	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		for px := tile.Min.X; px < tile.Max.X; px++ {
			var sr, sg, sb int
			for s := range n {
				ox := float64(s%r.grid) / float64(r.grid)
				oy := float64(s/r.grid) / float64(r.grid)
				mu, trap, iterations, escaped := r.sample(float64(px)+ox, float64(py)+oy)
				if s == 0 {
					acc.add(iterations, escaped)
				}
				col := shade(r.p.Colouring, mu, trap, r.p.IterationLimit, escaped)
				sr += int(col.R)
				sg += int(col.G)
				sb += int(col.B)
			}
			r.img.SetRGBA(px, py, color.RGBA{uint8(sr / n), uint8(sg / n), uint8(sb / n), 255})
		}
	}
	return acc
}

func (r *escapeRenderer) sample(px, py float64) (mu, trap float64, iterations int, escaped bool) {
	if r.p.ArbitraryPrecision {
		c := r.full.Calc()
		cx := c.Add(r.dMinX, c.Mul(r.dUnitX, c.Float(px)))
		cy := c.Sub(r.dMaxY, c.Mul(r.dUnitY, c.Float(py)))
		mu, iterations, escaped = escapeDecimal(c, cx, cy, r.p.IterationLimit)
		return mu, 0, iterations, escaped
	}
	c := complex(r.minX+r.unitX*px, r.maxY-r.unitY*py)
	return orbit(c, r.p.IterationLimit)
}

// orbit iterates z = z² + c with smooth escape and an orbit trap on the
// imaginary axis.
func orbit(c complex128, limit int) (smooth, trap float64, iterations int, escaped bool) {
	z := complex(0, 0)
	minTrap := math.MaxFloat64

	for i := 0; i < limit; i++ {
		z = z*z + c

		d := math.Abs(real(z))
		if d < minTrap {
			minTrap = d
		}

		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			smooth = float64(i) + 1 - math.Log(math.Log(cmplx.Abs(z)))/math.Log(2)
			return smooth, minTrap, i + 1, true
		}
	}

	// Inside the set
	return float64(limit), minTrap, limit, false
}

var (
	decTwo  = apd.New(2, 0)
	decFour = apd.New(4, 0)
)

// escapeDecimal is orbit computed in decimal arithmetic, without the trap.
func escapeDecimal(c *precision.Calc, cx, cy *apd.Decimal, limit int) (smooth float64, iterations int, escaped bool) {
	zx, zy := new(apd.Decimal), new(apd.Decimal)
	x2, y2 := new(apd.Decimal), new(apd.Decimal)

	for i := 0; i < limit; i++ {
		zy = c.Add(c.Mul(decTwo, c.Mul(zx, zy)), cy)
		zx = c.Add(c.Sub(x2, y2), cx)
		x2, y2 = c.Mul(zx, zx), c.Mul(zy, zy)
		if m := c.Add(x2, y2); m.Cmp(decFour) > 0 {
			abs2, _ := m.Float64()
			smooth = float64(i) + 1 - math.Log(0.5*math.Log(abs2))/math.Log(2)
			return smooth, i + 1, true
		}
		if c.Err() != nil {
			break
		}
	}
	return float64(limit), limit, false
}

func shade(m mandel.ColouringMethod, mu, trap float64, limit int, escaped bool) color.RGBA {
	if !escaped {
		return color.RGBA{A: 255}
	}
	v := uint8(255 * math.Sqrt(math.Min(math.Max(mu, 0)/float64(limit), 1)))
	switch m {
	case mandel.ColouringRed:
		return color.RGBA{R: v, A: 255}
	case mandel.ColouringGreen:
		return color.RGBA{G: v, A: 255}
	case mandel.ColouringBlue:
		return color.RGBA{B: v, A: 255}
	default:
		tnorm := math.Exp(-5 * trap)
		hue := math.Mod(mu*0.02+tnorm*0.3, 1.0)
		return hsv(hue, 1, 1)
	}
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
