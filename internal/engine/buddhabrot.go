package engine

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sync"

	mandel "github.com/marben/mandel_explorer"
)

// Samples are drawn from the canonical view, which contains every point
// whose orbit can reach any region.
const (
	sampleMinX, sampleMaxX = -2.0, 1.0
	sampleMinY, sampleMaxY = -1.5, 1.5
)

// renderBuddhabrot plots the trajectories of SampleSize random escaping
// points into the job's region.
func (l *Local) renderBuddhabrot(p mandel.RenderParameters, cb mandel.EngineCallbacks) (*image.RGBA, accumulator, error) {
	w, h := p.Size.Width, p.Size.Height
	minX, maxX, minY, maxY := p.Region.Float64()
	unitX := (maxX - minX) / float64(w+1)
	unitY := (maxY - minY) / float64(h+1)

	var (
		mu    sync.Mutex
		acc   accumulator
		hist  = make([]uint32, w*h)
		wg    sync.WaitGroup
		first error
	)
	workers := min(l.workers, p.SampleSize)
	for i := range workers {
		n := p.SampleSize / workers
		if i < p.SampleSize%workers {
			n++
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := recovered(func() {
				rng := rand.New(rand.NewPCG(l.seed, uint64(i)))
				local := make([]uint32, w*h)
				path := make([]complex128, p.IterationLimit)
				var a accumulator
				for range n {
					c := complex(
						sampleMinX+rng.Float64()*(sampleMaxX-sampleMinX),
						sampleMinY+rng.Float64()*(sampleMaxY-sampleMinY),
					)
					iterations, escaped := trajectory(c, path)
					a.add(iterations, escaped)
					if !escaped {
						continue
					}
					for _, z := range path[:iterations] {
						px := int(math.Floor((real(z) - minX) / unitX))
						py := int(math.Floor((maxY - imag(z)) / unitY))
						if px >= 0 && px < w && py >= 0 && py < h {
							local[py*w+px]++
						}
					}
				}
				mu.Lock()
				defer mu.Unlock()
				acc.merge(a)
				for j, v := range local {
					hist[j] += v
				}
			})
			if err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if first != nil {
		return nil, accumulator{}, first
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var peak uint32
	for _, v := range hist {
		peak = max(peak, v)
	}
	if peak > 0 {
		for j, v := range hist {
			b := uint8(255 * math.Sqrt(float64(v)/float64(peak)))
			img.SetRGBA(j%w, j/w, tint(p.Colouring, b))
		}
	} else {
		for j := range hist {
			img.SetRGBA(j%w, j/w, color.RGBA{A: 255})
		}
	}
	cb.RegionRendered(img.Bounds())
	return img, acc, nil
}

// trajectory records the orbit of c into orbit and reports how many
// iterations it took to escape.
func trajectory(c complex128, orbit []complex128) (iterations int, escaped bool) {
	z := complex(0, 0)
	for i := range orbit {
		z = z*z + c
		orbit[i] = z
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return i + 1, true
		}
	}
	return len(orbit), false
}

func tint(m mandel.ColouringMethod, v uint8) color.RGBA {
	switch m {
	case mandel.ColouringRed:
		return color.RGBA{R: v, A: 255}
	case mandel.ColouringGreen:
		return color.RGBA{G: v, A: 255}
	case mandel.ColouringBlue:
		return color.RGBA{B: v, A: 255}
	default:
		return color.RGBA{v, v, v, 255}
	}
}
