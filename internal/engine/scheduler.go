package engine

import (
	"image"
	"sync"
)

// tileScheduler hands out the tiles of one image to parallel workers.
type tileScheduler struct {
	totalPixels    int
	finishedPixels int

	unstarted []image.Rectangle
	inProcess map[image.Rectangle]struct{}
	m         sync.Mutex
}

func newTileScheduler(bounds image.Rectangle, tileSize int) *tileScheduler {
	return &tileScheduler{
		totalPixels: bounds.Dx() * bounds.Dy(),
		unstarted:   splitRectNoClip(bounds, tileSize, tileSize),
		inProcess:   make(map[image.Rectangle]struct{}),
	}
}

func (ts *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	ts.m.Lock()
	defer ts.m.Unlock()

	if len(ts.unstarted) == 0 {
		return image.Rectangle{}, false
	}
	tile = ts.unstarted[0]
	ts.unstarted = ts.unstarted[1:]

	// Move popped tile to currently processed tiles
	ts.inProcess[tile] = struct{}{}
	return tile, true
}

// tileFinished marks tile as done and returns the finished fraction.
func (ts *tileScheduler) tileFinished(tile image.Rectangle) float32 {
	ts.m.Lock()
	defer ts.m.Unlock()

	if _, found := ts.inProcess[tile]; found {
		ts.finishedPixels += tile.Dx() * tile.Dy()
		delete(ts.inProcess, tile)
	}
	if ts.totalPixels == 0 {
		return 1
	}
	return float32(ts.finishedPixels) / float32(ts.totalPixels)
}

// run renders every tile with workers goroutines and waits for them.
// A panic in render abandons the unstarted tiles and is returned as an error.
func (ts *tileScheduler) run(workers int, render func(tile image.Rectangle)) error {
	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	for range max(workers, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := recovered(func() {
				for {
					tile, found := ts.popTile()
					if !found {
						return
					}
					render(tile)
				}
			})
			if err != nil {
				once.Do(func() { first = err })
				ts.abandon()
			}
		}()
	}
	wg.Wait()
	return first
}

// abandon drops the tiles no worker has started yet.
func (ts *tileScheduler) abandon() {
	ts.m.Lock()
	defer ts.m.Unlock()
	ts.unstarted = nil
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
