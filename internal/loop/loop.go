// Package loop serializes all mutations of explorer state on one goroutine.
package loop

import (
	"context"
	"image"
	"sync"

	mandel "github.com/marben/mandel_explorer"
)

// Loop runs posted functions one at a time, in posting order.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post schedules fn on the loop. It never blocks, so it may be called from
// the loop itself.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-l.wake:
		}
		for {
			l.mu.Lock()
			batch := l.queue
			l.queue = nil
			l.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, fn := range batch {
				fn()
			}
		}
	}
}

// Callbacks wraps target so that every engine callback runs on the loop.
func (l *Loop) Callbacks(target mandel.EngineCallbacks) mandel.EngineCallbacks {
	return callbacks{l: l, target: target}
}

type callbacks struct {
	l      *Loop
	target mandel.EngineCallbacks
}

func (c callbacks) RenderingBegun() { c.l.Post(c.target.RenderingBegun) }

func (c callbacks) RegionRendered(rect image.Rectangle) {
	c.l.Post(func() { c.target.RegionRendered(rect) })
}

func (c callbacks) RenderingEnded() { c.l.Post(c.target.RenderingEnded) }

func (c callbacks) ErrorOccurred(err error) {
	c.l.Post(func() { c.target.ErrorOccurred(err) })
}

func (c callbacks) StatsGenerated() { c.l.Post(c.target.StatsGenerated) }
