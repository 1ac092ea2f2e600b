package orchestrator

import (
	"errors"
	"fmt"
	"image"

	mandel "github.com/marben/mandel_explorer"
)

// ErrChainActive is returned when a chain is started while another runs.
var ErrChainActive = errors.New("chain render already active")

// ChainState is the progress of a chain render. Position is the index of
// the next frame to submit.
type ChainState struct {
	SampleSize int
	Step       int
	Position   int
	Limit      int
}

// FrameFunc builds the parameters of a chain frame for a sample size.
type FrameFunc func(sampleSize int) mandel.RenderParameters

type chain struct {
	o         *Orchestrator
	state     ChainState
	frame     FrameFunc
	active    bool
	cancelled bool
}

// StartChain starts a chain render at st.Position and submits its first
// frame. Frames are rendered until Position passes Limit; each has
// SampleSize grown by Step over the previous one.
func (o *Orchestrator) StartChain(st ChainState, frame FrameFunc) error {
	if o.chain.active {
		return ErrChainActive
	}
	if o.status == InProgress {
		return ErrJobInProgress
	}
	switch {
	case st.SampleSize < 1:
		return &mandel.InvalidInputError{Field: "chain sample size", Value: fmt.Sprint(st.SampleSize), Reason: "must be positive"}
	case st.Step < 0:
		return &mandel.InvalidInputError{Field: "chain step", Value: fmt.Sprint(st.Step), Reason: "must not be negative"}
	case st.Position < 0:
		return &mandel.InvalidInputError{Field: "chain position", Value: fmt.Sprint(st.Position), Reason: "must not be negative"}
	case st.Limit < st.Position:
		return &mandel.InvalidInputError{Field: "chain limit", Value: fmt.Sprint(st.Limit), Reason: "precedes the start position"}
	}

	o.chain = chain{o: o, state: st, frame: frame, active: true}
	o.log.Info("chain started", "position", st.Position, "limit", st.Limit, "samples", st.SampleSize, "step", st.Step)
	return o.chain.next()
}

// CancelChain stops the chain after the frame in flight. The frame itself
// is completed and persisted.
func (o *Orchestrator) CancelChain() {
	if o.chain.active {
		o.chain.cancelled = true
		o.log.Info("chain cancelled", "position", o.chain.state.Position)
	}
}

// ChainActive reports whether a chain render is running.
func (o *Orchestrator) ChainActive() bool { return o.chain.active }

// Chain returns the state of the running chain.
func (o *Orchestrator) Chain() (ChainState, bool) { return o.chain.state, o.chain.active }

// next submits the frame at Position, or ends the chain.
func (c *chain) next() error {
	if c.cancelled || c.state.Position > c.state.Limit {
		c.stop()
		return nil
	}
	if err := c.o.Submit(c.frame(c.state.SampleSize), JobChainFrame); err != nil {
		c.stop()
		return fmt.Errorf("chain frame %d: %w", c.state.Position, err)
	}
	c.state.Position++
	c.state.SampleSize += c.state.Step
	return nil
}

// frameComplete persists the frame that was just rendered and moves on.
func (c *chain) frameComplete(img image.Image) {
	index := c.state.Position - 1
	c.o.persist(c.o.paths.FramePath(index), img)
	c.o.redraw(img)
	c.o.log.Info("chain frame done", "index", index, "limit", c.state.Limit)
	if err := c.next(); err != nil {
		c.o.log.Error("chain stopped", "err", err)
	}
}

func (c *chain) stop() {
	if c.active {
		c.o.log.Info("chain finished", "position", c.state.Position)
	}
	c.active = false
	c.cancelled = false
}
