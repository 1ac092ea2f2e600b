// Package iterlimit retunes the iteration cap from the statistics of the
// previous job, keeping it near eight times the observed mean escape depth.
package iterlimit

import (
	"math"

	mandel "github.com/marben/mandel_explorer"
)

// ratio is the fraction of the cap that triggers a change.
const ratio = 0.125

// Adjust returns the iteration limit to use after a job that produced stats
// under limit. The result is never below one.
func Adjust(stats mandel.Statistics, limit int) int {
	next := limit
	switch {
	case float64(stats.MinIterations) > ratio*float64(limit):
		// even the fastest points come close to the cap
		next = int(math.Floor(float64(stats.MinIterations)/ratio)) + 1
	case stats.MeanIterations > 0 && stats.MeanIterations < ratio*float64(limit):
		next = int(math.Floor(stats.MeanIterations / ratio))
	}
	return max(next, 1)
}

// Adaptor applies Adjust one job late: statistics observed when a job
// completes are used for the next submission.
type Adaptor struct {
	enabled bool
	last    mandel.Statistics
	seen    bool
}

// SetEnabled switches automatic adjustment on or off.
func (a *Adaptor) SetEnabled(on bool) { a.enabled = on }

func (a *Adaptor) Enabled() bool { return a.enabled }

// Observe records the statistics of a completed job.
func (a *Adaptor) Observe(stats mandel.Statistics) {
	a.last = stats
	a.seen = true
}

// Next returns the limit for the next job.
func (a *Adaptor) Next(limit int) int {
	if !a.enabled || !a.seen {
		return limit
	}
	return Adjust(a.last, limit)
}
