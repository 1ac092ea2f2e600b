package mandel

import (
	"image"
	"image/draw"
)

// EngineCallbacks receives the lifecycle events of a compute job.
// Engines invoke them from their own goroutines; hosts that share state
// with the callbacks serialize them (see internal/loop).
type EngineCallbacks interface {
	RenderingBegun()
	RegionRendered(rect image.Rectangle)
	RenderingEnded()
	ErrorOccurred(err error)
	StatsGenerated()
}

// RenderEngine computes fractal images asynchronously.
//
// StartRendering returns immediately; the outcome is reported through the
// callbacks passed to Initialize. Image is coherent only once the job has
// ended.
type RenderEngine interface {
	Initialize(cb EngineCallbacks, precisionDigits int) error
	SetParameters(p RenderParameters) error
	StartRendering() error
	Image() (*image.RGBA, error)
	Statistics() Statistics
}

// NotificationSink is the host shell: whatever displays the image and the
// status line.
type NotificationSink interface {
	// Surface returns the current drawing surface, or nil if there is none.
	Surface() draw.Image
	SetProgress(on bool)
	SetStatus(text string)
	ClearSelection()
}

// ProgressListener is notified about job progress verbatim.
type ProgressListener interface {
	JobBegun()
	RegionRendered(rect image.Rectangle)
}

// PathResolver names persisted artifacts.
type PathResolver interface {
	FramePath(index int) string
	SingleFramePath() string
}
