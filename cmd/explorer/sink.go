package main

import (
	"image"
	"image/draw"
	"log"

	mandel "github.com/marben/mandel_explorer"
)

// consoleSink displays into an in-memory surface and logs the status line.
type consoleSink struct {
	surface  *image.RGBA
	progress bool
	regions  int
}

func newConsoleSink(size mandel.OutputSize) *consoleSink {
	return &consoleSink{surface: image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))}
}

func (s *consoleSink) Surface() draw.Image { return s.surface }

func (s *consoleSink) SetProgress(on bool) {
	if s.progress && !on {
		log.Printf("job done, %d regions rendered", s.regions)
	}
	s.progress = on
}

func (s *consoleSink) SetStatus(text string) { log.Println(text) }

func (s *consoleSink) ClearSelection() {}

func (s *consoleSink) JobBegun() { s.regions = 0 }

func (s *consoleSink) RegionRendered(image.Rectangle) { s.regions++ }
