package orchestrator

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	mandel "github.com/marben/mandel_explorer"
)

var printer = message.NewPrinter(language.English)

// statusText renders the single status line shown after a job.
func (o *Orchestrator) statusText(s mandel.Statistics, p mandel.RenderParameters) string {
	var b strings.Builder
	printer.Fprintf(&b, "Rendered in %.3f ms | iterations min: %d avg: %.2f max: %d",
		s.Millis(), s.MinIterations, s.MeanIterations, s.MaxIterations)

	total := p.Size.Width * p.Size.Height
	if p.Variant == mandel.VariantBuddhabrot {
		total = p.SampleSize
	}
	if total > 0 {
		printer.Fprintf(&b, " | conv: %d div: %d", s.ConvergentPoints, total-s.ConvergentPoints)
	}
	if o.scale != nil && p.Region.MaxX != nil {
		b.WriteString(" | scale: ")
		b.WriteString(o.scale(p.Region))
	}
	return b.String()
}
