package mandel

import (
	"fmt"
	"time"
)

// Variant selects the computation the engine performs.
type Variant int

const (
	// VariantRegular is direct per-pixel escape-time iteration.
	VariantRegular Variant = iota
	// VariantBuddhabrot estimates the image from randomly sampled escape trajectories.
	VariantBuddhabrot
)

func (v Variant) String() string {
	switch v {
	case VariantBuddhabrot:
		return "Buddhabrot"
	default:
		return "Regular"
	}
}

// ParseVariant maps a display name to a Variant. Unknown names yield VariantRegular.
func ParseVariant(s string) Variant {
	switch s {
	case "Buddhabrot", "buddhabrot":
		return VariantBuddhabrot
	default:
		return VariantRegular
	}
}

// ColouringMethod selects how iteration counts become colours.
type ColouringMethod int

const (
	ColouringRegular ColouringMethod = iota
	ColouringRed
	ColouringGreen
	ColouringBlue
)

func (c ColouringMethod) String() string {
	switch c {
	case ColouringRed:
		return "Red"
	case ColouringGreen:
		return "Green"
	case ColouringBlue:
		return "Blue"
	default:
		return "Regular"
	}
}

// ParseColouringMethod maps a display name to a ColouringMethod.
// Unknown names yield ColouringRegular.
func ParseColouringMethod(s string) ColouringMethod {
	switch s {
	case "Red", "red":
		return ColouringRed
	case "Green", "green":
		return ColouringGreen
	case "Blue", "blue":
		return ColouringBlue
	default:
		return ColouringRegular
	}
}

// RenderParameters is the immutable description of one compute job.
type RenderParameters struct {
	Region             Region
	Size               OutputSize
	IterationLimit     int
	PrecisionDigits    int
	ArbitraryPrecision bool
	SampleSize         int
	Variant            Variant
	Colouring          ColouringMethod
}

func (p RenderParameters) String() string {
	return fmt.Sprintf("%s %s limit=%d samples=%d %s/%s",
		p.Region, p.Size, p.IterationLimit, p.SampleSize, p.Variant, p.Colouring)
}

// Statistics summarises a completed job.
type Statistics struct {
	MinIterations    int
	MeanIterations   float64
	MaxIterations    int
	ConvergentPoints int
	RenderTime       time.Duration
}

// Millis returns the render time in milliseconds.
func (s Statistics) Millis() float64 {
	return float64(s.RenderTime) / float64(time.Millisecond)
}

// JobRecord is the journal entry of a finished or failed job.
type JobRecord struct {
	ID          string
	Kind        string
	Params      RenderParameters
	Stats       Statistics
	SubmittedAt time.Time
	FinishedAt  time.Time
	Err         string
}
