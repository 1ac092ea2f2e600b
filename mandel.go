package mandel

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Region is a rectangular window of the complex plane.
// Its decimals are never mutated once the Region is built.
type Region struct {
	MinX, MinY *apd.Decimal
	MaxX, MaxY *apd.Decimal
}

// ParseRegion builds a Region from decimal strings.
func ParseRegion(minX, maxX, minY, maxY string) (Region, error) {
	var r Region
	for _, f := range []struct {
		dst **apd.Decimal
		s   string
	}{{&r.MinX, minX}, {&r.MaxX, maxX}, {&r.MinY, minY}, {&r.MaxY, maxY}} {
		d, _, err := apd.NewFromString(f.s)
		if err != nil {
			return Region{}, &InvalidInputError{Field: "region", Value: f.s, Reason: "not a decimal number"}
		}
		*f.dst = d
	}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

func mustRegion(minX, maxX, minY, maxY string) Region {
	r, err := ParseRegion(minX, maxX, minY, maxY)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks that the region has a positive extent on both axes.
func (r Region) Validate() error {
	if r.MinX == nil || r.MinY == nil || r.MaxX == nil || r.MaxY == nil {
		return &InvalidInputError{Field: "region", Reason: "missing bound"}
	}
	if r.MaxX.Cmp(r.MinX) <= 0 {
		return &InvalidInputError{Field: "region", Value: r.String(), Reason: "maxX must exceed minX"}
	}
	if r.MaxY.Cmp(r.MinY) <= 0 {
		return &InvalidInputError{Field: "region", Value: r.String(), Reason: "maxY must exceed minY"}
	}
	return nil
}

// Float64 returns the bounds rounded to float64, in minX, maxX, minY, maxY order.
func (r Region) Float64() (minX, maxX, minY, maxY float64) {
	minX, _ = r.MinX.Float64()
	maxX, _ = r.MaxX.Float64()
	minY, _ = r.MinY.Float64()
	maxY, _ = r.MaxY.Float64()
	return minX, maxX, minY, maxY
}

func (r Region) String() string {
	return fmt.Sprintf("x[%s, %s] y[%s, %s]", r.MinX, r.MaxX, r.MinY, r.MaxY)
}

// DefaultRegion is the canonical full view of the Mandelbrot set.
func DefaultRegion() Region {
	return mustRegion("-2", "1", "-1.5", "1.5")
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = mustRegion("-0.8", "-0.7", "0.05", "0.15")

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = mustRegion("-1.85", "-1.75", "-0.10", "-0.02")

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = mustRegion("-0.7435", "-0.7420", "0.1310", "0.1325")

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = mustRegion("-0.7480", "-0.7450", "0.0950", "0.0980")

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = mustRegion("-0.7400", "-0.7350", "0.1800", "0.1850")

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = mustRegion("-1.7390", "-1.7375", "-0.0235", "-0.0220")
)

// Presets maps preset names accepted on the command line to regions.
var Presets = map[string]Region{
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"spiral":     SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}

// OutputSize is the pixel size of a rendered image.
type OutputSize struct {
	Width, Height int
}

func (s OutputSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
