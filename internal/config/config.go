// Package config loads explorer and engine host settings from flags, with
// defaults taken from MANDEL_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/artifact"
	"github.com/marben/mandel_explorer/internal/precision"
)

type Config struct {
	// interactive view
	Size    mandel.OutputSize
	Preset  string
	Actions string

	// renderer settings
	IterationLimit     int
	PrecisionDigits    int
	DisplayDigits      int
	ArbitraryPrecision bool
	SampleSize         int
	Variant            string
	Colouring          string
	AutoIterations     bool

	// artifacts
	OutDir       string
	FramePattern string
	SingleName   string
	Journal      string
	History      int

	// full-resolution and chain renders
	FullResSize    mandel.OutputSize
	ChainSize      mandel.OutputSize
	ChainLimit     int
	ChainSamples   int
	ChainStep      int
	ChainStart     int
	ChainLastFrame int

	// engine
	Engine   string
	Workers  int
	TileSize int
	TCPAddr  string
	HTTPAddr string
}

// Default returns the settings of a fresh explorer.
func Default() Config {
	return Config{
		Size:            mandel.OutputSize{Width: 800, Height: 600},
		Preset:          "default",
		IterationLimit:  50,
		PrecisionDigits: precision.DefaultDigits,
		DisplayDigits:   precision.DefaultDisplayDigits,
		SampleSize:      1,
		Variant:         mandel.VariantRegular.String(),
		Colouring:       mandel.ColouringRegular.String(),
		OutDir:          "frames",
		FramePattern:    "%d.png",
		SingleName:      "fractal.png",
		History:         5,
		FullResSize:     mandel.OutputSize{Width: 2000, Height: 2000},
		ChainSize:       mandel.OutputSize{Width: 1024, Height: 1024},
		ChainLimit:      4000,
		ChainSamples:    100000,
		ChainStep:       100,
		ChainStart:      0,
		ChainLastFrame:  9,
		Engine:          "local",
		Workers:         runtime.NumCPU(),
		TileSize:        64,
		TCPAddr:         ":8081",
		HTTPAddr:        ":8080",
	}
}

// Load parses args over the environment over Default.
func Load(name string, args []string) (Config, error) {
	return load(name, args, os.Getenv)
}

func load(name string, args []string, getenv func(string) string) (Config, error) {
	c := Default()
	e := env{getenv: getenv}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Var(sizeValue{&c.Size}, "size", "output size WxH")
	fs.StringVar(&c.Preset, "preset", e.str("PRESET", c.Preset), "start region: default, "+strings.Join(presetNames(), ", "))
	fs.StringVar(&c.Actions, "actions", e.str("ACTIONS", c.Actions), "comma separated actions: render, zoom:X:Y:F, select:X0:Y0:X1:Y1, reset, star, chain")

	fs.IntVar(&c.IterationLimit, "iterations", e.num("ITERATIONS", c.IterationLimit), "iteration limit")
	fs.IntVar(&c.PrecisionDigits, "precision", e.num("PRECISION", c.PrecisionDigits), "significant digits of plane coordinates")
	fs.IntVar(&c.DisplayDigits, "display-digits", e.num("DISPLAY_DIGITS", c.DisplayDigits), "significant digits shown to the user")
	fs.BoolVar(&c.ArbitraryPrecision, "arbitrary", e.toggle("ARBITRARY", c.ArbitraryPrecision), "iterate in decimal arithmetic")
	fs.IntVar(&c.SampleSize, "samples", e.num("SAMPLES", c.SampleSize), "samples per pixel, or total samples for Buddhabrot")
	fs.StringVar(&c.Variant, "variant", e.str("VARIANT", c.Variant), "Regular or Buddhabrot")
	fs.StringVar(&c.Colouring, "colouring", e.str("COLOURING", c.Colouring), "Regular, Red, Green or Blue")
	fs.BoolVar(&c.AutoIterations, "auto", e.toggle("AUTO", c.AutoIterations), "adapt the iteration limit to the previous render")

	fs.StringVar(&c.OutDir, "out", e.str("OUT", c.OutDir), "output directory")
	fs.StringVar(&c.FramePattern, "frame-pattern", e.str("FRAME_PATTERN", c.FramePattern), "chain frame file name pattern")
	fs.StringVar(&c.SingleName, "single-name", e.str("SINGLE_NAME", c.SingleName), "full-resolution render file name")
	fs.StringVar(&c.Journal, "journal", e.str("JOURNAL", c.Journal), "sqlite journal path, empty to disable")
	fs.IntVar(&c.History, "history", e.num("HISTORY", c.History), "journaled jobs listed after the script")

	fs.Var(sizeValue{&c.FullResSize}, "fullres-size", "full-resolution render size WxH")
	fs.Var(sizeValue{&c.ChainSize}, "chain-size", "chain frame size WxH")
	fs.IntVar(&c.ChainLimit, "chain-iterations", e.num("CHAIN_ITERATIONS", c.ChainLimit), "iteration limit of chain frames")
	fs.IntVar(&c.ChainSamples, "chain-samples", e.num("CHAIN_SAMPLES", c.ChainSamples), "sample size of the first chain frame")
	fs.IntVar(&c.ChainStep, "chain-step", e.num("CHAIN_STEP", c.ChainStep), "sample size growth per chain frame")
	fs.IntVar(&c.ChainStart, "chain-start", e.num("CHAIN_START", c.ChainStart), "index of the first chain frame")
	fs.IntVar(&c.ChainLastFrame, "chain-last", e.num("CHAIN_LAST", c.ChainLastFrame), "index of the last chain frame")

	fs.StringVar(&c.Engine, "engine", e.str("ENGINE", c.Engine), "local, tcp://host:port or ws://host:port/ws")
	fs.IntVar(&c.Workers, "workers", e.num("WORKERS", c.Workers), "rendering goroutines of a local engine")
	fs.IntVar(&c.TileSize, "tile", e.num("TILE", c.TileSize), "tile edge of a local engine")
	fs.StringVar(&c.TCPAddr, "tcp", e.str("TCP", c.TCPAddr), "engine host tcp listen address")
	fs.StringVar(&c.HTTPAddr, "http", e.str("HTTP", c.HTTPAddr), "engine host websocket listen address")

	// size defaults from the environment
	for key, dst := range map[string]*mandel.OutputSize{"SIZE": &c.Size, "FULLRES_SIZE": &c.FullResSize, "CHAIN_SIZE": &c.ChainSize} {
		if v := getenv(envPrefix + key); v != "" {
			s, err := ParseSize(v)
			if err != nil {
				e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
				continue
			}
			*dst = s
		}
	}
	if err := errors.Join(e.errs...); err != nil {
		return Config{}, err
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field, value, reason string) {
		if !ok {
			errs = append(errs, &mandel.InvalidInputError{Field: field, Value: value, Reason: reason})
		}
	}
	check(c.Size.Width > 0 && c.Size.Height > 0, "size", c.Size.String(), "must be positive")
	check(c.FullResSize.Width > 0 && c.FullResSize.Height > 0, "fullres-size", c.FullResSize.String(), "must be positive")
	check(c.ChainSize.Width > 0 && c.ChainSize.Height > 0, "chain-size", c.ChainSize.String(), "must be positive")
	check(c.IterationLimit > 0, "iterations", strconv.Itoa(c.IterationLimit), "must be positive")
	check(c.PrecisionDigits > 0, "precision", strconv.Itoa(c.PrecisionDigits), "must be positive")
	check(c.DisplayDigits > 0, "display-digits", strconv.Itoa(c.DisplayDigits), "must be positive")
	check(c.SampleSize > 0, "samples", strconv.Itoa(c.SampleSize), "must be positive")
	check(c.ChainLimit > 0, "chain-iterations", strconv.Itoa(c.ChainLimit), "must be positive")
	check(c.ChainSamples > 0, "chain-samples", strconv.Itoa(c.ChainSamples), "must be positive")
	check(c.History >= 0, "history", strconv.Itoa(c.History), "must not be negative")
	check(c.ChainStep >= 0, "chain-step", strconv.Itoa(c.ChainStep), "must not be negative")
	check(c.ChainStart >= 0, "chain-start", strconv.Itoa(c.ChainStart), "must not be negative")
	check(c.ChainLastFrame >= c.ChainStart, "chain-last", strconv.Itoa(c.ChainLastFrame), "precedes chain-start")
	check(c.Workers > 0, "workers", strconv.Itoa(c.Workers), "must be positive")
	check(c.TileSize > 0, "tile", strconv.Itoa(c.TileSize), "must be positive")
	check(strings.Contains(c.FramePattern, "%d"), "frame-pattern", c.FramePattern, "needs a %d verb")
	if _, err := c.Region(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Region returns the start region named by Preset.
func (c Config) Region() (mandel.Region, error) {
	if c.Preset == "" || c.Preset == "default" {
		return mandel.DefaultRegion(), nil
	}
	r, ok := mandel.Presets[c.Preset]
	if !ok {
		return mandel.Region{}, &mandel.InvalidInputError{Field: "preset", Value: c.Preset, Reason: "unknown region"}
	}
	return r, nil
}

// Resolver names the artifacts inside OutDir.
func (c Config) Resolver() artifact.DirResolver {
	return artifact.DirResolver{Dir: c.OutDir, FramePattern: c.FramePattern, SingleName: c.SingleName}
}

// ParseSize parses "WxH".
func ParseSize(s string) (mandel.OutputSize, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return mandel.OutputSize{}, &mandel.InvalidInputError{Field: "size", Value: s, Reason: "want WxH"}
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || width < 1 || height < 1 {
		return mandel.OutputSize{}, &mandel.InvalidInputError{Field: "size", Value: s, Reason: "want positive integers WxH"}
	}
	return mandel.OutputSize{Width: width, Height: height}, nil
}

type sizeValue struct{ s *mandel.OutputSize }

func (v sizeValue) String() string {
	if v.s == nil {
		return ""
	}
	return v.s.String()
}

func (v sizeValue) Set(s string) error {
	size, err := ParseSize(s)
	if err != nil {
		return err
	}
	*v.s = size
	return nil
}

const envPrefix = "MANDEL_"

// env reads typed defaults from the environment. Malformed values are
// collected rather than silently ignored.
type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) str(key, fallback string) string {
	if v := e.getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func (e *env) num(key string, fallback int) int {
	v := e.getenv(envPrefix + key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return fallback
	}
	return n
}

func (e *env) toggle(key string, fallback bool) bool {
	v := e.getenv(envPrefix + key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return fallback
	}
	return b
}

func presetNames() []string {
	names := make([]string, 0, len(mandel.Presets))
	for name := range mandel.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
