package mandel

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("-0.75", "-0.74", "0.1", "0.11")
	if err != nil {
		t.Fatalf("ParseRegion: %v", err)
	}
	if got, want := r.String(), "x[-0.75, -0.74] y[0.1, 0.11]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	minX, maxX, minY, maxY := r.Float64()
	if minX != -0.75 || maxX != -0.74 || minY != 0.1 || maxY != 0.11 {
		t.Errorf("Float64() = %v %v %v %v", minX, maxX, minY, maxY)
	}
}

func TestParseRegionRejects(t *testing.T) {
	for _, tc := range []struct {
		name                   string
		minX, maxX, minY, maxY string
	}{
		{"not a number", "a", "1", "-1", "1"},
		{"empty", "", "1", "-1", "1"},
		{"inverted x", "1", "-1", "-1", "1"},
		{"flat y", "-1", "1", "0.5", "0.5"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRegion(tc.minX, tc.maxX, tc.minY, tc.maxY)
			var inErr *InvalidInputError
			if !errors.As(err, &inErr) {
				t.Fatalf("err = %v, want *InvalidInputError", err)
			}
			if inErr.Field != "region" {
				t.Errorf("Field = %q, want region", inErr.Field)
			}
		})
	}
}

func TestRegionValidateMissingBound(t *testing.T) {
	if err := (Region{}).Validate(); err == nil {
		t.Fatal("zero Region validated")
	}
}

func TestPresetsAreValid(t *testing.T) {
	if err := DefaultRegion().Validate(); err != nil {
		t.Errorf("default region: %v", err)
	}
	for name, r := range Presets {
		if err := r.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestParseVariant(t *testing.T) {
	for s, want := range map[string]Variant{
		"Regular":    VariantRegular,
		"Buddhabrot": VariantBuddhabrot,
		"buddhabrot": VariantBuddhabrot,
		"julia":      VariantRegular,
		"":           VariantRegular,
	} {
		if got := ParseVariant(s); got != want {
			t.Errorf("ParseVariant(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseColouringMethod(t *testing.T) {
	for s, want := range map[string]ColouringMethod{
		"Red":     ColouringRed,
		"green":   ColouringGreen,
		"Blue":    ColouringBlue,
		"Regular": ColouringRegular,
		"purple":  ColouringRegular,
	} {
		if got := ParseColouringMethod(s); got != want {
			t.Errorf("ParseColouringMethod(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger is enabled")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("frame written", "index", 3)
	if !bytes.Contains(buf.Bytes(), []byte("index=3")) {
		t.Errorf("log output = %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	var err error = &IOError{Path: "frames/1.png", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("IOError does not unwrap")
	}
	err = &EngineError{Op: "initialize", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("EngineError does not unwrap")
	}
}
