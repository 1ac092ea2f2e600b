package explorer

import (
	"strconv"
	"strings"

	mandel "github.com/marben/mandel_explorer"
)

// Settings are the renderer settings of interactive and full-resolution jobs.
type Settings struct {
	IterationLimit     int
	PrecisionDigits    int
	ArbitraryPrecision bool
	SampleSize         int
	Variant            mandel.Variant
	Colouring          mandel.ColouringMethod
	AutoIterations     bool
}

// SettingsForm is the textual form the user edits. The explorer writes the
// adapted iteration limit back into it.
type SettingsForm struct {
	MaxIterations      string
	PrecisionDigits    string
	SampleSize         string
	Variant            string
	Colouring          string
	ArbitraryPrecision bool
	AutoIterations     bool
}

// FormOf renders s as a form.
func FormOf(s Settings) SettingsForm {
	return SettingsForm{
		MaxIterations:      strconv.Itoa(s.IterationLimit),
		PrecisionDigits:    strconv.Itoa(s.PrecisionDigits),
		SampleSize:         strconv.Itoa(s.SampleSize),
		Variant:            s.Variant.String(),
		Colouring:          s.Colouring.String(),
		ArbitraryPrecision: s.ArbitraryPrecision,
		AutoIterations:     s.AutoIterations,
	}
}

// Parse validates the form. Unknown variant and colouring names fall back
// to Regular.
func (f SettingsForm) Parse() (Settings, error) {
	limit, err := positive("max iterations", f.MaxIterations)
	if err != nil {
		return Settings{}, err
	}
	digits, err := positive("precision digits", f.PrecisionDigits)
	if err != nil {
		return Settings{}, err
	}
	samples, err := positive("sample size", f.SampleSize)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		IterationLimit:     limit,
		PrecisionDigits:    digits,
		ArbitraryPrecision: f.ArbitraryPrecision,
		SampleSize:         samples,
		Variant:            mandel.ParseVariant(strings.TrimSpace(f.Variant)),
		Colouring:          mandel.ParseColouringMethod(strings.TrimSpace(f.Colouring)),
		AutoIterations:     f.AutoIterations,
	}, nil
}

func positive(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &mandel.InvalidInputError{Field: field, Value: s, Reason: "not an integer"}
	}
	if n < 1 {
		return 0, &mandel.InvalidInputError{Field: field, Value: s, Reason: "must be positive"}
	}
	return n, nil
}
