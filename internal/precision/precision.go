// Package precision holds the two rounding policies of the explorer.
//
// Full is used for every computation on plane coordinates. Display only
// formats values for humans; it has no arithmetic, so display rounding can
// never leak into computed coordinates.
package precision

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

const (
	DefaultDigits        = 200
	DefaultDisplayDigits = 4
)

// Full is the computation rounding policy.
type Full struct {
	ctx *apd.Context
}

// NewFull returns a half-even policy with the given number of significant digits.
func NewFull(digits int) (Full, error) {
	ctx, err := newContext(digits)
	if err != nil {
		return Full{}, err
	}
	return Full{ctx: ctx}, nil
}

// Digits returns the number of significant digits kept.
func (f Full) Digits() int { return int(f.ctx.Precision) }

// Calc starts a computation under this policy.
func (f Full) Calc() *Calc { return &Calc{ctx: f.ctx} }

// Display is the human-readable rounding policy.
type Display struct {
	ctx *apd.Context
}

// NewDisplay returns a half-even formatting policy with the given number of digits.
func NewDisplay(digits int) (Display, error) {
	ctx, err := newContext(digits)
	if err != nil {
		return Display{}, err
	}
	return Display{ctx: ctx}, nil
}

// Format rounds x to the display precision and renders it.
func (d Display) Format(x *apd.Decimal) string {
	if x == nil {
		return "-"
	}
	var r apd.Decimal
	if _, err := d.ctx.Round(&r, x); err != nil {
		return x.String()
	}
	// plain notation unless the magnitude is extreme
	if adj := int64(r.Exponent) + r.NumDigits() - 1; adj >= -6 && adj <= 20 {
		return r.Text('f')
	}
	return r.String()
}

func newContext(digits int) (*apd.Context, error) {
	if digits < 1 || digits > apd.MaxExponent {
		return nil, fmt.Errorf("precision digits out of range: %d", digits)
	}
	ctx := apd.BaseContext.WithPrecision(uint32(digits))
	ctx.Rounding = apd.RoundHalfEven
	return ctx, nil
}

// Calc performs decimal arithmetic under a Full policy. Each operation
// returns a fresh value; the first failure is kept and reported by Err,
// after which results are meaningless.
type Calc struct {
	ctx *apd.Context
	err error
}

// Err returns the first error met by the computation.
func (c *Calc) Err() error { return c.err }

func (c *Calc) keep(op string, err error) {
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("%s: %w", op, err)
	}
}

func (c *Calc) Add(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	_, err := c.ctx.Add(d, x, y)
	c.keep("add", err)
	return d
}

func (c *Calc) Sub(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	_, err := c.ctx.Sub(d, x, y)
	c.keep("sub", err)
	return d
}

func (c *Calc) Mul(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	_, err := c.ctx.Mul(d, x, y)
	c.keep("mul", err)
	return d
}

func (c *Calc) Quo(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	_, err := c.ctx.Quo(d, x, y)
	c.keep("quo", err)
	return d
}

// Half returns x/2.
func (c *Calc) Half(x *apd.Decimal) *apd.Decimal {
	return c.Quo(x, apd.New(2, 0))
}

// Int converts an integer exactly.
func (c *Calc) Int(n int) *apd.Decimal {
	return apd.New(int64(n), 0)
}

// Float converts f through its shortest decimal representation, rounded
// to the policy precision.
func (c *Calc) Float(f float64) *apd.Decimal {
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		c.keep("float", err)
		return new(apd.Decimal)
	}
	r := new(apd.Decimal)
	_, err = c.ctx.Round(r, d)
	c.keep("round", err)
	return r
}

// Floor returns the largest integer not greater than x.
func (c *Calc) Floor(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	_, err := c.ctx.Floor(d, x)
	c.keep("floor", err)
	return d
}
