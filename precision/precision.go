// Package precision carries the number of significant decimal digits used by every
// high-precision computation. The value is passed explicitly into each call; nothing in
// this module keeps a process-wide precision.
package precision

import (
	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
)

const (
	// DefaultDigits matches the 50 digits the experiments were run with.
	DefaultDigits = 50
	// MaxDigits is the largest precision we accept. Pi, Atan and Log in the decimal backend
	// stay tractable well past this, but a sweep at more digits is not something we support.
	MaxDigits = 10_000
	// GuardDigits are carried on top of the requested digits when computing reference values.
	GuardDigits = 10
	// SafetyDigits is the headroom a residual must keep below the working precision to be
	// trusted as a measurement rather than rounding noise.
	SafetyDigits = 5
)

type Config struct {
	Digits uint `mapstructure:"digits" json:"digits"`
}

func DefaultConfig() Config {
	return Config{Digits: DefaultDigits}
}

// New returns a validated Config.
func New(digits uint) (Config, error) {
	cfg := Config{Digits: digits}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Digits == 0 {
		return errors.ErrZeroDigits
	}
	if c.Digits > MaxDigits {
		return errors.Precision("%d digits requested, at most %d are supported", c.Digits, MaxDigits)
	}
	return nil
}

// Context returns a decimal context rounding half-even at c.Digits significant digits.
func (c Config) Context() decimal.Context {
	return decimal.Context{
		Precision:    int(c.Digits),
		RoundingMode: decimal.ToNearestEven,
	}
}

// WithGuard returns c widened by extra digits.
func (c Config) WithGuard(extra uint) Config {
	return Config{Digits: c.Digits + extra}
}

// Covers reports whether residual is still SafetyDigits above the rounding floor of an O(1)
// quantity computed at c.Digits. A zero residual is never covered.
func (c Config) Covers(residual *decimal.Big) bool {
	if residual == nil || residual.Sign() == 0 || !residual.IsFinite() {
		return false
	}
	adjusted := residual.Precision() - residual.Scale() - 1
	return -adjusted <= int(c.Digits)-SafetyDigits
}
