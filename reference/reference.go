// Package reference provides the true value of the constants the experiments approximate,
// computed by the decimal backend to a requested number of significant digits.
package reference

import (
	"strings"

	"github.com/ericlagergren/decimal"
	"github.com/rs/zerolog"

	"github.com/dora-network/series-convergence/cache"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
)

type Constant int

const (
	Pi Constant = iota
	Zeta2
)

func (c Constant) String() string {
	switch c {
	case Pi:
		return "pi"
	case Zeta2:
		return "zeta2"
	default:
		return "unspecified"
	}
}

// ParseConstant accepts "pi" and "zeta2" (also "π" and "zeta(2)").
func ParseConstant(s string) (Constant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pi", "π":
		return Pi, nil
	case "zeta2", "zeta(2)", "ζ(2)":
		return Zeta2, nil
	default:
		return 0, errors.Configuration("unknown constant %q", s)
	}
}

// Value returns c to cfg.Digits significant digits. The value is computed with
// precision.GuardDigits extra digits and truncated, so a value at fewer digits is always a
// digit-for-digit prefix of the value at more digits.
func Value(c Constant, cfg precision.Config) (*decimal.Big, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	work := cfg.WithGuard(precision.GuardDigits).Context()
	z := new(decimal.Big)
	switch c {
	case Pi:
		work.Pi(z)
	case Zeta2:
		// ζ(2) = π²/6
		work.Pi(z)
		work.Mul(z, z, z)
		work.Quo(z, z, math.New(6))
	default:
		return nil, errors.Configuration("unknown constant %d", int(c))
	}
	if !z.IsFinite() {
		return nil, errors.Precision("backend did not produce a finite %s at %d digits", c, cfg.Digits)
	}
	truncate := decimal.Context{Precision: int(cfg.Digits), RoundingMode: decimal.ToZero}
	return truncate.Round(z), nil
}

type key struct {
	constant Constant
	digits   uint
}

// Provider memoises reference values per constant and digit count. A sweep asks for the
// same reference once per sample; computing π to a few thousand digits is not free.
type Provider struct {
	cache *cache.Cache[key, *decimal.Big]
}

func NewProvider(logger zerolog.Logger) *Provider {
	return &Provider{
		cache: cache.New[key, *decimal.Big](
			cache.WithComputeFunc[key, *decimal.Big](func(k key) (*decimal.Big, error) {
				return Value(k.constant, precision.Config{Digits: k.digits})
			}),
			cache.WithMaxEntries[key, *decimal.Big](64),
			cache.WithLogger[key, *decimal.Big](logger),
		),
	}
}

// Value returns a copy of the memoised value; callers may mutate it freely.
func (p *Provider) Value(c Constant, cfg precision.Config) (*decimal.Big, error) {
	v, err := p.cache.GetOrCompute(key{constant: c, digits: cfg.Digits})
	if err != nil {
		return nil, err
	}
	return math.Copy(v), nil
}

// Stats returns how many lookups were served from memory and how many were computed.
func (p *Provider) Stats() (hits, misses uint64) {
	return p.cache.Stats()
}
