package series

import (
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	mdecimal "github.com/dora-network/series-convergence/math/decimal"
	"github.com/dora-network/series-convergence/validation"
)

// Mode names a correction strategy in its configuration form.
type Mode string

const (
	ModeNone           Mode = "none"
	ModeFixedMachin    Mode = "fixed-machin"
	ModeScaledMachin   Mode = "scaled-machin"
	ModeAsymptoticTail Mode = "asymptotic-tail"
	ModeDecay          Mode = "decay"
)

// Spec is the configuration form of a Correction, as read from a config file or flags.
// Fields that do not apply to Mode are ignored. Machin based modes fall back to
// MachinTerms when Terms is empty.
type Spec struct {
	Mode     Mode   `mapstructure:"mode" json:"mode"`
	Terms    []Term `mapstructure:"terms" json:"terms,omitempty"`
	Cutoff   int    `mapstructure:"cutoff" json:"cutoff,omitempty"`
	Exponent string `mapstructure:"exponent" json:"exponent,omitempty"`
	Tail     string `mapstructure:"tail" json:"tail,omitempty"`
	Order    int    `mapstructure:"order" json:"order,omitempty"`
	Decay    string `mapstructure:"decay" json:"decay,omitempty"`
}

// DefaultSpec is Machin's formula added as a fixed correction.
func DefaultSpec() Spec {
	return Spec{Mode: ModeFixedMachin, Terms: MachinTerms()}
}

func (s Spec) machin() FixedMachin {
	terms := s.Terms
	if len(terms) == 0 {
		terms = MachinTerms()
	}
	return FixedMachin{Terms: terms, Cutoff: s.Cutoff}
}

// exponent is nil when unset. Negative exponents are rejected, so the correction never
// grows with n.
func (s Spec) exponent() (*decimal.Big, error) {
	if strings.TrimSpace(s.Exponent) == "" {
		return nil, nil
	}
	d, err := validation.ParseExponent(s.Exponent)
	if err != nil {
		return nil, err
	}
	return mdecimal.ToBig(d), nil
}

// Correction builds the strategy s describes.
func (s Spec) Correction() (Correction, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(string(s.Mode)))) {
	case "", ModeNone:
		return None{}, nil
	case ModeFixedMachin:
		return s.machin(), nil
	case ModeScaledMachin:
		p, err := s.exponent()
		if err != nil {
			return nil, err
		}
		return ScaledMachin{Base: s.machin(), Exponent: p}, nil
	case ModeAsymptoticTail:
		family, err := ParseTailFamily(s.Tail)
		if err != nil {
			return nil, err
		}
		tail := AsymptoticTail{Family: family, Order: s.Order}
		if err := tail.Validate(); err != nil {
			return nil, err
		}
		return tail, nil
	case ModeDecay:
		mode, err := ParseDecayMode(s.Decay)
		if err != nil {
			return nil, err
		}
		p, err := s.exponent()
		if err != nil {
			return nil, err
		}
		return NamedDecayMode{Mode: mode, Base: s.machin(), Exponent: p}, nil
	default:
		return nil, errors.Configuration("unknown correction mode %q", s.Mode)
	}
}

// String describes the correction s builds, or the raw mode when it cannot be built.
func (s Spec) String() string {
	c, err := s.Correction()
	if err != nil {
		return string(s.Mode)
	}
	return c.String()
}
