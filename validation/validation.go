package validation

import (
	"strconv"
	"strings"

	"github.com/govalues/decimal"

	"github.com/dora-network/series-convergence/errors"
	mdecimal "github.com/dora-network/series-convergence/math/decimal"
)

func ValidateDecimalIsInt(value interface{}) error {
	_, err := decimalValueIsInt(value)
	return err
}

func decimalValueIsInt(value interface{}) (decimal.Decimal, error) {
	v, ok := value.(decimal.Decimal)
	if !ok {
		return v, errors.ErrInvalidInput
	}
	if !v.IsInt() {
		return v, errors.ErrValueMustBeExpressedAsInteger
	}
	return v, nil
}

func ValidateDecimalIsPositiveInt(value interface{}) error {
	v, err := decimalValueIsInt(value)
	if err != nil {
		return err
	}
	if v.IsNeg() || v.IsZero() {
		return errors.ErrValueMustBePositive
	}
	return nil
}

func ValidateNonNegativeDecimal(value interface{}) error {
	v, ok := value.(decimal.Decimal)
	if !ok {
		return errors.ErrInvalidInput
	}
	if v.IsNeg() {
		return errors.InvalidArgument("%s must not be negative", v)
	}
	return nil
}

// ParseInt parses s as an integer-valued decimal ("12", "12.0", "-3").
func ParseInt(s string) (int64, error) {
	d, err := mdecimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if err := ValidateDecimalIsInt(d); err != nil {
		return 0, errors.Wrap(errors.InvalidArgumentError, err, s)
	}
	v, err := strconv.ParseInt(d.Trunc(0).String(), 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.InvalidArgumentError, err, s)
	}
	return v, nil
}

// ParseSample parses a sample point n. Negative, zero and non-integer values are rejected.
func ParseSample(s string) (uint64, error) {
	d, err := mdecimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if err := ValidateDecimalIsPositiveInt(d); err != nil {
		return 0, errors.Wrap(errors.InvalidArgumentError, err, "sample "+s)
	}
	n, err := strconv.ParseUint(d.Trunc(0).String(), 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.InvalidArgumentError, err, "sample "+s)
	}
	return n, nil
}

// ParseSamples parses every sample and checks that they are strictly increasing.
func ParseSamples(values []string) ([]uint64, error) {
	samples := make([]uint64, len(values))
	for i, v := range values {
		n, err := ParseSample(v)
		if err != nil {
			return nil, err
		}
		samples[i] = n
	}
	if err := ValidateAscending(samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// ValidateAscending checks that samples is non-empty and strictly increasing.
func ValidateAscending(samples []uint64) error {
	if len(samples) == 0 {
		return errors.ErrNoSamples
	}
	for i := 1; i < len(samples); i++ {
		if samples[i] <= samples[i-1] {
			return errors.Wrap(errors.InvalidArgumentError, errors.ErrSamplesNotAscending,
				strconv.FormatUint(samples[i], 10)+" follows "+strconv.FormatUint(samples[i-1], 10))
		}
	}
	return nil
}

// ParseTriple parses a Machin term written as "a:b/c", meaning a·arctan(b/c).
// "a:c" is shorthand for a·arctan(1/c).
func ParseTriple(s string) (coefficient, numerator, denominator int64, err error) {
	coef, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, 0, errors.InvalidArgument("term %q must look like a:b/c", s)
	}
	num, den, hasNum := strings.Cut(arg, "/")
	if !hasNum {
		num, den = "1", arg
	}
	if coefficient, err = ParseInt(coef); err != nil {
		return 0, 0, 0, err
	}
	if numerator, err = ParseInt(num); err != nil {
		return 0, 0, 0, err
	}
	if denominator, err = ParseInt(den); err != nil {
		return 0, 0, 0, err
	}
	if denominator == 0 {
		return 0, 0, 0, errors.ErrZeroDenominator
	}
	return coefficient, numerator, denominator, nil
}

// ParseExponent parses a non-negative decay exponent such as "1", "2" or "1.5".
func ParseExponent(s string) (decimal.Decimal, error) {
	d, err := mdecimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := ValidateNonNegativeDecimal(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}
