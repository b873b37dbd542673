package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/dora-network/series-convergence/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs(t *testing.T) {
	tcs := []struct {
		name string
		err  error
		typ  errors.ErrorType
		exp  bool
	}{
		{"direct match", errors.InvalidArgument("bad n %d", -1), errors.InvalidArgumentError, true},
		{"type mismatch", errors.Precision("too many digits"), errors.InvalidArgumentError, false},
		{"wrapped by fmt", fmt.Errorf("outer: %w", errors.Configuration("unknown mode")), errors.ConfigurationErr, true},
		{"wrapped by sample", errors.AtSample(10, "fixed-machin", errors.ErrNonPositiveResidual), errors.InvalidArgumentError, true},
		{"plain error", stderrors.New("boom"), errors.InternalError, false},
		{"nil", nil, errors.InternalError, false},
	}

	for _, tc := range tcs {
		t.Run(
			tc.name, func(t *testing.T) {
				assert.Equal(t, tc.exp, errors.Is(tc.err, tc.typ))
			},
		)
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, errors.PrecisionErr, errors.TypeOf(errors.AtSample(3, "none", errors.Precision("x"))))
	assert.Equal(t, errors.InternalError, errors.TypeOf(stderrors.New("untyped")))
}

func TestSampleError(t *testing.T) {
	err := errors.AtSample(100, "scaled-machin p=2", errors.ErrZeroDenominator)
	require.EqualError(t, err, "sample n=100 (scaled-machin p=2): arctangent denominator must not be zero")
	require.ErrorIs(t, err, errors.ErrZeroDenominator)

	var se *errors.SampleError
	require.ErrorAs(t, fmt.Errorf("analysis: %w", err), &se)
	assert.Equal(t, uint64(100), se.N)
	assert.Equal(t, "scaled-machin p=2", se.Spec)
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("cause")
	err := errors.Wrap(errors.ConfigurationErr, inner, "loading config")
	require.EqualError(t, err, "loading config: cause")
	require.ErrorIs(t, err, inner)
	assert.True(t, errors.Is(err, errors.ConfigurationErr))
}
