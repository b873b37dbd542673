package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	// InvalidArgumentError indicates a bad input: a bad n, digit count, sample set or residual.
	InvalidArgumentError ErrorType = "InvalidArgument"
	// PrecisionErr indicates the requested precision exceeds what the decimal backend guarantees.
	PrecisionErr ErrorType = "Precision"
	// ConfigurationErr indicates an unknown correction mode, constant or series name.
	ConfigurationErr ErrorType = "Configuration"
	// InternalError indicates an internal error.
	InternalError ErrorType = "Internal"
)

var (
	// ErrZeroTerms error for when a series is asked to approximate with n = 0.
	ErrZeroTerms = New(InvalidArgumentError, "n must be a positive integer")
	// ErrNoSamples error for when an analysis is requested without any sample point.
	ErrNoSamples = New(InvalidArgumentError, "at least one sample is required")
	// ErrSamplesNotAscending error for when sample points are not strictly increasing.
	ErrSamplesNotAscending = New(InvalidArgumentError, "samples must be strictly increasing")
	// ErrTooFewSamples error for when a fit is requested with fewer than two points.
	ErrTooFewSamples = New(InvalidArgumentError, "at least two samples are required to fit")
	// ErrNonPositiveResidual error for when a log-based estimator is fed a residual <= 0.
	ErrNonPositiveResidual = New(InvalidArgumentError, "residual must be positive for a log fit")
	// ErrZeroDigits error for when a precision of 0 digits is requested.
	ErrZeroDigits = New(InvalidArgumentError, "digits must be positive")
	// ErrEmptyMachin error for when a Machin correction has no terms.
	ErrEmptyMachin = New(ConfigurationErr, "machin correction needs at least one term")
	// ErrZeroDenominator error for when an arctangent argument has a zero denominator.
	ErrZeroDenominator = New(InvalidArgumentError, "arctangent denominator must not be zero")

	ErrInvalidInput                  = New(InvalidArgumentError, "invalid input")
	ErrValueMustBeExpressedAsInteger = InvalidArgument("value must be expressed as an integer")
	ErrValueMustBePositive           = InvalidArgument("value must be positive")
)

// TypedError represents an error with a specific type.
type TypedError struct {
	Type ErrorType
	Err  error
}

// Is returns true if err, or any error it wraps, is a *TypedError of the given Type.
func Is(err error, typ ErrorType) bool {
	var e *TypedError
	if errors.As(err, &e) {
		return e.Type == typ
	}
	return false
}

// TypeOf returns the ErrorType of the first *TypedError in err's chain, or InternalError.
func TypeOf(err error) ErrorType {
	var e *TypedError
	if errors.As(err, &e) {
		return e.Type
	}
	return InternalError
}

// Error implements the error interface for TypedError.
func (e *TypedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TypedError) Unwrap() error {
	return e.Err
}

// New creates a new TypedError with the given error type and message.
func New(errorType ErrorType, message string) *TypedError {
	return &TypedError{Type: errorType, Err: errors.New(message)}
}

// Newf creates a new TypedError with the given error type and message.
func Newf(errorType ErrorType, message string, a ...any) *TypedError {
	return &TypedError{Type: errorType, Err: fmt.Errorf(message, a...)}
}

// NewInternal creates a new internal error with the given message.
func NewInternal(message string) *TypedError {
	return &TypedError{Type: InternalError, Err: errors.New(message)}
}

// Wrap creates a new TypedError by wrapping an existing error with an additional message.
func Wrap(errorType ErrorType, err error, message string) *TypedError {
	return &TypedError{Type: errorType, Err: fmt.Errorf("%s: %w", message, err)}
}

// InvalidArgument creates a new invalid argument error
func InvalidArgument(message string, a ...any) *TypedError {
	return &TypedError{Type: InvalidArgumentError, Err: fmt.Errorf(message, a...)}
}

// Precision creates a new precision error
func Precision(message string, a ...any) *TypedError {
	return &TypedError{Type: PrecisionErr, Err: fmt.Errorf(message, a...)}
}

// Configuration creates a new configuration error
func Configuration(message string, a ...any) *TypedError {
	return &TypedError{Type: ConfigurationErr, Err: fmt.Errorf(message, a...)}
}

// SampleError attaches the offending sample point and correction spec to an error raised
// while analysing a sweep. Is and TypeOf see through it.
type SampleError struct {
	N    uint64
	Spec string
	Err  error
}

// AtSample wraps err with the sample point n and the spec description.
func AtSample(n uint64, spec string, err error) *SampleError {
	return &SampleError{N: n, Spec: spec, Err: err}
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample n=%d (%s): %v", e.N, e.Spec, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}
