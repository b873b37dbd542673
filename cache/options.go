package cache

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dora-network/series-convergence/errors"
)

type options[K comparable, V any] struct {
	computeFunc ComputeFunc[K, V]
	maxEntries  int
	logger      zerolog.Logger
}

type Option[K comparable, V any] func(options[K, V]) options[K, V]

// ComputeFunc produces the value for a key on a cache miss.
type ComputeFunc[K comparable, V any] func(key K) (V, error)

// WithComputeFunc sets the function used to fill the cache on a miss.
func WithComputeFunc[K comparable, V any](computeFunc ComputeFunc[K, V]) Option[K, V] {
	return func(o options[K, V]) options[K, V] {
		o.computeFunc = computeFunc
		return o
	}
}

// WithMaxEntries bounds the number of stored entries; 0 means unbounded.
func WithMaxEntries[K comparable, V any](n int) Option[K, V] {
	return func(o options[K, V]) options[K, V] {
		o.maxEntries = n
		return o
	}
}

// WithLogger sets the logger to use for the cache.
func WithLogger[K comparable, V any](logger zerolog.Logger) Option[K, V] {
	return func(o options[K, V]) options[K, V] {
		o.logger = logger
		return o
	}
}

func defaultOptions[K comparable, V any]() options[K, V] {
	return options[K, V]{
		// This should be overridden with a real compute function
		computeFunc: missingComputeFunc[K, V],
		logger:      zerolog.Nop(),
	}
}

func applyOptions[K comparable, V any](opts ...Option[K, V]) options[K, V] {
	o := defaultOptions[K, V]()
	for _, opt := range opts {
		o = opt(o)
	}
	return o
}

// In case we forget to provide a compute function every miss is reported as an error.
func missingComputeFunc[K comparable, V any](key K) (V, error) {
	var zero V
	return zero, errors.NewInternal(fmt.Sprintf("no compute function for key %v", key))
}
