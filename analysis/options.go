package analysis

import (
	"github.com/rs/zerolog"

	"github.com/dora-network/series-convergence/reference"
)

// DefaultOrders are the k of the scaled residuals δ(n)·n^k reported for every sample.
var DefaultOrders = []int{1, 2, 3, 5, 7}

// Limits bound the work a single sweep may request. They are checked before anything runs.
type Limits struct {
	MaxN       uint64 `mapstructure:"max_n" json:"max_n"`
	MaxSamples int    `mapstructure:"max_samples" json:"max_samples"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxN:       10_000_000,
		MaxSamples: 1000,
	}
}

type options struct {
	orders   []int
	workers  int
	limits   Limits
	observer Observer
	logger   zerolog.Logger
	provider *reference.Provider
}

type Option func(options) options

// WithOrders sets the scaled residual orders.
func WithOrders(orders ...int) Option {
	return func(o options) options {
		o.orders = append([]int(nil), orders...)
		return o
	}
}

// WithWorkers evaluates up to n samples concurrently. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(o options) options {
		o.workers = n
		return o
	}
}

func WithLimits(limits Limits) Option {
	return func(o options) options {
		o.limits = limits
		return o
	}
}

// WithObserver sets the observer notified about every evaluated sample.
func WithObserver(observer Observer) Option {
	return func(o options) options {
		o.observer = observer
		return o
	}
}

// WithLogger sets the logger to use for the analyzer.
func WithLogger(logger zerolog.Logger) Option {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// WithProvider shares a reference value provider between analyzers.
func WithProvider(provider *reference.Provider) Option {
	return func(o options) options {
		o.provider = provider
		return o
	}
}

func defaultOptions() options {
	return options{
		orders:   DefaultOrders,
		workers:  1,
		limits:   DefaultLimits(),
		observer: nopObserver{},
		logger:   zerolog.Nop(),
	}
}

func applyOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		o = opt(o)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.provider == nil {
		o.provider = reference.NewProvider(o.logger)
	}
	return o
}
