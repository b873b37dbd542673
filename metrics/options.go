package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type (
	Option                func(*Server)
	InstrumentationOption func(instrumentation *Instrumentation)
)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithRegistry serves reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.reg = reg
	}
}

func WithCounter(instrumentationType InstrumentationType, name, help string) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.Counters[instrumentationType] = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
		})
	}
}

func WithCounterVec(instrumentationType InstrumentationType, name, help string, labels []string) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.CounterVecs[instrumentationType] = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}
}

func WithGaugeVec(instrumentationType InstrumentationType, name, help string, labels []string) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.GaugeVecs[instrumentationType] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}
}

func WithHistogramVec(instrumentationType InstrumentationType, name, help string, labels []string, buckets []float64) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.HistogramVecs[instrumentationType] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}, labels)
	}
}
