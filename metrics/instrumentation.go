package metrics

import "github.com/prometheus/client_golang/prometheus"

// InstrumentationType is the type of instrumentation the metric is capturing.
type InstrumentationType uint64

const (
	InstrumentationTypeVersion InstrumentationType = iota
	InstrumentationTypeSamplesEvaluated
	InstrumentationTypeSampleFailures
	InstrumentationTypeSampleDuration
	InstrumentationTypeReferenceCacheHits
	InstrumentationTypeReferenceCacheMisses
)

type Instrumentation struct {
	namespace     string
	Counters      map[InstrumentationType]prometheus.Counter
	CounterVecs   map[InstrumentationType]*prometheus.CounterVec
	GaugeVecs     map[InstrumentationType]*prometheus.GaugeVec
	HistogramVecs map[InstrumentationType]*prometheus.HistogramVec
}

func NewInstrumentation(namespace string, opts ...InstrumentationOption) *Instrumentation {
	instrumentation := &Instrumentation{
		namespace:     namespace,
		Counters:      make(map[InstrumentationType]prometheus.Counter),
		CounterVecs:   make(map[InstrumentationType]*prometheus.CounterVec),
		GaugeVecs:     make(map[InstrumentationType]*prometheus.GaugeVec),
		HistogramVecs: make(map[InstrumentationType]*prometheus.HistogramVec),
	}

	for _, opt := range opts {
		opt(instrumentation)
	}
	return instrumentation
}

// NewSweepInstrumentation returns the instrumentation a sweep reports through: build
// version, evaluated and failed samples per correction, per-sample duration and the
// reference cache counters.
func NewSweepInstrumentation(namespace string) *Instrumentation {
	return NewInstrumentation(namespace,
		WithGaugeVec(InstrumentationTypeVersion, "build_info", "Build version of the binary", []string{"version"}),
		WithCounterVec(
			InstrumentationTypeSamplesEvaluated,
			"samples_evaluated_total",
			"Number of sample points evaluated successfully",
			[]string{"correction"},
		),
		WithCounterVec(
			InstrumentationTypeSampleFailures,
			"sample_failures_total",
			"Number of sample points whose evaluation failed",
			[]string{"correction"},
		),
		WithHistogramVec(
			InstrumentationTypeSampleDuration,
			"sample_duration_seconds",
			"Time spent evaluating one sample point",
			[]string{"correction"},
			prometheus.ExponentialBuckets(0.0001, 4, 12),
		),
		WithCounter(InstrumentationTypeReferenceCacheHits, "reference_cache_hits_total", "Reference values served from cache"),
		WithCounter(InstrumentationTypeReferenceCacheMisses, "reference_cache_misses_total", "Reference values computed"),
	)
}

func (i *Instrumentation) Collectors() (collectors []prometheus.Collector) {
	for _, counters := range i.Counters {
		collectors = append(collectors, counters)
	}
	for _, counterVecs := range i.CounterVecs {
		collectors = append(collectors, counterVecs)
	}
	for _, gaugeVecs := range i.GaugeVecs {
		collectors = append(collectors, gaugeVecs)
	}
	for _, histogramVecs := range i.HistogramVecs {
		collectors = append(collectors, histogramVecs)
	}
	return
}
