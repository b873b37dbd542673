package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder feeds sweep progress into an Instrumentation built by NewSweepInstrumentation.
// It satisfies analysis.Observer.
type Recorder struct {
	evaluated prometheus.Counter
	failures  prometheus.Counter
	duration  prometheus.Observer
	instr     *Instrumentation
}

// NewRecorder returns a Recorder labelling every observation with correction.
func NewRecorder(instrumentation *Instrumentation, correction string) *Recorder {
	return &Recorder{
		evaluated: instrumentation.CounterVecs[InstrumentationTypeSamplesEvaluated].WithLabelValues(correction),
		failures:  instrumentation.CounterVecs[InstrumentationTypeSampleFailures].WithLabelValues(correction),
		duration:  instrumentation.HistogramVecs[InstrumentationTypeSampleDuration].WithLabelValues(correction),
		instr:     instrumentation,
	}
}

func (r *Recorder) SampleEvaluated(_ uint64, elapsed time.Duration) {
	r.evaluated.Inc()
	r.duration.Observe(elapsed.Seconds())
}

func (r *Recorder) SampleFailed(uint64, error) {
	r.failures.Inc()
}

// CacheStats adds the hits and misses of a reference cache since the last call.
func (r *Recorder) CacheStats(hits, misses uint64) {
	r.instr.Counters[InstrumentationTypeReferenceCacheHits].Add(float64(hits))
	r.instr.Counters[InstrumentationTypeReferenceCacheMisses].Add(float64(misses))
}
