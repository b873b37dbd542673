package metrics_test

import (
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/analysis"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/metrics"
	"github.com/dora-network/series-convergence/precision"
	"github.com/dora-network/series-convergence/reference"
	"github.com/dora-network/series-convergence/series"
)

func TestRecorder(t *testing.T) {
	instr := metrics.NewSweepInstrumentation("convergence")
	recorder := metrics.NewRecorder(instr, "madhava")

	recorder.SampleEvaluated(10, 2*time.Millisecond)
	recorder.SampleEvaluated(20, 3*time.Millisecond)
	recorder.SampleFailed(30, stderrors.New("boom"))
	recorder.CacheStats(4, 1)

	evaluated := instr.CounterVecs[metrics.InstrumentationTypeSamplesEvaluated].WithLabelValues("madhava")
	failures := instr.CounterVecs[metrics.InstrumentationTypeSampleFailures].WithLabelValues("madhava")
	assert.Equal(t, 2.0, testutil.ToFloat64(evaluated))
	assert.Equal(t, 1.0, testutil.ToFloat64(failures))
	assert.Equal(t, 4.0, testutil.ToFloat64(instr.Counters[metrics.InstrumentationTypeReferenceCacheHits]))
	assert.Equal(t, 1.0, testutil.ToFloat64(instr.Counters[metrics.InstrumentationTypeReferenceCacheMisses]))
	assert.Equal(t, 1, testutil.CollectAndCount(instr.HistogramVecs[metrics.InstrumentationTypeSampleDuration]))
}

func TestRecorderObservesSweep(t *testing.T) {
	instr := metrics.NewSweepInstrumentation("convergence")
	recorder := metrics.NewRecorder(instr, "fixed-machin")

	a, err := analysis.New(precision.Config{Digits: 30}, analysis.WithObserver(recorder), analysis.WithWorkers(2))
	require.NoError(t, err)
	_, err = a.Analyze([]uint64{10, 20, 30}, series.DefaultSpec(), reference.Pi)
	require.NoError(t, err)

	evaluated := instr.CounterVecs[metrics.InstrumentationTypeSamplesEvaluated].WithLabelValues("fixed-machin")
	assert.Equal(t, 3.0, testutil.ToFloat64(evaluated))
}

func TestServer(t *testing.T) {
	enabled := metrics.DefaultConfig()
	enabled.Enabled = true
	enabled.Host = "127.0.0.1"
	enabled.Port = 0

	t.Run(
		"disabled", func(t *testing.T) {
			s := metrics.NewServer(metrics.DefaultConfig())
			require.ErrorIs(t, s.Start(), metrics.ErrMetricsDisabled)
			require.ErrorIs(t, s.Stop(), metrics.ErrMetricsDisabled)

			svr, err := metrics.StartMetricsServer(metrics.DefaultConfig(), metrics.NewSweepInstrumentation("x"), zerolog.Nop(), "test")
			require.NoError(t, err)
			assert.Nil(t, svr)
		},
	)

	t.Run(
		"start and stop", func(t *testing.T) {
			reg := prometheus.NewRegistry()
			s := metrics.NewServer(enabled, metrics.WithRegistry(reg))
			assert.Same(t, reg, s.Registry())
			require.NoError(t, s.Register(metrics.NewSweepInstrumentation("convergence")))
			assert.Equal(t, "/metrics", s.Path())

			require.ErrorIs(t, s.Stop(), metrics.ErrMetricsNotRunning)
			assert.Empty(t, s.Addr())
			require.NoError(t, s.Start())
			assert.NotEmpty(t, s.Addr())
			require.ErrorIs(t, s.Start(), metrics.ErrMetricsRunning)
			require.NoError(t, s.Stop())
			assert.Empty(t, s.Addr())
		},
	)

	t.Run(
		"serves the sweep counters", func(t *testing.T) {
			instr := metrics.NewSweepInstrumentation("convergence")
			svr, err := metrics.StartMetricsServer(enabled, instr, zerolog.Nop(), "v1.2.3")
			require.NoError(t, err)
			require.NotNil(t, svr)
			t.Cleanup(func() { _ = svr.Stop() })

			metrics.NewRecorder(instr, "madhava").SampleEvaluated(10, time.Millisecond)

			resp, err := http.Get("http://" + svr.Addr() + svr.Path())
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), `convergence_samples_evaluated_total{correction="madhava"} 1`)
			assert.Contains(t, string(body), `convergence_build_info{version="v1.2.3"} 1`)
		},
	)

	t.Run(
		"address in use", func(t *testing.T) {
			first := metrics.NewServer(enabled)
			require.NoError(t, first.Start())
			t.Cleanup(func() { _ = first.Stop() })

			taken := enabled
			_, port, err := net.SplitHostPort(first.Addr())
			require.NoError(t, err)
			taken.Port, err = strconv.Atoi(port)
			require.NoError(t, err)

			err = metrics.NewServer(taken).Start()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ConfigurationErr), err.Error())
		},
	)

	t.Run(
		"duplicate registration", func(t *testing.T) {
			s := metrics.NewServer(enabled)
			instr := metrics.NewSweepInstrumentation("convergence")
			require.NoError(t, s.Register(instr))
			err := s.Register(instr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.InternalError))
		},
	)
}
