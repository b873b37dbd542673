package metrics

import "github.com/dora-network/series-convergence/errors"

var (
	ErrMetricsDisabled   = errors.New(errors.ConfigurationErr, "metrics server is disabled")
	ErrMetricsRunning    = errors.New(errors.InternalError, "metrics server is already running")
	ErrMetricsNotRunning = errors.New(errors.InternalError, "metrics server is not running")
)
