package analysis

import "time"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Observer

// Observer is notified once per sample, from the goroutine that evaluated it.
// Implementations must be safe for concurrent use when the analyzer runs with workers.
type Observer interface {
	SampleEvaluated(n uint64, elapsed time.Duration)
	SampleFailed(n uint64, err error)
}

type nopObserver struct{}

func (nopObserver) SampleEvaluated(uint64, time.Duration) {}

func (nopObserver) SampleFailed(uint64, error) {}
