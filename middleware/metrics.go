package middleware

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fxsml/gostep"
	"github.com/google/uuid"
)

// IDGenerator generates unique call IDs.
type IDGenerator func() string

// DefaultIDGenerator is used by MetricsMiddleware to identify calls.
var DefaultIDGenerator IDGenerator = uuid.NewString

// Metrics holds metrics for a single call of a step.
type Metrics struct {
	ID       string
	Start    time.Time
	Duration time.Duration
	InFlight int

	Metadata Metadata

	Error error
}

// Success returns a numeric indicator of success (1 for success, 0 otherwise).
func (m *Metrics) Success() int {
	if m.Error == nil {
		return 1
	}
	return 0
}

// Failure returns a numeric indicator of failure (1 for failure, 0 otherwise).
// Any error counts, including one returned by a plain StepFunc.
func (m *Metrics) Failure() int {
	if m.Error != nil {
		return 1
	}
	return 0
}

// MetricsCollector defines a function that collects single call metrics.
type MetricsCollector func(metrics *Metrics)

// MetricsMiddleware records duration, in-flight count and outcome of every
// call and passes them to collect once the call has returned.
func MetricsMiddleware[I, E, O any](collect MetricsCollector) Middleware[I, E, O] {
	inFlight := atomic.Int32{}
	return func(next gostep.Step[I, E, O]) gostep.Step[I, E, O] {
		return gostep.StepFunc[I, E, O](func(ctx context.Context, in I, extra E) (O, error) {
			m := &Metrics{
				ID:       DefaultIDGenerator(),
				Start:    time.Now(),
				InFlight: int(inFlight.Add(1)),
				Metadata: MetadataFromContext(ctx),
			}

			out, err := next.Perform(ctx, in, extra)

			m.Duration = time.Since(m.Start)
			inFlight.Add(-1)
			m.Error = err

			collect(m)

			return out, err
		})
	}
}

// DistributeMetrics creates a collector that distributes metrics to multiple collectors.
func DistributeMetrics(collectors ...MetricsCollector) MetricsCollector {
	return func(m *Metrics) {
		for _, c := range collectors {
			c(m)
		}
	}
}
