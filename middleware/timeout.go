package middleware

import (
	"context"
	"time"

	"github.com/fxsml/gostep"
)

// Timeout bounds each call with a context deadline derived from the
// caller's context. The wrapped function has to observe ctx for the
// deadline to take effect. Zero or negative duration disables the timeout.
func Timeout[I, E, O any](d time.Duration) Middleware[I, E, O] {
	return func(next gostep.Step[I, E, O]) gostep.Step[I, E, O] {
		if d <= 0 {
			return next
		}
		return gostep.StepFunc[I, E, O](func(ctx context.Context, in I, extra E) (O, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next.Perform(ctx, in, extra)
		})
	}
}
