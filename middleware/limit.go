package middleware

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/fxsml/gostep"
)

// Limit allows at most n concurrent calls through the wrapped step. Callers
// beyond the limit block until a slot is free or their context is done; in
// the latter case the context error is returned as a *gostep.ProcessingError.
// n <= 0 disables the limit.
func Limit[I, E, O any](n int64) Middleware[I, E, O] {
	return func(next gostep.Step[I, E, O]) gostep.Step[I, E, O] {
		if n <= 0 {
			return next
		}
		sem := semaphore.NewWeighted(n)
		return gostep.StepFunc[I, E, O](func(ctx context.Context, in I, extra E) (O, error) {
			if err := sem.Acquire(ctx, 1); err != nil {
				var zero O
				return zero, &gostep.ProcessingError{Message: err.Error(), Cause: err}
			}
			defer sem.Release(1)
			return next.Perform(ctx, in, extra)
		})
	}
}
