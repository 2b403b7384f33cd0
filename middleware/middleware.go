// Package middleware provides composable decorators for gostep.Step.
//
// Middleware wraps a Step with cross-cutting behavior such as logging,
// metrics collection and metadata enrichment, or bounds its calls in time
// (Timeout) and concurrency (Limit). Middleware never alters the
// output of a step and passes its errors through unchanged, so callers
// still receive a *gostep.ProcessingError on failure.
package middleware

import "github.com/fxsml/gostep"

// Middleware wraps a Step with additional behavior.
type Middleware[I, E, O any] func(gostep.Step[I, E, O]) gostep.Step[I, E, O]

// Apply wraps step with the given middleware. For middlewares A, B, C the
// execution flow is A→B→C→step.
func Apply[I, E, O any](step gostep.Step[I, E, O], middleware ...Middleware[I, E, O]) gostep.Step[I, E, O] {
	for i := len(middleware) - 1; i >= 0; i-- {
		step = middleware[i](step)
	}
	return step
}
