// Package gostep provides a uniform contract for a single unit of work.
//
// A [Step] takes a primary input and a secondary "extra" input and produces
// an output. Whatever goes wrong inside the wrapped computation, a Step
// reports it as a [*ProcessingError] carrying the original message and the
// original failure as its cause.
//
// # Quick Start
//
//	double, err := gostep.NewFunc[gostep.Unit](gostep.Pure(func(x int) int {
//		return x * 2
//	}))
//	if err != nil {
//		return err // gostep.ErrNilFunc
//	}
//	out, err := double.Perform(ctx, 5, gostep.Unit{}) // 10, nil
//
// # Adapters
//
// Single-argument functions: [NewFunc], [MustFunc]
//
// Two-argument functions: [NewBiFunc], [MustBiFunc]
//
// Both adapters recover panics raised by the wrapped function and translate
// them the same way as returned errors. Constructors reject a nil function
// with [ErrNilFunc], which is never a ProcessingError.
//
// # Middleware
//
// Logging, metrics and metadata decorators live in the middleware package:
//
//	step = middleware.Apply(step,
//		middleware.Log[int, gostep.Unit, int](middleware.LogConfig{}),
//	)
//
// Steps hold no mutable state and may be shared between goroutines as long
// as the wrapped function may.
package gostep
