package gostep

import (
	"context"
	"runtime/debug"
)

// Unit is the extra type of steps that take no extra input.
type Unit = struct{}

// Step is a unit of work taking an input and an extra value.
type Step[I, E, O any] interface {
	// Perform runs the step. Any failure of the underlying computation is
	// returned as a *ProcessingError.
	Perform(ctx context.Context, in I, extra E) (O, error)
}

// StepFunc implements Step with a plain function. It performs no error
// translation and is meant for decorating an existing Step.
type StepFunc[I, E, O any] func(ctx context.Context, in I, extra E) (O, error)

// Perform calls f(ctx, in, extra).
func (f StepFunc[I, E, O]) Perform(ctx context.Context, in I, extra E) (O, error) {
	return f(ctx, in, extra)
}

// UnaryFunc is a single-argument function wrapped by FuncStep.
type UnaryFunc[I, O any] func(ctx context.Context, in I) (O, error)

// BinaryFunc is a two-argument function wrapped by BiFuncStep.
type BinaryFunc[I, E, O any] func(ctx context.Context, in I, extra E) (O, error)

// Pure lifts fn into a UnaryFunc. A nil fn yields a nil UnaryFunc.
func Pure[I, O any](fn func(I) O) UnaryFunc[I, O] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, in I) (O, error) {
		return fn(in), nil
	}
}

// PureBi lifts fn into a BinaryFunc. A nil fn yields a nil BinaryFunc.
func PureBi[I, E, O any](fn func(I, E) O) BinaryFunc[I, E, O] {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, in I, extra E) (O, error) {
		return fn(in, extra), nil
	}
}

// invoke calls call and translates a returned error or a panic into a
// *ProcessingError. On failure the zero value of O is returned.
func invoke[O any](call func() (O, error)) (out O, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero O
			out = zero
			err = newProcessingError(panicCause(r), string(debug.Stack()))
		}
	}()

	res, callErr := call()
	if callErr != nil {
		var zero O
		return zero, newProcessingError(callErr, "")
	}
	return res, nil
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}
