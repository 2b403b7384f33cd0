package gostep

import "context"

// FuncStep adapts a single-argument function to Step. The extra value is
// ignored; E is usually Unit.
type FuncStep[I, E, O any] struct {
	fn UnaryFunc[I, O]
}

// NewFunc creates a FuncStep wrapping fn. It returns ErrNilFunc if fn is nil.
//
// E is listed first so that it can be given explicitly while I and O are
// inferred:
//
//	s, err := gostep.NewFunc[gostep.Unit](parse)
func NewFunc[E, I, O any](fn UnaryFunc[I, O]) (*FuncStep[I, E, O], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &FuncStep[I, E, O]{fn: fn}, nil
}

// MustFunc is like NewFunc but panics with ErrNilFunc if fn is nil.
func MustFunc[E, I, O any](fn UnaryFunc[I, O]) *FuncStep[I, E, O] {
	s, err := NewFunc[E](fn)
	if err != nil {
		panic(err)
	}
	return s
}

// Perform calls the wrapped function with in. A returned error or a panic
// is reported as a *ProcessingError.
//
// A step not built with NewFunc has no function; Perform panics with
// ErrNilFunc instead of reporting a processing failure.
func (s *FuncStep[I, E, O]) Perform(ctx context.Context, in I, _ E) (O, error) {
	if s == nil || s.fn == nil {
		panic(ErrNilFunc)
	}
	return invoke(func() (O, error) {
		return s.fn(ctx, in)
	})
}
