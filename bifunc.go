package gostep

import "context"

// BiFuncStep adapts a two-argument function to Step.
type BiFuncStep[I, E, O any] struct {
	fn BinaryFunc[I, E, O]
}

// NewBiFunc creates a BiFuncStep wrapping fn. It returns ErrNilFunc if fn
// is nil.
func NewBiFunc[I, E, O any](fn BinaryFunc[I, E, O]) (*BiFuncStep[I, E, O], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &BiFuncStep[I, E, O]{fn: fn}, nil
}

// MustBiFunc is like NewBiFunc but panics with ErrNilFunc if fn is nil.
func MustBiFunc[I, E, O any](fn BinaryFunc[I, E, O]) *BiFuncStep[I, E, O] {
	s, err := NewBiFunc(fn)
	if err != nil {
		panic(err)
	}
	return s
}

// Perform calls the wrapped function with in and extra. A returned error or
// a panic is reported as a *ProcessingError.
//
// A step not built with NewBiFunc has no function; Perform panics with
// ErrNilFunc instead of reporting a processing failure.
func (s *BiFuncStep[I, E, O]) Perform(ctx context.Context, in I, extra E) (O, error) {
	if s == nil || s.fn == nil {
		panic(ErrNilFunc)
	}
	return invoke(func() (O, error) {
		return s.fn(ctx, in, extra)
	})
}
