package gostep

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestFuncStep_Double(t *testing.T) {
	s, err := NewFunc[Unit](Pure(func(x int) int { return x * 2 }))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got, err := s.Perform(context.Background(), 5, Unit{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

func TestFuncStep_ReturnsOutputUnmodified(t *testing.T) {
	want := &struct{ N int }{N: 7}
	s := MustFunc[Unit](Pure(func(int) *struct{ N int } { return want }))

	got, err := s.Perform(context.Background(), 0, Unit{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != want {
		t.Errorf("Expected the same pointer %p, got %p", want, got)
	}
}

func TestFuncStep_NilFunc(t *testing.T) {
	s, err := NewFunc[Unit, int, int](nil)
	if !errors.Is(err, ErrNilFunc) {
		t.Fatalf("Expected ErrNilFunc, got %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil step, got %v", s)
	}
	if errors.Is(err, ErrProcessing) {
		t.Error("Expected construction error not to be a processing error")
	}

	_, err = NewFunc[string, []byte, map[string]int](nil)
	if !errors.Is(err, ErrNilFunc) {
		t.Errorf("Expected ErrNilFunc, got %v", err)
	}
}

func TestFuncStep_PureNil(t *testing.T) {
	var fn func(string) string
	if _, err := NewFunc[Unit](Pure(fn)); !errors.Is(err, ErrNilFunc) {
		t.Errorf("Expected ErrNilFunc, got %v", err)
	}
}

func TestMustFunc_PanicsOnNil(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNilFunc) {
			t.Errorf("Expected panic with ErrNilFunc, got %v", r)
		}
	}()
	MustFunc[Unit, int, int](nil)
	t.Error("Expected MustFunc to panic")
}

func TestFuncStep_ZeroValuePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNilFunc) {
			t.Errorf("Expected panic with ErrNilFunc, got %v", r)
		}
		if errors.Is(err, ErrProcessing) {
			t.Error("Expected the panic not to be a processing error")
		}
	}()
	var s FuncStep[int, Unit, int]
	_, _ = s.Perform(context.Background(), 1, Unit{})
	t.Error("Expected Perform to panic")
}

func TestFuncStep_ReturnedError(t *testing.T) {
	cause := errors.New("boom")
	s := MustFunc[Unit](func(context.Context, int) (int, error) {
		return 42, cause
	})

	got, err := s.Perform(context.Background(), 1, Unit{})
	if got != 0 {
		t.Errorf("Expected zero output on failure, got %d", got)
	}

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if procErr.Message != "boom" {
		t.Errorf("Expected message 'boom', got %q", procErr.Message)
	}
	if procErr.Cause != cause {
		t.Errorf("Expected cause to be the original error, got %v", procErr.Cause)
	}
	if procErr.StackTrace != "" {
		t.Errorf("Expected no stack trace for a returned error, got %q", procErr.StackTrace)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the original error")
	}
	if !errors.Is(err, ErrProcessing) {
		t.Error("Expected errors.Is to match ErrProcessing")
	}
}

func TestFuncStep_EmptyMessage(t *testing.T) {
	cause := errors.New("")
	s := MustFunc[Unit](func(context.Context, string) (string, error) {
		return "", cause
	})

	_, err := s.Perform(context.Background(), "in", Unit{})

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if procErr.Message != "" {
		t.Errorf("Expected empty message, got %q", procErr.Message)
	}
	if procErr.Cause != cause {
		t.Errorf("Expected cause to be the original error, got %v", procErr.Cause)
	}
	if procErr.Error() != ErrProcessing.Error() {
		t.Errorf("Expected fallback error text, got %q", procErr.Error())
	}
}

type nilPointerError struct{ msg string }

func (e *nilPointerError) Error() string { return e.msg }

func TestFuncStep_TypedNilError(t *testing.T) {
	s := MustFunc[Unit](func(context.Context, int) (int, error) {
		var e *nilPointerError
		return 0, e
	})

	_, err := s.Perform(context.Background(), 1, Unit{})

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if procErr.Message != "" {
		t.Errorf("Expected empty message, got %q", procErr.Message)
	}
}

func TestFuncStep_PanicString(t *testing.T) {
	s := MustFunc[Unit](Pure(func(int) int { panic("boom") }))

	_, err := s.Perform(context.Background(), 1, Unit{})

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if procErr.Message != "boom" {
		t.Errorf("Expected message 'boom', got %q", procErr.Message)
	}
	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected cause *PanicError, got %T", procErr.Cause)
	}
	if panicErr.Value != "boom" {
		t.Errorf("Expected panic value 'boom', got %v", panicErr.Value)
	}
	if !strings.Contains(procErr.StackTrace, "runtime/debug.Stack") {
		t.Error("Expected stack trace to contain 'runtime/debug.Stack'")
	}
}

func TestFuncStep_PanicError(t *testing.T) {
	cause := errors.New("bad input")
	s := MustFunc[Unit](Pure(func(int) int { panic(cause) }))

	_, err := s.Perform(context.Background(), 1, Unit{})

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if procErr.Cause != cause {
		t.Errorf("Expected cause to be the panicked error, got %v", procErr.Cause)
	}
	if procErr.Message != "bad input" {
		t.Errorf("Expected message 'bad input', got %q", procErr.Message)
	}
}

func TestFuncStep_PanicNonString(t *testing.T) {
	s := MustFunc[Unit](Pure(func(int) int { panic(42) }))

	_, err := s.Perform(context.Background(), 1, Unit{})

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessingError, got %T", err)
	}
	if procErr.Message != "panic: 42" {
		t.Errorf("Expected message 'panic: 42', got %q", procErr.Message)
	}
}

func TestFuncStep_IgnoresExtra(t *testing.T) {
	s := MustFunc[any](Pure(func(s string) int { return len(s) }))

	for _, extra := range []any{nil, 0, "x", []int{1, 2}, struct{}{}, errors.New("e")} {
		got, err := s.Perform(context.Background(), "hello", extra)
		if err != nil {
			t.Fatalf("Expected no error for extra %v, got %v", extra, err)
		}
		if got != 5 {
			t.Errorf("Expected 5 for extra %v, got %d", extra, got)
		}
	}
}

func TestFuncStep_ForwardsContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	s := MustFunc[Unit](func(ctx context.Context, _ int) (string, error) {
		v, _ := ctx.Value(key{}).(string)
		return v, nil
	})

	got, err := s.Perform(ctx, 0, Unit{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "v" {
		t.Errorf("Expected context value 'v', got %q", got)
	}
}

func TestFuncStep_CanceledContextIsTranslated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := MustFunc[Unit](func(ctx context.Context, in int) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return in, nil
	})

	_, err := s.Perform(ctx, 1, Unit{})
	if !errors.Is(err, ErrProcessing) {
		t.Errorf("Expected processing error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled cause, got %v", err)
	}
}

func TestFuncStep_Concurrent(t *testing.T) {
	s := MustFunc[Unit](Pure(func(x int) int { return x * x }))

	const n = 100
	results := make([]int, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.Perform(context.Background(), i, Unit{})
		}()
	}
	wg.Wait()

	for i := range n {
		if errs[i] != nil {
			t.Fatalf("Expected no error for %d, got %v", i, errs[i])
		}
		if results[i] != i*i {
			t.Errorf("Expected %d for %d, got %d", i*i, i, results[i])
		}
	}
}
