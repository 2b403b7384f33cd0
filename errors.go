package gostep

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessing matches every *ProcessingError via errors.Is.
	ErrProcessing = errors.New("gostep: processing failed")
	// ErrNilFunc is returned when a step is constructed without a function.
	// It signals a wiring mistake and is never wrapped in a ProcessingError.
	ErrNilFunc = errors.New("gostep: func cannot be nil")
)

// ProcessingError is the single failure kind returned by Step.Perform.
// It carries the message of the original failure and the failure itself.
type ProcessingError struct {
	// Message is copied from the original failure. Empty if the
	// original failure had no message.
	Message string
	// Cause is the original failure.
	Cause error
	// StackTrace is captured when the failure was a recovered panic.
	StackTrace string
}

func (e *ProcessingError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrProcessing.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrProcessing.
func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}

func newProcessingError(cause error, stackTrace string) *ProcessingError {
	return &ProcessingError{
		Message:    errorMessage(cause),
		Cause:      cause,
		StackTrace: stackTrace,
	}
}

// errorMessage returns err.Error(), or "" if Error itself panics
// (for example on a typed nil pointer).
func errorMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return err.Error()
}

// PanicError is the cause of a ProcessingError when a function panics
// with a value that is not an error.
type PanicError struct {
	// Value is the original value that was passed to panic().
	Value any
}

func (e *PanicError) Error() string {
	if s, ok := e.Value.(string); ok {
		return s
	}
	return fmt.Sprintf("panic: %v", e.Value)
}
