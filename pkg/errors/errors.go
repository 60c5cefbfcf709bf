// Package errors provides structured error handling for the Motive library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCapacity indicates an exhausted animation registry.
	KindCapacity
	// KindCallback indicates a failure raised by a user-supplied callback.
	KindCallback
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindInspect indicates an inspector server error.
	KindInspect
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindCapacity:
		return "capacity"
	case KindCallback:
		return "callback"
	case KindConfig:
		return "config"
	case KindInspect:
		return "inspect"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// MotiveError represents a structured error in the Motive library.
type MotiveError struct {
	// Op is the operation that failed (e.g., "animation.Scheduler.Start").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Target is the animated target's type name, if applicable.
	Target string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MotiveError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s [%s] target=%s: %v", e.Op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *MotiveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.Scheduler.Update").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the Motive library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *MotiveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
