// Package errors provides structured error handling for Blueprint.
//
// Blueprint distinguishes two classes of failure. Configuration and input
// errors are returned as ordinary Go errors (usually a [BlueprintError]).
// Programmer errors, such as duplicate element paths among siblings or a
// reentrant update, are invariant violations: they are reported to the
// installed [ErrorHandler] and then raised with panic via [Fatal]. The core
// never recovers them.
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
	// KindInvariant indicates a violated programmer invariant.
	KindInvariant
	// KindConfig indicates invalid or unreadable configuration.
	KindConfig
	// KindPlatform indicates the native platform failed to provide a view.
	KindPlatform
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindConfig:
		return "config"
	case KindPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// BlueprintError represents a structured error in Blueprint.
type BlueprintError struct {
	// Op is the operation that failed (e.g., "host.LoadConfig").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Path is the element path involved, if any.
	Path string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BlueprintError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s] path=%s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BlueprintError) Unwrap() error {
	return e.Err
}

// InvariantError describes a programmer error detected by the core.
// It is the value passed to panic by [Fatal].
type InvariantError struct {
	// Op is the operation that detected the violation (e.g., "resolve.Resolve").
	Op string
	// Message describes the violated invariant.
	Message string
	// StackTrace contains the call stack at the time of the violation.
	StackTrace string
	// Timestamp is when the violation was detected.
	Timestamp time.Time
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Op, e.Message)
}

// PanicError represents a panic recovered from caller-supplied code such
// as a lifecycle callback.
type PanicError struct {
	// Op is the operation that panicked (e.g., "reconcile.Callback").
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

// ErrorHandler receives errors reported by Blueprint.
type ErrorHandler interface {
	// HandleError is called when a non-fatal error occurs.
	HandleError(err *BlueprintError)
	// HandleInvariant is called just before an invariant violation panics.
	HandleInvariant(err *InvariantError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
