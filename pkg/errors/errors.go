// Package errors provides structured error handling for the cascade engine.
//
// Errors fall into three groups. Configuration errors (duplicate property
// names, missing coercion functions) are raised at declaration or
// registration time. Conversion errors come from CSS text that a property's
// converter rejects and are reported per declaration. Everything else a
// user callback does wrong propagates to the caller that triggered it.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindConfig indicates a property declaration or registration error.
	KindConfig
	// KindConversion indicates a value that could not be converted from CSS text.
	KindConversion
	// KindCallback indicates an error raised by a user supplied callback.
	KindCallback
	// KindPlatform indicates a native peer or platform channel error.
	KindPlatform
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindConversion:
		return "conversion"
	case KindCallback:
		return "callback"
	case KindPlatform:
		return "platform"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// CascadeError represents a structured error reported by the engine.
type CascadeError struct {
	// Op is the operation that failed (e.g., "core.InitNativeView").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Property is the property name involved, if any.
	Property string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CascadeError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s [%s] property=%s: %v", e.Op, e.Kind, e.Property, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid property declaration or registration.
// These are programming errors and are raised immediately, never deferred
// to the first use of the property.
type ConfigError struct {
	// Property is the name of the offending property.
	Property string
	// Class is the view class involved, empty for declaration errors.
	Class string
	// Reason describes what is wrong.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("property %q on class %s: %s", e.Property, e.Class, e.Reason)
	}
	return fmt.Sprintf("property %q: %s", e.Property, e.Reason)
}

// ConversionError reports CSS text a property could not convert.
type ConversionError struct {
	// Property is the property (or CSS) name the value was meant for.
	Property string
	// Value is the rejected input.
	Value any
	// Err is the converter's error, if it returned one.
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %q for %s: %v", fmt.Sprint(e.Value), e.Property, e.Err)
	}
	return fmt.Sprintf("cannot convert %q for %s", fmt.Sprint(e.Value), e.Property)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.HandleMethodCall").
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

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *CascadeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
