// Package errors provides the categorized error kinds the core surfaces,
// adapted from the teacher's component+operation categorized BotError.
package errors

import "fmt"

// Category narrows the teacher's broad error taxonomy down to the three
// kinds spec §7 assigns to the core. InsufficientHistory is deliberately
// absent: per spec §7 it is not an error, just leading nulls in the frame.
type Category string

const (
	// CategoryInputShape: OHLCV has non-finite values, non-monotonic
	// timestamps, or inconsistent length across analytics inputs. Fatal
	// for the affected asset; other assets proceed.
	CategoryInputShape Category = "INPUT_SHAPE"

	// CategoryCompute: arithmetic fault raised by analytics calls
	// (e.g. correlation of an empty series). Never raised by the
	// per-row simulator.
	CategoryCompute Category = "COMPUTE"

	// CategoryExternalUnavailable: collaborator-originated failure
	// (rate-limit, network, cache-miss) that passes through the driver.
	CategoryExternalUnavailable Category = "EXTERNAL_UNAVAILABLE"
)

// CoreError is a categorized error with component/operation context,
// mirroring the teacher's BotError shape.
type CoreError struct {
	Category   Category
	Component  string
	Operation  string
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s in %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s in %s", e.Category, e.Component, e.Operation, e.Message)
}

func (e *CoreError) Unwrap() error { return e.Underlying }

// Retryable reports whether a caller may usefully retry the operation.
// Only external-collaborator failures are retryable; shape and compute
// errors are deterministic and will recur given the same input.
func (e *CoreError) Retryable() bool {
	return e.Category == CategoryExternalUnavailable
}

// Fatal reports whether the error should abort the affected asset's
// processing for this run (it never aborts the whole portfolio — see
// spec §7 partial-failure policy).
func (e *CoreError) Fatal() bool {
	return e.Category == CategoryInputShape
}

// NewInputShapeError reports malformed OHLCV input.
func NewInputShapeError(component, operation, message string) *CoreError {
	return &CoreError{Category: CategoryInputShape, Component: component, Operation: operation, Message: message}
}

// NewComputeError reports an arithmetic fault in an analytics operation.
func NewComputeError(component, operation, message string) *CoreError {
	return &CoreError{Category: CategoryCompute, Component: component, Operation: operation, Message: message}
}

// WrapExternalUnavailable wraps a collaborator failure (network, rate
// limit, cache miss) without altering its retry semantics.
func WrapExternalUnavailable(err error, component, operation string) *CoreError {
	if err == nil {
		return nil
	}
	return &CoreError{Category: CategoryExternalUnavailable, Component: component, Operation: operation, Message: "external collaborator unavailable", Underlying: err}
}
