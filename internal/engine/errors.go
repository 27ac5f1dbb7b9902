package engine

import (
	"errors"
	"fmt"
)

// PerformError is the single failure kind surfaced by Executor.Execute.
//
// Missing-handler, validation, empty-rewrite, and depth failures all
// arrive as a PerformError distinguished by Code and message text.
// Handler-internal failures are the exception: they propagate unchanged,
// not wrapped, so a handler's own error contract survives the engine.
type PerformError struct {
	// Code identifies the failure category.
	Code PerformErrorCode

	// Message is the complete human-readable description. Error()
	// returns it verbatim; callers and tests rely on exact text.
	Message string

	// ActionDescription identifies the action that failed.
	ActionDescription string
}

// PerformErrorCode categorizes action-perform failures.
type PerformErrorCode string

const (
	// ErrCodeNoLogic indicates no registered handler matched the action.
	ErrCodeNoLogic PerformErrorCode = "NO_LOGIC_FOUND"

	// ErrCodeValidation indicates the selected handler reported one or
	// more validation errors.
	ErrCodeValidation PerformErrorCode = "VALIDATION_FAILED"

	// ErrCodeEmptyRewrite indicates a handler returned a RewriteResult
	// with zero replacement actions.
	ErrCodeEmptyRewrite PerformErrorCode = "EMPTY_REWRITE"

	// ErrCodeDepthExceeded indicates a rewrite chain exceeded the
	// configured maximum depth, the guard against pathological cycles.
	ErrCodeDepthExceeded PerformErrorCode = "REWRITE_DEPTH_EXCEEDED"
)

// Error implements the error interface. It returns Message exactly as
// built; the code is carried for classification, not display.
func (e *PerformError) Error() string {
	return e.Message
}

// IsNoLogicError reports whether err is a missing-handler failure.
// Uses errors.As to handle wrapped errors.
func IsNoLogicError(err error) bool {
	return performCode(err) == ErrCodeNoLogic
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	return performCode(err) == ErrCodeValidation
}

// IsEmptyRewriteError reports whether err is an empty-rewrite failure.
func IsEmptyRewriteError(err error) bool {
	return performCode(err) == ErrCodeEmptyRewrite
}

// IsDepthExceededError reports whether err is a depth-guard failure.
func IsDepthExceededError(err error) bool {
	return performCode(err) == ErrCodeDepthExceeded
}

func performCode(err error) PerformErrorCode {
	var pe *PerformError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func newNoLogicError(desc string) *PerformError {
	return &PerformError{
		Code:              ErrCodeNoLogic,
		Message:           fmt.Sprintf("No supported ActionLogic implementation found for '%s'", desc),
		ActionDescription: desc,
	}
}

func newValidationError(desc, joined string) *PerformError {
	return &PerformError{
		Code:              ErrCodeValidation,
		Message:           fmt.Sprintf("Validation Error(s): %s", joined),
		ActionDescription: desc,
	}
}

func newEmptyRewriteError(logic Logic, desc string) *PerformError {
	return &PerformError{
		Code:              ErrCodeEmptyRewrite,
		Message:           fmt.Sprintf("%T tried to handle '%s' but returned no actions to run", logic, desc),
		ActionDescription: desc,
	}
}

func newDepthExceededError(desc string, depth, limit int) *PerformError {
	return &PerformError{
		Code:              ErrCodeDepthExceeded,
		Message:           fmt.Sprintf("rewrite depth %d exceeds limit %d while handling '%s'", depth, limit, desc),
		ActionDescription: desc,
	}
}
