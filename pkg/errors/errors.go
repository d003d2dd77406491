// Package errors provides the unified error type and factory functions for the
// prioritizer.  Every layer (domain, application, infrastructure, interfaces)
// uses AppError as the single carrier for structured error information so that
// HTTP responses, CLI exit messages and logs stay consistent.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// AppError is the single structured error type used throughout the module.
// It supports Go 1.13+ wrapping so errors.Is / errors.As / errors.Unwrap work
// across layers.
//
// Usage:
//
//	return errors.New(errors.CodeSchema, "Input data must contain 'SMILES' and 'Docking_Score' columns.")
//	return errors.Wrap(err, errors.CodeExportFailed, "write export").WithDetail("run=" + id)
type AppError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description, safe to show to users.
	Message string

	// Detail carries supplementary context (row index, column names, run IDs).
	Detail string

	// Cause is the underlying error, if any.
	Cause error

	// Stack is the call stack captured at creation time.  It is never part of
	// Error() output.
	Stack string
}

// Error implements the error interface.
// Format: "[<code>] <message>: <detail>"; the detail segment is omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// It is safe to call on a nil pointer.
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError wrapping err.  A nil err yields nil.
//
// When err is already an *AppError and code is CodeUnknown the original code is
// preserved, so adding context never loses the original classification.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// IsCode reports whether any error in err's chain is an *AppError with code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsNotFound reports whether err's chain carries a not-found code.
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound) || IsCode(err, CodeRunNotFound)
}

// IsValidation reports whether err's chain carries a code caused by bad input
// from the caller (schema, bad parameters, validation).
func IsValidation(err error) bool {
	switch GetCode(err) {
	case CodeSchema, CodeInvalidParam, CodeValidation:
		return true
	}
	return false
}

// IsUnready reports whether err signals that no input has been supplied yet.
func IsUnready(err error) bool {
	return IsCode(err, CodeUnreadyInput)
}

// GetCode extracts the ErrorCode from the first *AppError in err's chain.
// It returns CodeOK for nil and CodeUnknown when no *AppError is present.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// NotFound constructs a CodeNotFound AppError.
func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Stack: captureStack(1)}
}

// InvalidParam constructs a CodeInvalidParam AppError.
func InvalidParam(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message, Stack: captureStack(1)}
}

// Internal constructs a CodeInternal AppError.  Log the underlying cause
// before or after calling it.
func Internal(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Stack: captureStack(1)}
}

// Schema constructs a CodeSchema AppError.
func Schema(message string) *AppError {
	return &AppError{Code: CodeSchema, Message: message, Stack: captureStack(1)}
}

// Unready constructs a CodeUnreadyInput AppError.
func Unready(message string) *AppError {
	return &AppError{Code: CodeUnreadyInput, Message: message, Stack: captureStack(1)}
}

//Personal.AI order the ending
