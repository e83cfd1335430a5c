package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for presence operations.
type ErrorCode string

const (
	// ErrCodeMalformedRecord indicates a source line that failed to parse.
	// Recovered locally by the record parser; never surfaced to callers.
	ErrCodeMalformedRecord ErrorCode = "MALFORMED_RECORD"
	// ErrCodeUnknownUser indicates the requested user id is absent from the
	// presence store.
	ErrCodeUnknownUser ErrorCode = "UNKNOWN_USER"
	// ErrCodeRosterMismatch indicates a roster lookup miss for a user id.
	ErrCodeRosterMismatch ErrorCode = "ROSTER_MISMATCH"
	// ErrCodeSourceUnavailable indicates a missing or unreadable source document.
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// PresenceError represents a structured error for presence operations.
type PresenceError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PresenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PresenceError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *PresenceError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// UnknownUser creates an unknown user error.
func UnknownUser(userID int32) *PresenceError {
	return &PresenceError{
		Code:    ErrCodeUnknownUser,
		Message: fmt.Sprintf("user %d not found in presence data", userID),
	}
}

// RosterMismatch creates a roster lookup miss error.
func RosterMismatch(userID int32) *PresenceError {
	return &PresenceError{
		Code:    ErrCodeRosterMismatch,
		Message: fmt.Sprintf("user %d not found in roster", userID),
	}
}

// SourceUnavailable creates a source unavailable error.
func SourceUnavailable(msg string, cause error) *PresenceError {
	return &PresenceError{Code: ErrCodeSourceUnavailable, Message: msg, Cause: cause}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *PresenceError {
	return &PresenceError{Code: ErrCodeInvalidArgument, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *PresenceError {
	return &PresenceError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if perr, ok := err.(*PresenceError); ok {
		return perr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a PresenceError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if perr, ok := err.(*PresenceError); ok {
		return perr.Code
	}
	return defaultCode
}
