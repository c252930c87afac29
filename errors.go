package gazeta

import (
	"errors"
	"fmt"
)

// Application error codes. These are mapped to user-facing messages and
// exit codes at the CLI boundary.
const (
	EINTERNAL  = "internal"  // unexpected internal failure
	EINVALID   = "invalid"   // validation failed on caller input
	ELIFECYCLE = "lifecycle" // article pipeline stage called out of order
	ENOTFOUND  = "not_found" // entity does not exist
)

// Error represents an application-specific error. Errors carry a machine
// readable code and a human readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("gazeta error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsLifecycle reports whether err is an article lifecycle violation, such
// as parsing before downloading.
func IsLifecycle(err error) bool {
	return ErrorCode(err) == ELIFECYCLE
}
