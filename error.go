package pageflat

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and mappable to transport-level error
// responses (CLI exit codes, JSON envelopes, etc.).
const (
	EINVALID      = "invalid"      // validation failed or malformed input
	ENOTFOUND     = "not_found"    // entity does not exist
	EUNAUTHORIZED = "unauthorized" // authentication or permission failure
	EUNAVAILABLE  = "unavailable"  // remote service unreachable
	EINTERNAL     = "internal"     // internal error
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pageflat error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper to construct an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if it is an application error.
// Returns EINTERNAL for non-application errors and an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if it is an application
// error. Returns the error's own text for non-application errors and an
// empty string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
