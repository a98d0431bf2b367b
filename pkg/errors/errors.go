package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"codigo"`
	Message string `json:"erro"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so cloned errors still compare
// equal to their predefined template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss    = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Upload relay taxonomy. Validation and lookup failures are client fixable;
// transfer failures are server side.
var (
	ErrMissingFile             = New("MISSING_FILE", http.StatusBadRequest, "missing file")
	ErrUnsupportedCategory     = New("UNSUPPORTED_CATEGORY", http.StatusBadRequest, "unsupported category")
	ErrUnsupportedExtension    = New("UNSUPPORTED_EXTENSION", http.StatusBadRequest, "unsupported extension")
	ErrFileTooLarge            = New("FILE_TOO_LARGE", http.StatusBadRequest, "file too large")
	ErrInvalidMonth            = New("INVALID_MONTH", http.StatusBadRequest, "reference month must be YYYY-MM")
	ErrCompanyNotFound         = New("COMPANY_NOT_FOUND", http.StatusBadRequest, "company not found")
	ErrCompanyDirectoryInvalid = New("COMPANY_DIRECTORY_INVALID", http.StatusBadRequest, "company name does not yield a remote directory")
	ErrTransfer                = New("TRANSFER_ERROR", http.StatusInternalServerError, "failed to send file to remote store")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
