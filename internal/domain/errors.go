package domain

import (
	"errors"
	"net/http"
)

// Error codes for business logic errors.
const (
	CodeNotFound      = 1
	CodeValidation    = 3
	CodeInternal      = 4
	CodeInvalidCursor = 5
)

// AppError carries a business error code, a client-safe message and an
// optional wrapped cause.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Sentinel errors. Match categories with the Is* helpers, which compare
// codes, rather than errors.Is, which compares pointers.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}
	ErrInvalidCursor = &AppError{Code: CodeInvalidCursor, Message: "invalid cursor"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation reports whether err carries CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsInternal reports whether err carries CodeInternal.
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

// IsInvalidCursor reports whether err carries CodeInvalidCursor.
func IsInvalidCursor(err error) bool {
	return hasCode(err, CodeInvalidCursor)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatusCode maps an error to an HTTP status code. Anything that is not a
// known *AppError is a 500.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeValidation, CodeInvalidCursor:
			return http.StatusBadRequest
		case CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
