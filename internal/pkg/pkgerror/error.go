package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., storage issues).
	TypeBusiness               // Business rule errors (e.g., unauthorized sender).
	TypeValidation             // Validation errors (e.g., malformed csv body).
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal      Code = iota // Internal or unspecified error.
	CodeInvalidFormat             // Body could not be read in the expected format.
	CodeInvalidInput              // Body or query was readable but not acceptable.
	CodeNotFound                  // Resource not found.
	CodeUnauthorized              // Missing or wrong shared secret.
	CodeTooLarge                  // Body exceeds the accepted size.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeTooLarge:
		return "ERROR_CODE_TOO_LARGE"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used at the HTTP edge.
//
// It can wrap an underlying error while also carrying a user-facing message,
// a high-level type, and a stable error code.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Business rule violation"
	default:
		return "Internal error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.err,
	)
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message and code.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewUnauthorized creates the error returned when the shared secret does not match.
func NewUnauthorized() error {
	return new(nil, "unauthorized", TypeBusiness, CodeUnauthorized)
}

// NewInvalidInput creates a validation error whose message is the underlying error text.
func NewInvalidInput(err error) error {
	return new(err, err.Error(), TypeValidation, CodeInvalidInput)
}

// NewInvalidFormat creates a validation error for a body that could not be parsed.
func NewInvalidFormat(msg string) error {
	return new(nil, msg, TypeValidation, CodeInvalidFormat)
}

// NewTooLarge creates a validation error for a body over the size limit.
func NewTooLarge(msg string) error {
	return new(nil, msg, TypeValidation, CodeTooLarge)
}

// As returns the *Error inside err, or a server error wrapping err.
func As(err error) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}
	return NewServer(err).(*Error)
}
