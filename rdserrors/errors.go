// Package rdserrors defines the structured error taxonomy used across the
// rdscom wire protocol and exchange engine.
package rdserrors

import "fmt"

// Category groups errors by the subsystem that raised them.
type Category string

const (
	CategorySchema       Category = "schema"
	CategoryField        Category = "field"
	CategoryBuffer       Category = "buffer"
	CategoryFrame        Category = "frame"
	CategoryRegistration Category = "registration"
	CategoryAck          Category = "ack"
)

// Code is a stable identifier for a specific failure mode, independent of
// the human-readable message, so callers can errors.Is against it.
type Code string

const (
	CodeSchemaReserved    Code = "E_SCHEMA_RESERVED"
	CodeSchemaTooShort    Code = "E_SCHEMA_TOO_SHORT"
	CodeFieldNotFound     Code = "E_FIELD_NOT_FOUND"
	CodeFieldWidth        Code = "E_FIELD_WIDTH_MISMATCH"
	CodeBufferSize        Code = "E_BUFFER_SIZE_MISMATCH"
	CodeInvalidPrototype  Code = "E_INVALID_PROTOTYPE"
	CodeFrameTooShort     Code = "E_FRAME_TOO_SHORT"
	CodeBadPreamble       Code = "E_FRAME_BAD_PREAMBLE"
	CodeBadSentinel       Code = "E_FRAME_BAD_SENTINEL"
	CodeHeaderTooShort    Code = "E_FRAME_HEADER_TOO_SHORT"
	CodeLengthMismatch    Code = "E_FRAME_LENGTH_MISMATCH"
	CodeInvalidReg        Code = "E_INVALID_REGISTRATION"
	CodeAckExhausted      Code = "E_ACK_EXHAUSTED"
	CodeSchemaNotFound    Code = "E_SCHEMA_NOT_FOUND"
)

// Error is the structured error type returned by every fallible rdscom
// operation. It carries enough identity (Category, Code) for programmatic
// handling plus a human-readable Message for logs.
type Error struct {
	Category Category
	Code     Code
	Message  string
	Wrapped  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/As against a wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

// Is reports whether target is an *Error with the same Code, so callers
// can do errors.Is(err, rdserrors.New(rdserrors.CodeFieldNotFound, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New constructs an Error with the given code and message. The category is
// looked up from the code by categoryOf below.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Category: categoryOf(code),
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Wrap is like New but attaches an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Wrapped = cause
	return e
}

func categoryOf(code Code) Category {
	switch code {
	case CodeSchemaReserved, CodeSchemaTooShort, CodeSchemaNotFound, CodeInvalidPrototype:
		return CategorySchema
	case CodeFieldNotFound, CodeFieldWidth:
		return CategoryField
	case CodeBufferSize:
		return CategoryBuffer
	case CodeFrameTooShort, CodeBadPreamble, CodeBadSentinel, CodeHeaderTooShort, CodeLengthMismatch:
		return CategoryFrame
	case CodeInvalidReg:
		return CategoryRegistration
	case CodeAckExhausted:
		return CategoryAck
	default:
		return ""
	}
}
