package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error. Each kind maps to one HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindInvalidState
	KindDuplicate
	KindNotFound
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Error is a business rule violation with a stable code and a readable reason.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error   { return New(KindValidation, code, message) }
func Conflict(code, message string) *Error     { return New(KindConflict, code, message) }
func InvalidState(code, message string) *Error { return New(KindInvalidState, code, message) }
func Duplicate(code, message string) *Error    { return New(KindDuplicate, code, message) }
func NotFoundErr(code, message string) *Error  { return New(KindNotFound, code, message) }
func Forbidden(code, message string) *Error    { return New(KindForbidden, code, message) }

// As extracts the business error from err's chain.
func As(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	be, ok := As(err)
	return ok && be.Kind == kind
}

func IsCode(err error, code string) bool {
	be, ok := As(err)
	return ok && be.Code == code
}
