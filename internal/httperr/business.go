package httperr

import "errors"

// Kind classifies a business failure so the transport can map it.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidTransition Kind = "invalid_transition"
	KindInvalidStatus     Kind = "invalid_status"
	KindConflict          Kind = "conflict"
	KindEventLocked       Kind = "event_locked"
	KindValidation        Kind = "validation"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// ===============================
// Constructors
// ===============================

func newErr(kind Kind, code string, msg ...string) error {
	be := BusinessError{Kind: kind, Code: code}
	if len(msg) > 0 {
		be.Message = msg[0]
	}
	return be
}

// ErrBusiness is a generic validation failure identified by code.
func ErrBusiness(code string) error {
	return newErr(KindValidation, code)
}

func ErrNotFound(code string, msg ...string) error {
	return newErr(KindNotFound, code, msg...)
}

func ErrUnauthorized(code string, msg ...string) error {
	return newErr(KindUnauthorized, code, msg...)
}

func ErrInvalidTransition(code string, msg ...string) error {
	return newErr(KindInvalidTransition, code, msg...)
}

func ErrInvalidStatus(code string, msg ...string) error {
	return newErr(KindInvalidStatus, code, msg...)
}

func ErrConflict(code string, msg ...string) error {
	return newErr(KindConflict, code, msg...)
}

func ErrEventLocked(code string, msg ...string) error {
	return newErr(KindEventLocked, code, msg...)
}

func ErrValidation(code string, msg ...string) error {
	return newErr(KindValidation, code, msg...)
}

// ===============================
// Inspection
// ===============================

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
