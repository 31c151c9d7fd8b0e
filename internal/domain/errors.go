package domain

import "fmt"

// Kind classifies a domain error for transport mapping
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidReference
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInvalidReference:
		return "invalid reference"
	}
	return "unknown"
}

// Error is a classified, user-facing error. Source and Path are only set for
// validation errors tied to a request body or query; Path may be empty when
// the rule spans several fields.
type Error struct {
	Kind    Kind
	Message string
	Source  string // body or query
	Path    string // offending field
}

func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("Invalid %s parameter at '%s': %s", e.Source, e.Path, e.Message)
	}
	return e.Message
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound) works
// regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "validation error"}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "Forbidden"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInvalidReference = &Error{Kind: KindInvalidReference, Message: "invalid reference"}
)

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// FieldError is a validation error pinned to a request field
func FieldError(source, path, msg string) error {
	return &Error{Kind: KindValidation, Message: msg, Source: source, Path: path}
}

func NotFound(what string) error { return &Error{Kind: KindNotFound, Message: what + " not found"} }

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func InvalidReference(msg string) error { return &Error{Kind: KindInvalidReference, Message: msg} }
