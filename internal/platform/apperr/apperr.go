// Package apperr defines the error kinds services return and how they are
// rendered over HTTP.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Duplicate
	ReferenceMissing
	InUse
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Duplicate:
		return "duplicate"
	case ReferenceMissing:
		return "reference_missing"
	case InUse:
		return "in_use"
	default:
		return "internal"
	}
}

// Status is the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Duplicate, InUse:
		return http.StatusConflict
	case ReferenceMissing:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewNotFound(entity, message string) *Error {
	return &Error{Kind: NotFound, Entity: entity, Message: message}
}

func NewDuplicate(entity, field, message string, err error) *Error {
	return &Error{Kind: Duplicate, Entity: entity, Field: field, Message: message, Err: err}
}

// NewReferenceMissing is returned when an operation names a related record
// (entity) that does not exist.
func NewReferenceMissing(entity, message string) *Error {
	return &Error{Kind: ReferenceMissing, Entity: entity, Message: message}
}

func NewInUse(entity, message string, err error) *Error {
	return &Error{Kind: InUse, Entity: entity, Message: message, Err: err}
}

func NewValidation(message string, fields []FieldError) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

// KindOf reports the kind of the first *Error in err's chain, Internal if none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries an *Error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
