package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned (usually wrapped with the entity name) when no document matches an id
var ErrNotFound = errors.New("not found")

// FieldError describes one invalid field of a request payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every invalid field found while validating an entity
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Add records a failed field
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// DuplicateError reports a uniqueness collision on a single field
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// NotFound wraps ErrNotFound with the entity name, e.g. "portfolio item not found"
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
