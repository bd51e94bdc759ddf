package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the write path and the query layer.
// Match them with errors.Is.
var (
	ErrQuotaExceeded         = errors.New("quota exceeded")
	ErrMissingRequiredField  = errors.New("missing required field")
	ErrInvalidRange          = errors.New("invalid range")
	ErrDuplicateRelationship = errors.New("duplicate relationship")
	ErrValidationFailed      = errors.New("validation failed")
	ErrNotFound              = errors.New("not found")
)

// GuardError is returned when a guard rejects a write
type GuardError struct {
	Kind    error
	Entity  string
	Limit   int // Ceiling for quota failures, zero otherwise
	Message string
}

func (e *GuardError) Error() string {
	return e.Message
}

func (e *GuardError) Unwrap() error {
	return e.Kind
}

// QuotaExceeded names the entity and its per-user ceiling
func QuotaExceeded(entity string, limit int) *GuardError {
	return &GuardError{
		Kind:    ErrQuotaExceeded,
		Entity:  entity,
		Limit:   limit,
		Message: fmt.Sprintf("user can only have a max of %d %s", limit, entity),
	}
}

func MissingField(entity, field string) *GuardError {
	return &GuardError{
		Kind:    ErrMissingRequiredField,
		Entity:  entity,
		Message: fmt.Sprintf("%s requires %s", entity, field),
	}
}

func Invalid(entity, message string) *GuardError {
	return &GuardError{Kind: ErrValidationFailed, Entity: entity, Message: message}
}

// NotFound reports an absent record of the given entity
func NotFound(entity string) *GuardError {
	return &GuardError{Kind: ErrNotFound, Entity: entity, Message: entity + " does not exist"}
}

// ErrorCode returns a stable code for an error kind
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		return "QUOTA_EXCEEDED"
	case errors.Is(err, ErrMissingRequiredField):
		return "MISSING_REQUIRED_FIELD"
	case errors.Is(err, ErrInvalidRange):
		return "INVALID_RANGE"
	case errors.Is(err, ErrDuplicateRelationship):
		return "DUPLICATE_RELATIONSHIP"
	case errors.Is(err, ErrValidationFailed):
		return "VALIDATION_FAILED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}
