package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDeletionConflict is returned when a tab still has products assigned.
	ErrDeletionConflict = errors.New("tab has associated products and cannot be deleted")
	// ErrHomeTabProtected is returned for edits or deletes of the home tab.
	ErrHomeTabProtected = errors.New("the home tab cannot be edited or deleted")
	// ErrMutationInFlight is returned when the same record is already being
	// written by another request.
	ErrMutationInFlight = errors.New("another change to this record is still in progress")
	// ErrNotLoaded is returned by mutations issued before the first load.
	ErrNotLoaded = errors.New("storefront data has not been loaded yet")
	// ErrInvalidCredentials is returned by failed logins.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAIUnavailable is returned when no text generator is configured.
	ErrAIUnavailable = errors.New("AI service is not configured")
	// ErrTenantNotFound is returned for unknown tenant slugs.
	ErrTenantNotFound = errors.New("client not found")
)

// ValidationError reports fields that failed local checks before any call
// reached the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// newValidationError converts validator output into a ValidationError.
func newValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
