// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package validators

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for malformed payloads as a whole, before any field rule
// runs.
var (
	// ErrInvalidJSON is returned when the request body is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoFieldsProvided is returned by update validations when the
	// payload contains no fields at all.
	ErrNoFieldsProvided = errors.New("no fields to update")
)

// ValidationError reports every field rule a payload violated. It is a
// 400-class error: the handler layer serializes the violated field names
// into the response body.
type ValidationError struct {
	// Violations maps a field name to a human-readable rule description.
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Fields returns the names of the violated fields.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for field := range e.Violations {
		fields = append(fields, field)
	}
	return fields
}

func newValidationError() *ValidationError {
	return &ValidationError{Violations: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Violations[field] = message
}

// orNil returns the error itself when any violation was recorded, nil
// otherwise. Keeps the validate functions to a single return at the end.
func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
