// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package validators

import (
	"strings"
)

// Permitted field names for task payloads.
const (
	FieldDescription = "description"
	FieldCompleted   = "completed"
)

var (
	taskCreateFields = []string{FieldDescription, FieldCompleted}
	taskUpdateFields = []string{FieldDescription, FieldCompleted}
)

// TaskCreate is the validated result of a task creation payload.
type TaskCreate struct {
	Description string
	Completed   bool
}

// TaskUpdate is the validated result of a task update payload. Nil fields
// were absent and must be left unchanged.
type TaskUpdate struct {
	Description *string
	Completed   *bool
}

// TaskValidator validates task creation and update payloads.
type TaskValidator struct{}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

// ValidateTaskCreate parses and validates a task creation body.
//
// Rules: description is required and non-empty after trimming; completed,
// when present, must be a JSON boolean — a quoted "true" is rejected, not
// coerced.
func (v *TaskValidator) ValidateTaskCreate(body []byte) (TaskCreate, error) {
	p, err := decodePayload(body, taskCreateFields...)
	if err != nil {
		return TaskCreate{}, err
	}

	verr := newValidationError()
	data := TaskCreate{}

	data.Description = validateDescription(p, verr, true)
	data.Completed = validateCompleted(p, verr)

	return data, verr.orNil()
}

// ValidateTaskUpdate parses and validates a task update body. At least one
// permitted field must be present.
func (v *TaskValidator) ValidateTaskUpdate(body []byte) (TaskUpdate, error) {
	p, err := decodePayload(body, taskUpdateFields...)
	if err != nil {
		return TaskUpdate{}, err
	}

	if len(p) == 0 {
		return TaskUpdate{}, ErrNoFieldsProvided
	}

	verr := newValidationError()
	update := TaskUpdate{}

	if _, ok := p[FieldDescription]; ok {
		description := validateDescription(p, verr, false)
		update.Description = &description
	}
	if _, ok := p[FieldCompleted]; ok {
		completed := validateCompleted(p, verr)
		update.Completed = &completed
	}

	return update, verr.orNil()
}

func validateDescription(p payload, verr *ValidationError, required bool) string {
	var description string
	if err := unmarshalField(p, FieldDescription, &description); err != nil {
		verr.add(FieldDescription, "must be a string")
		return ""
	}

	if _, present := p[FieldDescription]; !present {
		if required {
			verr.add(FieldDescription, "is required")
		}
		return ""
	}

	description = strings.TrimSpace(description)
	if description == "" {
		verr.add(FieldDescription, "must not be empty")
		return ""
	}

	return description
}

func validateCompleted(p payload, verr *ValidationError) bool {
	var completed bool
	if err := unmarshalField(p, FieldCompleted, &completed); err != nil {
		verr.add(FieldCompleted, "must be a boolean")
		return false
	}

	return completed
}
