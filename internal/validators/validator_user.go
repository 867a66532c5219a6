// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package validators

import (
	"net/mail"
	"strings"
)

// Permitted field names for user payloads.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldAge      = "age"
)

const minPasswordLength = 7

// signupFields and userUpdateFields are the per-operation allowlists.
// They happen to coincide today but are kept separate so the two operations
// can diverge without touching the decode path.
var (
	signupFields     = []string{FieldName, FieldEmail, FieldPassword, FieldAge}
	userUpdateFields = []string{FieldName, FieldEmail, FieldPassword, FieldAge}
)

// SignupData is the validated, normalized result of a signup payload.
type SignupData struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// UserUpdate is the validated result of a profile update payload. Nil fields
// were absent from the payload and must be left unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// IsEmpty reports whether the payload carried no recognised field at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.Age == nil
}

// UserValidator validates signup and profile-update payloads.
type UserValidator struct{}

func NewUserValidator() *UserValidator {
	return &UserValidator{}
}

// ValidateSignup parses and validates a signup body.
//
// Rules: name, email, and password are required; name non-empty; email
// syntactically valid, normalized to lowercase; password at least 7
// characters and must not contain "password" case-insensitively; age, when
// present, a non-negative integer.
func (v *UserValidator) ValidateSignup(body []byte) (SignupData, error) {
	p, err := decodePayload(body, signupFields...)
	if err != nil {
		return SignupData{}, err
	}

	verr := newValidationError()
	data := SignupData{}

	data.Name = validateName(p, verr, true)
	data.Email = validateEmail(p, verr, true)
	data.Password = validatePassword(p, verr, true)
	data.Age = validateAge(p, verr)

	return data, verr.orNil()
}

// ValidateUserUpdate parses and validates a profile update body. All fields
// are optional, but at least one must be present, and every present field
// obeys the same rules as at signup.
func (v *UserValidator) ValidateUserUpdate(body []byte) (UserUpdate, error) {
	p, err := decodePayload(body, userUpdateFields...)
	if err != nil {
		return UserUpdate{}, err
	}

	if len(p) == 0 {
		return UserUpdate{}, ErrNoFieldsProvided
	}

	verr := newValidationError()
	update := UserUpdate{}

	if _, ok := p[FieldName]; ok {
		name := validateName(p, verr, false)
		update.Name = &name
	}
	if _, ok := p[FieldEmail]; ok {
		email := validateEmail(p, verr, false)
		update.Email = &email
	}
	if _, ok := p[FieldPassword]; ok {
		password := validatePassword(p, verr, false)
		update.Password = &password
	}
	if _, ok := p[FieldAge]; ok {
		age := validateAge(p, verr)
		update.Age = &age
	}

	return update, verr.orNil()
}

func validateName(p payload, verr *ValidationError, required bool) string {
	var name string
	if err := unmarshalField(p, FieldName, &name); err != nil {
		verr.add(FieldName, "must be a string")
		return ""
	}

	if _, present := p[FieldName]; !present {
		if required {
			verr.add(FieldName, "is required")
		}
		return ""
	}

	if strings.TrimSpace(name) == "" {
		verr.add(FieldName, "must not be empty")
		return ""
	}

	return name
}

func validateEmail(p payload, verr *ValidationError, required bool) string {
	var email string
	if err := unmarshalField(p, FieldEmail, &email); err != nil {
		verr.add(FieldEmail, "must be a string")
		return ""
	}

	if _, present := p[FieldEmail]; !present {
		if required {
			verr.add(FieldEmail, "is required")
		}
		return ""
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.add(FieldEmail, "must be a valid email address")
		return ""
	}

	return email
}

func validatePassword(p payload, verr *ValidationError, required bool) string {
	var password string
	if err := unmarshalField(p, FieldPassword, &password); err != nil {
		verr.add(FieldPassword, "must be a string")
		return ""
	}

	if _, present := p[FieldPassword]; !present {
		if required {
			verr.add(FieldPassword, "is required")
		}
		return ""
	}

	if len(password) < minPasswordLength {
		verr.add(FieldPassword, "must be at least 7 characters long")
		return ""
	}
	if strings.Contains(strings.ToLower(password), "password") {
		verr.add(FieldPassword, `must not contain "password"`)
		return ""
	}

	return password
}

func validateAge(p payload, verr *ValidationError) int {
	var age int
	if err := unmarshalField(p, FieldAge, &age); err != nil {
		verr.add(FieldAge, "must be an integer")
		return 0
	}

	if age < 0 {
		verr.add(FieldAge, "must be a non-negative integer")
		return 0
	}

	return age
}
