// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup_Success(t *testing.T) {
	v := NewUserValidator()

	data, err := v.ValidateSignup([]byte(`{"name":"McGillicutty","email":"Clem@Example.com","password":"453Were!@1","age":30}`))
	require.NoError(t, err)

	assert.Equal(t, "McGillicutty", data.Name)
	assert.Equal(t, "clem@example.com", data.Email, "email must be lowercased")
	assert.Equal(t, "453Were!@1", data.Password)
	assert.Equal(t, 30, data.Age)
}

func TestValidateSignup_AgeOptionalDefaultsToZero(t *testing.T) {
	v := NewUserValidator()

	data, err := v.ValidateSignup([]byte(`{"name":"Carl Sagan","email":"csagan@example.com","password":"C0sm0$1!1"}`))
	require.NoError(t, err)
	assert.Equal(t, 0, data.Age)
}

func TestValidateSignup_TableTest(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "unknown field rejected",
			body:      `{"name":"a","email":"a@b.com","password":"longenough","location":"earth"}`,
			wantField: "location",
		},
		{
			name:      "empty name",
			body:      `{"name":"  ","email":"a@b.com","password":"longenough"}`,
			wantField: FieldName,
		},
		{
			name:      "missing name",
			body:      `{"email":"a@b.com","password":"longenough"}`,
			wantField: FieldName,
		},
		{
			name:      "invalid email",
			body:      `{"name":"a","email":"not-an-email","password":"longenough"}`,
			wantField: FieldEmail,
		},
		{
			name:      "short password",
			body:      `{"name":"a","email":"a@b.com","password":"short"}`,
			wantField: FieldPassword,
		},
		{
			name:      "password contains password",
			body:      `{"name":"a","email":"a@b.com","password":"myPASSword1"}`,
			wantField: FieldPassword,
		},
		{
			name:      "negative age",
			body:      `{"name":"a","email":"a@b.com","password":"longenough","age":-1}`,
			wantField: FieldAge,
		},
		{
			name:      "age as string",
			body:      `{"name":"a","email":"a@b.com","password":"longenough","age":"30"}`,
			wantField: FieldAge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateSignup([]byte(tt.body))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields(), tt.wantField)
		})
	}
}

func TestValidateSignup_InvalidJSON(t *testing.T) {
	v := NewUserValidator()

	_, err := v.ValidateSignup([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestValidateSignup_CollectsAllViolations(t *testing.T) {
	v := NewUserValidator()

	_, err := v.ValidateSignup([]byte(`{"name":"","email":"bad","password":"x"}`))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{FieldName, FieldEmail, FieldPassword}, verr.Fields())
}

func TestValidateUserUpdate_PartialFields(t *testing.T) {
	v := NewUserValidator()

	update, err := v.ValidateUserUpdate([]byte(`{"name":"new name"}`))
	require.NoError(t, err)

	require.NotNil(t, update.Name)
	assert.Equal(t, "new name", *update.Name)
	assert.Nil(t, update.Email)
	assert.Nil(t, update.Password)
	assert.Nil(t, update.Age)
}

func TestValidateUserUpdate_EmptyPayload(t *testing.T) {
	v := NewUserValidator()

	_, err := v.ValidateUserUpdate([]byte(`{}`))
	assert.ErrorIs(t, err, ErrNoFieldsProvided)
}

func TestValidateUserUpdate_ForbiddenField(t *testing.T) {
	v := NewUserValidator()

	_, err := v.ValidateUserUpdate([]byte(`{"tokens":[]}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), "tokens")
	assert.False(t, errors.Is(err, ErrInvalidJSON))
}

func TestValidateUserUpdate_PasswordRulesStillApply(t *testing.T) {
	v := NewUserValidator()

	_, err := v.ValidateUserUpdate([]byte(`{"password":"password123"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), FieldPassword)
}
