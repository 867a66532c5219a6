// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	testIssuer  = "taskkeeper-test"
	testSignKey = "test-sign-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := GenerateJWTToken(testIssuer, userID, testSignKey)
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, userID, token.UserID)
}

func TestGenerateJWTToken_EveryTokenIsUnique(t *testing.T) {
	userID := primitive.NewObjectID()

	// iat has whole-second precision, so back-to-back issuances land in the
	// same second; the jti claim must still keep the tokens distinct, or a
	// second login would mint a duplicate and revoking one session would
	// revoke both.
	first, err := GenerateJWTToken(testIssuer, userID, testSignKey)
	require.NoError(t, err)
	second, err := GenerateJWTToken(testIssuer, userID, testSignKey)
	require.NoError(t, err)

	assert.NotEqual(t, first.SignedString, second.SignedString,
		"two logins must append two distinct tokens")
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name    string
		issuer  string
		userID  primitive.ObjectID
		signKey string
	}{
		{name: "empty issuer", issuer: "", userID: userID, signKey: testSignKey},
		{name: "zero user id", issuer: testIssuer, userID: primitive.NilObjectID, signKey: testSignKey},
		{name: "empty sign key", issuer: testIssuer, userID: userID, signKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	issued, err := GenerateJWTToken(testIssuer, userID, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.UserID)
	assert.Equal(t, issued.SignedString, parsed.SignedString)
}

func TestValidateAndParseJWTToken_WrongSignKey(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, primitive.NewObjectID(), testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, "other-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, primitive.NewObjectID(), testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, testSignKey, "other-issuer")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Garbage(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not-a-jwt", testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestParseBearerToken_TableTest(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
		{name: "no scheme", header: "abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
