// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given
// parameters.
//
// The token includes the following standard claims:
//   - Issuer   (iss): identifies the service that issued the token
//   - Subject  (sub): the user ObjectID encoded as a hex string
//   - IssuedAt (iat): the current time
//   - ID       (jti): a random UUID
//
// The jti claim makes every issued token unique. Without it, iat has
// whole-second precision and two logins inside the same second would produce
// byte-identical tokens — and revoking one of them would revoke both, since
// revocation matches on the token string.
//
// Note that no ExpiresAt claim is set: a token stays valid until it is
// removed from the owning user's token collection. Revocation happens in the
// database, not in the token itself.
//
// Returns an error if issuer or signKey is empty, the userID is the zero
// ObjectID, or signing fails.
func GenerateJWTToken(issuer string, userID primitive.ObjectID, signKey string) (models.Token, error) {
	if issuer == "" || signKey == "" || userID.IsZero() {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  userID.Hex(),
		IssuedAt: jwt.NewNumericDate(time.Now()),
		ID:       uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Subject (sub) claim presence and conversion to an ObjectID
//
// Note that this only proves the token was issued by this service. Whether
// the token is still accepted is decided by its presence in the owning
// user's token collection, which the caller must check separately.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to ObjectID: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ParseBearerToken extracts the token part from an "Authorization" header
// value of the form "<scheme> <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
