// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token wraps a JWT bearer token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access.
//
// Only SignedString is persisted: the user document stores each issued token
// as {token: "<compact JWS>"} inside its tokens array. A token is revoked by
// removing that entry, not by expiry — issued tokens carry no "exp" claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from both JSON and bson because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-" bson:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims `json:"-" bson:"-"`

	// SignedString is the compact JWS representation of the token.
	// This is the only field stored in the user document.
	SignedString string `json:"token" bson:"token"`

	// UserID is the owner identifier extracted from the "sub" claim.
	// Server-side cache, never serialized.
	UserID primitive.ObjectID `json:"-" bson:"-"`
}

// GetUserID extracts the owner's ObjectID from the token's "sub" claim.
//
// Returns an error if the subject claim is missing, empty, or is not a valid
// ObjectID hex string.
func (t *Token) GetUserID() (primitive.ObjectID, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error converting token subject to ObjectID: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
