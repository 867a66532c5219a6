// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the email is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("unable to login")

	// ErrTokenIsInvalid is returned when a bearer token fails signature or
	// issuer verification, or has been revoked (removed from the owning
	// user's token collection).
	ErrTokenIsInvalid = errors.New("token is invalid")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
