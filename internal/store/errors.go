// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to create a user
	// fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// document produces no result. It also covers the revocation case:
	// a token lookup against a user whose token collection no longer
	// contains the token resolves to this error.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTaskNotFound is returned when a task lookup, update, or delete
	// matches no document for the given ID and owner. A task owned by a
	// different user is reported identically to an absent one.
	ErrTaskNotFound = errors.New("task was not found")

	// ErrAvatarNotFound is returned when the requested user has no avatar
	// or the stored object is missing.
	ErrAvatarNotFound = errors.New("avatar was not found")
)
