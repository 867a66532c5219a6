// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/models"
)

// UserRepository is the persistence contract for user documents, including
// the embedded bearer-token collection.
type UserRepository interface {
	// CreateUser inserts a new user document and returns it with the
	// server-assigned ID and timestamps. Returns ErrEmailAlreadyExists
	// when the unique email index rejects the insert.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its lowercased email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its document ID.
	FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error)

	// FindUserByToken resolves an account by ID with the additional
	// condition that tokenString is still present in its token collection.
	// This is the revocation check: a removed token no longer matches.
	FindUserByToken(ctx context.Context, id primitive.ObjectID, tokenString string) (models.User, error)

	// UpdateUser overwrites the mutable profile fields (name, email,
	// password hash, age, avatar key) of the given user document and
	// returns the updated document.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// AddToken appends a freshly issued token to the user's collection.
	AddToken(ctx context.Context, id primitive.ObjectID, token models.Token) error

	// RemoveToken removes one token from the user's collection (logout).
	RemoveToken(ctx context.Context, id primitive.ObjectID, tokenString string) error

	// RemoveAllTokens clears the user's token collection (logout-all).
	RemoveAllTokens(ctx context.Context, id primitive.ObjectID) error

	// DeleteUser removes the user document. Tokens disappear with it.
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// TaskRepository is the persistence contract for owner-scoped task documents.
// All single-task lookups take the owner explicitly so that a task belonging
// to another user is indistinguishable from a missing one.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// FindTasks runs an owner-scoped listing described by the filter.
	FindTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	FindTaskByID(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error)

	// UpdateTask overwrites description and completed of the task matched
	// by ID and owner, and returns the updated document.
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)

	// DeleteTask removes the task matched by ID and owner and returns the
	// removed document.
	DeleteTask(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error)

	// DeleteTasksByOwner removes every task of the given owner and reports
	// how many documents were deleted. Used by account deletion.
	DeleteTasksByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
}

// AvatarStore is the contract for avatar blob storage.
type AvatarStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Download returns the blob and its stored content type.
	Download(ctx context.Context, key string) ([]byte, string, error)

	Remove(ctx context.Context, key string) error
}

// TokenCache is an optional cache in front of token resolution. Entries map
// a bearer token string to its owning user ID and must be removed whenever
// the token is revoked.
type TokenCache interface {
	// Get returns the cached owner of the token. The bool reports whether
	// the entry was present; a miss is not an error.
	Get(ctx context.Context, tokenString string) (primitive.ObjectID, bool, error)

	Set(ctx context.Context, tokenString string, userID primitive.ObjectID) error

	// Delete drops cache entries for the given tokens.
	Delete(ctx context.Context, tokenStrings ...string) error
}
