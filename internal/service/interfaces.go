// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

// AuthService owns the credential and bearer-token lifecycle: account
// registration, login, token resolution, and revocation.
type AuthService interface {
	// Signup creates an account from validated signup data, issues the
	// first bearer token, and triggers the welcome notification.
	// Returns store.ErrEmailAlreadyExists when the email is taken.
	Signup(ctx context.Context, data validators.SignupData) (models.User, models.Token, error)

	// Login verifies the credentials and issues a fresh bearer token.
	// Returns ErrInvalidCredentials on an unknown email or a wrong
	// password, without distinguishing the two.
	Login(ctx context.Context, email, password string) (models.User, models.Token, error)

	// ResolveToken maps a raw bearer token string to the account it
	// belongs to. A token resolves only while its signature and issuer
	// verify AND it is still present in the owning user's token
	// collection. Any failure is reported as ErrTokenIsInvalid.
	ResolveToken(ctx context.Context, tokenString string) (models.User, error)

	// Logout revokes the single token the current request authenticated
	// with. Other sessions stay valid.
	Logout(ctx context.Context, user models.User, tokenString string) error

	// LogoutAll revokes every token of the account at once.
	LogoutAll(ctx context.Context, user models.User) error
}

// UserService owns the account profile: updates, deletion, and the avatar.
type UserService interface {
	// UpdateProfile applies the validated partial update to the user's
	// profile and returns the updated document. A password change is
	// re-hashed before storage.
	UpdateProfile(ctx context.Context, user models.User, update validators.UserUpdate) (models.User, error)

	// DeleteAccount removes the account together with all of its tasks
	// and its avatar, revokes every token, and triggers the farewell
	// notification. Returns the deleted user document.
	DeleteAccount(ctx context.Context, user models.User) (models.User, error)

	// UploadAvatar stores the avatar blob and records its key on the
	// user document, replacing any previous avatar.
	UploadAvatar(ctx context.Context, user models.User, data []byte, contentType string) error

	// Avatar returns the avatar blob and content type of any user by ID.
	// Returns store.ErrAvatarNotFound when the user does not exist or
	// has no avatar.
	Avatar(ctx context.Context, userID primitive.ObjectID) ([]byte, string, error)

	// DeleteAvatar removes the user's avatar blob and clears its key.
	// Returns store.ErrAvatarNotFound when there is nothing to remove.
	DeleteAvatar(ctx context.Context, user models.User) error
}

// TaskService owns the owner-scoped task CRUD operations. Every operation
// takes the owner explicitly; a task belonging to another user behaves
// exactly like a missing one.
type TaskService interface {
	CreateTask(ctx context.Context, owner primitive.ObjectID, data validators.TaskCreate) (models.Task, error)

	// ListTasks returns the owner's tasks, filtered, sorted, and
	// paginated per the filter.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	GetTask(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error)

	// UpdateTask applies the validated partial update to the task matched
	// by ID and owner and returns the updated document.
	UpdateTask(ctx context.Context, id, owner primitive.ObjectID, update validators.TaskUpdate) (models.Task, error)

	// DeleteTask removes the task matched by ID and owner and returns
	// the removed document.
	DeleteTask(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error)
}
