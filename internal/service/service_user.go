// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/mailer"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

// userService is the concrete implementation of UserService. It coordinates
// the user repository, the task repository (for the deletion cascade), the
// avatar object store, and the token cache.
type userService struct {
	userRepository store.UserRepository
	taskRepository store.TaskRepository
	avatarStore    store.AvatarStore

	// tokenCache may be nil when caching is disabled.
	tokenCache store.TokenCache

	// mail delivers the farewell notification after account deletion.
	mail mailer.Dispatcher

	bcryptCost int

	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given backends.
func NewUserService(storages *store.Storages, mail mailer.Dispatcher, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: storages.UserRepository,
		taskRepository: storages.TaskRepository,
		avatarStore:    storages.AvatarStore,
		tokenCache:     storages.TokenCache,
		mail:           mail,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// UpdateProfile applies a validated partial update to the user's profile.
// Absent fields keep their stored values; a new password is re-hashed before
// storage. Existing sessions stay logged in across a password change.
func (u *userService) UpdateProfile(ctx context.Context, user models.User, update validators.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Password != nil {
		hash, err := hashPassword(*update.Password, u.bcryptCost)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := u.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteAccount removes the account and everything attached to it: every
// task the user owns, the avatar blob, the cached tokens, and finally the
// user document itself. The farewell mail is enqueued last and only after
// the document is gone.
//
// The cascade is not atomic. Tasks are removed first so that an interrupted
// deletion can never leave orphaned tasks behind a still-deletable account.
func (u *userService) DeleteAccount(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	deleted, err := u.taskRepository.DeleteTasksByOwner(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("task cascade deletion failed")
		return models.User{}, fmt.Errorf("task cascade deletion failed: %w", err)
	}
	log.Debug().Str("id", user.ID.Hex()).Int64("tasks", deleted).Msg("owner's tasks deleted")

	if user.AvatarKey != "" {
		if err := u.avatarStore.Remove(ctx, user.AvatarKey); err != nil && !errors.Is(err, store.ErrAvatarNotFound) {
			// an orphaned blob is tolerable, a blocked account deletion is not
			log.Err(err).Str("key", user.AvatarKey).Msg("avatar removal failed during account deletion")
		}
	}

	if u.tokenCache != nil && len(user.Tokens) > 0 {
		if err := u.tokenCache.Delete(ctx, tokenStrings(user.Tokens)...); err != nil {
			log.Err(err).Str("id", user.ID.Hex()).Msg("token cache invalidation failed")
		}
	}

	if err := u.userRepository.DeleteUser(ctx, user.ID); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("user deletion ended with error")
		return models.User{}, fmt.Errorf("user deletion ended with error: %w", err)
	}

	u.mail.SendFarewell(user.Email, user.Name)

	return user, nil
}

// UploadAvatar stores the avatar blob under a key derived from the user ID
// and records that key on the user document. Re-uploading overwrites the
// previous blob in place.
func (u *userService) UploadAvatar(ctx context.Context, user models.User, data []byte, contentType string) error {
	log := logger.FromContext(ctx)

	key := avatarKey(user.ID)
	if err := u.avatarStore.Upload(ctx, key, data, contentType); err != nil {
		log.Err(err).Str("key", key).Msg("avatar upload failed")
		return fmt.Errorf("avatar upload failed: %w", err)
	}

	if user.AvatarKey == key {
		return nil
	}

	user.AvatarKey = key
	if _, err := u.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("avatar key persistence failed")
		return fmt.Errorf("avatar key persistence failed: %w", err)
	}

	return nil
}

// Avatar serves any user's avatar by user ID. This is the one profile read
// that requires no authentication.
func (u *userService) Avatar(ctx context.Context, userID primitive.ObjectID) ([]byte, string, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return nil, "", store.ErrAvatarNotFound
		}
		log.Err(err).Str("id", userID.Hex()).Msg("user search by id failed")
		return nil, "", fmt.Errorf("user search by id failed: %w", err)
	}

	if user.AvatarKey == "" {
		return nil, "", store.ErrAvatarNotFound
	}

	data, contentType, err := u.avatarStore.Download(ctx, user.AvatarKey)
	if err != nil {
		if errors.Is(err, store.ErrAvatarNotFound) {
			return nil, "", err
		}
		log.Err(err).Str("key", user.AvatarKey).Msg("avatar download failed")
		return nil, "", fmt.Errorf("avatar download failed: %w", err)
	}

	return data, contentType, nil
}

// DeleteAvatar removes the user's avatar blob and clears the stored key.
func (u *userService) DeleteAvatar(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if user.AvatarKey == "" {
		return store.ErrAvatarNotFound
	}

	if err := u.avatarStore.Remove(ctx, user.AvatarKey); err != nil && !errors.Is(err, store.ErrAvatarNotFound) {
		log.Err(err).Str("key", user.AvatarKey).Msg("avatar removal failed")
		return fmt.Errorf("avatar removal failed: %w", err)
	}

	user.AvatarKey = ""
	if _, err := u.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("avatar key removal failed")
		return fmt.Errorf("avatar key removal failed: %w", err)
	}

	return nil
}

// avatarKey derives the object-storage key for a user's avatar. One avatar
// per user: the key is stable across re-uploads.
func avatarKey(userID primitive.ObjectID) string {
	return "avatars/" + userID.Hex()
}
