// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/models"
)

// userRepository is the MongoDB-backed implementation of [UserRepository].
// It manages user documents in the "users" collection, including the
// embedded token array that backs bearer-token revocation.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	col    *mongo.Collection
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database and logger.
func NewUserRepository(db *mongo.Database, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		col:    db.Collection(models.User{}.CollectionName()),
		logger: logger,
	}
}

// CreateUser inserts a new user document and returns it with the
// server-assigned ID and timestamps.
//
// Error handling:
//   - duplicate key on the unique email index → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Tokens == nil {
		user.Tokens = []models.Token{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("email", user.Email).Msg("error inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindUserByToken resolves a user by ID with the additional condition that
// the token string is still present in the embedded token collection. This
// single query is both the identity lookup and the revocation check.
func (r *userRepository) FindUserByToken(ctx context.Context, id primitive.ObjectID, tokenString string) (models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "tokens.token": tokenString})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateUser overwrites the mutable profile fields of the user document and
// returns the updated document.
//
// The token array is deliberately not part of the update: token changes go
// through AddToken / RemoveToken / RemoveAllTokens so that concurrent logins
// and profile updates do not clobber each other.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"age":        user.Age,
		"avatar_key": user.AvatarKey,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.col.UpdateByID(ctx, user.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("id", user.ID.Hex()).Msg("error updating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return r.FindUserByID(ctx, user.ID)
}

func (r *userRepository) AddToken(ctx context.Context, id primitive.ObjectID, token models.Token) error {
	return r.updateTokens(ctx, id, bson.M{"$push": bson.M{"tokens": token}})
}

func (r *userRepository) RemoveToken(ctx context.Context, id primitive.ObjectID, tokenString string) error {
	return r.updateTokens(ctx, id, bson.M{"$pull": bson.M{"tokens": bson.M{"token": tokenString}}})
}

func (r *userRepository) RemoveAllTokens(ctx context.Context, id primitive.ObjectID) error {
	return r.updateTokens(ctx, id, bson.M{"$set": bson.M{"tokens": []models.Token{}}})
}

func (r *userRepository) updateTokens(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	log := logger.FromContext(ctx)

	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		log.Err(err).Str("id", id.Hex()).Msg("error updating user tokens")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	log := logger.FromContext(ctx)

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Err(err).Str("id", id.Hex()).Msg("error deleting user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
