// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/mock"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/utils"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

// fakeDispatcher records notification calls without delivering anything.
type fakeDispatcher struct {
	welcomes  []string
	farewells []string
}

func (f *fakeDispatcher) SendWelcome(email, _ string)  { f.welcomes = append(f.welcomes, email) }
func (f *fakeDispatcher) SendFarewell(email, _ string) { f.farewells = append(f.farewells, email) }

var testAppConfig = config.App{
	TokenSignKey: "test-sign-key",
	TokenIssuer:  "taskkeeper-test",
	BcryptCost:   bcrypt.MinCost,
}

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	mail := &fakeDispatcher{}

	userID := primitive.NewObjectID()
	var storedHash string

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "McGillicutty", user.Name)
			assert.Equal(t, "clem@example.com", user.Email)
			assert.NotEqual(t, "RedBarron7!", user.PasswordHash, "password must be stored hashed")
			storedHash = user.PasswordHash

			user.ID = userID
			return user, nil
		})
	users.EXPECT().
		AddToken(gomock.Any(), userID, gomock.Any()).
		Return(nil)

	svc := NewAuthService(users, nil, mail, testAppConfig, logger.Nop())

	user, token, err := svc.Signup(context.Background(), validators.SignupData{
		Name:     "McGillicutty",
		Email:    "clem@example.com",
		Password: "RedBarron7!",
		Age:      42,
	})
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("RedBarron7!")))
	assert.Equal(t, []string{"clem@example.com"}, mail.welcomes)

	// the issued token must resolve back to the new account
	parsed, err := utils.ValidateAndParseJWTToken(token.SignedString, testAppConfig.TokenSignKey, testAppConfig.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.UserID)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	mail := &fakeDispatcher{}

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	svc := NewAuthService(users, nil, mail, testAppConfig, logger.Nop())

	_, _, err := svc.Signup(context.Background(), validators.SignupData{
		Name:     "McGillicutty",
		Email:    "clem@example.com",
		Password: "RedBarron7!",
	})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
	assert.Empty(t, mail.welcomes, "no welcome mail for a failed signup")
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("RedBarron7!"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := models.User{
		ID:           primitive.NewObjectID(),
		Name:         "McGillicutty",
		Email:        "clem@example.com",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantErr  error
	}{
		{
			name:     "correct credentials",
			email:    "clem@example.com",
			password: "RedBarron7!",
			found:    true,
		},
		{
			name:     "wrong password",
			email:    "clem@example.com",
			password: "not-the-password",
			found:    true,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "RedBarron7!",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)

			if tt.found {
				users.EXPECT().
					FindUserByEmail(gomock.Any(), tt.email).
					Return(existing, nil)
			} else {
				users.EXPECT().
					FindUserByEmail(gomock.Any(), tt.email).
					Return(models.User{}, store.ErrNoUserWasFound)
			}
			if tt.wantErr == nil {
				users.EXPECT().
					AddToken(gomock.Any(), existing.ID, gomock.Any()).
					Return(nil)
			}

			svc := NewAuthService(users, nil, &fakeDispatcher{}, testAppConfig, logger.Nop())

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, existing.ID, user.ID)
			assert.NotEmpty(t, token.SignedString)
		})
	}
}

func TestAuthService_ResolveToken(t *testing.T) {
	userID := primitive.NewObjectID()
	existing := models.User{ID: userID, Email: "clem@example.com"}

	token, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, userID, testAppConfig.TokenSignKey)
	require.NoError(t, err)

	t.Run("valid token still in collection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		users.EXPECT().
			FindUserByToken(gomock.Any(), userID, token.SignedString).
			Return(existing, nil)

		svc := NewAuthService(users, nil, &fakeDispatcher{}, testAppConfig, logger.Nop())

		user, err := svc.ResolveToken(context.Background(), token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("revoked token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		users.EXPECT().
			FindUserByToken(gomock.Any(), userID, token.SignedString).
			Return(models.User{}, store.ErrNoUserWasFound)

		svc := NewAuthService(users, nil, &fakeDispatcher{}, testAppConfig, logger.Nop())

		_, err := svc.ResolveToken(context.Background(), token.SignedString)
		assert.ErrorIs(t, err, ErrTokenIsInvalid)
	})

	t.Run("malformed token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)

		svc := NewAuthService(users, nil, &fakeDispatcher{}, testAppConfig, logger.Nop())

		_, err := svc.ResolveToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenIsInvalid)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		foreign, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, userID, "some-other-key")
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)

		svc := NewAuthService(users, nil, &fakeDispatcher{}, testAppConfig, logger.Nop())

		_, err = svc.ResolveToken(context.Background(), foreign.SignedString)
		assert.ErrorIs(t, err, ErrTokenIsInvalid)
	})

	t.Run("cache hit skips the token collection check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		cache := mock.NewMockTokenCache(ctrl)

		cache.EXPECT().
			Get(gomock.Any(), token.SignedString).
			Return(userID, true, nil)
		users.EXPECT().
			FindUserByID(gomock.Any(), userID).
			Return(existing, nil)

		svc := NewAuthService(users, cache, &fakeDispatcher{}, testAppConfig, logger.Nop())

		user, err := svc.ResolveToken(context.Background(), token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("cache miss resolves and populates the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		cache := mock.NewMockTokenCache(ctrl)

		cache.EXPECT().
			Get(gomock.Any(), token.SignedString).
			Return(primitive.NilObjectID, false, nil)
		users.EXPECT().
			FindUserByToken(gomock.Any(), userID, token.SignedString).
			Return(existing, nil)
		cache.EXPECT().
			Set(gomock.Any(), token.SignedString, userID).
			Return(nil)

		svc := NewAuthService(users, cache, &fakeDispatcher{}, testAppConfig, logger.Nop())

		_, err := svc.ResolveToken(context.Background(), token.SignedString)
		require.NoError(t, err)
	})

	t.Run("cache failure falls back to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mock.NewMockUserRepository(ctrl)
		cache := mock.NewMockTokenCache(ctrl)

		cache.EXPECT().
			Get(gomock.Any(), token.SignedString).
			Return(primitive.NilObjectID, false, errors.New("redis down"))
		users.EXPECT().
			FindUserByToken(gomock.Any(), userID, token.SignedString).
			Return(existing, nil)
		cache.EXPECT().
			Set(gomock.Any(), token.SignedString, userID).
			Return(nil)

		svc := NewAuthService(users, cache, &fakeDispatcher{}, testAppConfig, logger.Nop())

		user, err := svc.ResolveToken(context.Background(), token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	cache := mock.NewMockTokenCache(ctrl)

	user := models.User{ID: primitive.NewObjectID()}

	users.EXPECT().
		RemoveToken(gomock.Any(), user.ID, "the-token").
		Return(nil)
	cache.EXPECT().
		Delete(gomock.Any(), "the-token").
		Return(nil)

	svc := NewAuthService(users, cache, &fakeDispatcher{}, testAppConfig, logger.Nop())

	require.NoError(t, svc.Logout(context.Background(), user, "the-token"))
}

func TestAuthService_LogoutAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	cache := mock.NewMockTokenCache(ctrl)

	user := models.User{
		ID: primitive.NewObjectID(),
		Tokens: []models.Token{
			{SignedString: "token-one"},
			{SignedString: "token-two"},
		},
	}

	users.EXPECT().
		RemoveAllTokens(gomock.Any(), user.ID).
		Return(nil)
	cache.EXPECT().
		Delete(gomock.Any(), "token-one", "token-two").
		Return(nil)

	svc := NewAuthService(users, cache, &fakeDispatcher{}, testAppConfig, logger.Nop())

	require.NoError(t, svc.LogoutAll(context.Background(), user))
}
