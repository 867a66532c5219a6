// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/mailer"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/utils"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification with bcrypt, and
// the full bearer-token lifecycle: issue, resolve, revoke.
type authService struct {
	// userRepository is the data-access layer for user documents and their
	// embedded token collections.
	userRepository store.UserRepository

	// tokenCache is an optional read-through cache in front of token
	// resolution. Nil when caching is disabled; every operation tolerates
	// cache failures and falls back to the repository.
	tokenCache store.TokenCache

	// mail delivers the welcome notification after signup. Fire-and-forget.
	mail mailer.Dispatcher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// bcryptCost is the bcrypt work factor for password hashing.
	// Zero selects the bcrypt default.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given backends and
// populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, tokenCache store.TokenCache, mail mailer.Dispatcher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenCache:     tokenCache,
		mail:           mail,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// Signup creates a new account.
//
// The password arrives already validated and is hashed with bcrypt before it
// touches storage. On success the account immediately receives its first
// bearer token, and a welcome mail is enqueued without waiting for delivery.
//
// Returns the persisted user and token, or:
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - A wrapped storage or signing error otherwise.
func (a *authService) Signup(ctx context.Context, data validators.SignupData) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	hash, err := hashPassword(data.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: hash,
		Age:          data.Age,
	})
	if err != nil {
		log.Err(err).Str("email", data.Email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.issueToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	a.mail.SendWelcome(user.Email, user.Name)

	return user, token, nil
}

// Login authenticates an existing account and issues a fresh token.
//
// An unknown email and a wrong password both surface as
// ErrInvalidCredentials so that callers cannot probe which emails exist.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("id", user.ID.Hex()).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.issueToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// ResolveToken maps a raw bearer token string to its account.
//
// Resolution runs in two stages: the JWT signature and issuer are verified
// first, then the token must still be present in the owning user's token
// collection — that presence check is what makes revocation effective, since
// issued tokens carry no expiry. The optional cache short-circuits the
// presence check for recently resolved tokens; revocation removes cache
// entries eagerly and a TTL bounds staleness after a failed removal.
//
// Any validation failure is normalised to ErrTokenIsInvalid so that callers
// do not need to inspect low-level JWT errors.
func (a *authService) ResolveToken(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token failed signature or issuer check")
		return models.User{}, ErrTokenIsInvalid
	}

	if a.tokenCache != nil {
		cachedID, ok, err := a.tokenCache.Get(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("token cache lookup failed, falling back to repository")
		} else if ok && cachedID == token.UserID {
			user, err := a.userRepository.FindUserByID(ctx, cachedID)
			if err == nil {
				return user, nil
			}
			if !errors.Is(err, store.ErrNoUserWasFound) {
				return models.User{}, fmt.Errorf("user search by id failed: %w", err)
			}
			// account deleted since caching; fall through to the full check
		}
	}

	user, err := a.userRepository.FindUserByToken(ctx, token.UserID, tokenString)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("id", token.UserID.Hex()).Msg("token not present in user's token collection")
			return models.User{}, ErrTokenIsInvalid
		}
		log.Err(err).Str("id", token.UserID.Hex()).Msg("user search by token failed")
		return models.User{}, fmt.Errorf("user search by token failed: %w", err)
	}

	if a.tokenCache != nil {
		if err := a.tokenCache.Set(ctx, tokenString, user.ID); err != nil {
			log.Err(err).Msg("token cache write failed")
		}
	}

	return user, nil
}

// Logout revokes the single token used by the current session.
func (a *authService) Logout(ctx context.Context, user models.User, tokenString string) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.RemoveToken(ctx, user.ID, tokenString); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("token removal failed")
		return fmt.Errorf("token removal failed: %w", err)
	}

	a.dropCachedTokens(ctx, tokenString)
	return nil
}

// LogoutAll revokes every token of the account.
func (a *authService) LogoutAll(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.RemoveAllTokens(ctx, user.ID); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("token collection reset failed")
		return fmt.Errorf("token collection reset failed: %w", err)
	}

	a.dropCachedTokens(ctx, tokenStrings(user.Tokens)...)
	return nil
}

// issueToken signs a new JWT for the user and appends it to the user's token
// collection, making it resolvable.
func (a *authService) issueToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err := a.userRepository.AddToken(ctx, user.ID, token); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("token persistence failed")
		return models.Token{}, fmt.Errorf("token persistence failed: %w", err)
	}

	return token, nil
}

// dropCachedTokens removes cache entries for revoked tokens. Failures are
// logged only: the TTL bounds how long a stale entry can outlive revocation.
func (a *authService) dropCachedTokens(ctx context.Context, tokens ...string) {
	if a.tokenCache == nil || len(tokens) == 0 {
		return
	}
	if err := a.tokenCache.Delete(ctx, tokens...); err != nil {
		logger.FromContext(ctx).Err(err).Int("tokens", len(tokens)).Msg("token cache invalidation failed")
	}
}

// hashPassword hashes a plaintext password with bcrypt. A non-positive cost
// selects the bcrypt default.
func hashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// tokenStrings collects the compact string forms of the given tokens.
func tokenStrings(tokens []models.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.SignedString)
	}
	return out
}
