// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
)

const defaultTokenTTL = 5 * time.Minute

// tokenCache is the Redis-backed implementation of [TokenCache]. Keys are
// derived from a SHA-256 of the token string so raw bearer tokens never end
// up in Redis. The user document stays the source of truth: entries are
// removed eagerly on revocation and the TTL only bounds staleness if an
// eager removal is ever missed.
type tokenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTokenCache connects to Redis and pings it. An empty Addr in the
// configuration disables caching: the constructor returns (nil, nil) and
// callers must treat a nil TokenCache as "always miss".
func NewTokenCache(ctx context.Context, cfg config.Cache, logger *logger.Logger) (TokenCache, error) {
	if cfg.Addr == "" {
		logger.Debug().Msg("token cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	logger.Debug().Str("addr", cfg.Addr).Dur("ttl", ttl).Msg("creating token cache")
	return &tokenCache{rdb: rdb, ttl: ttl}, nil
}

func (c *tokenCache) Get(ctx context.Context, tokenString string) (primitive.ObjectID, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKey(tokenString)).Result()
	if errors.Is(err, redis.Nil) {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}

	id, err := primitive.ObjectIDFromHex(val)
	if err != nil {
		// corrupted entry, treat as a miss
		return primitive.NilObjectID, false, nil
	}

	return id, true, nil
}

func (c *tokenCache) Set(ctx context.Context, tokenString string, userID primitive.ObjectID) error {
	return c.rdb.Set(ctx, cacheKey(tokenString), userID.Hex(), c.ttl).Err()
}

func (c *tokenCache) Delete(ctx context.Context, tokenStrings ...string) error {
	if len(tokenStrings) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tokenStrings))
	for _, t := range tokenStrings {
		keys = append(keys, cacheKey(t))
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func cacheKey(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return "token:" + hex.EncodeToString(sum[:])
}
