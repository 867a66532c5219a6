// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"context"
	"fmt"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
)

// Storages bundles every persistence backend the services depend on.
// TokenCache may be nil when caching is disabled by configuration.
type Storages struct {
	UserRepository UserRepository
	TaskRepository TaskRepository
	AvatarStore    AvatarStore
	TokenCache     TokenCache

	// Close disconnects the underlying MongoDB client.
	Close func(context.Context) error
}

// NewStorages connects to all configured backends and wires the
// repositories. It fails fast: a backend that is configured but unreachable
// aborts startup.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, closeDB, err := NewMongoDatabase(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("error creating mongo database: %w", err)
	}

	avatars, err := NewAvatarStore(ctx, cfg.Avatars, logger)
	if err != nil {
		_ = closeDB(ctx)
		return nil, fmt.Errorf("error creating avatar store: %w", err)
	}

	cache, err := NewTokenCache(ctx, cfg.Cache, logger)
	if err != nil {
		_ = closeDB(ctx)
		return nil, fmt.Errorf("error creating token cache: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		TaskRepository: NewTaskRepository(db, logger),
		AvatarStore:    avatars,
		TokenCache:     cache,
		Close:          closeDB,
	}, nil
}
