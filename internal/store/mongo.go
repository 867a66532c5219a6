// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therealrogden/taskkeeper/internal/config"
)

// connectTimeout bounds the initial connection and index-creation phase.
const connectTimeout = 10 * time.Second

// NewMongoDatabase connects to MongoDB using the given configuration, pings
// the deployment, and ensures the indexes the repositories rely on:
//
//   - a unique index on users.email (duplicate signups surface as
//     ErrEmailAlreadyExists);
//   - a compound index on tasks.owner + tasks.created_at covering the
//     owner-scoped listing query.
//
// The returned close function disconnects the client and should be deferred
// by the caller.
func NewMongoDatabase(ctx context.Context, cfg config.Mongo) (*mongo.Database, func(context.Context) error, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)

	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return db, client.Disconnect, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo create users index: %w", err)
	}

	_, err = db.Collection("tasks").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo create tasks index: %w", err)
	}

	return nil
}
