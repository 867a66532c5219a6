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

// taskRepository is the MongoDB-backed implementation of [TaskRepository].
// Every query includes the owner in its filter, so cross-user access is
// impossible at this layer regardless of what the caller passes in.
type taskRepository struct {
	logger *logger.Logger
	col    *mongo.Collection
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database and logger.
func NewTaskRepository(db *mongo.Database, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		col:    db.Collection(models.Task{}.CollectionName()),
		logger: logger,
	}
}

func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, task)
	if err != nil {
		log.Err(err).Str("owner", task.Owner.Hex()).Msg("error inserting task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	task.ID = res.InsertedID.(primitive.ObjectID)
	return task, nil
}

// FindTasks runs the owner-scoped listing described by the filter. The
// filter is translated into a bson query plus find options by
// buildTaskQuery; see task_query.go.
func (r *taskRepository) FindTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, opts := buildTaskQuery(filter)

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		log.Err(err).Str("owner", filter.Owner.Hex()).Msg("error listing tasks")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		log.Err(err).Str("owner", filter.Owner.Hex()).Msg("error decoding tasks")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) FindTaskByID(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error) {
	log := logger.FromContext(ctx)

	var task models.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Err(err).Str("id", id.Hex()).Msg("error finding task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return task, nil
}

func (r *taskRepository) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	filter := bson.M{"_id": task.ID, "owner": task.Owner}
	update := bson.M{"$set": bson.M{
		"description": task.Description,
		"completed":   task.Completed,
		"updated_at":  time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		log.Err(err).Str("id", task.ID.Hex()).Msg("error updating task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	return r.FindTaskByID(ctx, task.ID, task.Owner)
}

func (r *taskRepository) DeleteTask(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error) {
	log := logger.FromContext(ctx)

	var task models.Task
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id, "owner": owner}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Err(err).Str("id", id.Hex()).Msg("error deleting task")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return task, nil
}

func (r *taskRepository) DeleteTasksByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.col.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		log.Err(err).Str("owner", owner.Hex()).Msg("error deleting tasks by owner")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return res.DeletedCount, nil
}
