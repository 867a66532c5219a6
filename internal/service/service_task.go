// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

// taskService is the concrete implementation of TaskService. Owner scoping
// is enforced one layer below, in the repository queries; this layer only
// shapes the data flowing through.
type taskService struct {
	taskRepository store.TaskRepository
	logger         *logger.Logger
}

// NewTaskService constructs a TaskService wired to the given TaskRepository.
func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		logger:         logger,
	}
}

// CreateTask persists a new task for the given owner.
func (t *taskService) CreateTask(ctx context.Context, owner primitive.ObjectID, data validators.TaskCreate) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := t.taskRepository.CreateTask(ctx, models.Task{
		Description: data.Description,
		Completed:   data.Completed,
		Owner:       owner,
	})
	if err != nil {
		log.Err(err).Str("owner", owner.Hex()).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return task, nil
}

// ListTasks returns the owner's tasks described by the filter.
func (t *taskService) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	tasks, err := t.taskRepository.FindTasks(ctx, filter)
	if err != nil {
		log.Err(err).Str("owner", filter.Owner.Hex()).Msg("task listing ended with error")
		return nil, fmt.Errorf("task listing ended with error: %w", err)
	}

	return tasks, nil
}

// GetTask fetches a single task by ID, scoped to the owner.
// Returns store.ErrTaskNotFound for absent and foreign tasks alike.
func (t *taskService) GetTask(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := t.taskRepository.FindTaskByID(ctx, id, owner)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Hex()).Str("owner", owner.Hex()).Msg("task lookup failed")
		return models.Task{}, fmt.Errorf("task lookup failed: %w", err)
	}

	return task, nil
}

// UpdateTask applies a validated partial update to the task matched by ID
// and owner. Absent fields keep their stored values.
func (t *taskService) UpdateTask(ctx context.Context, id, owner primitive.ObjectID, update validators.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := t.taskRepository.FindTaskByID(ctx, id, owner)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Hex()).Str("owner", owner.Hex()).Msg("task lookup failed")
		return models.Task{}, fmt.Errorf("task lookup failed: %w", err)
	}

	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}

	updated, err := t.taskRepository.UpdateTask(ctx, task)
	if err != nil {
		log.Err(err).Str("id", id.Hex()).Str("owner", owner.Hex()).Msg("task update ended with error")
		return models.Task{}, fmt.Errorf("task update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteTask removes the task matched by ID and owner and returns the
// removed document.
func (t *taskService) DeleteTask(ctx context.Context, id, owner primitive.ObjectID) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := t.taskRepository.DeleteTask(ctx, id, owner)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Hex()).Str("owner", owner.Hex()).Msg("task deletion failed")
		return models.Task{}, fmt.Errorf("task deletion failed: %w", err)
	}

	return task, nil
}
