// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/mock"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

func TestTaskService_CreateTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)

	owner := primitive.NewObjectID()
	taskID := primitive.NewObjectID()

	tasks.EXPECT().
		CreateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.Equal(t, "First", task.Description)
			assert.False(t, task.Completed)
			assert.Equal(t, owner, task.Owner)

			task.ID = taskID
			return task, nil
		})

	svc := NewTaskService(tasks, logger.Nop())

	task, err := svc.CreateTask(context.Background(), owner, validators.TaskCreate{Description: "First"})
	require.NoError(t, err)
	assert.Equal(t, taskID, task.ID)
}

func TestTaskService_ListTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)

	owner := primitive.NewObjectID()
	completed := false
	filter := models.TaskFilter{Owner: owner, Completed: &completed, Limit: 10}

	stored := []models.Task{
		{Description: "First", Owner: owner},
		{Description: "Fourth", Owner: owner},
	}

	tasks.EXPECT().
		FindTasks(gomock.Any(), filter).
		Return(stored, nil)

	svc := NewTaskService(tasks, logger.Nop())

	got, err := svc.ListTasks(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)

	id, owner := primitive.NewObjectID(), primitive.NewObjectID()

	tasks.EXPECT().
		FindTaskByID(gomock.Any(), id, owner).
		Return(models.Task{}, store.ErrTaskNotFound)

	svc := NewTaskService(tasks, logger.Nop())

	_, err := svc.GetTask(context.Background(), id, owner)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)

	id, owner := primitive.NewObjectID(), primitive.NewObjectID()
	stored := models.Task{ID: id, Description: "Second", Completed: false, Owner: owner}

	completed := true

	tasks.EXPECT().
		FindTaskByID(gomock.Any(), id, owner).
		Return(stored, nil)
	tasks.EXPECT().
		UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.Equal(t, "Second", task.Description, "absent field keeps its value")
			assert.True(t, task.Completed)
			return task, nil
		})

	svc := NewTaskService(tasks, logger.Nop())

	updated, err := svc.UpdateTask(context.Background(), id, owner, validators.TaskUpdate{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
}

func TestTaskService_UpdateTask_ForeignTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)

	id, owner := primitive.NewObjectID(), primitive.NewObjectID()

	// a task owned by someone else is reported exactly like a missing one
	tasks.EXPECT().
		FindTaskByID(gomock.Any(), id, owner).
		Return(models.Task{}, store.ErrTaskNotFound)

	svc := NewTaskService(tasks, logger.Nop())

	desc := "hijacked"
	_, err := svc.UpdateTask(context.Background(), id, owner, validators.TaskUpdate{Description: &desc})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mock.NewMockTaskRepository(ctrl)

	id, owner := primitive.NewObjectID(), primitive.NewObjectID()
	stored := models.Task{ID: id, Description: "Third", Owner: owner}

	tasks.EXPECT().
		DeleteTask(gomock.Any(), id, owner).
		Return(stored, nil)

	svc := NewTaskService(tasks, logger.Nop())

	deleted, err := svc.DeleteTask(context.Background(), id, owner)
	require.NoError(t, err)
	assert.Equal(t, stored, deleted)
}
