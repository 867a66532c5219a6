// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier of the task document.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// Description is the task text. Non-empty, stored trimmed.
	Description string `json:"description" bson:"description"`

	// Completed marks the task as done. Defaults to false.
	Completed bool `json:"completed" bson:"completed"`

	// Owner references the user the task belongs to. Set once at creation
	// from the authenticated requester and never changed afterwards.
	Owner primitive.ObjectID `json:"owner" bson:"owner"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CollectionName returns the name of the MongoDB collection
// holding task documents.
func (t Task) CollectionName() string {
	return "tasks"
}

// Task list sort fields accepted by the API. The values are the query-string
// names; the repository maps them to the bson field names.
const (
	SortByDescription = "description"
	SortByCompleted   = "completed"
	SortByCreatedAt   = "createdAt"
	SortByUpdatedAt   = "updatedAt"
)

// TaskFilter describes one owner-scoped task listing request. It is a pure
// value: two identical filters always describe the same result set, so a
// caller pages through results by re-issuing the filter with a new Skip.
type TaskFilter struct {
	// Owner restricts the result set to tasks of this user. Always set.
	Owner primitive.ObjectID

	// Completed, when non-nil, adds an equality filter on the completed
	// flag. Nil means both completed and incomplete tasks are returned.
	Completed *bool

	// SortBy is one of the SortBy* constants, or empty for the database's
	// natural order. Only a single sort key is supported.
	SortBy string

	// SortDesc inverts the sort direction. Meaningless when SortBy is empty.
	SortDesc bool

	// Limit and Skip implement offset pagination. Zero Limit means no cap.
	Limit int64
	Skip  int64
}
