// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/models"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildTaskQuery_OwnerAlwaysPresent(t *testing.T) {
	owner := primitive.NewObjectID()

	query, _ := buildTaskQuery(models.TaskFilter{Owner: owner})

	assert.Equal(t, bson.M{"owner": owner}, query)
}

func TestBuildTaskQuery_CompletedFilter(t *testing.T) {
	owner := primitive.NewObjectID()

	tests := []struct {
		name      string
		completed *bool
		want      bson.M
	}{
		{
			name:      "absent completed means no filter",
			completed: nil,
			want:      bson.M{"owner": owner},
		},
		{
			name:      "completed true",
			completed: boolPtr(true),
			want:      bson.M{"owner": owner, "completed": true},
		},
		{
			name:      "completed false",
			completed: boolPtr(false),
			want:      bson.M{"owner": owner, "completed": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := buildTaskQuery(models.TaskFilter{Owner: owner, Completed: tt.completed})
			assert.Equal(t, tt.want, query)
		})
	}
}

func TestBuildTaskQuery_Sort(t *testing.T) {
	owner := primitive.NewObjectID()

	tests := []struct {
		name     string
		sortBy   string
		sortDesc bool
		wantSort bson.D
	}{
		{name: "no sort means natural order", sortBy: "", wantSort: nil},
		{name: "description ascending", sortBy: models.SortByDescription, wantSort: bson.D{{Key: "description", Value: 1}}},
		{name: "description descending", sortBy: models.SortByDescription, sortDesc: true, wantSort: bson.D{{Key: "description", Value: -1}}},
		{name: "createdAt maps to created_at", sortBy: models.SortByCreatedAt, wantSort: bson.D{{Key: "created_at", Value: 1}}},
		{name: "updatedAt maps to updated_at", sortBy: models.SortByUpdatedAt, sortDesc: true, wantSort: bson.D{{Key: "updated_at", Value: -1}}},
		{name: "unknown field ignored", sortBy: "owner", wantSort: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, opts := buildTaskQuery(models.TaskFilter{Owner: owner, SortBy: tt.sortBy, SortDesc: tt.sortDesc})
			if tt.wantSort == nil {
				assert.Nil(t, opts.Sort)
				return
			}
			assert.Equal(t, tt.wantSort, opts.Sort)
		})
	}
}

func TestBuildTaskQuery_Pagination(t *testing.T) {
	owner := primitive.NewObjectID()

	_, opts := buildTaskQuery(models.TaskFilter{Owner: owner, Limit: 2, Skip: 4})
	require.NotNil(t, opts.Limit)
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(2), *opts.Limit)
	assert.Equal(t, int64(4), *opts.Skip)

	_, opts = buildTaskQuery(models.TaskFilter{Owner: owner})
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Skip)
}
