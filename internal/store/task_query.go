// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therealrogden/taskkeeper/models"
)

// sortFieldNames maps the API sort field names to the bson field names used
// in the tasks collection. Fields not listed here cannot be sorted on; the
// handler layer rejects them before a filter reaches the repository.
var sortFieldNames = map[string]string{
	models.SortByDescription: "description",
	models.SortByCompleted:   "completed",
	models.SortByCreatedAt:   "created_at",
	models.SortByUpdatedAt:   "updated_at",
}

// buildTaskQuery translates a [models.TaskFilter] into a bson filter and
// find options.
//
// The owner is always part of the filter. An absent Completed means no
// completion filter at all, an absent SortBy means natural order. Limit and
// Skip apply after filtering and sorting, standard offset pagination.
func buildTaskQuery(filter models.TaskFilter) (bson.M, *options.FindOptions) {
	query := bson.M{"owner": filter.Owner}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}

	opts := options.Find()
	if field, ok := sortFieldNames[filter.SortBy]; ok {
		direction := 1
		if filter.SortDesc {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: field, Value: direction}})
	}

	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}

	return query, opts
}
