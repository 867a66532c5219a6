// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/utils"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	body, err := readBody(r)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read task body")
		h.writeError(w, validators.ErrInvalidJSON)
		return
	}

	data, err := h.taskValidator.ValidateTaskCreate(body)
	if err != nil {
		log.Debug().Err(err).Msg("task payload rejected")
		h.writeError(w, err)
		return
	}

	task, err := h.services.TaskService.CreateTask(ctx, user.ID, data)
	if err != nil {
		log.Err(err).Str("owner", user.ID.Hex()).Msg("task creation failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusCreated)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	filter, err := parseTaskFilter(r.URL.Query(), user.ID)
	if err != nil {
		log.Debug().Err(err).Msg("task filter rejected")
		h.writeError(w, err)
		return
	}

	tasks, err := h.services.TaskService.ListTasks(ctx, filter)
	if err != nil {
		log.Err(err).Str("owner", user.ID.Hex()).Msg("task listing failed")
		h.writeError(w, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	id, err := taskIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	task, err := h.services.TaskService.GetTask(ctx, id, user.ID)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Hex()).Msg("task lookup failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	id, err := taskIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read task update body")
		h.writeError(w, validators.ErrInvalidJSON)
		return
	}

	update, err := h.taskValidator.ValidateTaskUpdate(body)
	if err != nil {
		log.Debug().Err(err).Msg("task update payload rejected")
		h.writeError(w, err)
		return
	}

	task, err := h.services.TaskService.UpdateTask(ctx, id, user.ID, update)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Hex()).Msg("task update failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	id, err := taskIDFromRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	task, err := h.services.TaskService.DeleteTask(ctx, id, user.ID)
	if err != nil {
		log.Debug().Err(err).Str("id", id.Hex()).Msg("task deletion failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

// taskIDFromRequest parses the {id} path parameter. A malformed ID is
// reported as a missing task, not a bad request: the caller learns nothing
// about which IDs could exist.
func taskIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, store.ErrTaskNotFound
	}
	return id, nil
}

// sortableFields are the task attributes the listing endpoint can order by.
var sortableFields = map[string]bool{
	models.SortByDescription: true,
	models.SortByCompleted:   true,
	models.SortByCreatedAt:   true,
	models.SortByUpdatedAt:   true,
}

// parseTaskFilter builds an owner-scoped task filter from the listing query
// string. Recognised parameters:
//
//	completed  "true" or "false"; anything else is rejected, not coerced
//	sortBy     "<field>" or "<field>:<asc|desc>", field one of description,
//	           completed, createdAt, updatedAt
//	limit      non-negative integer, 0 means no cap
//	skip       non-negative integer
//
// Violations are collected per parameter and reported together as a single
// validation error.
func parseTaskFilter(query url.Values, owner primitive.ObjectID) (models.TaskFilter, error) {
	filter := models.TaskFilter{Owner: owner}
	violations := make(map[string]string)

	if raw := query.Get("completed"); raw != "" {
		switch raw {
		case "true", "false":
			completed := raw == "true"
			filter.Completed = &completed
		default:
			violations["completed"] = `must be "true" or "false"`
		}
	}

	if raw := query.Get("sortBy"); raw != "" {
		field, direction, hasDirection := strings.Cut(raw, ":")
		if !sortableFields[field] {
			violations["sortBy"] = "unknown sort field"
		} else {
			filter.SortBy = field
			if hasDirection {
				switch direction {
				case "asc":
				case "desc":
					filter.SortDesc = true
				default:
					violations["sortBy"] = `direction must be "asc" or "desc"`
				}
			}
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			violations["limit"] = "must be a non-negative integer"
		} else {
			filter.Limit = limit
		}
	}

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || skip < 0 {
			violations["skip"] = "must be a non-negative integer"
		} else {
			filter.Skip = skip
		}
	}

	if len(violations) > 0 {
		return models.TaskFilter{}, &validators.ValidationError{Violations: violations}
	}

	return filter, nil
}
