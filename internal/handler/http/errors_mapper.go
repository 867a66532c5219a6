// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"errors"
	"net/http"

	"github.com/therealrogden/taskkeeper/internal/service"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/utils"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

var errorStatusMap = map[error]int{
	validators.ErrInvalidJSON:      http.StatusBadRequest,
	validators.ErrNoFieldsProvided: http.StatusBadRequest,

	service.ErrInvalidCredentials: http.StatusBadRequest,
	service.ErrTokenIsInvalid:     http.StatusUnauthorized,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,

	// duplicate email is reported as a plain bad request, not a conflict,
	// to keep the signup error contract uniform
	store.ErrEmailAlreadyExists: http.StatusBadRequest,

	store.ErrNoUserWasFound: http.StatusNotFound,
	store.ErrTaskNotFound:   http.StatusNotFound,
	store.ErrAvatarNotFound: http.StatusNotFound,
}

// mapError resolves a wrapped error chain to an HTTP status and a safe,
// client-facing message. Unrecognised errors collapse to a generic 500 so
// that internal details never leak into responses.
func mapError(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError serialises err into the uniform JSON error body. Validation
// errors additionally carry the offending field names.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		utils.WriteJSON(w, models.ErrorResponse{Error: verr.Error(), Fields: verr.Fields()}, http.StatusBadRequest)
		return
	}

	status, message := mapError(err)
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
