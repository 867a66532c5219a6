// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/utils"
	"github.com/therealrogden/taskkeeper/internal/validators"
)

// maxAvatarSize caps avatar uploads at 1 MiB.
const maxAvatarSize = 1 << 20

// avatarFormField is the multipart form field carrying the image.
const avatarFormField = "avatar"

// allowedAvatarTypes are the image formats accepted for avatars, keyed by
// sniffed content type.
var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	data, err := readAvatarUpload(r)
	if err != nil {
		log.Debug().Err(err).Str("id", user.ID.Hex()).Msg("avatar upload rejected")
		h.writeError(w, err)
		return
	}

	// trust the bytes, not the client-supplied headers
	contentType := http.DetectContentType(data)
	if !allowedAvatarTypes[contentType] {
		h.writeError(w, &validators.ValidationError{Violations: map[string]string{
			avatarFormField: "must be a jpg, jpeg, or png image",
		}})
		return
	}

	if err := h.services.UserService.UploadAvatar(ctx, user, data, contentType); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("avatar upload failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	if err := h.services.UserService.DeleteAvatar(ctx, user); err != nil {
		log.Debug().Err(err).Str("id", user.ID.Hex()).Msg("avatar deletion failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// serveAvatar returns any user's avatar by user ID. No authentication: the
// avatar is the one public part of a profile.
func (h *Handler) serveAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, store.ErrAvatarNotFound)
		return
	}

	data, contentType, err := h.services.UserService.Avatar(ctx, userID)
	if err != nil {
		log.Debug().Err(err).Str("id", userID.Hex()).Msg("avatar fetch failed")
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readAvatarUpload extracts the size-capped image bytes from the multipart
// form field.
func readAvatarUpload(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxAvatarSize)

	file, _, err := r.FormFile(avatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &validators.ValidationError{Violations: map[string]string{
				avatarFormField: "must be at most 1 MB",
			}}
		}
		return nil, &validators.ValidationError{Violations: map[string]string{
			avatarFormField: "file field is required",
		}}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &validators.ValidationError{Violations: map[string]string{
				avatarFormField: "must be at most 1 MB",
			}}
		}
		return nil, err
	}

	return data, nil
}
