// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/service"
	"github.com/therealrogden/taskkeeper/internal/utils"
	"github.com/therealrogden/taskkeeper/internal/validators"
	"github.com/therealrogden/taskkeeper/models"
)

// maxBodySize caps JSON request bodies. Payloads here are a handful of short
// fields; anything bigger is garbage.
const maxBodySize = 64 * 1024

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := readBody(r)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read signup body")
		h.writeError(w, validators.ErrInvalidJSON)
		return
	}

	data, err := h.userValidator.ValidateSignup(body)
	if err != nil {
		log.Debug().Err(err).Msg("signup payload rejected")
		h.writeError(w, err)
		return
	}

	user, token, err := h.services.AuthService.Signup(ctx, data)
	if err != nil {
		log.Err(err).Str("email", data.Email).Msg("signup failed")
		h.writeError(w, err)
		return
	}

	log.Info().Str("id", user.ID.Hex()).Msg("user signed up")
	utils.WriteJSON(w, models.AuthResponse{User: user, Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := readBody(r)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read login body")
		h.writeError(w, validators.ErrInvalidJSON)
		return
	}

	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &credentials); err != nil {
		log.Debug().Err(err).Msg("invalid JSON was passed")
		h.writeError(w, validators.ErrInvalidJSON)
		return
	}
	if credentials.Email == "" || credentials.Password == "" {
		h.writeError(w, service.ErrInvalidCredentials)
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, credentials.Email, credentials.Password)
	if err != nil {
		log.Debug().Err(err).Str("email", credentials.Email).Msg("login failed")
		h.writeError(w, err)
		return
	}

	log.Info().Str("id", user.ID.Hex()).Msg("user logged in")
	utils.WriteJSON(w, models.AuthResponse{User: user, Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)
	tokenString, _ := utils.GetTokenFromContext(ctx)

	if err := h.services.AuthService.Logout(ctx, user, tokenString); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("logout failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	if err := h.services.AuthService.LogoutAll(ctx, user); err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("logout-all failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	body, err := readBody(r)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read profile update body")
		h.writeError(w, validators.ErrInvalidJSON)
		return
	}

	update, err := h.userValidator.ValidateUserUpdate(body)
	if err != nil {
		log.Debug().Err(err).Msg("profile update payload rejected")
		h.writeError(w, err)
		return
	}

	updated, err := h.services.UserService.UpdateProfile(ctx, user, update)
	if err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("profile update failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	deleted, err := h.services.UserService.DeleteAccount(ctx, user)
	if err != nil {
		log.Err(err).Str("id", user.ID.Hex()).Msg("account deletion failed")
		h.writeError(w, err)
		return
	}

	log.Info().Str("id", user.ID.Hex()).Msg("account deleted")
	utils.WriteJSON(w, deleted, http.StatusOK)
}

// readBody drains a size-capped request body.
func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodySize))
}
