// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/therealrogden/taskkeeper/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.Compress(5))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/health", h.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/users", h.signup)
		r.Post("/users/login", h.login)
		r.Get("/users/{id}/avatar", h.serveAvatar)
	})

	// routes behind the bearer-token middleware
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/users/logout", h.logout)
		r.Post("/users/logoutAll", h.logoutAll)

		r.Get("/users/me", h.profile)
		r.Patch("/users/me", h.updateProfile)
		r.Delete("/users/me", h.deleteAccount)

		r.Post("/users/me/avatar", h.uploadAvatar)
		r.Delete("/users/me/avatar", h.deleteAvatar)

		r.Post("/tasks", h.createTask)
		r.Get("/tasks", h.listTasks)
		r.Get("/tasks/{id}", h.getTask)
		r.Patch("/tasks/{id}", h.updateTask)
		r.Delete("/tasks/{id}", h.deleteTask)
	})

	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
