// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/service"
	"github.com/therealrogden/taskkeeper/internal/validators"
)

type Handler struct {
	services *service.Services

	userValidator *validators.UserValidator
	taskValidator *validators.TaskValidator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		userValidator: validators.NewUserValidator(),
		taskValidator: validators.NewTaskValidator(),
		logger:        logger,
	}
}
