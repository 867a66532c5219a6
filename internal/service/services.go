// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package service

import (
	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/mailer"
	"github.com/therealrogden/taskkeeper/internal/store"
)

type Services struct {
	AuthService AuthService
	UserService UserService
	TaskService TaskService
}

func NewServices(storages *store.Storages, mail mailer.Dispatcher, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, storages.TokenCache, mail, cfg.App, logger),
		UserService: NewUserService(storages, mail, cfg.App, logger),
		TaskService: NewTaskService(storages.TaskRepository, logger),
	}
}
