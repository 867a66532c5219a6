// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package main

import (
	"context"
	"fmt"

	"github.com/therealrogden/taskkeeper/internal/config"
	myHTTP "github.com/therealrogden/taskkeeper/internal/handler/http"
	"github.com/therealrogden/taskkeeper/internal/logger"
	"github.com/therealrogden/taskkeeper/internal/mailer"
	"github.com/therealrogden/taskkeeper/internal/server"
	"github.com/therealrogden/taskkeeper/internal/service"
	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("taskkeeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(ctx); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	mail := mailer.NewMailer(cfg.Mail, log.GetChildLogger())
	services := service.NewServices(storages, mail, cfg, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.New(mail)
	background.Run()
	defer background.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
