// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/config"
	handler "github.com/MKhiriev/go-user-gateway/internal/handler/http"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/server"
	"github.com/MKhiriev/go-user-gateway/internal/service"
	"github.com/MKhiriev/go-user-gateway/internal/store"
	"github.com/MKhiriev/go-user-gateway/internal/token"
	"github.com/MKhiriev/go-user-gateway/models"
)

const role = "user-service"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger(role)
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateUserService(); err != nil {
		log.Fatal().Err(err).Msg("invalid configs")
	}

	log = logger.New(role, os.Stdout, logger.ParseLevel(cfg.Log.Level))
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx := context.Background()
	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	key, err := token.NewKey(cfg.App.TokenSignKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token sign key")
	}
	realClock := clock.Real()
	signer, err := token.NewSigner(key, cfg.App.TokenIssuer, cfg.App.TokenDuration, realClock)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token signer")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(store.NewStorages(db, log), signer, buildInfo, cfg.App, realClock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	h := handler.NewHandler(services, cfg.App, db, log)

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

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
