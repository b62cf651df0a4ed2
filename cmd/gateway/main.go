// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-user-gateway/internal/authn"
	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/config"
	"github.com/MKhiriev/go-user-gateway/internal/handler/gateway"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/metrics"
	"github.com/MKhiriev/go-user-gateway/internal/proxy"
	"github.com/MKhiriev/go-user-gateway/internal/routes"
	"github.com/MKhiriev/go-user-gateway/internal/server"
	"github.com/MKhiriev/go-user-gateway/internal/token"
	"github.com/MKhiriev/go-user-gateway/models"
)

const role = "gateway"

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
	if err = cfg.ValidateGateway(); err != nil {
		log.Fatal().Err(err).Msg("invalid configs")
	}

	log = logger.New(role, os.Stdout, logger.ParseLevel(cfg.Log.Level))
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	key, err := token.NewKey(cfg.App.TokenSignKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token sign key")
	}
	verifier, err := token.NewVerifier(key,
		token.WithIssuer(cfg.App.TokenIssuer),
		token.WithLeeway(cfg.App.TokenLeeway),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token verifier")
	}

	classifier, err := routes.NewClassifier(cfg.Gateway.AllowedRoutes)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid allowed routes")
	}
	log.Info().Strs("allowed_routes", classifier.Allowed()).Msg("route classifier ready")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	filter, err := authn.NewFilter(classifier, verifier, clock.Real(), cfg.App.CookieName,
		authn.WithObserver(metrics.NewAuthMetrics(registry)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating authentication filter")
	}

	upstream, err := proxy.NewUpstream(cfg.Gateway.UpstreamURI, cfg.Gateway.StripPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid upstream")
	}
	log.Info().Str("upstream", upstream.Target()).Msg("upstream configured")

	handler := gateway.NewHandler(cfg.Gateway.RoutePrefix, filter, upstream, log,
		gateway.WithReadiness(proxy.NewHealthChecker(cfg.Gateway.UpstreamURI, "/health", 0)),
		gateway.WithMetrics(registry),
		gateway.WithBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)),
	)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
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
