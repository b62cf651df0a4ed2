package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-gateway/internal/config"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/service"
)

// Pinger reports whether a dependency (the database) is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	cookie   cookieSettings

	// pinger is optional; without it /health reports ok unconditionally.
	pinger Pinger

	logger *logger.Logger
}

type cookieSettings struct {
	name   string
	secure bool
	maxAge time.Duration
}

func NewHandler(services *service.Services, cfg config.App, pinger Pinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	cookie := cookieSettings{
		name:   cfg.CookieName,
		secure: cfg.CookieSecure,
		maxAge: cfg.TokenDuration,
	}
	if cookie.name == "" {
		cookie.name = config.DefaultCookieName
	}
	if cookie.maxAge <= 0 {
		cookie.maxAge = config.DefaultTokenDuration
	}

	return &Handler{
		services: services,
		cookie:   cookie,
		pinger:   pinger,
		logger:   logger,
	}
}
