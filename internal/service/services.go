package service

import (
	"fmt"

	"github.com/MKhiriev/go-user-gateway/internal/clock"
	"github.com/MKhiriev/go-user-gateway/internal/config"
	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/store"
	"github.com/MKhiriev/go-user-gateway/models"
)

// Services groups the services of the user service process.
type Services struct {
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, issuer TokenIssuer, buildInfo models.AppBuildInfo, cfg config.App, c clock.Clock, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		UserService:    NewUserService(storages.UserRepository, issuer, cfg, c, logger),
		AppInfoService: appInfo,
	}, nil
}
