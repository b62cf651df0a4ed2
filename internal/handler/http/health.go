package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/utils"
	"github.com/MKhiriev/go-user-gateway/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	status, body := http.StatusOK, models.HealthResponse{Status: "ok"}
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			log.Warn().Err(err).Msg("database is unreachable")
			status, body = http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable", Detail: "database"}
		}
	}

	if _, err := utils.WriteJSON(w, body, status); err != nil {
		log.Err(err).Msg("error writing health response")
	}
}
