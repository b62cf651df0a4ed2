package gateway

import (
	"net/http"

	"github.com/MKhiriev/go-user-gateway/internal/logger"
	"github.com/MKhiriev/go-user-gateway/internal/utils"
	"github.com/MKhiriev/go-user-gateway/models"
)

// health reports liveness of the gateway process only.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.HealthResponse{Status: "ok"}, http.StatusOK)
}

// ready probes the upstream.
func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.readiness.Check(r.Context()); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("upstream is not ready")
		writeJSON(w, r, models.HealthResponse{Status: "unavailable", Detail: "upstream"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, r, models.HealthResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.NewVersionResponse(h.buildInfo), http.StatusOK)
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
