package handlers

import (
	"net/http"
	"time"

	"github.com/heliobs/magpie/internal/server/response"
)

// HandleHealth handles GET /healthz.
// @Summary Health check
// @Description Health check endpoint (liveness probe)
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /healthz [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "magpie-api",
		"version": h.version,
	})
}

// HandleReady handles GET /api/v1/ready.
// @Summary Readiness check
// @Description Readiness check including catalog registry status
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.service == nil || h.schemas == nil || h.schemas.Len() == 0 {
		response.ServiceUnavailable(w, "Resolver not configured")
		return
	}

	response.OK(w, map[string]any{
		"status":         "ready",
		"catalogs":       h.schemas.Len(),
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}
