package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/tokgate/internal/core/domain"
)

// handleHealth handles GET /health. It reports liveness only.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  h.clock.Now().Sub(h.started).Truncate(time.Second).String(),
	})
}

// handleReady handles GET /ready.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			h.writeErrorData(w, r, domain.ErrServiceUnavailable, HealthResponse{
				Status: "not_ready",
				Reason: err.Error(),
			})
			return
		}
	}
	h.writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ready"})
}
