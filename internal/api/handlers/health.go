package handlers

import (
	"cvrp-route-service/internal/api/dto"
	"cvrp-route-service/internal/platform/sysinfo"
	"net/http"
)

// HealthHandler is a liveness check that also reports the host the solver runs on.
type HealthHandler struct {
	Host sysinfo.Info
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: "ok", Host: h.Host})
}
