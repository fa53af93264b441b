package handler

import (
	"net/http"

	"github.com/veldra/planforge/internal/planner"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz provides a basic liveness check.
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports readiness: the service is ready once a catalog is
// loaded and non-empty.
func HandleReadyz(service planner.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := service.CatalogInfo(r.Context())
		if info.Items == 0 {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "catalog not loaded",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
