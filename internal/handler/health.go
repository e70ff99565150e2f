package handler

import "net/http"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
