package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler handles health-check endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "ping":
		writeData(w, http.StatusOK, "pong", nil)
	case "status":
		writeData(w, http.StatusOK, "ok", nil)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
