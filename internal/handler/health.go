package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sakif/skillup/internal/logger"
)

// Database is what the health probe needs from the store.
type Database interface {
	Ping(ctx context.Context) error
	Driver() string
}

type HealthHandler struct {
	db     Database
	logger *logger.Logger
}

func NewHealthHandler(db Database, logg *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: orNop(logg)}
}

type healthStatus struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
}

// Healthz reports 200 when the database answers a ping within two seconds.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error(r.Context(), "health check failed", err)
		writeJSON(w, http.StatusServiceUnavailable, healthStatus{Status: "unavailable", Driver: h.db.Driver()})
		return
	}
	writeJSON(w, http.StatusOK, healthStatus{Status: "ok", Driver: h.db.Driver()})
}
