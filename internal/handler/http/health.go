package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-attendance-go/internal/pkg/database"
)

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	store database.Pinger
}

func NewHealthHandler(store database.Pinger) HealthHandler {
	return &healthHandlerImpl{store: store}
}

type healthStatus struct {
	Status string `json:"status"`
}

// Check handles GET /health
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		response.ServiceUnavailable(w, "Storage is unreachable")
		return
	}

	response.Success(w, healthStatus{Status: "ok"})
}
