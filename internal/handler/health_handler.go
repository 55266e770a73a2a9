package handler

import (
	"context"
	"net/http"
	"time"

	"devimpact/pkg/logger"
)

// HealthCheck probes one dependency. A failing critical check turns the
// whole service unhealthy, a failing optional one only degrades it.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checks []HealthCheck
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(log *logger.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: log,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Service:   "devimpact",
		Checks:    make(map[string]string, len(h.checks)),
	}
	status := http.StatusOK

	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			log.WithError(err).WithField("check", c.Name).Warn("Health check failed")
			response.Checks[c.Name] = "unhealthy"
			if c.Critical {
				response.Status = "unhealthy"
				status = http.StatusServiceUnavailable
			} else if response.Status == "healthy" {
				response.Status = "degraded"
			}
			continue
		}
		response.Checks[c.Name] = "healthy"
	}

	respondJSON(w, status, response)
}
