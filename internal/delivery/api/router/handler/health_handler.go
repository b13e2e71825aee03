package handler

import (
	"net/http"

	"polystore/config"
	"polystore/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and the configured backend.
type HealthHandler struct {
	backend config.BackendKind
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{backend: cfg.Backend.Kind}
}

// HealthCheck handles GET /health.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": string(h.backend),
	})
}

// Hello handles GET /.
func (h *HealthHandler) Hello(c echo.Context) error {
	return response.Success(c, http.StatusOK, "hello world")
}
