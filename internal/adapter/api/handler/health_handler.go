package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ecofinds/pkg/logger"
)

type HealthHandler struct {
	storeDriver string
	ping        func(ctx context.Context) error
}

var healthHandler *HealthHandler

// NewHealthHandler reports liveness. ping may be nil for stores without a
// remote connection.
func NewHealthHandler(storeDriver string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		storeDriver: storeDriver,
		ping:        ping,
	}
}

func SetupHealthHandler(storeDriver string, ping func(ctx context.Context) error) {
	healthHandler = NewHealthHandler(storeDriver, ping)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "EcoFinds API running",
	})
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]string{
		"status": "ok",
		"store":  h.storeDriver,
		"time":   time.Now().Format(time.RFC3339),
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logger.Error("Health check failed for %s store: %v", h.storeDriver, err)
			body["status"] = "degraded"
			body["error"] = "store unreachable"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
	}

	return c.JSON(http.StatusOK, body)
}
