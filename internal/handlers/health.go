package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

func Root(c echo.Context) error {
	return c.String(http.StatusOK, "synapse is running")
}

func HealthCheck(pinger Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := pinger.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "unavailable",
				"service": "synapse-forum",
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "synapse-forum",
		})
	}
}
