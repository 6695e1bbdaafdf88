// Package http provides the HTTP servers of the mentorship API.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mentorlane/api/internal/service"
	v1 "github.com/mentorlane/api/internal/transport/http/v1"
)

// NewAPIServer creates and configures the public HTTP server.
func NewAPIServer(svc *service.Service, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(Metrics())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if timeout := svc.Config().RequestTimeout; timeout > 0 {
		e.Use(middleware.ContextTimeout(timeout))
	}

	// Handlers
	v1Handler := v1.NewHandler(svc, logger)

	// Register Routes
	v1Handler.RegisterRoutes(e)

	return e
}

// NewMetricsServer creates the HTTP server exposing Prometheus metrics.
func NewMetricsServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
