// Package http exposes the dispatch use cases over echo: JSON endpoints for
// commands and queries, event streams, health and API docs.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// NewRouter builds the echo instance serving the API, /health and /swagger/*.
func NewRouter(server servers.ServerInterface, resolver ports.IdentityResolver, logger *slog.Logger) (*echo.Echo, error) {
	if err := registerDocs(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", Identity(resolver, logger))
	servers.RegisterHandlers(api, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.Any("error", v.Error),
			)
			return nil
		},
	})
}

// apiDoc serves the validated OpenAPI document to the swagger UI.
type apiDoc struct {
	json string
}

func (d apiDoc) ReadDoc() string {
	return d.json
}

func registerDocs() error {
	if swag.GetSwagger(swag.Name) != nil {
		return nil
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	swag.Register(swag.Name, apiDoc{json: string(raw)})
	return nil
}
