package server

import (
	"net/http"

	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, userHandler *UserHandler, contactHandler *ContactHandler) {
	e.POST("/users", userHandler.FindUsers)
	e.POST("/users/:id", userHandler.UpdateUser)
	e.GET("/users", userHandler.ListUsers)

	e.GET("/hubspot/contacts/sync", contactHandler.Sync)
	e.GET("/hubspot/contacts/sync/runs/latest", contactHandler.LatestRun)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func NewHTTPServer(users UserService, contacts ContactService) *echo.Echo {
	l := logger.New("http.log")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("HTTPServer::Request() - handled")
			return nil
		},
	}))

	RegisterRoutes(e, NewUserHandler(users), NewContactHandler(contacts))
	return e
}
