package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	apiPrefix = "/api"

	noticesPath    = "/notices"
	noticeByIDPath = "/notices/:id"

	healthPath = "/health"
)

// RegisterRoutes registers all routes for the handler
func (h *NoticeHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(h.loggingMiddleware)

	api := e.Group(apiPrefix)
	api.GET(noticesPath, h.Notices)
	api.GET(noticeByIDPath, h.NoticeByID)
	api.POST(noticesPath, h.CreateNotice)
	api.PUT(noticeByIDPath, h.UpdateNotice)

	e.GET(healthPath, h.handleHealth)

	return e
}

func (h *NoticeHandler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NoticeHandler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.Request().RemoteAddr,
		)

		return err
	}
}
