package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"noticeadmin/config"
	"noticeadmin/internal/notices"
	"noticeadmin/internal/rest"
)

type App struct {
	Store  notices.Store
	Logger *slog.Logger
	Echo   *echo.Echo
	Config *config.Config
}

func New(cfg *config.Config, store notices.Store, logger *slog.Logger) *App {
	handler := rest.NewNoticeHandler(
		notices.NewNoticeManager(store, cfg.App.Author),
		logger,
	)

	return &App{
		Store:  store,
		Logger: logger,
		Echo:   handler.RegisterRoutes(),
		Config: cfg,
	}
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
