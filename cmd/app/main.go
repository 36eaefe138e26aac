package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"noticeadmin/config"
	"noticeadmin/internal/app"
	"noticeadmin/internal/db"
	"noticeadmin/internal/notices"
)

var (
	flConfig        = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug         = flag.Bool("debug", false, "enable debug mode")
	flDemo          = flag.Bool("demo", false, "serve from a seeded in-memory store instead of Postgres")
	flMigrate       = flag.Bool("migrate", false, "run goose migrations before starting")
	flMigrationsDir = flag.String("migrations-dir", "migrations", "directory with goose migrations")
	flDatabaseURL   = flag.String("database-url", "", "database URL used when running migrations (DATABASE_URL)")
	cfg             config.Config
	lg              *slog.Logger
)

var errDatabaseURLRequired = errors.New("database-url is required when running migrations")

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	if err != nil {
		exitOnError(err)
	}
	if cfg.App.Author == "" {
		cfg.App.Author = "admin"
	}

	ctx := context.Background()

	var store notices.Store
	if *flDemo {
		memory := db.NewMemoryStore()
		memory.Seed(db.DemoNotices())
		store = memory
		lg.Info("serving from in-memory demo store")
	} else {
		if *flMigrate {
			if *flDatabaseURL == "" {
				exitOnError(errDatabaseURLRequired)
			}
			if err := db.RunMigrations(ctx, *flDatabaseURL, *flMigrationsDir); err != nil {
				exitOnError(err)
			}
			lg.Info("migrations applied", "dir", *flMigrationsDir)
		}

		pgdb := pg.Connect(&cfg.Database)
		if err := pgdb.Ping(ctx); err != nil {
			pgdb.Close()
			exitOnError(err)
		}
		store = db.New(pgdb)
	}

	service := app.New(&cfg, store, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx, cfg.App.Port)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
