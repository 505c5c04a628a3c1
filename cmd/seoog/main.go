// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/seoog-go/internal/config"
	"github.com/olegiv/seoog-go/internal/handler"
	"github.com/olegiv/seoog-go/internal/logging"
	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/seo"
	"github.com/olegiv/seoog-go/internal/store"
	"github.com/olegiv/seoog-go/internal/transfer"
	"github.com/olegiv/seoog-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func versionInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	uninstall := flag.Bool("uninstall", false, "Run uninstall cleanup and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "seoog - SEO & Open Graph metadata manager\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEOOG_DB_PATH          SQLite database path (default: ./data/seoog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEOOG_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEOOG_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEOOG_SITE_NAME        Site name used for fallback metadata\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEOOG_SITE_URL         Site base URL (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SEOOG_SITE_LOCALE      Site locale in POSIX form (default: en_US)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(versionInfo().String())
		os.Exit(0)
	}

	if err := run(*uninstall); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(uninstall bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	site := model.SiteInfo{
		Name:        cfg.SiteName,
		Description: cfg.SiteDescription,
		URL:         cfg.SiteURL,
		Locale:      cfg.SiteLocale,
	}
	defaults := model.DefaultSettings(site, seo.DefaultRobots(cfg.SiteURL))

	settings := store.NewSettingsStore(db, defaults)
	content := store.NewContentStore(db)
	events := store.NewEventStore(db)

	ctx := context.Background()

	if uninstall {
		ran, err := store.Uninstall(ctx, settings, content)
		if err != nil {
			return fmt.Errorf("uninstall cleanup: %w", err)
		}
		if ran {
			slog.Info("uninstall cleanup complete, stored settings and overrides removed")
		} else {
			slog.Info("uninstall cleanup skipped, cleanup_on_uninstall is off")
		}
		return nil
	}

	if err := settings.EnsureInitialized(ctx); err != nil {
		return fmt.Errorf("seeding default settings: %w", err)
	}

	exporter := transfer.NewExporter(settings, content, site, logger)
	importer := transfer.NewImporter(settings, content, logger)

	frontendHandler := handler.NewFrontendHandler(cfg, settings, content, logger)
	adminHandler := handler.NewAdminHandler(settings, content, events, exporter, importer, versionInfo(), logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	r.Get("/", frontendHandler.Home)
	r.Get("/sitemap.xml", frontendHandler.Sitemap)
	r.Get("/robots.txt", frontendHandler.Robots)
	r.Mount("/admin/api", adminHandler.Routes())
	r.Get("/{slug}", frontendHandler.Page)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
