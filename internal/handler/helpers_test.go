// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/seoog-go/internal/config"
	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/seo"
	"github.com/olegiv/seoog-go/internal/store"
	"github.com/olegiv/seoog-go/internal/transfer"
	"github.com/olegiv/seoog-go/internal/version"
)

// testEnv bundles a migrated database, the stores, and a router wired
// the same way the server wires them.
type testEnv struct {
	Cfg      *config.Config
	Settings *store.SettingsStore
	Content  *store.ContentStore
	Events   *store.EventStore
	Router   chi.Router
	Ctx      context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "handler-test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	cfg := &config.Config{
		SiteName:        "Test Site",
		SiteDescription: "A test site",
		SiteURL:         "https://example.com",
		SiteLocale:      "en_US",
	}

	site := model.SiteInfo{
		Name:        cfg.SiteName,
		Description: cfg.SiteDescription,
		URL:         cfg.SiteURL,
		Locale:      cfg.SiteLocale,
	}
	defaults := model.DefaultSettings(site, seo.DefaultRobots(cfg.SiteURL))

	settings := store.NewSettingsStore(db, defaults)
	if err := settings.EnsureInitialized(context.Background()); err != nil {
		t.Fatalf("EnsureInitialized: %v", err)
	}

	content := store.NewContentStore(db)
	events := store.NewEventStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	frontend := NewFrontendHandler(cfg, settings, content, logger)
	admin := NewAdminHandler(settings, content, events,
		transfer.NewExporter(settings, content, site, logger),
		transfer.NewImporter(settings, content, logger),
		version.Info{Version: "test"},
		logger)

	r := chi.NewRouter()
	r.Get("/", frontend.Home)
	r.Get("/sitemap.xml", frontend.Sitemap)
	r.Get("/robots.txt", frontend.Robots)
	r.Mount("/admin/api", admin.Routes())
	r.Get("/{slug}", frontend.Page)

	return &testEnv{
		Cfg:      cfg,
		Settings: settings,
		Content:  content,
		Events:   events,
		Router:   r,
		Ctx:      context.Background(),
	}
}

// seedContent inserts one content item and returns its ID.
func (e *testEnv) seedContent(t *testing.T, item model.ContentItem) int64 {
	t.Helper()

	if item.ContentType == "" {
		item.ContentType = model.ContentTypePost
	}
	if item.Status == "" {
		item.Status = model.ContentStatusPublished
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now()
	}
	if item.Status == model.ContentStatusPublished && !item.PublishedAt.Valid {
		item.PublishedAt = sql.NullTime{Time: item.UpdatedAt, Valid: true}
	}

	id, err := e.Content.CreateContent(e.Ctx, &item)
	if err != nil {
		t.Fatalf("CreateContent(%q): %v", item.Slug, err)
	}
	return id
}

// do runs one request through the router.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}
