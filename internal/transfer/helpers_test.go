// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/store"
)

// testSetup contains common test dependencies.
type testSetup struct {
	DB       *sql.DB
	Settings *store.SettingsStore
	Content  *store.ContentStore
	Site     model.SiteInfo
	Ctx      context.Context
}

// setupTest creates a migrated temp database with settings and content stores.
func setupTest(t *testing.T) *testSetup {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "transfer-test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	site := model.SiteInfo{
		Name:   "Transfer Test",
		URL:    "https://example.com",
		Locale: "en_US",
	}

	return &testSetup{
		DB:       db,
		Settings: store.NewSettingsStore(db, model.DefaultSettings(site, "")),
		Content:  store.NewContentStore(db),
		Site:     site,
		Ctx:      context.Background(),
	}
}

// seedPost inserts a published post and returns its ID.
func seedPost(t *testing.T, ts *testSetup, slug string) int64 {
	t.Helper()

	now := time.Now()
	id, err := ts.Content.CreateContent(ts.Ctx, &model.ContentItem{
		Title:       "Post " + slug,
		Slug:        slug,
		Body:        "Body of " + slug,
		ContentType: model.ContentTypePost,
		Status:      model.ContentStatusPublished,
		PublishedAt: sql.NullTime{Time: now, Valid: true},
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateContent(%q): %v", slug, err)
	}
	return id
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
