// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/seoog-go/internal/model"
)

// ContentStore reads the content repository and manages per-content
// metadata overrides.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a ContentStore over db.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, title, slug, body, excerpt, content_type, status,
	author_name, featured_image, published_at, updated_at`

// scanItem scans one content row.
func scanItem(row interface{ Scan(...any) error }) (*model.ContentItem, error) {
	c := &model.ContentItem{}
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Body, &c.Excerpt, &c.ContentType,
		&c.Status, &c.AuthorName, &c.FeaturedImage, &c.PublishedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID fetches a content item by ID, including its overrides.
func (s *ContentStore) GetByID(ctx context.Context, id int64) (*model.ContentItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content WHERE id = ?`, id)
	c, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("fetching content %d: %w", id, err)
	}
	if c.Overrides, err = s.Overrides(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

// GetPublishedBySlug fetches a published content item by slug, including
// its overrides.
func (s *ContentStore) GetPublishedBySlug(ctx context.Context, slug string) (*model.ContentItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content WHERE slug = ? AND status = ?`,
		slug, model.ContentStatusPublished)
	c, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("fetching content %q: %w", slug, err)
	}
	if c.Overrides, err = s.Overrides(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// Overrides loads the per-content override fields for a content ID.
// Unknown meta keys are ignored.
func (s *ContentStore) Overrides(ctx context.Context, contentID int64) (model.Overrides, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT meta_key, meta_value FROM content_meta WHERE content_id = ?
	`, contentID)
	if err != nil {
		return model.Overrides{}, fmt.Errorf("loading overrides for content %d: %w", contentID, err)
	}
	defer func() { _ = rows.Close() }()

	m := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.Overrides{}, fmt.Errorf("scanning override: %w", err)
		}
		m[key] = value
	}
	if err := rows.Err(); err != nil {
		return model.Overrides{}, fmt.Errorf("iterating overrides: %w", err)
	}

	return model.OverridesFromMap(m), nil
}

// SetOverride upserts one override field. An empty value deletes the row,
// since empty and absent are treated identically at resolution time.
func (s *ContentStore) SetOverride(ctx context.Context, contentID int64, key, value string) error {
	if !model.IsOverrideKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if value == "" {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM content_meta WHERE content_id = ? AND meta_key = ?
		`, contentID, key)
		if err != nil {
			return fmt.Errorf("clearing override %q for content %d: %w", key, contentID, err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_meta (content_id, meta_key, meta_value)
		VALUES (?, ?, ?)
		ON CONFLICT (content_id, meta_key) DO UPDATE SET
			meta_value = excluded.meta_value
	`, contentID, key, value)
	if err != nil {
		return fmt.Errorf("saving override %q for content %d: %w", key, contentID, err)
	}
	return nil
}

// SetOverrides applies a full override set for a content item.
func (s *ContentStore) SetOverrides(ctx context.Context, contentID int64, o model.Overrides) error {
	for key, value := range o.Map() {
		if err := s.SetOverride(ctx, contentID, key, value); err != nil {
			return err
		}
	}
	return nil
}

// IDBySlug returns the ID of the content item with the given slug,
// regardless of status.
func (s *ContentStore) IDBySlug(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM content WHERE slug = ?`, slug).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("looking up content %q: %w", slug, err)
	}
	return id, nil
}

// OverridesBySlug returns every stored override set grouped by content slug.
func (s *ContentStore) OverridesBySlug(ctx context.Context) (map[string]model.Overrides, error) {
	keys := make([]string, len(model.OverrideKeys))
	args := make([]any, len(model.OverrideKeys))
	for i, k := range model.OverrideKeys {
		keys[i] = "?"
		args[i] = k
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.slug, m.meta_key, m.meta_value
		FROM content_meta m
		JOIN content c ON c.id = m.content_id
		WHERE m.meta_key IN (`+strings.Join(keys, ",")+`)
		ORDER BY c.slug`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	raw := make(map[string]map[string]string)
	for rows.Next() {
		var slug, key, value string
		if err := rows.Scan(&slug, &key, &value); err != nil {
			return nil, fmt.Errorf("scanning override row: %w", err)
		}
		if raw[slug] == nil {
			raw[slug] = make(map[string]string)
		}
		raw[slug][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating override rows: %w", err)
	}

	result := make(map[string]model.Overrides, len(raw))
	for slug, m := range raw {
		result[slug] = model.OverridesFromMap(m)
	}
	return result, nil
}

// DeleteAllOverrides removes every override row. Used by uninstall cleanup.
func (s *ContentStore) DeleteAllOverrides(ctx context.Context) error {
	keys := make([]string, len(model.OverrideKeys))
	args := make([]any, len(model.OverrideKeys))
	for i, k := range model.OverrideKeys {
		keys[i] = "?"
		args[i] = k
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM content_meta WHERE meta_key IN (`+strings.Join(keys, ",")+`)`, args...)
	if err != nil {
		return fmt.Errorf("deleting overrides: %w", err)
	}
	return nil
}

// LatestModified returns the most recent update timestamp across all
// published content. The zero time and no error means no published
// content exists.
func (s *ContentStore) LatestModified(ctx context.Context) (time.Time, error) {
	var ts sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(updated_at) FROM content WHERE status = ?
	`, model.ContentStatusPublished).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetching latest modification: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return ts.Time, nil
}

// SitemapEntry is the minimal projection the sitemap needs per item.
type SitemapEntry struct {
	ID        int64
	Slug      string
	UpdatedAt time.Time
}

// ListForSitemap returns published entries of one content type, excluding
// the given IDs, most recently modified first. Only sitemap-relevant
// columns are selected; bodies and overrides are never fetched here.
func (s *ContentStore) ListForSitemap(ctx context.Context, contentType string, excludeIDs []int64) ([]SitemapEntry, error) {
	query := `SELECT id, slug, updated_at FROM content WHERE content_type = ? AND status = ?`
	args := []any{contentType, model.ContentStatusPublished}

	if len(excludeIDs) > 0 {
		placeholders := make([]string, len(excludeIDs))
		for i, id := range excludeIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += ` AND id NOT IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %q content for sitemap: %w", contentType, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []SitemapEntry
	for rows.Next() {
		var e SitemapEntry
		if err := rows.Scan(&e.ID, &e.Slug, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning sitemap entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sitemap entries: %w", err)
	}

	return entries, nil
}

// CreateContent inserts a content item and returns its ID.
func (s *ContentStore) CreateContent(ctx context.Context, c *model.ContentItem) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO content (title, slug, body, excerpt, content_type, status,
			author_name, featured_image, published_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Title, c.Slug, c.Body, c.Excerpt, c.ContentType, c.Status,
		c.AuthorName, c.FeaturedImage, c.PublishedAt, c.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("creating content %q: %w", c.Slug, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading content ID: %w", err)
	}
	c.ID = id
	return id, nil
}
