// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/olegiv/seoog-go/internal/model"
)

// SettingsStore persists opaque key/value settings with a read-through
// cache. Reads fall back to the injected defaults when no row exists, so
// absence of a stored value is indistinguishable from "use default".
// Writes go through SQLite upsert semantics (last writer wins per key)
// and invalidate the cache.
type SettingsStore struct {
	db       *sql.DB
	defaults map[string]string

	mu    sync.RWMutex
	cache map[string]string
}

// NewSettingsStore creates a SettingsStore over db. The defaults map
// supplies the value returned for any key without a stored row.
func NewSettingsStore(db *sql.DB, defaults map[string]string) *SettingsStore {
	return &SettingsStore{
		db:       db,
		defaults: defaults,
	}
}

// EnsureInitialized seeds every missing default key. Existing values are
// never overwritten. Idempotent; safe to call on every startup.
func (s *SettingsStore) EnsureInitialized(ctx context.Context) error {
	for key, value := range s.defaults {
		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO settings (setting_key, setting_value)
			VALUES (?, ?)
		`, key, value)
		if err != nil {
			return fmt.Errorf("seeding setting %q: %w", key, err)
		}
	}
	s.invalidate()
	return nil
}

// Get returns the stored value for key, or its default when no row
// exists. Read failures also degrade to the default.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return s.defaults[key], err
	}
	if value, ok := all[key]; ok {
		return value, nil
	}
	return s.defaults[key], nil
}

// GetAll returns every stored setting merged over the defaults.
// The result is cached until the next write.
func (s *SettingsStore) GetAll(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	if s.cache != nil {
		cached := s.cache
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT setting_key, setting_value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	merged := make(map[string]string, len(s.defaults))
	for key, value := range s.defaults {
		merged[key] = value
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		merged[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}

	s.mu.Lock()
	s.cache = merged
	s.mu.Unlock()

	return merged, nil
}

// Settings returns a typed snapshot of all settings. Read failures
// degrade to the default set rather than surfacing an error, because the
// snapshot feeds the rendering pipeline which must never abort a page.
func (s *SettingsStore) Settings(ctx context.Context) model.Settings {
	all, err := s.GetAll(ctx)
	if err != nil {
		all = s.defaults
	}
	return model.ParseSettings(all)
}

// Set stores a value, replacing any existing row for the key.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (setting_key, setting_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (setting_key) DO UPDATE SET
			setting_value = excluded.setting_value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	s.invalidate()
	return nil
}

// Delete removes the stored row for key. Subsequent reads return the
// default. Deleting an absent key is not an error.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE setting_key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting %q: %w", key, err)
	}
	s.invalidate()
	return nil
}

// DeleteAll removes every stored setting. Used by uninstall cleanup.
func (s *SettingsStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	if err != nil {
		return fmt.Errorf("deleting settings: %w", err)
	}
	s.invalidate()
	return nil
}

// Defaults returns the injected default map.
func (s *SettingsStore) Defaults() map[string]string {
	return s.defaults
}

// invalidate drops the settings cache.
func (s *SettingsStore) invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

// ErrUnknownKey is returned when a caller tries to write a key outside
// the recognized setting enumeration.
var ErrUnknownKey = errors.New("unknown setting key")

// SetKnown stores a value after checking the key is recognized and the
// value passes per-key validation.
func (s *SettingsStore) SetKnown(ctx context.Context, key, value string) error {
	if !model.IsKnownSettingKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if !model.ValidateSetting(key, value) {
		return fmt.Errorf("invalid value for setting %q", key)
	}
	return s.Set(ctx, key, value)
}
