// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/seoog-go/internal/model"
)

// Uninstall removes all persisted state when cleanup is enabled.
// When cleanup_on_uninstall is not "1" the data is left in place, so a
// reinstall picks up where the previous install left off. Returns true
// when cleanup ran.
func Uninstall(ctx context.Context, settings *SettingsStore, content *ContentStore) (bool, error) {
	cleanup, err := settings.Get(ctx, model.SettingCleanupOnUninstall)
	if err != nil {
		return false, fmt.Errorf("reading cleanup setting: %w", err)
	}
	if cleanup != "1" {
		return false, nil
	}

	if err := settings.DeleteAll(ctx); err != nil {
		return false, err
	}
	if err := content.DeleteAllOverrides(ctx); err != nil {
		return false, err
	}

	return true, nil
}
