// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/store"
)

// Importer handles importing metadata configuration from JSON format.
type Importer struct {
	settings *store.SettingsStore
	content  *store.ContentStore
	logger   *slog.Logger
}

// NewImporter creates a new Importer instance.
func NewImporter(settings *store.SettingsStore, content *store.ContentStore, logger *slog.Logger) *Importer {
	return &Importer{
		settings: settings,
		content:  content,
		logger:   logger,
	}
}

// ParseExport decodes an export payload from r.
func ParseExport(r io.Reader) (*ExportData, error) {
	var data ExportData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	return &data, nil
}

// Validate checks an export payload without applying it. Unknown setting
// keys, invalid setting values, and unknown override fields are rejected.
func (i *Importer) Validate(data *ExportData) []ValidationError {
	var errs []ValidationError

	if data.Version != ExportVersion {
		errs = append(errs, ValidationError{
			Entity:  "export",
			ID:      data.Version,
			Message: fmt.Sprintf("unsupported export version, want %s", ExportVersion),
		})
	}

	for key, value := range data.Settings {
		if !model.IsKnownSettingKey(key) {
			errs = append(errs, ValidationError{Entity: "setting", ID: key, Message: "unknown setting key"})
			continue
		}
		if !model.ValidateSetting(key, value) {
			errs = append(errs, ValidationError{Entity: "setting", ID: key, Message: "invalid setting value"})
		}
	}

	for _, o := range data.Overrides {
		if o.Slug == "" {
			errs = append(errs, ValidationError{Entity: "override", ID: "", Message: "missing slug"})
			continue
		}
		for key := range o.Fields {
			if !model.IsOverrideKey(key) {
				errs = append(errs, ValidationError{Entity: "override", ID: o.Slug, Message: "unknown override field " + key})
			}
		}
	}

	return errs
}

// Import applies an export payload. Validation failures abort before any
// write; a missing content slug is recorded and skipped without aborting
// the rest of the run.
func (i *Importer) Import(ctx context.Context, data *ExportData, opts ImportOptions) (*ImportResult, error) {
	result := NewImportResult(opts.DryRun)

	if validationErrors := i.Validate(data); len(validationErrors) > 0 {
		result.Errors = validationErrors
		return result, errors.New("validation failed")
	}

	if opts.DryRun {
		if opts.ImportSettings {
			result.Settings = len(data.Settings)
		}
		if opts.ImportOverrides {
			result.Overrides = len(data.Overrides)
		}
		return result, nil
	}

	if opts.ImportSettings {
		for key, value := range data.Settings {
			if err := i.settings.SetKnown(ctx, key, value); err != nil {
				return result, fmt.Errorf("importing setting %q: %w", key, err)
			}
			result.Settings++
		}
	}

	if opts.ImportOverrides {
		for _, o := range data.Overrides {
			id, err := i.content.IDBySlug(ctx, o.Slug)
			if err != nil {
				result.Skipped++
				result.AddError("override", o.Slug, "content not found")
				continue
			}
			for key, value := range o.Fields {
				if err := i.content.SetOverride(ctx, id, key, value); err != nil {
					return result, fmt.Errorf("importing override for %q: %w", o.Slug, err)
				}
			}
			result.Overrides++
		}
	}

	i.logger.Info("import applied",
		"settings", result.Settings,
		"overrides", result.Overrides,
		"skipped", result.Skipped)

	return result, nil
}
