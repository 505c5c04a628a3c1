// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/store"
)

// Exporter handles exporting metadata configuration to JSON format.
type Exporter struct {
	settings *store.SettingsStore
	content  *store.ContentStore
	logger   *slog.Logger
	site     model.SiteInfo
}

// NewExporter creates a new Exporter instance.
func NewExporter(settings *store.SettingsStore, content *store.ContentStore, site model.SiteInfo, logger *slog.Logger) *Exporter {
	return &Exporter{
		settings: settings,
		content:  content,
		logger:   logger,
		site:     site,
	}
}

// Export generates an ExportData structure based on the provided options.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Site: ExportSite{
			Name:        e.site.Name,
			Description: e.site.Description,
			URL:         e.site.URL,
		},
	}

	if opts.IncludeSettings {
		settings, err := e.settings.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("exporting settings: %w", err)
		}
		data.Settings = settings
	}

	if opts.IncludeOverrides {
		bySlug, err := e.content.OverridesBySlug(ctx)
		if err != nil {
			return nil, fmt.Errorf("exporting overrides: %w", err)
		}

		slugs := make([]string, 0, len(bySlug))
		for slug := range bySlug {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)

		for _, slug := range slugs {
			fields := bySlug[slug].Map()
			for k, v := range fields {
				if v == "" {
					delete(fields, k)
				}
			}
			if len(fields) == 0 {
				continue
			}
			data.Overrides = append(data.Overrides, ExportOverrides{
				Slug:   slug,
				Fields: fields,
			})
		}
	}

	e.logger.Info("export generated",
		"settings", len(data.Settings),
		"overrides", len(data.Overrides))

	return data, nil
}

// WriteJSON exports with the given options and writes indented JSON to w.
func (e *Exporter) WriteJSON(ctx context.Context, w io.Writer, opts ExportOptions) error {
	data, err := e.Export(ctx, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}
