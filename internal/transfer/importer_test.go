// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/seoog-go/internal/model"
)

func TestImportOptions_Defaults(t *testing.T) {
	opts := DefaultImportOptions()

	assert.False(t, opts.DryRun)
	assert.True(t, opts.ImportSettings)
	assert.True(t, opts.ImportOverrides)
}

func TestImporter_Validate(t *testing.T) {
	importer := NewImporter(nil, nil, testLogger())

	tests := []struct {
		name          string
		data          *ExportData
		expectErrors  bool
		errorContains string
	}{
		{
			name: "valid data",
			data: &ExportData{
				Version:    ExportVersion,
				ExportedAt: time.Now(),
				Settings: map[string]string{
					model.SettingOGSiteName:   "Site",
					model.SettingOGDefaultType: model.OGTypeWebsite,
				},
				Overrides: []ExportOverrides{
					{Slug: "hello", Fields: map[string]string{model.OverrideOGTitle: "T"}},
				},
			},
		},
		{
			name:          "missing version",
			data:          &ExportData{ExportedAt: time.Now()},
			expectErrors:  true,
			errorContains: "version",
		},
		{
			name: "unknown setting key",
			data: &ExportData{
				Version:  ExportVersion,
				Settings: map[string]string{"no_such_key": "x"},
			},
			expectErrors:  true,
			errorContains: "unknown setting key",
		},
		{
			name: "invalid setting value",
			data: &ExportData{
				Version:  ExportVersion,
				Settings: map[string]string{model.SettingOGDefaultType: "banana"},
			},
			expectErrors:  true,
			errorContains: "invalid setting value",
		},
		{
			name: "override without slug",
			data: &ExportData{
				Version:   ExportVersion,
				Overrides: []ExportOverrides{{Fields: map[string]string{model.OverrideOGTitle: "T"}}},
			},
			expectErrors:  true,
			errorContains: "missing slug",
		},
		{
			name: "unknown override field",
			data: &ExportData{
				Version:   ExportVersion,
				Overrides: []ExportOverrides{{Slug: "a", Fields: map[string]string{"bogus": "x"}}},
			},
			expectErrors:  true,
			errorContains: "unknown override field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := importer.Validate(tt.data)
			if !tt.expectErrors {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if strings.Contains(e.Message, tt.errorContains) {
					found = true
				}
			}
			assert.True(t, found, "no error containing %q in %v", tt.errorContains, errs)
		})
	}
}

func TestImporter_Import(t *testing.T) {
	ts := setupTest(t)
	id := seedPost(t, ts, "hello")

	importer := NewImporter(ts.Settings, ts.Content, testLogger())

	data := &ExportData{
		Version: ExportVersion,
		Settings: map[string]string{
			model.SettingOGSiteName: "Imported Name",
		},
		Overrides: []ExportOverrides{
			{Slug: "hello", Fields: map[string]string{model.OverrideOGTitle: "Imported Title"}},
		},
	}

	result, err := importer.Import(ts.Ctx, data, DefaultImportOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Settings)
	assert.Equal(t, 1, result.Overrides)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Errors)

	value, err := ts.Settings.Get(ts.Ctx, model.SettingOGSiteName)
	require.NoError(t, err)
	assert.Equal(t, "Imported Name", value)

	overrides, err := ts.Content.Overrides(ts.Ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Imported Title", overrides.OGTitle)
}

func TestImporter_Import_DryRun(t *testing.T) {
	ts := setupTest(t)
	seedPost(t, ts, "hello")

	importer := NewImporter(ts.Settings, ts.Content, testLogger())

	data := &ExportData{
		Version:  ExportVersion,
		Settings: map[string]string{model.SettingOGSiteName: "Dry Name"},
		Overrides: []ExportOverrides{
			{Slug: "hello", Fields: map[string]string{model.OverrideOGTitle: "Dry Title"}},
		},
	}

	opts := DefaultImportOptions()
	opts.DryRun = true

	result, err := importer.Import(ts.Ctx, data, opts)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Settings)
	assert.Equal(t, 1, result.Overrides)

	// Nothing written.
	value, err := ts.Settings.Get(ts.Ctx, model.SettingOGSiteName)
	require.NoError(t, err)
	assert.NotEqual(t, "Dry Name", value)
}

func TestImporter_Import_ValidationAborts(t *testing.T) {
	ts := setupTest(t)
	importer := NewImporter(ts.Settings, ts.Content, testLogger())

	data := &ExportData{
		Version:  ExportVersion,
		Settings: map[string]string{"no_such_key": "x", model.SettingOGSiteName: "Never"},
	}

	result, err := importer.Import(ts.Ctx, data, DefaultImportOptions())
	require.Error(t, err)
	require.NotEmpty(t, result.Errors)

	// The valid key must not be applied either.
	value, err := ts.Settings.Get(ts.Ctx, model.SettingOGSiteName)
	require.NoError(t, err)
	assert.NotEqual(t, "Never", value)
}

func TestImporter_Import_MissingSlugSkipped(t *testing.T) {
	ts := setupTest(t)
	id := seedPost(t, ts, "exists")

	importer := NewImporter(ts.Settings, ts.Content, testLogger())

	data := &ExportData{
		Version: ExportVersion,
		Overrides: []ExportOverrides{
			{Slug: "ghost", Fields: map[string]string{model.OverrideOGTitle: "G"}},
			{Slug: "exists", Fields: map[string]string{model.OverrideOGTitle: "E"}},
		},
	}

	result, err := importer.Import(ts.Ctx, data, DefaultImportOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Overrides)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "ghost", result.Errors[0].ID)

	overrides, err := ts.Content.Overrides(ts.Ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "E", overrides.OGTitle)
}

func TestImporter_RoundTrip(t *testing.T) {
	src := setupTest(t)
	srcID := seedPost(t, src, "roundtrip")

	require.NoError(t, src.Settings.Set(src.Ctx, model.SettingOGSiteName, "Round Trip"))
	require.NoError(t, src.Content.SetOverride(src.Ctx, srcID, model.OverrideSEODescription, "Desc"))

	exporter := NewExporter(src.Settings, src.Content, src.Site, testLogger())
	data, err := exporter.Export(src.Ctx, DefaultExportOptions())
	require.NoError(t, err)

	dst := setupTest(t)
	dstID := seedPost(t, dst, "roundtrip")

	importer := NewImporter(dst.Settings, dst.Content, testLogger())
	result, err := importer.Import(dst.Ctx, data, DefaultImportOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	value, err := dst.Settings.Get(dst.Ctx, model.SettingOGSiteName)
	require.NoError(t, err)
	assert.Equal(t, "Round Trip", value)

	overrides, err := dst.Content.Overrides(dst.Ctx, dstID)
	require.NoError(t, err)
	assert.Equal(t, "Desc", overrides.SEODescription)
}

func TestParseExport(t *testing.T) {
	payload := `{"version":"1.0","exported_at":"2026-01-01T00:00:00Z","site":{"name":"S"},"settings":{"og_site_name":"S"}}`

	data, err := ParseExport(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "1.0", data.Version)
	assert.Equal(t, "S", data.Settings[model.SettingOGSiteName])

	_, err = ParseExport(strings.NewReader(`{"version":"1.0","bogus":true}`))
	require.Error(t, err)
}
