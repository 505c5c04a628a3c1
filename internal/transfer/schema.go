// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides import/export functionality for metadata
// settings and per-content overrides.
package transfer

import "time"

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// ExportData represents the complete export structure.
type ExportData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Site       ExportSite        `json:"site"`
	Settings   map[string]string `json:"settings,omitempty"`
	Overrides  []ExportOverrides `json:"overrides,omitempty"`
}

// ExportSite contains basic site information.
type ExportSite struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ExportOverrides carries one content item's override fields, keyed by
// slug so exports survive ID renumbering between installations.
type ExportOverrides struct {
	Slug   string            `json:"slug"`
	Fields map[string]string `json:"fields"`
}

// ExportOptions configures what to include in the export.
type ExportOptions struct {
	IncludeSettings  bool `json:"include_settings"`
	IncludeOverrides bool `json:"include_overrides"`
}

// DefaultExportOptions returns options that include everything.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		IncludeSettings:  true,
		IncludeOverrides: true,
	}
}

// ImportOptions configures how an import is applied.
type ImportOptions struct {
	ImportSettings  bool `json:"import_settings"`
	ImportOverrides bool `json:"import_overrides"`
	DryRun          bool `json:"dry_run"`
}

// DefaultImportOptions returns options that apply everything.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		ImportSettings:  true,
		ImportOverrides: true,
	}
}

// ValidationError describes one rejected entity in an import payload.
type ValidationError struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	DryRun    bool              `json:"dry_run"`
	Settings  int               `json:"settings"`
	Overrides int               `json:"overrides"`
	Skipped   int               `json:"skipped"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// NewImportResult creates an empty result.
func NewImportResult(dryRun bool) *ImportResult {
	return &ImportResult{DryRun: dryRun}
}

// AddError records a per-entity failure without aborting the run.
func (r *ImportResult) AddError(entity, id, message string) {
	r.Errors = append(r.Errors, ValidationError{Entity: entity, ID: id, Message: message})
}
