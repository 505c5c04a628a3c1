// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/store"
	"github.com/olegiv/seoog-go/internal/transfer"
	"github.com/olegiv/seoog-go/internal/version"
)

// AdminHandler serves the admin JSON API for settings, per-content
// overrides, import/export, and the event log.
type AdminHandler struct {
	settings *store.SettingsStore
	content  *store.ContentStore
	events   *store.EventStore
	exporter *transfer.Exporter
	importer *transfer.Importer
	version  version.Info
	logger   *slog.Logger
}

// NewAdminHandler creates a new admin API handler.
func NewAdminHandler(settings *store.SettingsStore, content *store.ContentStore, events *store.EventStore, exporter *transfer.Exporter, importer *transfer.Importer, v version.Info, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		settings: settings,
		content:  content,
		events:   events,
		exporter: exporter,
		importer: importer,
		version:  v,
		logger:   logger,
	}
}

// Routes mounts the admin API endpoints.
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/status", h.Status)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
	r.Delete("/settings/{key}", h.ResetSetting)

	r.Get("/content/{id}/meta", h.GetContentMeta)
	r.Put("/content/{id}/meta", h.UpdateContentMeta)
	r.Delete("/content/{id}/meta", h.DeleteContentMeta)

	r.Get("/export", h.Export)
	r.Post("/import", h.Import)

	r.Get("/events", h.ListEvents)

	return r
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// Status reports service health and build information.
func (h *AdminHandler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:    "ok",
		Version:   h.version.Version,
		GitCommit: h.version.GitCommit,
		BuildTime: h.version.BuildTime,
	}, nil)
}

// GetSettings returns the full effective settings map, defaults included.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetAll(r.Context())
	if err != nil {
		h.logger.Error("loading settings failed", "error", err)
		WriteInternalError(w, "Failed to load settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// UpdateSettings applies a partial settings map. The whole request is
// validated before any write; one bad key rejects the batch.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if len(updates) == 0 {
		WriteBadRequest(w, "No settings provided", nil)
		return
	}

	fieldErrors := make(map[string]string)
	for key, value := range updates {
		if !model.IsKnownSettingKey(key) {
			fieldErrors[key] = "unknown setting key"
			continue
		}
		if !model.ValidateSetting(key, value) {
			fieldErrors[key] = "invalid value"
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	for key, value := range updates {
		if err := h.settings.SetKnown(r.Context(), key, value); err != nil {
			h.logger.Error("saving setting failed", "key", key, "error", err)
			WriteInternalError(w, "Failed to save settings")
			return
		}
	}

	h.logger.Info("settings updated", "category", model.EventCategorySettings, "count", len(updates))
	WriteSuccess(w, updates, nil)
}

// ResetSetting deletes a stored value so the default applies again.
func (h *AdminHandler) ResetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !model.IsKnownSettingKey(key) {
		WriteNotFound(w, "Unknown setting key")
		return
	}

	if err := h.settings.Delete(r.Context(), key); err != nil {
		h.logger.Error("resetting setting failed", "key", key, "error", err)
		WriteInternalError(w, "Failed to reset setting")
		return
	}

	value, err := h.settings.Get(r.Context(), key)
	if err != nil {
		WriteInternalError(w, "Failed to read setting")
		return
	}
	WriteSuccess(w, map[string]string{key: value}, nil)
}

// contentID parses the {id} route parameter.
func contentID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// GetContentMeta returns the stored override fields of one content item.
func (h *AdminHandler) GetContentMeta(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	if _, err := h.content.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content not found")
			return
		}
		WriteInternalError(w, "Failed to load content")
		return
	}

	overrides, err := h.content.Overrides(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to load overrides")
		return
	}

	fields := overrides.Map()
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	WriteSuccess(w, fields, nil)
}

// UpdateContentMeta applies override fields for one content item. An
// empty value clears the field.
func (h *AdminHandler) UpdateContentMeta(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	for key := range fields {
		if !model.IsOverrideKey(key) {
			fieldErrors[key] = "unknown override field"
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.content.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content not found")
			return
		}
		WriteInternalError(w, "Failed to load content")
		return
	}

	for key, value := range fields {
		if err := h.content.SetOverride(r.Context(), id, key, value); err != nil {
			h.logger.Error("saving override failed", "content_id", id, "key", key, "error", err)
			WriteInternalError(w, "Failed to save overrides")
			return
		}
	}

	h.logger.Info("content overrides updated", "category", model.EventCategoryContent,
		"content_id", id, "count", len(fields))
	WriteSuccess(w, fields, nil)
}

// DeleteContentMeta clears every override field of one content item.
func (h *AdminHandler) DeleteContentMeta(w http.ResponseWriter, r *http.Request) {
	id, err := contentID(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	if _, err := h.content.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content not found")
			return
		}
		WriteInternalError(w, "Failed to load content")
		return
	}

	for _, key := range model.OverrideKeys {
		if err := h.content.SetOverride(r.Context(), id, key, ""); err != nil {
			WriteInternalError(w, "Failed to clear overrides")
			return
		}
	}

	WriteSuccess(w, map[string]string{}, nil)
}

// Export streams the settings and overrides as a JSON attachment.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="seoog-export.json"`)

	if err := h.exporter.WriteJSON(r.Context(), w, transfer.DefaultExportOptions()); err != nil {
		h.logger.Error("export failed", "error", err)
	}
}

// Import applies an uploaded export payload. dry_run=1 validates and
// counts without writing.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := transfer.ParseExport(r.Body)
	if err != nil {
		WriteBadRequest(w, "Invalid export payload", nil)
		return
	}

	opts := transfer.DefaultImportOptions()
	opts.DryRun = r.URL.Query().Get("dry_run") == "1"

	result, err := h.importer.Import(r.Context(), data, opts)
	if err != nil {
		if result != nil && len(result.Errors) > 0 {
			fieldErrors := make(map[string]string, len(result.Errors))
			for _, e := range result.Errors {
				fieldErrors[e.Entity+":"+e.ID] = e.Message
			}
			WriteValidationError(w, fieldErrors)
			return
		}
		h.logger.Error("import failed", "error", err)
		WriteInternalError(w, "Import failed")
		return
	}

	WriteSuccess(w, result, nil)
}

// ListEvents returns event log entries, newest first.
func (h *AdminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	offset := int64(0)
	if v, err := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64); err == nil && v >= 0 {
		offset = v
	}

	events, err := h.events.ListEvents(r.Context(), limit, offset)
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}
	total, err := h.events.CountEvents(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to count events")
		return
	}

	type eventView struct {
		ID        int64  `json:"id"`
		Level     string `json:"level"`
		Category  string `json:"category"`
		Message   string `json:"message"`
		Metadata  string `json:"metadata"`
		CreatedAt string `json:"created_at"`
	}

	views := make([]eventView, len(events))
	for i, e := range events {
		views[i] = eventView{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	WriteSuccess(w, views, &Meta{Total: total})
}
