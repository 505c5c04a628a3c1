// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/seoog-go/internal/config"
	"github.com/olegiv/seoog-go/internal/model"
	"github.com/olegiv/seoog-go/internal/seo"
	"github.com/olegiv/seoog-go/internal/store"
)

// pageTemplate is the minimal frontend shell. The head block carries the
// rendered meta tags and JSON-LD.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{.Head}}</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`

// pageData feeds pageTemplate.
type pageData struct {
	Lang  string
	Title string
	Head  template.HTML
	Body  template.HTML
}

// FrontendHandler serves public pages, the sitemap, and robots.txt.
type FrontendHandler struct {
	cfg      *config.Config
	settings *store.SettingsStore
	content  *store.ContentStore
	logger   *slog.Logger
	tmpl     *template.Template
}

// NewFrontendHandler creates a new frontend handler.
func NewFrontendHandler(cfg *config.Config, settings *store.SettingsStore, content *store.ContentStore, logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		cfg:      cfg,
		settings: settings,
		content:  content,
		logger:   logger,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// site builds the resolver's site identity from configuration.
func (h *FrontendHandler) site() seo.Site {
	return seo.Site{
		Name:        h.cfg.SiteName,
		Description: h.cfg.SiteDescription,
		URL:         h.cfg.SiteURL,
		Locale:      h.cfg.SiteLocale,
	}
}

// seoConfig maps the settings snapshot onto the resolver configuration.
func seoConfig(s model.Settings) seo.Config {
	return seo.Config{
		SiteName:           s.OGSiteName,
		DefaultImage:       s.OGDefaultImage,
		DefaultType:        s.OGDefaultType,
		TwitterCard:        s.OGTwitterCard,
		TwitterSite:        s.OGTwitterSite,
		DefaultDescription: s.SEODefaultDescription,
		EnableJSONLD:       s.SEOEnableJSONLD,
	}
}

// seoContent converts a stored content item for the resolver.
func seoContent(item *model.ContentItem, siteURL string) *seo.Content {
	c := &seo.Content{
		ID:            item.ID,
		Title:         item.Title,
		Body:          item.Body,
		Excerpt:       item.Excerpt,
		AuthorName:    item.AuthorName,
		FeaturedImage: item.FeaturedImage,
		Permalink:     item.Permalink(siteURL),
		UpdatedAt:     item.UpdatedAt,

		OGTitle:        item.Overrides.OGTitle,
		OGDescription:  item.Overrides.OGDescription,
		OGImage:        item.Overrides.OGImage,
		OGType:         item.Overrides.OGType,
		SEODescription: item.Overrides.SEODescription,
	}
	if item.PublishedAt.Valid {
		c.PublishedAt = item.PublishedAt.Time
	}
	return c
}

// headBlock renders the meta tags plus JSON-LD for one page.
func headBlock(content *seo.Content, site seo.Site, cfg seo.Config) template.HTML {
	head := seo.RenderMetaTags(seo.Resolve(content, site, cfg))
	if content != nil {
		head += seo.RenderJSONLD(seo.BuildArticleSchema(content, cfg))
	}
	// The head block is assembled from escaped fragments only.
	return template.HTML(head)
}

// render writes a full page, buffering so a template failure never emits
// a partial response.
func (h *FrontendHandler) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("rendering page failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Home serves the site root with home/collection metadata.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Settings(r.Context())
	site := h.site()

	h.render(w, pageData{
		Lang:  langAttr(site.Locale),
		Title: site.Name,
		Head:  headBlock(nil, site, seoConfig(settings)),
	})
}

// Page serves one published content item by slug.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := h.content.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("loading content failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	settings := h.settings.Settings(r.Context())
	site := h.site()
	content := seoContent(item, site.URL)

	h.render(w, pageData{
		Lang: langAttr(site.Locale),
		// The visible title stays the stored one; overrides only shape
		// the metadata.
		Title: item.Title,
		Head:  headBlock(content, site, seoConfig(settings)),
		Body:  template.HTML(item.Body),
	})
}

// sitemapSource adapts the content store to the generator interface.
type sitemapSource struct {
	content *store.ContentStore
}

func (s sitemapSource) LatestModified(ctx context.Context) (time.Time, error) {
	return s.content.LatestModified(ctx)
}

func (s sitemapSource) ListForSitemap(ctx context.Context, contentType string, excludeIDs []int64) ([]seo.SitemapItem, error) {
	entries, err := s.content.ListForSitemap(ctx, contentType, excludeIDs)
	if err != nil {
		return nil, err
	}
	items := make([]seo.SitemapItem, len(entries))
	for i, e := range entries {
		items[i] = seo.SitemapItem{Slug: e.Slug, UpdatedAt: e.UpdatedAt}
	}
	return items, nil
}

// Sitemap serves /sitemap.xml. A disabled sitemap is a plain 404; any
// generation failure is a 500 with no partial body.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Settings(r.Context())

	cfg := seo.SitemapConfig{
		Enabled:    settings.SitemapEnable,
		SiteURL:    h.cfg.SiteURL,
		PostTypes:  settings.SitemapPostTypes,
		ExcludeIDs: settings.SitemapExcludeIDs,
	}

	out, err := seo.GenerateSitemap(r.Context(), cfg, sitemapSource{content: h.content})
	if err != nil {
		if errors.Is(err, seo.ErrSitemapDisabled) {
			http.Error(w, "Sitemap is disabled", http.StatusNotFound)
			return
		}
		h.logger.Error("sitemap generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots serves /robots.txt: the stored override verbatim when set,
// otherwise the generated default.
func (h *FrontendHandler) Robots(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Settings(r.Context())

	body := seo.FilterRobots(settings.RobotsTxt, seo.DefaultRobots(h.cfg.SiteURL))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// langAttr converts a POSIX locale (en_US) to an HTML lang value (en-US).
func langAttr(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}
