// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ErrSitemapDisabled signals that sitemap generation is switched off.
// Callers render it as a "not available" response, not a server error.
var ErrSitemapDisabled = errors.New("sitemap is disabled")

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequency values used by the generator.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
// Child element order is fixed: loc, lastmod, changefreq, priority.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq"`
	Priority   string     `xml:"priority"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapItem is one content entry destined for the sitemap.
type SitemapItem struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapSource enumerates eligible content for the generator.
type SitemapSource interface {
	// LatestModified returns the most recent modification timestamp
	// across all published content; zero time when there is none.
	LatestModified(ctx context.Context) (time.Time, error)
	// ListForSitemap returns published items of one content type,
	// excluding the given IDs, most recently modified first.
	ListForSitemap(ctx context.Context, contentType string, excludeIDs []int64) ([]SitemapItem, error)
}

// SitemapConfig is the settings snapshot the generator consumes.
type SitemapConfig struct {
	Enabled    bool
	SiteURL    string
	PostTypes  []string
	ExcludeIDs []int64
}

// SitemapBuilder accumulates URL entries and serializes the document.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the site root with priority 1.0 and daily frequency.
// A zero lastMod omits the lastmod element.
func (b *SitemapBuilder) AddHomepage(lastMod time.Time) {
	entry := SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	}
	if !lastMod.IsZero() {
		entry.LastMod = lastMod.Format(time.RFC3339)
	}
	b.urls = append(b.urls, entry)
}

// AddItem adds one content entry. Page-type items get priority 0.8 and
// monthly frequency; every other type gets 0.6 and weekly.
func (b *SitemapBuilder) AddItem(item SitemapItem, contentType string) {
	entry := SitemapURL{
		Loc:        b.siteURL + "/" + item.Slug,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.6",
	}
	if contentType == "page" {
		entry.ChangeFreq = ChangeFreqMonthly
		entry.Priority = "0.8"
	}
	if !item.UpdatedAt.IsZero() {
		entry.LastMod = item.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, entry)
}

// Build serializes the accumulated entries into the sitemap document,
// preceded by an XML declaration.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	body, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// GenerateSitemap enumerates eligible content and serializes the sitemap
// document. Returns ErrSitemapDisabled when generation is switched off.
// Any source failure fails the whole document; no partial output is
// ever returned.
func GenerateSitemap(ctx context.Context, cfg SitemapConfig, source SitemapSource) ([]byte, error) {
	if !cfg.Enabled {
		return nil, ErrSitemapDisabled
	}

	builder := NewSitemapBuilder(cfg.SiteURL)

	lastMod, err := source.LatestModified(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap homepage entry: %w", err)
	}
	builder.AddHomepage(lastMod)

	for _, contentType := range cfg.PostTypes {
		items, err := source.ListForSitemap(ctx, contentType, cfg.ExcludeIDs)
		if err != nil {
			return nil, fmt.Errorf("sitemap %q entries: %w", contentType, err)
		}
		for _, item := range items {
			builder.AddItem(item, contentType)
		}
	}

	return builder.Build()
}
