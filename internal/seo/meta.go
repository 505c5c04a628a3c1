// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo resolves and renders page metadata: Open Graph and Twitter
// Card tags, SEO description and canonical tags, JSON-LD structured data,
// the XML sitemap, and robots.txt.
package seo

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// descriptionWords is the number of words kept when a description is
// derived from the content body.
const descriptionWords = 30

// ellipsis marks a truncated body-derived description.
const ellipsis = "..."

// Site carries the site identity reported by the hosting CMS.
type Site struct {
	Name        string
	Description string
	URL         string
	Locale      string
}

// Config is the site-wide settings snapshot the resolver consumes.
type Config struct {
	SiteName           string // og_site_name
	DefaultImage       string // og_default_image
	DefaultType        string // og_default_type
	TwitterCard        string // og_twitter_card
	TwitterSite        string // og_twitter_site
	DefaultDescription string // seo_default_description
	EnableJSONLD       bool   // seo_enable_jsonld
}

// Content carries one content item plus its per-item overrides.
// Empty override fields mean "not set"; the resolver treats empty and
// absent identically.
type Content struct {
	ID            int64
	Title         string
	Body          string
	Excerpt       string
	AuthorName    string
	FeaturedImage string
	Permalink     string
	PublishedAt   time.Time
	UpdatedAt     time.Time

	// Per-content overrides. Always win when non-empty.
	OGTitle        string
	OGDescription  string
	OGImage        string
	OGType         string
	SEODescription string
}

// Meta holds the resolved metadata for one page render. Fields left
// empty are omitted from output, except SiteName and Locale which are
// always emitted.
type Meta struct {
	SiteName       string
	Locale         string
	Type           string
	Title          string
	Description    string // og:description
	URL            string
	Image          string
	PublishedAt    time.Time // article:published_time, zero = omit
	ModifiedAt     time.Time // article:modified_time, zero = omit
	AuthorName     string    // article:author and meta author
	TwitterCard    string
	TwitterSite    string
	SEODescription string // meta name="description"
	Canonical      string
}

// IsArticle reports whether the resolved type triggers article:* tags.
func (m *Meta) IsArticle() bool {
	return m.Type == "article"
}

// stripPolicy reduces HTML to plain text for description fallbacks.
var stripPolicy = bluemonday.StrictPolicy()

// Resolve computes the final metadata for a page. A nil content means
// the home/collection context. Resolution is deterministic,
// first-match-wins per field; it never fails, degrading to the
// home/collection fallbacks when upstream data is missing.
func Resolve(content *Content, site Site, cfg Config) *Meta {
	meta := &Meta{
		SiteName:    firstNonEmpty(cfg.SiteName, site.Name),
		Locale:      site.Locale,
		TwitterCard: firstNonEmpty(cfg.TwitterCard, "summary_large_image"),
		TwitterSite: cfg.TwitterSite,
	}

	if content == nil {
		meta.Type = "website"
		meta.Title = site.Name
		meta.Description = firstNonEmpty(cfg.DefaultDescription, site.Description)
		meta.SEODescription = meta.Description
		meta.URL = site.URL
		meta.Canonical = site.URL
		if cfg.DefaultImage != "" {
			meta.Image = makeAbsoluteURL(cfg.DefaultImage, site.URL)
		}
		return meta
	}

	meta.Type = firstNonEmpty(content.OGType, cfg.DefaultType, "article")
	meta.Title = firstNonEmpty(content.OGTitle, content.Title)

	bodyDescription := describeBody(content)
	meta.Description = firstNonEmpty(content.OGDescription, bodyDescription,
		cfg.DefaultDescription, site.Description)
	meta.SEODescription = firstNonEmpty(content.SEODescription, bodyDescription,
		cfg.DefaultDescription, site.Description)

	meta.URL = content.Permalink
	meta.Canonical = content.Permalink

	image := firstNonEmpty(content.OGImage, content.FeaturedImage, cfg.DefaultImage)
	if image != "" {
		meta.Image = makeAbsoluteURL(image, site.URL)
	}

	if meta.IsArticle() {
		meta.PublishedAt = content.PublishedAt
		meta.ModifiedAt = content.UpdatedAt
	}
	meta.AuthorName = content.AuthorName

	return meta
}

// describeBody derives a description from content data:
// excerpt when present, otherwise the first 30 words of the body with an
// ellipsis marker when truncated.
func describeBody(content *Content) string {
	if content.Excerpt != "" {
		return content.Excerpt
	}
	if content.Body == "" {
		return ""
	}
	return trimWords(stripHTML(content.Body), descriptionWords, ellipsis)
}

// stripHTML reduces an HTML fragment to plain text with collapsed
// whitespace.
func stripHTML(s string) string {
	plain := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(plain), " ")
}

// trimWords keeps the first max words of text, appending the marker when
// anything was dropped.
func trimWords(text string, max int, marker string) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:max], " ") + marker
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// makeAbsoluteURL ensures a URL is absolute by prepending the site URL
// if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
