// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"html"
	"net/url"
	"strings"
	"time"
)

// RenderMetaTags serializes resolved metadata into the head tag block.
// Field order is fixed for reproducible output: og:site_name, og:locale,
// og:type, og:title, og:description, og:url, og:image, the article:*
// trio, twitter:card, twitter:site, then the SEO tags (description,
// author, canonical). Empty fields are omitted except site_name and
// locale, which are always emitted.
func RenderMetaTags(m *Meta) string {
	var sb strings.Builder

	writeProperty(&sb, "og:site_name", m.SiteName, true)
	writeProperty(&sb, "og:locale", m.Locale, true)
	writeProperty(&sb, "og:type", m.Type, false)
	writeProperty(&sb, "og:title", m.Title, false)
	writeProperty(&sb, "og:description", m.Description, false)
	writePropertyURL(&sb, "og:url", m.URL)
	writePropertyURL(&sb, "og:image", m.Image)

	if m.IsArticle() {
		if !m.PublishedAt.IsZero() {
			writeProperty(&sb, "article:published_time", m.PublishedAt.Format(time.RFC3339), false)
		}
		if !m.ModifiedAt.IsZero() {
			writeProperty(&sb, "article:modified_time", m.ModifiedAt.Format(time.RFC3339), false)
		}
		writeProperty(&sb, "article:author", m.AuthorName, false)
	}

	writeName(&sb, "twitter:card", m.TwitterCard)
	writeName(&sb, "twitter:site", m.TwitterSite)

	writeName(&sb, "description", m.SEODescription)
	writeName(&sb, "author", m.AuthorName)

	if m.Canonical != "" {
		if escaped := EscapeURL(m.Canonical); escaped != "" {
			sb.WriteString(`<link rel="canonical" href="` + html.EscapeString(escaped) + "\">\n")
		}
	}

	return sb.String()
}

// writeProperty emits one property-attributed meta tag. When always is
// false, empty values are omitted.
func writeProperty(sb *strings.Builder, property, content string, always bool) {
	if content == "" && !always {
		return
	}
	sb.WriteString(`<meta property="` + property + `" content="` + html.EscapeString(content) + "\">\n")
}

// writePropertyURL emits one property-attributed meta tag whose content
// is a URL. Invalid or disallowed-scheme URLs are omitted entirely.
func writePropertyURL(sb *strings.Builder, property, raw string) {
	if raw == "" {
		return
	}
	escaped := EscapeURL(raw)
	if escaped == "" {
		return
	}
	sb.WriteString(`<meta property="` + property + `" content="` + html.EscapeString(escaped) + "\">\n")
}

// writeName emits one name-attributed meta tag, omitting empty values.
func writeName(sb *strings.Builder, name, content string) {
	if content == "" {
		return
	}
	sb.WriteString(`<meta name="` + name + `" content="` + html.EscapeString(content) + "\">\n")
}

// EscapeURL validates and normalizes a URL for attribute output.
// Only http and https URLs are allowed; anything else returns "".
func EscapeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
