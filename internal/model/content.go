// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Content statuses
const (
	ContentStatusDraft     = "draft"
	ContentStatusPublished = "published"
)

// Built-in content types. Additional types may appear in the
// sitemap_post_types setting; only "page" changes sitemap weighting.
const (
	ContentTypePost = "post"
	ContentTypePage = "page"
)

// Override keys for per-content metadata stored in content_meta.
const (
	OverrideOGTitle        = "og_title"
	OverrideOGDescription  = "og_description"
	OverrideOGImage        = "og_image"
	OverrideOGType         = "og_type"
	OverrideSEODescription = "seo_description"
)

// OverrideKeys lists every recognized per-content override key.
var OverrideKeys = []string{
	OverrideOGTitle,
	OverrideOGDescription,
	OverrideOGImage,
	OverrideOGType,
	OverrideSEODescription,
}

// IsOverrideKey checks membership in OverrideKeys.
func IsOverrideKey(key string) bool {
	for _, k := range OverrideKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Overrides holds the per-content metadata overrides. Empty string means
// "not set"; the resolver treats absent and empty identically.
type Overrides struct {
	OGTitle        string
	OGDescription  string
	OGImage        string
	OGType         string
	SEODescription string
}

// Map returns the overrides as key/value pairs, including empty values.
func (o Overrides) Map() map[string]string {
	return map[string]string{
		OverrideOGTitle:        o.OGTitle,
		OverrideOGDescription:  o.OGDescription,
		OverrideOGImage:        o.OGImage,
		OverrideOGType:         o.OGType,
		OverrideSEODescription: o.SEODescription,
	}
}

// OverridesFromMap builds an Overrides struct from key/value pairs,
// ignoring unknown keys.
func OverridesFromMap(m map[string]string) Overrides {
	return Overrides{
		OGTitle:        m[OverrideOGTitle],
		OGDescription:  m[OverrideOGDescription],
		OGImage:        m[OverrideOGImage],
		OGType:         m[OverrideOGType],
		SEODescription: m[OverrideSEODescription],
	}
}

// ContentItem represents one addressable document from the content repository.
type ContentItem struct {
	ID            int64
	Title         string
	Slug          string
	Body          string
	Excerpt       string
	ContentType   string
	Status        string
	AuthorName    string
	FeaturedImage string
	PublishedAt   sql.NullTime
	UpdatedAt     time.Time
	Overrides     Overrides
}

// IsPublished returns true if the content item is published.
func (c *ContentItem) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// Permalink returns the canonical URL of the item under the given site root.
func (c *ContentItem) Permalink(siteURL string) string {
	return siteURL + "/" + c.Slug
}
