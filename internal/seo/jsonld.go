// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ArticleSchema represents JSON-LD Article structured data.
type ArticleSchema struct {
	Context       string        `json:"@context"`
	Type          string        `json:"@type"`
	Headline      string        `json:"headline"`
	DatePublished string        `json:"datePublished,omitempty"`
	DateModified  string        `json:"dateModified,omitempty"`
	Author        *PersonSchema `json:"author,omitempty"`
	Image         string        `json:"image,omitempty"`
	Description   string        `json:"description,omitempty"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BuildArticleSchema creates JSON-LD Article structured data for a
// content item. Returns nil for the home/collection context or when the
// JSON-LD setting is disabled.
//
// The description sources from the excerpt only; the image from the
// featured image only. Neither follows the og:* fallback chains.
func BuildArticleSchema(content *Content, cfg Config) *ArticleSchema {
	if content == nil || !cfg.EnableJSONLD {
		return nil
	}

	schema := &ArticleSchema{
		Context:  "https://schema.org",
		Type:     "Article",
		Headline: content.Title,
	}

	if !content.PublishedAt.IsZero() {
		schema.DatePublished = content.PublishedAt.Format(time.RFC3339)
	}
	if !content.UpdatedAt.IsZero() {
		schema.DateModified = content.UpdatedAt.Format(time.RFC3339)
	}

	if content.AuthorName != "" {
		schema.Author = &PersonSchema{
			Type: "Person",
			Name: content.AuthorName,
		}
	}

	schema.Image = content.FeaturedImage
	schema.Description = content.Excerpt

	return schema
}

// RenderJSONLD serializes a schema into its script container. Slashes
// and non-ASCII characters are preserved literally in the JSON encoding.
// Returns "" for a nil schema or an encoding failure.
func RenderJSONLD(schema *ArticleSchema) string {
	if schema == nil {
		return ""
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(schema); err != nil {
		return ""
	}

	payload := strings.TrimSuffix(buf.String(), "\n")
	return `<script type="application/ld+json">` + payload + "</script>\n"
}
