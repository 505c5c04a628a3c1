// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
)

func testSite() Site {
	return Site{
		Name:        "My Site",
		Description: "A great website",
		URL:         "https://example.com",
		Locale:      "en_US",
	}
}

func testConfig() Config {
	return Config{
		SiteName:           "My Site",
		DefaultType:        "article",
		TwitterCard:        "summary_large_image",
		DefaultDescription: "A great website",
		EnableJSONLD:       true,
	}
}

func testContent() *Content {
	return &Content{
		ID:          1,
		Title:       "Original",
		Body:        "Body text of the post.",
		AuthorName:  "Jane Doe",
		Permalink:   "https://example.com/original",
		PublishedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC),
	}
}

func TestResolveHome(t *testing.T) {
	meta := Resolve(nil, testSite(), testConfig())

	if meta.Type != "website" {
		t.Errorf("Type = %q, want %q", meta.Type, "website")
	}
	if meta.Title != "My Site" {
		t.Errorf("Title = %q, want %q", meta.Title, "My Site")
	}
	if meta.Description != "A great website" {
		t.Errorf("Description = %q, want %q", meta.Description, "A great website")
	}
	if meta.URL != "https://example.com" {
		t.Errorf("URL = %q, want %q", meta.URL, "https://example.com")
	}
	if meta.Canonical != "https://example.com" {
		t.Errorf("Canonical = %q, want %q", meta.Canonical, "https://example.com")
	}
	if meta.Locale != "en_US" {
		t.Errorf("Locale = %q, want %q", meta.Locale, "en_US")
	}
	if meta.Image != "" {
		t.Errorf("Image = %q, want empty without a default image", meta.Image)
	}
	if !meta.PublishedAt.IsZero() {
		t.Error("home context must not carry article timestamps")
	}
}

func TestResolveOverridesWinPerField(t *testing.T) {
	content := testContent()
	content.Excerpt = "The excerpt"
	content.FeaturedImage = "https://example.com/featured.jpg"
	content.OGTitle = "Custom"
	content.OGDescription = "Custom og description"
	content.OGImage = "https://example.com/custom.jpg"
	content.OGType = "website"
	content.SEODescription = "Custom seo description"

	meta := Resolve(content, testSite(), testConfig())

	if meta.Title != "Custom" {
		t.Errorf("Title = %q, want override %q", meta.Title, "Custom")
	}
	if meta.Description != "Custom og description" {
		t.Errorf("Description = %q, want override", meta.Description)
	}
	if meta.Image != "https://example.com/custom.jpg" {
		t.Errorf("Image = %q, want override", meta.Image)
	}
	if meta.Type != "website" {
		t.Errorf("Type = %q, want override %q", meta.Type, "website")
	}
	if meta.SEODescription != "Custom seo description" {
		t.Errorf("SEODescription = %q, want override", meta.SEODescription)
	}
}

func TestResolveTitleFallsBackToContentTitle(t *testing.T) {
	meta := Resolve(testContent(), testSite(), testConfig())

	if meta.Title != "Original" {
		t.Errorf("Title = %q, want %q", meta.Title, "Original")
	}
}

func TestResolveDescriptionExcerptBeforeBody(t *testing.T) {
	content := testContent()
	content.Excerpt = "The excerpt"

	meta := Resolve(content, testSite(), testConfig())

	if meta.Description != "The excerpt" {
		t.Errorf("Description = %q, want excerpt", meta.Description)
	}
	if meta.SEODescription != "The excerpt" {
		t.Errorf("SEODescription = %q, want excerpt", meta.SEODescription)
	}
}

func TestResolveDescriptionTrimsLongBody(t *testing.T) {
	words := make([]string, 40)
	for i := range words {
		words[i] = "word"
	}
	content := testContent()
	content.Body = strings.Join(words, " ")

	meta := Resolve(content, testSite(), testConfig())

	want := strings.Join(words[:30], " ") + "..."
	if meta.Description != want {
		t.Errorf("Description = %q, want first 30 words with ellipsis", meta.Description)
	}
}

func TestResolveDescriptionShortBodyKeptWhole(t *testing.T) {
	content := testContent()
	content.Body = "Just a few words here."

	meta := Resolve(content, testSite(), testConfig())

	if meta.Description != "Just a few words here." {
		t.Errorf("Description = %q, want full body", meta.Description)
	}
	if strings.HasSuffix(meta.Description, "...") {
		t.Error("short body must not carry the ellipsis marker")
	}
}

func TestResolveDescriptionStripsHTML(t *testing.T) {
	content := testContent()
	content.Body = "<p>Hello <strong>bold</strong> world &amp; beyond</p>"

	meta := Resolve(content, testSite(), testConfig())

	if meta.Description != "Hello bold world & beyond" {
		t.Errorf("Description = %q, want tags stripped and entities decoded", meta.Description)
	}
}

func TestResolveDescriptionNoBodyUsesSiteDefault(t *testing.T) {
	content := testContent()
	content.Body = ""

	meta := Resolve(content, testSite(), testConfig())

	if meta.Description != "A great website" {
		t.Errorf("Description = %q, want site default", meta.Description)
	}
}

func TestResolveImageChain(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultImage = "/images/default.jpg"

	// Featured image beats the site default.
	content := testContent()
	content.FeaturedImage = "/images/featured.jpg"
	meta := Resolve(content, testSite(), cfg)
	if meta.Image != "https://example.com/images/featured.jpg" {
		t.Errorf("Image = %q, want featured image made absolute", meta.Image)
	}

	// No featured image: site default.
	content = testContent()
	meta = Resolve(content, testSite(), cfg)
	if meta.Image != "https://example.com/images/default.jpg" {
		t.Errorf("Image = %q, want site default", meta.Image)
	}

	// Nothing resolves: omitted.
	meta = Resolve(testContent(), testSite(), testConfig())
	if meta.Image != "" {
		t.Errorf("Image = %q, want empty", meta.Image)
	}
}

func TestResolveTypeChain(t *testing.T) {
	// Settings default wins over the article literal.
	cfg := testConfig()
	cfg.DefaultType = "website"
	meta := Resolve(testContent(), testSite(), cfg)
	if meta.Type != "website" {
		t.Errorf("Type = %q, want settings default %q", meta.Type, "website")
	}

	// No settings value: article literal for single items.
	cfg.DefaultType = ""
	meta = Resolve(testContent(), testSite(), cfg)
	if meta.Type != "article" {
		t.Errorf("Type = %q, want %q", meta.Type, "article")
	}
}

func TestResolveArticleTimestampsOnlyForArticles(t *testing.T) {
	content := testContent()
	meta := Resolve(content, testSite(), testConfig())
	if meta.PublishedAt.IsZero() || meta.ModifiedAt.IsZero() {
		t.Error("article type must carry published/modified timestamps")
	}

	content.OGType = "website"
	meta = Resolve(content, testSite(), testConfig())
	if !meta.PublishedAt.IsZero() || !meta.ModifiedAt.IsZero() {
		t.Error("non-article type must not carry article timestamps")
	}
}

func TestResolveSiteNameFallsBackToSiteTitle(t *testing.T) {
	cfg := testConfig()
	cfg.SiteName = ""

	meta := Resolve(nil, testSite(), cfg)
	if meta.SiteName != "My Site" {
		t.Errorf("SiteName = %q, want collaborator-reported title", meta.SiteName)
	}
}

func TestResolveTwitterDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.TwitterCard = ""
	cfg.TwitterSite = ""

	meta := Resolve(nil, testSite(), cfg)
	if meta.TwitterCard != "summary_large_image" {
		t.Errorf("TwitterCard = %q, want default", meta.TwitterCard)
	}
	if meta.TwitterSite != "" {
		t.Errorf("TwitterSite = %q, want empty", meta.TwitterSite)
	}
}

func TestTrimWords(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want string
	}{
		{"", 30, ""},
		{"one two three", 30, "one two three"},
		{"one two three", 2, "one two..."},
		{"  spaced   out  ", 30, "spaced out"},
	}

	for _, tt := range tests {
		if got := trimWords(tt.text, tt.max, "..."); got != tt.want {
			t.Errorf("trimWords(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
		}
	}
}

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"", ""},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"/images/a.jpg", "https://example.com/images/a.jpg"},
		{"images/a.jpg", "https://example.com/images/a.jpg"},
	}

	for _, tt := range tests {
		if got := makeAbsoluteURL(tt.url, "https://example.com"); got != tt.want {
			t.Errorf("makeAbsoluteURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
