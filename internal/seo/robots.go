// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// RobotsConfig holds configuration for the generated default robots.txt.
type RobotsConfig struct {
	SiteURL       string   // Base URL for the sitemap reference
	DisallowPaths []string // Additional paths to disallow
}

// RobotsBuilder builds the default robots.txt content.
type RobotsBuilder struct {
	config RobotsConfig
}

// NewRobotsBuilder creates a new robots.txt builder.
func NewRobotsBuilder(config RobotsConfig) *RobotsBuilder {
	return &RobotsBuilder{config: config}
}

// Build generates the default robots.txt content: a wildcard user-agent
// block disallowing the admin prefix, followed by the sitemap reference.
func (b *RobotsBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")

	paths := append([]string{"/admin/"}, b.config.DisallowPaths...)
	for _, path := range paths {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}

	if b.config.SiteURL != "" {
		sb.WriteString("\n")
		sb.WriteString("Sitemap: ")
		sb.WriteString(strings.TrimSuffix(b.config.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}

	return sb.String()
}

// DefaultRobots generates the default robots.txt for a site.
func DefaultRobots(siteURL string) string {
	return NewRobotsBuilder(RobotsConfig{SiteURL: siteURL}).Build()
}

// FilterRobots applies the stored robots.txt override: the stored text
// verbatim when non-empty, otherwise the upstream default unmodified.
// The text is opaque; no parsing or validation is performed.
func FilterRobots(stored, upstream string) string {
	if stored != "" {
		return stored
	}
	return upstream
}
