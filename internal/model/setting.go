// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the data types shared across the application.
package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Setting keys
const (
	SettingOGSiteName            = "og_site_name"
	SettingOGDefaultImage        = "og_default_image"
	SettingOGDefaultType         = "og_default_type"
	SettingOGTwitterCard         = "og_twitter_card"
	SettingOGTwitterSite         = "og_twitter_site"
	SettingSEODefaultDescription = "seo_default_description"
	SettingSEOEnableJSONLD       = "seo_enable_jsonld"
	SettingSitemapEnable         = "sitemap_enable"
	SettingSitemapPostTypes      = "sitemap_post_types"
	SettingSitemapExcludeIDs     = "sitemap_exclude_ids"
	SettingRobotsTxt             = "robots_txt"
	SettingCleanupOnUninstall    = "cleanup_on_uninstall"
)

// Open Graph types accepted by the og_default_type setting.
const (
	OGTypeArticle = "article"
	OGTypeWebsite = "website"
)

// Twitter card types accepted by the og_twitter_card setting.
const (
	TwitterCardSummary           = "summary"
	TwitterCardSummaryLargeImage = "summary_large_image"
)

// Setting represents one row of the settings table.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SiteInfo carries the site identity reported by the hosting CMS.
type SiteInfo struct {
	Name        string
	Description string
	URL         string
	Locale      string
}

// DefaultSettings returns the full default value set for a site.
// List values are JSON-encoded, matching how the settings store
// serializes them. The robots_txt default is supplied by the caller
// because its construction lives with the robots builder.
func DefaultSettings(site SiteInfo, robotsTxt string) map[string]string {
	return map[string]string{
		SettingOGSiteName:            site.Name,
		SettingOGDefaultImage:        "",
		SettingOGDefaultType:         OGTypeArticle,
		SettingOGTwitterCard:         TwitterCardSummaryLargeImage,
		SettingOGTwitterSite:         "",
		SettingSEODefaultDescription: site.Description,
		SettingSEOEnableJSONLD:       "1",
		SettingSitemapEnable:         "1",
		SettingSitemapPostTypes:      `["post","page"]`,
		SettingSitemapExcludeIDs:     `[]`,
		SettingRobotsTxt:             robotsTxt,
		SettingCleanupOnUninstall:    "0",
	}
}

// Settings is a typed snapshot of the settings table.
type Settings struct {
	OGSiteName            string
	OGDefaultImage        string
	OGDefaultType         string
	OGTwitterCard         string
	OGTwitterSite         string
	SEODefaultDescription string
	SEOEnableJSONLD       bool
	SitemapEnable         bool
	SitemapPostTypes      []string
	SitemapExcludeIDs     []int64
	RobotsTxt             string
	CleanupOnUninstall    bool
}

// ParseSettings builds a typed snapshot from raw key/value pairs.
// Malformed list values degrade to their defaults rather than failing,
// so a corrupted row can never break page rendering.
func ParseSettings(raw map[string]string) Settings {
	s := Settings{
		OGSiteName:            raw[SettingOGSiteName],
		OGDefaultImage:        raw[SettingOGDefaultImage],
		OGDefaultType:         raw[SettingOGDefaultType],
		OGTwitterCard:         raw[SettingOGTwitterCard],
		OGTwitterSite:         raw[SettingOGTwitterSite],
		SEODefaultDescription: raw[SettingSEODefaultDescription],
		SEOEnableJSONLD:       raw[SettingSEOEnableJSONLD] == "1",
		SitemapEnable:         raw[SettingSitemapEnable] == "1",
		RobotsTxt:             raw[SettingRobotsTxt],
		CleanupOnUninstall:    raw[SettingCleanupOnUninstall] == "1",
	}

	s.SitemapPostTypes = DecodeStringList(raw[SettingSitemapPostTypes])
	if s.SitemapPostTypes == nil {
		s.SitemapPostTypes = []string{ContentTypePost, ContentTypePage}
	}
	s.SitemapExcludeIDs = DecodeIntList(raw[SettingSitemapExcludeIDs])

	return s
}

// DecodeStringList decodes a JSON-encoded list of strings.
// Returns nil for empty or malformed input.
func DecodeStringList(value string) []string {
	if value == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil
	}
	return list
}

// DecodeIntList decodes a JSON-encoded list of integers.
// Returns nil for empty or malformed input.
func DecodeIntList(value string) []int64 {
	if value == "" {
		return nil
	}
	var list []int64
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil
	}
	return list
}

// EncodeStringList encodes a list of strings for storage.
func EncodeStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}

// EncodeIntList encodes a list of integers for storage.
func EncodeIntList(list []int64) string {
	if list == nil {
		list = []int64{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}

// BoolSetting converts a Go bool to its stored "1"/"0" form.
func BoolSetting(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ValidateSetting reports whether a value is acceptable for the given key.
// Only the enum and boolean keys are constrained; everything else is opaque text.
func ValidateSetting(key, value string) bool {
	switch key {
	case SettingOGDefaultType:
		return value == OGTypeArticle || value == OGTypeWebsite
	case SettingOGTwitterCard:
		return value == TwitterCardSummary || value == TwitterCardSummaryLargeImage
	case SettingSEOEnableJSONLD, SettingSitemapEnable, SettingCleanupOnUninstall:
		return value == "0" || value == "1"
	case SettingSitemapPostTypes:
		return value == "" || DecodeStringList(value) != nil
	case SettingSitemapExcludeIDs:
		return value == "" || DecodeIntList(value) != nil
	default:
		return true
	}
}

// KnownSettingKeys lists every recognized setting key.
var KnownSettingKeys = []string{
	SettingOGSiteName,
	SettingOGDefaultImage,
	SettingOGDefaultType,
	SettingOGTwitterCard,
	SettingOGTwitterSite,
	SettingSEODefaultDescription,
	SettingSEOEnableJSONLD,
	SettingSitemapEnable,
	SettingSitemapPostTypes,
	SettingSitemapExcludeIDs,
	SettingRobotsTxt,
	SettingCleanupOnUninstall,
}

// IsKnownSettingKey checks membership in KnownSettingKeys.
func IsKnownSettingKey(key string) bool {
	for _, k := range KnownSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// FormatID renders a content identifier for URLs and log attributes.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
