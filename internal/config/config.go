// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SEOOG_DB_PATH" envDefault:"./data/seoog.db"`
	ServerHost string `env:"SEOOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SEOOG_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SEOOG_ENV" envDefault:"development"`
	LogLevel   string `env:"SEOOG_LOG_LEVEL" envDefault:"info"`

	// Site identity reported by the hosting CMS. Used for fallback values
	// and absolute URL construction; never stored in the settings table.
	SiteName        string `env:"SEOOG_SITE_NAME" envDefault:"Site"`
	SiteDescription string `env:"SEOOG_SITE_DESCRIPTION"`
	SiteURL         string `env:"SEOOG_SITE_URL" envDefault:"http://localhost:8080"`
	SiteLocale      string `env:"SEOOG_SITE_LOCALE" envDefault:"en_US"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.SiteURL = strings.TrimSuffix(cfg.SiteURL, "/")

	// Locale arrives in POSIX form (en_US); BCP 47 parsing wants hyphens.
	if _, err := language.Parse(strings.ReplaceAll(cfg.SiteLocale, "_", "-")); err != nil {
		return nil, fmt.Errorf("SEOOG_SITE_LOCALE %q is not a valid locale: %w", cfg.SiteLocale, err)
	}

	return cfg, nil
}
