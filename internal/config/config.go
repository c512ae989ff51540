// Package config defines the stadium-fixtures configuration and how it is loaded.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Jerusalem must resolve on hosts without a zoneinfo database

	"github.com/robfig/cron/v3"

	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

// Fixture sources.
const (
	SourceAPI         = "api"
	SourceStadiumPage = "stadium-page"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	Backend  Backend  `koanf:"backend"`
	Fixtures Fixtures `koanf:"fixtures"`
	Server   Server   `koanf:"server"`
}

// Backend configures the JSON API the fixtures come from.
type Backend struct {
	BaseURL      string `koanf:"base_url"`
	StadiumPath  string `koanf:"stadium_path"`
	FixturesPath string `koanf:"fixtures_path"`

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// Fixtures configures where fixtures are read from and which are kept.
type Fixtures struct {
	// Source is "api" or "stadium-page".
	Source         string `koanf:"source"`
	StadiumPageURL string `koanf:"stadium_page_url"`

	// Timezone is the zone stadium page dates are written in.
	Timezone string `koanf:"timezone"`

	// HomeTeams keeps only fixtures whose home team matches one of these names.
	// Empty keeps every fixture.
	HomeTeams []string `koanf:"home_teams"`
}

// Server configures the HTTP server.
type Server struct {
	Addr        string `koanf:"addr"`
	RefreshCron string `koanf:"refresh_cron"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Backend: Backend{
			BaseURL:      "http://localhost:8000",
			StadiumPath:  "/api/stadium/sammyofer",
			FixturesPath: "/api/fotmob/sammyofer",
		},
		Fixtures: Fixtures{
			Source:         SourceAPI,
			StadiumPageURL: "https://www.haifa-stadium.co.il/%D7%9C%D7%95%D7%97_%D7%94%D7%9E%D7%A9%D7%97%D7%A7%D7%99%D7%9D_%D7%91%D7%90%D7%A6%D7%98%D7%93%D7%99%D7%95%D7%9F/",
			Timezone:       "Asia/Jerusalem",
			HomeTeams:      []string{},
		},
		Server: Server{
			Addr:        ":8080",
			RefreshCron: "*/30 * * * *",
		},
	}
}

// Validate checks the configuration and returns an error wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Fixtures.Source {
	case SourceAPI:
		if err := validateURL("backend.base_url", c.Backend.BaseURL); err != nil {
			return err
		}
	case SourceStadiumPage:
		if err := validateURL("fixtures.stadium_page_url", c.Fixtures.StadiumPageURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: fixtures.source must be %q or %q, got %q",
			ErrInvalidConfig, SourceAPI, SourceStadiumPage, c.Fixtures.Source)
	}

	if c.Backend.Timeout < 0 {
		return fmt.Errorf("%w: backend.timeout must not be negative", ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: fixtures.timezone: %v", ErrInvalidConfig, err)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	if c.Server.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.Server.RefreshCron); err != nil {
			return fmt.Errorf("%w: server.refresh_cron: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}

// Location loads the configured fixtures timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Fixtures.Timezone)
}

// Level returns the parsed log level, INFO when unset or invalid.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", ErrInvalidConfig, key, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %s has no host", ErrInvalidConfig, key)
	}
	return nil
}
