package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "STADIUM_FIXTURES_"

	// EnvConfigFile names the YAML file to load when no path is passed to Load
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, an optional YAML file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. YAML file at path, or at $STADIUM_FIXTURES_CONFIG when path is empty
//  3. env (prefix STADIUM_FIXTURES_, "__" separates nested keys)
//
// STADIUM_FIXTURES_BACKEND__BASE_URL sets backend.base_url, for example.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.ProviderWithValue(EnvPrefix, ".", envValue)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: reading environment: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envValue maps STADIUM_FIXTURES_SERVER__REFRESH_CRON to server.refresh_cron.
// List values are comma separated. The file path variable itself is not a config key.
func envValue(key, value string) (string, interface{}) {
	if key == EnvConfigFile {
		return "", nil
	}
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "__", ".")

	if key == "fixtures.home_teams" {
		teams := make([]string, 0)
		for _, team := range strings.Split(value, ",") {
			if team = strings.TrimSpace(team); team != "" {
				teams = append(teams, team)
			}
		}
		return key, teams
	}
	return key, value
}
