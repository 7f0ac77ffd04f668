// Package config loads the arcade's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. Teacher-tunable game
// parameters live in the settings package, not here.
type Config struct {
	Store struct {
		Driver      string `yaml:"driver"` // "sqlite" or "postgres"
		Path        string `yaml:"path"`
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"store"`
	Redis struct {
		Addr        string `yaml:"addr"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		QuestionTTL string `yaml:"question_ttl"`
		Channel     string `yaml:"channel"`
	} `yaml:"redis"`
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Log struct {
		Mode  string `yaml:"mode"`
		File  string `yaml:"file"`
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
	English struct {
		Source string `yaml:"source"` // "template" or "llm"
	} `yaml:"english"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Store.Driver = "sqlite"
	cfg.Redis.QuestionTTL = "36h"
	cfg.Redis.Channel = "arcade:leaderboard"
	cfg.Server.Addr = ":8080"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Log.Mode = "dev"
	cfg.English.Source = "template"
	return cfg
}

// Load reads YAML config from path over the defaults and applies env
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite":
	case "postgres":
		if c.Store.PostgresURL == "" {
			return errors.New("store.postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.English.Source {
	case "template", "llm":
	default:
		return fmt.Errorf("unknown english source %q", c.English.Source)
	}
	return nil
}

// RedisEnabled reports whether a Redis address is configured.
func (c Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ARCADE_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("ARCADE_POSTGRES_URL"); v != "" {
		cfg.Store.PostgresURL = v
		cfg.Store.Driver = "postgres"
	}
	if v := os.Getenv("ARCADE_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("ARCADE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("ARCADE_HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ARCADE_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv("ARCADE_ENGLISH_SOURCE"); v != "" {
		cfg.English.Source = strings.ToLower(v)
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
