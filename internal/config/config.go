// Package config loads planeasy settings from defaults, an optional YAML file
// and PLANEASY_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before mapping them.
const EnvPrefix = "PLANEASY_"

// Config is the full application configuration.
type Config struct {
	Store   StoreConfig    `koanf:"store"`
	Notify  NotifyConfig   `koanf:"notify"`
	Log     logging.Config `koanf:"log"`
	Display DisplayConfig  `koanf:"display"`
}

// StoreConfig locates the plan database.
type StoreConfig struct {
	Path          string `koanf:"path"`
	Key           string `koanf:"key"`
	SkipMalformed bool   `koanf:"skip_malformed"`
}

// NotifyConfig selects the reminder scheduler.
type NotifyConfig struct {
	Mode string `koanf:"mode"`
}

// DisplayConfig controls how dates are bucketed and shown.
type DisplayConfig struct {
	// Timezone is an IANA name; empty or "Local" uses the system zone.
	Timezone string `koanf:"timezone"`
}

// HomeDir is ~/.planeasy, where the database and config file live by default.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".planeasy"), nil
}

// Load reads configuration. configPath may be empty, in which case
// PLANEASY_CONFIG and then ~/.planeasy/config.yaml are tried; a missing
// default file is not an error, but a missing explicit one is.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	explicit := configPath != ""
	if configPath == "" {
		configPath = os.Getenv(EnvPrefix + "CONFIG")
		explicit = configPath != ""
	}
	if configPath == "" {
		dir, err := HomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, "config.yaml")
	}

	content, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// PLANEASY_STORE_SKIP_MALFORMED -> store.skip_malformed
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps SECTION_FIELD_NAME to section.field_name, splitting on the
// first underscore only.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func applyDefaults(cfg *Config) error {
	if cfg.Store.Path == "" {
		dir, err := HomeDir()
		if err != nil {
			return err
		}
		cfg.Store.Path = filepath.Join(dir, "planeasy.db")
	}
	if cfg.Store.Key == "" {
		cfg.Store.Key = "plans"
	}
	if cfg.Notify.Mode == "" {
		cfg.Notify.Mode = "queue"
	}
	defaults := logging.NewDefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Format
	}
	return nil
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	switch c.Notify.Mode {
	case "queue", "log", "off":
	default:
		return fmt.Errorf("notify.mode must be one of queue, log, off; got %q", c.Notify.Mode)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("store.key must not be empty")
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves display.timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Display.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("display.timezone: %w", err)
	}
	return loc, nil
}
