package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/neboloop/nebo-contacts/internal/defaults"
)

// Config is the server configuration. Values are layered: embedded
// defaults, then <data_dir>/config.yaml, then an explicit --config file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Script   ScriptConfig   `yaml:"script"`
	Contacts ContactsConfig `yaml:"contacts"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
	HTTPAddr  string `yaml:"http_addr"`  // Listen address for `serve --http` when the flag has no value
	AuthToken string `yaml:"auth_token"` // Bearer token for the HTTP transport (empty = no auth)
}

// ScriptConfig controls how automation scripts are executed
type ScriptConfig struct {
	Interpreter    string        `yaml:"interpreter"`
	Args           []string      `yaml:"args"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxOutputBytes int64         `yaml:"max_output_bytes"`
}

type ContactsConfig struct {
	AppName     string `yaml:"app_name"`
	ListLimit   int    `yaml:"list_limit"`
	SearchLimit int    `yaml:"search_limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:     "nebo-contacts",
			Version:  "1.0.0",
			HTTPAddr: "127.0.0.1:27896",
		},
		Script: ScriptConfig{
			Interpreter:    "osascript",
			Args:           []string{"-l", "JavaScript", "-e"},
			Timeout:        30 * time.Second,
			MaxOutputBytes: 50 << 20,
		},
		Contacts: ContactsConfig{
			AppName:     "Contacts",
			ListLimit:   100,
			SearchLimit: 50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromBytes overlays YAML bytes on the defaults with environment variable expansion
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the effective configuration. embedded is the compiled-in
// YAML; path, when non-empty, must exist. A missing data directory config
// is not an error.
func Load(embedded []byte, path string) (*Config, error) {
	cfg, err := LoadFromBytes(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded config: %w", err)
	}

	if userPath, err := defaults.ConfigPath(); err == nil {
		data, err := os.ReadFile(userPath)
		switch {
		case err == nil:
			if err := cfg.merge(data); err != nil {
				return nil, fmt.Errorf("%s: %w", userPath, err)
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		if err != nil {
			return nil, err
		}
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge decodes data over the current values, so keys absent from data keep
// what an earlier layer set.
func (c *Config) merge(data []byte) error {
	expanded := os.ExpandEnv(string(data))
	if strings.TrimSpace(expanded) == "" {
		return nil
	}
	return yaml.Unmarshal([]byte(expanded), c)
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Script.Interpreter == "" {
		errs = append(errs, errors.New("script.interpreter must not be empty"))
	}
	if c.Script.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("script.timeout must be positive, got %s", c.Script.Timeout))
	}
	if c.Script.MaxOutputBytes <= 0 {
		errs = append(errs, fmt.Errorf("script.max_output_bytes must be positive, got %d", c.Script.MaxOutputBytes))
	}
	if c.Contacts.ListLimit <= 0 {
		errs = append(errs, fmt.Errorf("contacts.list_limit must be positive, got %d", c.Contacts.ListLimit))
	}
	if c.Contacts.SearchLimit <= 0 {
		errs = append(errs, fmt.Errorf("contacts.search_limit must be positive, got %d", c.Contacts.SearchLimit))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
