package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/example/roster/internal/core/precedence"
	"github.com/example/roster/internal/core/roster"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1.0"

// Config represents the roster configuration. File values are read from
// .roster/config.json; ROSTER_* environment variables override them.
type Config struct {
	Version       string `json:"version"`
	Network       string `json:"network,omitempty" env:"ROSTER_NETWORK"`               // default network for commands
	DefaultPrefix string `json:"default_prefix,omitempty" env:"ROSTER_DEFAULT_PREFIX"` // table for networks without PREFIX
	Compare       string `json:"compare,omitempty" env:"ROSTER_COMPARE"`               // "fold" or "collate"
	Locale        string `json:"locale,omitempty" env:"ROSTER_LOCALE"`                 // BCP 47 tag for "collate"
	RankBy        string `json:"rank_by,omitempty" env:"ROSTER_RANK_BY"`               // "first" or "highest"
	DBPath        string `json:"db_path,omitempty" env:"ROSTER_DB_PATH"`
	LogLevel      string `json:"log_level,omitempty" env:"ROSTER_LOG_LEVEL"` // debug, info, warn, error
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:       CurrentVersion,
		DefaultPrefix: precedence.Default().String(),
		Compare:       roster.CompareFold,
		RankBy:        roster.RankFirst.String(),
		LogLevel:      "warn",
	}
}

// Load reads the config in dir, falls back to defaults when the file is
// missing, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}
	cfg.fillDefaults()

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv loads overrides from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads .roster/config.json from the specified directory.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".roster", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	rosterDir := filepath.Join(dir, ".roster")
	if err := os.MkdirAll(rosterDir, 0755); err != nil {
		return fmt.Errorf("failed to create .roster dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(rosterDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// FallbackTable parses DefaultPrefix. An empty value yields the RFC 2812 table.
func (c *Config) FallbackTable() (precedence.Table, error) {
	if c.DefaultPrefix == "" {
		return precedence.Default(), nil
	}
	table, err := precedence.ParsePrefix(c.DefaultPrefix)
	if err != nil {
		return nil, fmt.Errorf("invalid default_prefix: %w", err)
	}
	return table, nil
}

// SortOptions resolves Compare, Locale and RankBy into roster options.
func (c *Config) SortOptions() ([]roster.Option, error) {
	comparer, err := roster.NewComparer(c.Compare, c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid compare setting: %w", err)
	}
	policy, err := roster.ParseRankPolicy(c.RankBy)
	if err != nil {
		return nil, fmt.Errorf("invalid rank_by setting: %w", err)
	}
	return []roster.Option{roster.WithComparer(comparer), roster.WithRankBy(policy)}, nil
}

// Validate checks every setting that is parsed later.
func (c *Config) Validate() error {
	if _, err := c.FallbackTable(); err != nil {
		return err
	}
	_, err := c.SortOptions()
	return err
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.DefaultPrefix == "" {
		c.DefaultPrefix = d.DefaultPrefix
	}
	if c.Compare == "" {
		c.Compare = d.Compare
	}
	if c.RankBy == "" {
		c.RankBy = d.RankBy
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}
