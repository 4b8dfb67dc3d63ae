// Package config loads knnchat settings from a YAML file, a .env file and
// KNNCHAT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "knnchat.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KNNCHAT_"

// CorpusConfig locates the interaction corpus.
type CorpusConfig struct {
	Path    string   `yaml:"path"`
	Include []string `yaml:"include"`
}

// IndexConfig controls index maintenance.
type IndexConfig struct {
	// RebuildOnLearn recomputes every vector after a learned interaction
	// instead of leaving older vectors stale.
	RebuildOnLearn bool `yaml:"rebuild_on_learn"`
}

// MatchConfig holds query defaults.
type MatchConfig struct {
	MinScore   float64 `yaml:"min_score"`
	Top        int     `yaml:"top"`
	TokenLimit int     `yaml:"token_limit"`
}

// ValidateConfig holds corpus validation settings.
type ValidateConfig struct {
	ResponseTokenLimit int `yaml:"response_token_limit"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Index    IndexConfig    `yaml:"index"`
	Match    MatchConfig    `yaml:"match"`
	Validate ValidateConfig `yaml:"validate"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads a config from path, then applies .env and environment
// overrides. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

func loadFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	// #nosec G306 -- config holds no secrets
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return defaultConfig()
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Corpus: CorpusConfig{
			Path:    "corpus",
			Include: []string{"**/*.yaml", "**/*.yml"},
		},
		Match:    MatchConfig{Top: 1},
		Validate: ValidateConfig{ResponseTokenLimit: 200},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "corpus"
	}
	if len(cfg.Corpus.Include) == 0 {
		cfg.Corpus.Include = []string{"**/*.yaml", "**/*.yml"}
	}
	if cfg.Match.Top <= 0 {
		cfg.Match.Top = 1
	}
	if cfg.Match.MinScore < 0 {
		cfg.Match.MinScore = 0
	}
	if cfg.Validate.ResponseTokenLimit <= 0 {
		cfg.Validate.ResponseTokenLimit = 200
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// applyEnv overrides fields from KNNCHAT_* variables.
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "CORPUS"); ok && v != "" {
		cfg.Corpus.Path = v
	}
	if v, ok := lookup(EnvPrefix + "REBUILD_ON_LEARN"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sREBUILD_ON_LEARN: %w", EnvPrefix, err)
		}
		cfg.Index.RebuildOnLearn = b
	}
	if v, ok := lookup(EnvPrefix + "MIN_SCORE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMIN_SCORE: %w", EnvPrefix, err)
		}
		cfg.Match.MinScore = f
	}
	if v, ok := lookup(EnvPrefix + "TOKEN_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sTOKEN_LIMIT: %w", EnvPrefix, err)
		}
		cfg.Match.TokenLimit = n
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	return nil
}
