package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/juntos-app/juntos/internal/model"
)

// FileName is the project config file at the repo root.
const FileName = "juntos.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// ErrNotLinked is returned when an operation needs both members.
var ErrNotLinked = errors.New("couple is not linked yet")

// Config represents juntos.yaml.
type Config struct {
	Couple   model.Couple   `yaml:"couple"`
	Currency CurrencyConfig `yaml:"currency"`
	Storage  StorageConfig  `yaml:"storage"`
	Git      GitConfig      `yaml:"git"`
	Log      LogConfig      `yaml:"log"`
}

// CurrencyConfig controls how amounts are shown.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
}

// StorageConfig selects where expenses live.
type StorageConfig struct {
	Backend string `yaml:"backend"`        // csv | sqlite
	Path    string `yaml:"path,omitempty"` // sqlite file, relative to the repo root
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a juntos.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for a new couple whose first member is known.
func Default(coupleID string, first model.Member) *Config {
	return &Config{
		Couple: model.Couple{
			ID:      coupleID,
			MemberA: first,
		},
		Currency: CurrencyConfig{Symbol: "$"},
		Storage:  StorageConfig{Backend: BackendCSV},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Juntos",
			AuthorEmail: "juntos@localhost",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks the fields the commands rely on.
func (c *Config) Validate() error {
	var problems []string
	if c.Couple.ID == "" {
		problems = append(problems, "couple.id is required")
	}
	if c.Couple.MemberA.IsZero() {
		problems = append(problems, "couple.member_a.id is required")
	}
	if !c.Couple.MemberB.IsZero() && c.Couple.MemberB.ID == c.Couple.MemberA.ID {
		problems = append(problems, fmt.Sprintf("couple members must be distinct, both are %q", c.Couple.MemberA.ID))
	}
	switch c.Storage.Backend {
	case BackendCSV:
	case BackendSQLite:
		if c.Storage.Path == "" {
			problems = append(problems, "storage.path is required for the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage backend %q", c.Storage.Backend))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// RequireLinked returns ErrNotLinked until the second member has joined.
func (c *Config) RequireLinked() error {
	if !c.Couple.Linked() {
		return ErrNotLinked
	}
	return nil
}

// ApplyEnv loads <repoRoot>/.env when present and applies JUNTOS_* overrides.
// Variables already set in the process environment win over the file.
func ApplyEnv(repoRoot string, cfg *Config) error {
	envPath := filepath.Join(repoRoot, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	if v := os.Getenv("JUNTOS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("JUNTOS_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("JUNTOS_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	return nil
}
