// Package config provides reading and writing of vers configuration.
// Supports both global (~/.vers/config.yaml) and local (.vers/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.vers/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .vers/config.yaml
	ScopeLocal
)

// Author represents the author metadata stored in the repository config.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxID      *int   `yaml:"max_id,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxID      = 512
	DefaultMaxContent = 100 * 1024 * 1024 // 100 MB
)

// Validation bounds for configuration values.
const (
	MinMaxID      = 1
	MaxMaxID      = 65536 // 64 KB - generous upper bound for identifiers
	MinMaxContent = 1
	MaxMaxContent = 10 * 1024 * 1024 * 1024 // 10 GB
)

// Config contains configuration for vers.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxID != nil {
		v := *c.Limits.MaxID
		if v < MinMaxID || v > MaxMaxID {
			return fmt.Errorf("%w: max_id must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxID, MaxMaxID, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	return nil
}

// MaxID returns the configured identifier limit, or the default.
func (c *Config) MaxID() int {
	if c.Limits.MaxID != nil {
		return *c.Limits.MaxID
	}
	return DefaultMaxID
}

// MaxContent returns the configured content size limit, or the default.
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent != nil {
		return *c.Limits.MaxContent
	}
	return DefaultMaxContent
}

// globalPath returns the path of the global config file.
func globalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigPath, err)
	}
	return filepath.Join(home, ".vers", "config.yaml"), nil
}

// localPath returns the path of the local config file, relative to the
// current directory.
func localPath() string {
	return filepath.Join(".vers", "config.yaml")
}

// Load reads configuration, preferring local over global. A missing config
// file is not an error: defaults apply.
func Load() (*Config, error) {
	if cfg, err := loadFile(localPath(), ScopeLocal); err == nil {
		return cfg, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	gp, err := globalPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFile(gp, ScopeGlobal)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: gp, scope: ScopeGlobal}, nil
	}
	return cfg, err
}

// LoadScope reads configuration from a specific scope, creating an empty
// config bound to that scope's path when the file does not exist yet.
func LoadScope(scope Scope) (*Config, error) {
	path := localPath()
	if scope == ScopeGlobal {
		var err error
		if path, err = globalPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := loadFile(path, scope)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	return cfg, err
}

func loadFile(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	cfg.scope = scope
	return &cfg, nil
}

// Save writes the config back to the file it was loaded from, creating the
// containing directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		return ErrNoConfigPath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Path returns the file this config is bound to.
func (c *Config) Path() string {
	return c.path
}

// Scope reports which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Get returns the value of a config key as a display string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "limits.max_id":
		return strconv.Itoa(c.MaxID()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set assigns a config key from a string value. The caller must Save.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
		return nil
	case "author.email":
		c.Author.Email = value
		return nil
	case "limits.max_id":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		c.Limits.MaxID = &n
		return c.Validate()
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		c.Limits.MaxContent = &n
		return c.Validate()
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Keys lists the known config keys for help output.
func Keys() []string {
	return []string{"author.name", "author.email", "limits.max_id", "limits.max_content"}
}
