// ABOUTME: Configuration loading and parsing for feedback-board
// ABOUTME: Supports YAML or TOML files with environment variable expansion

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultSecretKey is used when no secret is configured anywhere. Fine for
// local development, terrible for anything else.
const DefaultSecretKey = "Secret-What?"

// Config represents the complete feedback-board configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Auth     AuthConfig     `yaml:"auth" toml:"auth"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr" toml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
	// EchoQueries enables debug logging of every executed SQL statement
	EchoQueries bool `yaml:"echo_queries" toml:"echo_queries"`
}

// AuthConfig holds session signing configuration
type AuthConfig struct {
	SecretKey string `yaml:"secret_key" toml:"secret_key"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// DefaultPath returns the path to the config file.
// Priority: FEEDBACK_CONFIG env var > XDG_CONFIG_HOME/feedback-board/config.yaml
// > ~/.config/feedback-board/config.yaml
func DefaultPath() string {
	if envPath := os.Getenv("FEEDBACK_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "feedback-board", "config.yaml")
}

// Load reads a configuration file from the given path and returns a parsed
// Config. The format is chosen by extension: .toml is parsed as TOML,
// anything else as YAML. Environment variables in the format ${VAR_NAME}
// are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in the secret key from the environment or the
// development fallback when the config file leaves it empty.
func (c *Config) applyDefaults() {
	if c.Auth.SecretKey == "" {
		c.Auth.SecretKey = os.Getenv("SECRET_KEY")
	}
	if c.Auth.SecretKey == "" {
		c.Auth.SecretKey = DefaultSecretKey
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment
// variable values. If the environment variable is not set, it is replaced with
// an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}
