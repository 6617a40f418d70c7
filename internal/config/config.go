package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Agent   AgentConfig   `mapstructure:"agent"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AgentConfig mirrors the host-facing launch settings. PythonExecutable
// stays a pointer so an explicitly configured empty value is
// distinguishable from an absent key.
type AgentConfig struct {
	PythonExecutable *string           `mapstructure:"python_executable"`
	Environment      map[string]string `mapstructure:"environment"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	LogFile string `mapstructure:"log_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// Settings converts the agent section into per-launch settings.
func (c *Config) Settings() *core.Settings {
	return &core.Settings{
		PythonExecutable: c.Agent.PythonExecutable,
		Environment:      c.Agent.Environment,
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	// Set config name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	// Add config paths
	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".config", "serenactl"))
	}
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults()

	// Environment variable overrides
	viper.SetEnvPrefix("SERENACTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Viper lowercases map keys during Unmarshal, but environment
	// variable names must reach the launched process verbatim. Re-decode
	// the environment table case-sensitively and overlay it.
	if file := viper.ConfigFileUsed(); file != "" {
		env, err := decodeEnvironment(file)
		if err != nil {
			return nil, err
		}
		if env != nil {
			cfg.Agent.Environment = env
		}
	}

	// Expand paths
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)
	if cfg.Agent.PythonExecutable != nil && *cfg.Agent.PythonExecutable != "" {
		expanded := expandPath(*cfg.Agent.PythonExecutable)
		cfg.Agent.PythonExecutable = &expanded
	}

	return &cfg, nil
}

// decodeEnvironment reads the agent.environment table from the config
// file with key case preserved.
func decodeEnvironment(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var doc struct {
		Agent struct {
			Environment map[string]string `toml:"environment"`
		} `toml:"agent"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return doc.Agent.Environment, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}

	viper.SetDefault("paths.log_file", filepath.Join(homeDir, ".local", "share", "serenactl", "serenactl.log"))

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.color", "auto")

	// agent.python_executable deliberately has no default: an absent key
	// means auto-detection.
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand ~
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// Expand environment variables
	path = os.ExpandEnv(path)

	return path
}
