package api

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from a YAML file.
type Config struct {
	ListenAddr    string `yaml:"listen_addr" validate:"required"`
	LogLevel      string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	DataDir       string `yaml:"data_dir" validate:"required"`
	CompressSaves bool   `yaml:"compress_saves"`
	// DatabaseURL switches persistence to PostgreSQL when set.
	DatabaseURL string `yaml:"database_url"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8470",
		LogLevel:   "info",
		DataDir:    "./forces",
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
