package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/marlinshell/marlin/internal/core"
)

// Loader handles loading and parsing of marlin configuration files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// LoadFromFile loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromBytes(content)
}

// LoadFromBytes parses configuration from YAML content. Settings absent
// from the content keep their default values. Completion settings are
// validated here so that bad values fail at load time, not at query time.
func (l *Loader) LoadFromBytes(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, err := cfg.Completion.Options(); err != nil {
		return nil, fmt.Errorf("invalid completion configuration: %w", err)
	}

	l.logger.Debug(
		"loaded configuration",
		zap.String("algorithm", cfg.Completion.Algorithm),
		zap.Bool("caseSensitive", cfg.Completion.CaseSensitive),
		zap.Bool("externalCompletion", cfg.Completion.External.Enable),
	)
	return cfg, nil
}

// LoadDefaultConfigPath loads configuration from the default path
// (~/.marlin/config.yaml).
func (l *Loader) LoadDefaultConfigPath() (*Config, error) {
	return l.LoadFromFile(core.ConfigFile())
}
