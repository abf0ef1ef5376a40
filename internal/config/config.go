// Package config provides configuration management for the marlin
// completion core. It handles loading and parsing of the YAML configuration
// file and validating completion settings at load time, so the completion
// core only ever sees already-validated values.
package config

import (
	"github.com/marlinshell/marlin/internal/completion"
)

// Config holds all configuration consumed by the completion core.
type Config struct {
	// LogLevel controls logging verbosity.
	LogLevel string `yaml:"logLevel"`

	// Completion configures matching and candidate sources.
	Completion CompletionConfig `yaml:"completion"`
}

// CompletionConfig is the completion section of the configuration file.
type CompletionConfig struct {
	// Algorithm selects the match algorithm: "prefix" or "fuzzy".
	Algorithm string `yaml:"algorithm"`

	// CaseSensitive disables case folding during matching.
	CaseSensitive bool `yaml:"caseSensitive"`

	// Positional requires matches to align with the start of candidates.
	Positional bool `yaml:"positional"`

	// External configures the PATH executable scan.
	External ExternalConfig `yaml:"external"`

	// LsColors enables LS_COLORS-based styling of path suggestions.
	LsColors bool `yaml:"lsColors"`
}

// ExternalConfig configures external executable discovery.
type ExternalConfig struct {
	// Enable turns the PATH scan on.
	Enable bool `yaml:"enable"`

	// MaxResults caps the number of external suggestions per query.
	MaxResults int `yaml:"maxResults"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Completion: CompletionConfig{
			Algorithm:     "prefix",
			CaseSensitive: true,
			Positional:    true,
			External: ExternalConfig{
				Enable:     true,
				MaxResults: 100,
			},
			LsColors: true,
		},
	}
}

// Options converts the completion section into a validated matching
// options snapshot. An unrecognized algorithm value is a configuration
// error (completion.ErrUnknownMatchAlgorithm).
func (c *CompletionConfig) Options() (completion.Options, error) {
	algorithm, err := completion.ParseMatchAlgorithm(c.Algorithm)
	if err != nil {
		return completion.Options{}, err
	}
	return completion.Options{
		CaseSensitive:  c.CaseSensitive,
		Positional:     c.Positional,
		MatchAlgorithm: algorithm,
	}, nil
}
