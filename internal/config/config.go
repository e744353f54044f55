// Package config loads reuseify settings from .reuseify.yaml and
// REUSEIFY_* environment variables. Command-line flags override both.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// DefaultOutput is the artifact filename shared by both pipelines.
const DefaultOutput = "reuse_annotate_authors.json"

// ConfigName is the config file basename searched in the working
// directory (extension .yaml).
const ConfigName = ".reuseify"

// Config holds file/env-sourced defaults for the CLI.
type Config struct {
	// Output is the artifact path written by get-authors and read by
	// annotate.
	Output string `mapstructure:"output" yaml:"output"`

	// IncludeNotInGit includes files with no git history in the
	// artifact with an empty author list.
	IncludeNotInGit bool `mapstructure:"include_not_in_git" yaml:"include_not_in_git"`

	// Exclude holds extra glob patterns applied on top of the built-in
	// exclusion set.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// DefaultContributors substitutes for files with no git history
	// during annotation.
	DefaultContributors []string `mapstructure:"default_contributors" yaml:"default_contributors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
	}
}

// Load reads .reuseify.yaml from dir, layered over defaults, with
// REUSEIFY_* environment variables taking precedence over the file.
// A missing config file is not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("REUSEIFY")
	v.AutomaticEnv()

	v.SetDefault("output", DefaultOutput)
	v.SetDefault("include_not_in_git", false)
	v.SetDefault("exclude", []string{})
	v.SetDefault("default_contributors", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
