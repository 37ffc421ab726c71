// Package config provides configuration management for quizlint using Viper
// for flexible loading from files, environment variables, and command-line
// flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the QUIZLINT_ prefix, and validation with path-traversal
// checks. It covers the corpus root directories, topic normalization rules,
// the framework vocabulary denylist, watch debouncing, and the serve-mode
// listener.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quizkit/quizlint/internal/corpus"
)

type Config struct {
	Roots     RootsConfig     `yaml:"roots"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Examples  ExamplesConfig  `yaml:"examples"`
	Watch     WatchConfig     `yaml:"watch"`
	Server    ServerConfig    `yaml:"server"`
}

// RootsConfig names the three corpus root directories.
type RootsConfig struct {
	Questions string `yaml:"questions"`
	Answers   string `yaml:"answers"`
	Examples  string `yaml:"examples"`
}

// NormalizeConfig mirrors corpus.NormalizeOptions in the config file. The
// rules are configurable because the corpus convention (snake_case stems) is
// not enforced at the filesystem level.
type NormalizeConfig struct {
	Lowercase          bool `yaml:"lowercase"`
	Trim               bool `yaml:"trim"`
	CollapseSeparators bool `yaml:"collapse_separators"`
}

// ExamplesConfig configures the example-script checker.
type ExamplesConfig struct {
	// Denylist is the framework vocabulary forbidden in dependency-free
	// snippets
	Denylist []string `yaml:"denylist"`
}

type WatchConfig struct {
	// DebounceMs groups rapid file changes before re-checking
	DebounceMs int `yaml:"debounce_ms"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultDenylist is the framework vocabulary used when the config file does
// not supply its own: the model-layer base classes, controller/view layers,
// and the routing and association DSL calls characteristic of Rails code.
func DefaultDenylist() []string {
	return []string{
		"ActiveRecord",
		"ActiveModel",
		"ActiveSupport",
		"ActiveJob",
		"ActionController",
		"ActionView",
		"ActionMailer",
		"ApplicationRecord",
		"ApplicationController",
		"has_many",
		"has_one",
		"belongs_to",
		"before_action",
		"validates",
	}
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults for roots only if not explicitly set
	if config.Roots.Questions == "" {
		config.Roots.Questions = "questions"
	}
	if config.Roots.Answers == "" {
		config.Roots.Answers = "answers"
	}
	if config.Roots.Examples == "" {
		config.Roots.Examples = "examples"
	}

	// Handle roots set via viper or bound flags; empty values keep defaults
	if v := viper.GetString("roots.questions"); v != "" {
		config.Roots.Questions = v
	}
	if v := viper.GetString("roots.answers"); v != "" {
		config.Roots.Answers = v
	}
	if v := viper.GetString("roots.examples"); v != "" {
		config.Roots.Examples = v
	}

	// Normalization defaults to all rules on; honor explicit false values
	if viper.IsSet("normalize.lowercase") {
		config.Normalize.Lowercase = viper.GetBool("normalize.lowercase")
	} else {
		config.Normalize.Lowercase = true
	}
	if viper.IsSet("normalize.trim") {
		config.Normalize.Trim = viper.GetBool("normalize.trim")
	} else {
		config.Normalize.Trim = true
	}
	if viper.IsSet("normalize.collapse_separators") {
		config.Normalize.CollapseSeparators = viper.GetBool("normalize.collapse_separators")
	} else {
		config.Normalize.CollapseSeparators = true
	}

	// Handle denylist set via viper (workaround for viper slice handling)
	if viper.IsSet("examples.denylist") {
		if denylist := viper.GetStringSlice("examples.denylist"); len(denylist) > 0 {
			config.Examples.Denylist = denylist
		}
	}
	if len(config.Examples.Denylist) == 0 {
		config.Examples.Denylist = DefaultDenylist()
	}

	// Same workaround for the snake_case watch and server keys
	if viper.IsSet("watch.debounce_ms") {
		config.Watch.DebounceMs = viper.GetInt("watch.debounce_ms")
	}
	if v := viper.GetString("server.host"); v != "" {
		config.Server.Host = v
	}
	if v := viper.GetInt("server.port"); v != 0 {
		config.Server.Port = v
	}

	if config.Watch.DebounceMs == 0 {
		config.Watch.DebounceMs = 300
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8791
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// NormalizeOptions converts the config section to the domain options.
func (c *Config) NormalizeOptions() corpus.NormalizeOptions {
	return corpus.NormalizeOptions{
		Lowercase:          c.Normalize.Lowercase,
		Trim:               c.Normalize.Trim,
		CollapseSeparators: c.Normalize.CollapseSeparators,
	}
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	for _, root := range []struct {
		name string
		path string
	}{
		{"roots.questions", config.Roots.Questions},
		{"roots.answers", config.Roots.Answers},
		{"roots.examples", config.Roots.Examples},
	} {
		if err := validatePath(root.path); err != nil {
			return fmt.Errorf("%s: %w", root.name, err)
		}
	}

	if config.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}

	if config.Server.Port < 0 || config.Server.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Server.Port)
	}

	if config.Server.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Server.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	for _, token := range config.Examples.Denylist {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("examples.denylist contains an empty token")
		}
	}

	return nil
}

// validatePath validates a root directory path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
