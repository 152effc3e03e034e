// Package config loads the pipeline configuration: engine settings,
// logging, declared imaging capabilities, and the ordered list of pipeline
// steps to run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrBadConcurrency = errors.New("concurrency must be >= 0")
	ErrStepAction     = errors.New("every pipeline step needs an action name")
)

// Config is the full pipeline configuration.
type Config struct {
	// Concurrency bounds the engine's worker pool. Zero selects the
	// available hardware parallelism.
	Concurrency int `yaml:"concurrency"`

	// Logging configures the process logger.
	Logging Logging `yaml:"logging"`

	// Capabilities lists the imaging transforms this pipeline may use.
	// Empty means all available transforms.
	Capabilities []string `yaml:"capabilities"`

	// Pipeline is the ordered list of actions to apply to each batch.
	Pipeline []Step `yaml:"pipeline"`
}

// Logging configures the process logger.
type Logging struct {
	// Level is a zerolog level name; invalid values fall back to info.
	Level string `yaml:"level"`
}

// Step is one pipeline action invocation.
type Step struct {
	// Action is the registered action name.
	Action string `yaml:"action"`

	// Args carries the action-specific arguments.
	Args map[string]any `yaml:"args"`
}

// Default returns the configuration used when no file is given: hardware
// parallelism, info logging, all capabilities, empty pipeline.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
	}
}

// Load reads a YAML configuration file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets the environment override file settings: IMGPIPE_LOG_LEVEL
// and IMGPIPE_CONCURRENCY.
func (c *Config) applyEnv() {
	if level := os.Getenv("IMGPIPE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if raw := os.Getenv("IMGPIPE_CONCURRENCY"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.Concurrency = n
		}
	}
}

// Validate checks the configuration for values the engine would refuse.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: got %d", ErrBadConcurrency, c.Concurrency)
	}
	for i, step := range c.Pipeline {
		if step.Action == "" {
			return fmt.Errorf("%w: step %d", ErrStepAction, i)
		}
	}
	return nil
}
