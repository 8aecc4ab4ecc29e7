// Package config provides configuration management for the CQH health engine.
// It supports loading configuration from YAML files, JSON files, and environment
// variables with automatic validation and default value application.
//
// Example usage:
//
//	cfg, err := config.Load("config.yaml", "CQH")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or panic on error:
//	cfg := config.MustLoad("config.yaml", "CQH")
package config

import (
	"time"
)

// Config represents the complete configuration for a CQH-based service.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Health  HealthConfig  `mapstructure:"health"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServiceConfig contains general service information.
type ServiceConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, staging, production
}

// HealthConfig contains health check engine configuration.
// These are the only options the engine recognizes at construction time.
type HealthConfig struct {
	// Timeout is the default per-probe execution budget.
	Timeout time.Duration `mapstructure:"timeout"`

	// CheckInterval is the default interval between scheduled runs of a probe.
	CheckInterval time.Duration `mapstructure:"check_interval"`

	// EnableAutoCheck starts a periodic timer for every registered probe.
	EnableAutoCheck bool `mapstructure:"enable_auto_check"`

	// EnableCompliance gates registration of the compliance probe bundle.
	EnableCompliance bool `mapstructure:"enable_compliance"`
}

// LogConfig contains structured logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Port      int    `mapstructure:"port"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// DefaultHealthConfig returns a HealthConfig with sensible defaults:
// a 5 second timeout and a 30 second check interval, auto-check on,
// compliance off.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		Timeout:          5 * time.Second,
		CheckInterval:    30 * time.Second,
		EnableAutoCheck:  true,
		EnableCompliance: false,
	}
}
