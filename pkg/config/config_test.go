package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoad_FromFile verifies a YAML file populates every section
func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
service:
  name: trading-gateway
  version: 1.4.0
  env: production
health:
  timeout: 2s
  check_interval: 15s
  enable_auto_check: true
  enable_compliance: true
log:
  level: warn
  format: console
metrics:
  enabled: true
  port: 9100
`)

	cfg, err := Load(path, "CQH")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Service.Name != "trading-gateway" || cfg.Service.Env != "production" {
		t.Errorf("Service = %+v", cfg.Service)
	}
	if cfg.Health.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Health.Timeout)
	}
	if cfg.Health.CheckInterval != 15*time.Second {
		t.Errorf("CheckInterval = %v, want 15s", cfg.Health.CheckInterval)
	}
	if !cfg.Health.EnableAutoCheck || !cfg.Health.EnableCompliance {
		t.Errorf("Health flags = %+v", cfg.Health)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != 9100 {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

// TestLoad_Defaults verifies an empty config gets the documented defaults
func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "service:\n  name: bare\n")

	cfg, err := Load(path, "CQH")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Health.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Health.Timeout)
	}
	if cfg.Health.CheckInterval != 30*time.Second {
		t.Errorf("CheckInterval = %v, want 30s", cfg.Health.CheckInterval)
	}
	if cfg.Health.EnableAutoCheck || cfg.Health.EnableCompliance {
		t.Errorf("Health flags = %+v, want both off by default", cfg.Health)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" || cfg.Log.Output != "stdout" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Port != 9090 || cfg.Metrics.Path != "/metrics" || cfg.Metrics.Namespace != "cqh" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Service.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Service.Env)
	}
}

// TestLoad_MissingFile verifies a bad path fails instead of silently defaulting
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml", "CQH"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

// TestLoad_InvalidLogLevel verifies validation rejects unknown levels
func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfigFile(t, "log:\n  level: verbose\n")

	if _, err := Load(path, "CQH"); err == nil {
		t.Error("expected a validation error for log.level=verbose")
	}
}

// TestLoad_NegativeTimeout verifies validation rejects negative durations
func TestLoad_NegativeTimeout(t *testing.T) {
	path := writeConfigFile(t, "health:\n  timeout: -1s\n")

	if _, err := Load(path, "CQH"); err == nil {
		t.Error("expected a validation error for a negative timeout")
	}
}

// TestDefaultHealthConfig verifies the programmatic defaults
func TestDefaultHealthConfig(t *testing.T) {
	cfg := DefaultHealthConfig()
	if cfg.Timeout != 5*time.Second || cfg.CheckInterval != 30*time.Second {
		t.Errorf("durations = %v/%v", cfg.Timeout, cfg.CheckInterval)
	}
	if !cfg.EnableAutoCheck {
		t.Error("EnableAutoCheck = false, want true")
	}
	if cfg.EnableCompliance {
		t.Error("EnableCompliance = true, want false")
	}
}
