// Package config loads runtime settings from built-in defaults and
// CHECK_VERSIONS_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CHECK_VERSIONS"

// Config holds every tunable used by the version check.
type Config struct {
	ReadmePath   string
	WorkflowPath string
	SelfRepo     string
	ToolMarker   string
	OrgMarker    string
	BaseURL      string
	UserAgent    string
	Timeout      time.Duration
	MaxRetries   int
	Backoff      time.Duration
	Concurrency  int
	Verbose      bool
}

var defaults = map[string]any{
	"readme_path":   "README.md",
	"workflow_path": ".github/workflows/download-and-release.yml",
	"self_repo":     "wav-files-toolkit",
	"tool_marker":   "wav-files-",
	"org_marker":    "RustedBytes",
	"base_url":      "https://github.com",
	"user_agent":    "Mozilla/5.0 (compatible; version-checker)",
	"timeout":       10 * time.Second,
	"max_retries":   2,
	"backoff":       time.Second,
	"concurrency":   1,
	"verbose":       false,
}

// Load builds a Config from defaults overlaid with environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ReadmePath:   v.GetString("readme_path"),
		WorkflowPath: v.GetString("workflow_path"),
		SelfRepo:     v.GetString("self_repo"),
		ToolMarker:   v.GetString("tool_marker"),
		OrgMarker:    v.GetString("org_marker"),
		BaseURL:      strings.TrimRight(v.GetString("base_url"), "/"),
		UserAgent:    v.GetString("user_agent"),
		Timeout:      v.GetDuration("timeout"),
		MaxRetries:   v.GetInt("max_retries"),
		Backoff:      v.GetDuration("backoff"),
		Concurrency:  v.GetInt("concurrency"),
		Verbose:      v.GetBool("verbose"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the fetcher cannot run with.
func (c *Config) Validate() error {
	if c.ReadmePath == "" {
		return fmt.Errorf("invalid config: readme_path must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid config: timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid config: max_retries must not be negative, got %d", c.MaxRetries)
	}
	if c.Backoff < 0 {
		return fmt.Errorf("invalid config: backoff must not be negative, got %s", c.Backoff)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid config: concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
