package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets YAML carry durations in their string form ("45s", "2m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// RemoteConfig locates the deployed migration/discovery functions. Each
// endpoint carries its own function key, sent as the "code" query parameter.
type RemoteConfig struct {
	BaseURL           string            `yaml:"base_url"`
	DatabricksBaseURL string            `yaml:"databricks_base_url"`
	Keys              map[string]string `yaml:"keys"`
	RequestTimeout    Duration          `yaml:"request_timeout"`
}

// MigrationConfig holds run-level policy knobs.
type MigrationConfig struct {
	// ExistingAssetPolicy decides how an "already exists" migration result
	// is classified: "fail" (the observed behavior) or "reuse".
	ExistingAssetPolicy string `yaml:"existing_asset_policy"`
}

// Config holds all configuration (CLI flags + config file + environment).
type Config struct {
	Listen    string          `yaml:"listen"`
	Remote    RemoteConfig    `yaml:"remote"`
	Migration MigrationConfig `yaml:"migration"`

	// internal: path to config file (from CLI flag)
	configFile string
}

// Parse reads CLI flags, then overlays config file values, then environment.
// CLI flags take precedence over config file values.
func Parse() *Config {
	c := &Config{}
	flag.StringVar(&c.configFile, "config", "", "Path to config file (YAML)")
	flag.StringVar(&c.Listen, "listen", "", "HTTP listen address")
	flag.StringVar(&c.Remote.BaseURL, "api-base-url", "", "Base URL of the migration function app")
	flag.Parse()

	if c.configFile != "" {
		if err := c.loadFile(c.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file: %v\n", err)
			os.Exit(1)
		}
	}

	c.applyEnv()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	return c
}

// loadFile reads a YAML config file. Values from the file are only applied
// if the corresponding CLI flag was not explicitly set.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if c.Listen == "" && file.Listen != "" {
		c.Listen = file.Listen
	}
	if c.Remote.BaseURL == "" && file.Remote.BaseURL != "" {
		c.Remote.BaseURL = file.Remote.BaseURL
	}
	c.Remote.DatabricksBaseURL = file.Remote.DatabricksBaseURL
	c.Remote.Keys = file.Remote.Keys
	c.Remote.RequestTimeout = file.Remote.RequestTimeout
	c.Migration = file.Migration

	return nil
}

// applyEnv overlays deployment environment variables: API_BASE_URL,
// DATABRICKS_API_BASE_URL, and one API_KEY_<ENDPOINT> per function key.
// Values already set by flag or file win.
func (c *Config) applyEnv() {
	if v := os.Getenv("API_BASE_URL"); v != "" && c.Remote.BaseURL == "" {
		c.Remote.BaseURL = v
	}
	if v := os.Getenv("DATABRICKS_API_BASE_URL"); v != "" && c.Remote.DatabricksBaseURL == "" {
		c.Remote.DatabricksBaseURL = v
	}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, "API_KEY_") {
			continue
		}
		endpoint := strings.TrimPrefix(name, "API_KEY_")
		if endpoint == "" || value == "" {
			continue
		}
		if c.Remote.Keys == nil {
			c.Remote.Keys = make(map[string]string)
		}
		if _, set := c.Remote.Keys[endpoint]; !set {
			c.Remote.Keys[endpoint] = value
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Remote.DatabricksBaseURL == "" {
		c.Remote.DatabricksBaseURL = c.Remote.BaseURL
	}
	if c.Migration.ExistingAssetPolicy == "" {
		c.Migration.ExistingAssetPolicy = "fail"
	}
}

// Validate rejects configurations that would misbehave at runtime.
func (c *Config) Validate() error {
	switch c.Migration.ExistingAssetPolicy {
	case "fail", "reuse":
	default:
		return fmt.Errorf("existing_asset_policy must be %q or %q, got %q",
			"fail", "reuse", c.Migration.ExistingAssetPolicy)
	}
	if c.Remote.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}
