package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
listen: ":9090"
remote:
  base_url: "https://funcs.example.net/api"
  databricks_base_url: "https://dbx-funcs.example.net/api"
  request_timeout: 45s
  keys:
    SparkPoolMigration: "key-pools"
    NotebooksMigration: "key-notebooks"
migration:
  existing_asset_policy: "reuse"
`)

	c := &Config{}
	if err := c.loadFile(path); err != nil {
		t.Fatalf("loadFile: %v", err)
	}

	if c.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", c.Listen)
	}
	if c.Remote.BaseURL != "https://funcs.example.net/api" {
		t.Errorf("BaseURL = %q", c.Remote.BaseURL)
	}
	if c.Remote.DatabricksBaseURL != "https://dbx-funcs.example.net/api" {
		t.Errorf("DatabricksBaseURL = %q", c.Remote.DatabricksBaseURL)
	}
	if c.Remote.RequestTimeout != Duration(45*time.Second) {
		t.Errorf("RequestTimeout = %v, want 45s", c.Remote.RequestTimeout)
	}
	if c.Remote.Keys["SparkPoolMigration"] != "key-pools" {
		t.Errorf("Keys = %v", c.Remote.Keys)
	}
	if c.Migration.ExistingAssetPolicy != "reuse" {
		t.Errorf("ExistingAssetPolicy = %q", c.Migration.ExistingAssetPolicy)
	}
}

func TestLoadFile_FlagsWin(t *testing.T) {
	path := writeConfigFile(t, `
listen: ":9090"
remote:
  base_url: "https://file.example.net/api"
`)

	c := &Config{Listen: ":7070"}
	c.Remote.BaseURL = "https://flag.example.net/api"
	if err := c.loadFile(path); err != nil {
		t.Fatalf("loadFile: %v", err)
	}

	if c.Listen != ":7070" {
		t.Errorf("Listen = %q, flag value should win", c.Listen)
	}
	if c.Remote.BaseURL != "https://flag.example.net/api" {
		t.Errorf("BaseURL = %q, flag value should win", c.Remote.BaseURL)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	c := &Config{}
	if err := c.loadFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfigFile(t, "listen: [unterminated")
	c := &Config{}
	if err := c.loadFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadFile_BadDuration(t *testing.T) {
	path := writeConfigFile(t, `
remote:
  request_timeout: "soon"
`)
	c := &Config{}
	if err := c.loadFile(path); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://env.example.net/api")
	t.Setenv("DATABRICKS_API_BASE_URL", "https://env-dbx.example.net/api")
	t.Setenv("API_KEY_PipelinesMigration", "key-from-env")

	c := &Config{}
	c.applyEnv()

	if c.Remote.BaseURL != "https://env.example.net/api" {
		t.Errorf("BaseURL = %q", c.Remote.BaseURL)
	}
	if c.Remote.DatabricksBaseURL != "https://env-dbx.example.net/api" {
		t.Errorf("DatabricksBaseURL = %q", c.Remote.DatabricksBaseURL)
	}
	if c.Remote.Keys["PipelinesMigration"] != "key-from-env" {
		t.Errorf("Keys = %v", c.Remote.Keys)
	}
}

func TestApplyEnv_FileValuesWin(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://env.example.net/api")
	t.Setenv("API_KEY_PipelinesMigration", "key-from-env")

	c := &Config{}
	c.Remote.BaseURL = "https://file.example.net/api"
	c.Remote.Keys = map[string]string{"PipelinesMigration": "key-from-file"}
	c.applyEnv()

	if c.Remote.BaseURL != "https://file.example.net/api" {
		t.Errorf("BaseURL = %q, file value should win", c.Remote.BaseURL)
	}
	if c.Remote.Keys["PipelinesMigration"] != "key-from-file" {
		t.Errorf("Keys = %v, file value should win", c.Remote.Keys)
	}
}

func TestApplyDefaults(t *testing.T) {
	c := &Config{}
	c.Remote.BaseURL = "https://funcs.example.net/api"
	c.applyDefaults()

	if c.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", c.Listen)
	}
	if c.Remote.DatabricksBaseURL != c.Remote.BaseURL {
		t.Errorf("DatabricksBaseURL = %q, want fallback to base URL", c.Remote.DatabricksBaseURL)
	}
	if c.Migration.ExistingAssetPolicy != "fail" {
		t.Errorf("ExistingAssetPolicy = %q, want fail", c.Migration.ExistingAssetPolicy)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		timeout time.Duration
		wantErr bool
	}{
		{"fail policy", "fail", 0, false},
		{"reuse policy", "reuse", 30 * time.Second, false},
		{"unknown policy", "skip", 0, true},
		{"negative timeout", "fail", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Migration.ExistingAssetPolicy = tt.policy
			c.Remote.RequestTimeout = Duration(tt.timeout)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
