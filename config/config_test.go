package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Inventory     struct {
		URL            string        `mapstructure:"url"`
		ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	} `mapstructure:"inventory"`
}

// mockFS reports a fixed set of paths as existing.
type mockFS struct {
	files    map[string]bool
	envLoads []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.envLoads = append(m.envLoads, path)
	return nil
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "order-service"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "order-service" {
			t.Errorf("expected logging service name propagated, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yamlContent := `
name: order-service
environment: staging
inventory:
  url: http://inventory:8082
  connect_timeout: 1500ms
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	files, err := LoadConfig("order-service", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if files.ConfigFile != configPath {
		t.Errorf("expected config file %q reported, got %q", configPath, files.ConfigFile)
	}
	if files.EnvFile != "" {
		t.Errorf("missing env file must not be reported, got %q", files.EnvFile)
	}
	if cfg.Name != "order-service" || cfg.Environment != "staging" {
		t.Errorf("unexpected base config: %+v", cfg.ServiceConfig)
	}
	if cfg.Inventory.URL != "http://inventory:8082" {
		t.Errorf("unexpected inventory url %q", cfg.Inventory.URL)
	}
	if cfg.Inventory.ConnectTimeout != 1500*time.Millisecond {
		t.Errorf("expected 1.5s connect timeout, got %s", cfg.Inventory.ConnectTimeout)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: order-service\ninventory:\n  url: http://from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVENTORY_URL", "http://from-env:9000")

	var cfg testConfig
	if _, err := LoadConfig("order-service", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Inventory.URL != "http://from-env:9000" {
		t.Errorf("expected env override, got %q", cfg.Inventory.URL)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	var cfg testConfig
	if _, err := LoadConfig("order-service", &cfg, WithConfigFile(configPath)); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config.yml":                           true,
		"./cmd/order-service/config.yml":         true,
		"./.env":                                 true,
		"./cmd/order-service/.env.order-service": true,
	}}
	r := &Resolver{FileSystem: fs}
	got := r.ResolveFiles("order-service", LoaderConfig{})
	if got.ConfigFile != "./cmd/order-service/config.yml" {
		t.Errorf("expected cmd config to win, got %q", got.ConfigFile)
	}
	if got.EnvFile != "./cmd/order-service/.env.order-service" {
		t.Errorf("expected service env file to win, got %q", got.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	r := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	got := r.ResolveFiles("svc", LoaderConfig{ConfigFile: "/etc/svc.yml", EnvFile: "/etc/svc.env"})
	if got.ConfigFile != "/etc/svc.yml" || got.EnvFile != "/etc/svc.env" {
		t.Errorf("explicit paths should be kept, got %+v", got)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	variants := generateEnvKeyVariants("INVENTORY_CONNECT_TIMEOUT")
	want := map[string]bool{
		"inventory_connect_timeout": false,
		"inventory.connect.timeout": false,
		"inventory.connect_timeout": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("missing variant %q in %v", k, variants)
		}
	}
	if got := generateEnvKeyVariants("HOME"); len(got) != 1 || got[0] != "home" {
		t.Errorf("single-part key should map to itself, got %v", got)
	}
}
