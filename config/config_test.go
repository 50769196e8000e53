package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/funckit/logger"
)

type scoresSection struct {
	Count     int `mapstructure:"count"`
	Threshold int `mapstructure:"threshold"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Scores        scoresSection `yaml:"scores" mapstructure:"scores"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const sampleYAML = `
name: funcdemo
environment: staging
version: "1.0.0"
logging:
  level: warn
  format: json
tracing:
  enabled: false
  sample_rate: 0.5
scores:
  count: 12
  threshold: 50
`

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug log level in development, got %q", cfg.Logging.Level)
		}
		if cfg.Tracing.Endpoint == "" {
			t.Error("expected tracing defaults to be applied")
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info log level, got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit log level wins", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Logging: logger.Config{Level: "error"}}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "error" {
			t.Errorf("expected error, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		c := ServiceConfig{Name: "svc", Environment: env}
		c.ApplyDefaults()
		return c
	}
	badLogging := valid("staging")
	badLogging.Logging.Format = "xml"
	badTracing := valid("staging")
	badTracing.Tracing.SampleRate = 3

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid staging", valid("staging"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
		{"invalid logging", badLogging, true, "config.logging"},
		{"invalid tracing", badTracing, true, "config.tracing"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceConfigResource(t *testing.T) {
	cfg := ServiceConfig{Name: "funcdemo", Version: "2.0.0", Environment: "staging"}
	res := cfg.Resource()
	if res.Service != "funcdemo" || res.Version != "2.0.0" || res.Environment != "staging" {
		t.Errorf("unexpected resource: %+v", res)
	}
	if cfg.GetServiceConfig() != &cfg {
		t.Error("GetServiceConfig should return the receiver")
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)

	var cfg testConfig
	if err := LoadConfig("funcdemo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "funcdemo" {
		t.Errorf("expected name 'funcdemo', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Tracing.SampleRate != 0.5 {
		t.Errorf("expected sample rate 0.5, got %v", cfg.Tracing.SampleRate)
	}
	if cfg.Scores.Count != 12 || cfg.Scores.Threshold != 50 {
		t.Errorf("unexpected scores: %+v", cfg.Scores)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	t.Setenv("SCORES_THRESHOLD", "75")
	t.Setenv("LOGGING_LEVEL", "error")
	t.Setenv("TRACING_SAMPLE_RATE", "0.1")

	var cfg testConfig
	if err := LoadConfig("funcdemo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Scores.Threshold != 75 {
		t.Errorf("expected threshold from env, got %d", cfg.Scores.Threshold)
	}
	if cfg.Scores.Count != 12 {
		t.Errorf("expected count from file, got %d", cfg.Scores.Count)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected level from env, got %q", cfg.Logging.Level)
	}
	if cfg.Tracing.SampleRate != 0.1 {
		t.Errorf("expected sample rate from env, got %v", cfg.Tracing.SampleRate)
	}
}

func TestLoadConfigEnvWithoutFile(t *testing.T) {
	t.Setenv("SCORES_COUNT", "3")

	var cfg testConfig
	err := LoadConfig("funcdemo", &cfg, WithFileSystem(&mockFS{files: map[string]bool{}}))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Scores.Count != 3 {
		t.Errorf("expected count 3 from env, got %d", cfg.Scores.Count)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", sampleYAML)
	envPath := writeFile(t, dir, ".env", "FUNCKIT_TEST_SCORES_COUNT=99\n")
	t.Cleanup(func() { os.Unsetenv("FUNCKIT_TEST_SCORES_COUNT") })

	type nested struct {
		Funckit struct {
			Test struct {
				Scores scoresSection `mapstructure:"scores"`
			} `mapstructure:"test"`
		} `mapstructure:"funckit"`
	}

	var cfg nested
	if err := LoadConfig("funcdemo", &cfg, WithConfigFile(path), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Funckit.Test.Scores.Count != 99 {
		t.Errorf("expected count from .env, got %d", cfg.Funckit.Test.Scores.Count)
	}
}

func TestLoadConfigFlagsWin(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", sampleYAML)
	t.Setenv("LOGGING_LEVEL", "error")

	fs := pflag.NewFlagSet("funcdemo", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	if err := fs.Parse([]string{"--log-level=debug"}); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	if err := v.BindPFlag("logging.level", fs.Lookup("log-level")); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := LoadConfig("funcdemo", &cfg, WithConfigFile(path), WithViper(v)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected flag value to win, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unclosed\n")
	var cfg testConfig
	if err := LoadConfig("funcdemo", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/funcdemo/config.yml": true,
		"./config.yml":              true,
		"./.env.funcdemo":           true,
		"./.env":                    true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("funcdemo", LoaderConfig{})
	if files.ConfigFile != "./cmd/funcdemo/config.yml" {
		t.Errorf("expected config file at ./cmd/funcdemo/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.funcdemo" {
		t.Errorf("expected service-specific env file, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	files := resolver.ResolveFiles("funcdemo", LoaderConfig{ConfigFile: "/etc/funcdemo.yml", EnvFile: "/etc/funcdemo.env"})
	if files.ConfigFile != "/etc/funcdemo.yml" || files.EnvFile != "/etc/funcdemo.env" {
		t.Errorf("explicit paths should be kept, got %+v", files)
	}
}

func TestResolverNothingFound(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{}}}
	files := resolver.ResolveFiles("funcdemo", LoaderConfig{})
	if files.ConfigFile != "" || files.EnvFile != "" {
		t.Errorf("expected no files, got %+v", files)
	}
}

func TestLoadConfigUsesFileSystemForEnv(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}}
	var cfg testConfig
	if err := LoadConfig("funcdemo", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fs.loaded, []string{"./.env"}) {
		t.Errorf("expected .env to be loaded through the filesystem, got %v", fs.loaded)
	}
}

func TestConfigKeys(t *testing.T) {
	type leaf struct {
		Count int `mapstructure:"count"`
	}
	type sample struct {
		ServiceConfig `mapstructure:",squash"`
		Scores        *leaf `mapstructure:"scores"`
		Label         string
		Skipped       string `mapstructure:"-"`
		hidden        string
	}

	keys := configKeys(reflect.TypeOf(&sample{}), "")
	for _, want := range []string{
		"name",
		"environment",
		"logging.level",
		"tracing.sample_rate",
		"tracing.metrics_interval",
		"scores.count",
		"label",
	} {
		if !slices.Contains(keys, want) {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
	for _, unwanted := range []string{"skipped", "hidden", "serviceconfig", "tracing"} {
		if slices.Contains(keys, unwanted) {
			t.Errorf("unexpected key %q", unwanted)
		}
	}
	if configKeys(reflect.TypeOf(42), "") != nil {
		t.Error("non-struct types have no keys")
	}
}

func TestEnvName(t *testing.T) {
	if got := envName("tracing.sample_rate"); got != "TRACING_SAMPLE_RATE" {
		t.Errorf("got %q", got)
	}
}

func TestOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	v := viper.New()
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithViper(v)(&lc)

	if lc.FileSystem != fs {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.Viper != v {
		t.Error("expected Viper to be set")
	}
}

func TestRealFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "FUNCKIT_REALFS_PROBE=yes\n")
	t.Cleanup(func() { os.Unsetenv("FUNCKIT_REALFS_PROBE") })

	rfs := &RealFileSystem{}
	if !rfs.Exists(path) {
		t.Error("expected file to exist")
	}
	if rfs.Exists(dir) {
		t.Error("directories should not count as config files")
	}
	if err := rfs.LoadEnv(path); err != nil {
		t.Fatal(err)
	}
	if os.Getenv("FUNCKIT_REALFS_PROBE") != "yes" {
		t.Error("expected .env variable to be exported")
	}
}
