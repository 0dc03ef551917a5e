// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML parsing, env expansion, and the secret key fallback chain

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  http_addr: ":8080"
database:
  path: /tmp/feedback.db
  echo_queries: true
auth:
  secret_key: yaml-secret
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":8080")
	}
	if cfg.Database.Path != "/tmp/feedback.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/feedback.db")
	}
	if !cfg.Database.EchoQueries {
		t.Error("EchoQueries should be true")
	}
	if cfg.Auth.SecretKey != "yaml-secret" {
		t.Errorf("SecretKey = %q, want %q", cfg.Auth.SecretKey, "yaml-secret")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[server]
http_addr = ":9090"

[database]
path = "/tmp/feedback.db"

[auth]
secret_key = "toml-secret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":9090")
	}
	if cfg.Auth.SecretKey != "toml-secret" {
		t.Errorf("SecretKey = %q, want %q", cfg.Auth.SecretKey, "toml-secret")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", "server: [not: valid")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("FEEDBACK_TEST_ADDR", ":7777")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: "${FEEDBACK_TEST_ADDR}"
database:
  path: /tmp/feedback.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != ":7777" {
		t.Errorf("HTTPAddr = %q, want expanded env value", cfg.Server.HTTPAddr)
	}
}

func TestLoad_UnsetEnvExpandsEmpty(t *testing.T) {
	if got := expandEnvVars("${DEFINITELY_NOT_SET_12345}"); got != "" {
		t.Errorf("expandEnvVars = %q, want empty string", got)
	}
}

func TestLoad_SecretKeyFromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: ":8080"
database:
  path: /tmp/feedback.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.SecretKey != "env-secret" {
		t.Errorf("SecretKey = %q, want env fallback", cfg.Auth.SecretKey)
	}
}

func TestLoad_SecretKeyDefault(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: ":8080"
database:
  path: /tmp/feedback.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.SecretKey != DefaultSecretKey {
		t.Errorf("SecretKey = %q, want development default", cfg.Auth.SecretKey)
	}
}

func TestLoad_ConfigSecretWinsOverEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: ":8080"
database:
  path: /tmp/feedback.db
auth:
  secret_key: file-secret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.SecretKey != "file-secret" {
		t.Errorf("SecretKey = %q, want file value to win", cfg.Auth.SecretKey)
	}
}

func TestValidate_MissingAddr(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  path: /tmp/feedback.db
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing http_addr")
	}
}

func TestValidate_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  http_addr: ":8080"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing database.path")
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("FEEDBACK_CONFIG", "/etc/feedback/config.yaml")

	if got := DefaultPath(); got != "/etc/feedback/config.yaml" {
		t.Errorf("DefaultPath = %q, want env override", got)
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("FEEDBACK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	want := filepath.Join("/xdg", "feedback-board", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
