package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sharebill.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 3000 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Storage.Path != "sharebill.db" || cfg.Log.Level != "info" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  host: 0.0.0.0
  port: 8080
  public_url: https://invoice.example.com
storage:
  path: /var/lib/sharebill/data.db
log:
  level: warn
  format: json
`)
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host from file = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("env port did not win: %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Storage.Path != "/var/lib/sharebill/data.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Server.PublicURL != "https://invoice.example.com" {
		t.Errorf("public url = %q", cfg.Server.PublicURL)
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	t.Setenv(EnvConfig, writeFile(t, "server:\n  port: 4000\n"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		file string
		env  map[string]string
	}{
		"missing file": {file: filepath.Join(t.TempDir(), "nope.yaml")},
		"bad yaml":     {file: writeFile(t, "server: [")},
		"bad port env": {env: map[string]string{EnvPort: "http"}},
		"port too big": {env: map[string]string{EnvPort: "70000"}},
		"bad level":    {env: map[string]string{EnvLogLevel: "loud"}},
		"bad format":   {env: map[string]string{EnvLogFormat: "xml"}},
		"relative url": {env: map[string]string{EnvPublicURL: "/invoice"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(EnvConfig, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.file); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Storage.Path = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"server.port", "storage.path"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"
	log := cfg.Logger(&buf)

	if log.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled at warn level")
	}
	log.Warn("careful", "key", "value")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("json output = %q", buf.String())
	}
}
