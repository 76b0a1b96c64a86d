package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))
	if cfg.Port != 5000 {
		t.Errorf("Port = %d, want 5000", cfg.Port)
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if got := cfg.Addr(); got != "0.0.0.0:5000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:5000", got)
	}
}

func TestFromEnvPort(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"8080", 8080},
		{" 9000 ", 9000},
		{"", 5000},
		{"abc", 5000},
		{"80x", 5000},
		{"0", 5000},
		{"70000", 5000},
		{"-1", 5000},
	}
	for _, tt := range tests {
		cfg := FromEnv(envMap(map[string]string{"PORT": tt.value}))
		if cfg.Port != tt.want {
			t.Errorf("PORT=%q: Port = %d, want %d", tt.value, cfg.Port, tt.want)
		}
	}
}

func TestFromEnvRootAndLogLevel(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"STATIC_ROOT": "/srv/app",
		"LOG_LEVEL":   "DEBUG",
	}))
	if cfg.Root != "/srv/app" {
		t.Errorf("Root = %q, want /srv/app", cfg.Root)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}

	cfg = FromEnv(envMap(map[string]string{"LOG_LEVEL": "loud"}))
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("invalid LOG_LEVEL: LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("LoadEnv on missing file: %v", err)
	}
	if err := LoadEnv(""); err != nil {
		t.Fatalf("LoadEnv with empty path: %v", err)
	}
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "PORT=7000\nSTATIC_ROOT=/from/file\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "6000")
	t.Setenv("STATIC_ROOT", "")
	os.Unsetenv("STATIC_ROOT")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}

	cfg := Load()
	if cfg.Port != 6000 {
		t.Errorf("Port = %d, want 6000 from the process environment", cfg.Port)
	}
	if cfg.Root != "/from/file" {
		t.Errorf("Root = %q, want /from/file", cfg.Root)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{Root: dir}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for root without index.html")
	}

	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte("<html></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg = &Config{Root: dir}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !filepath.IsAbs(cfg.Root) {
		t.Errorf("Root %q not absolute after Validate", cfg.Root)
	}

	cfg = &Config{Root: filepath.Join(dir, IndexFile)}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a root that is a file")
	}

	cfg = &Config{Root: filepath.Join(dir, "missing")}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a missing root")
	}
}
