package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGlobal(t *testing.T, homeDir, content string) {
	t.Helper()
	dir := filepath.Join(homeDir, ".planner")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create .planner directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to create global config: %v", err)
	}
}

func TestGlobal_FileExists(t *testing.T) {
	tmpDir := t.TempDir()
	writeGlobal(t, tmpDir, `
[storage]
backend = "file"
dir = "~/planner-data"

[server]
host = "0.0.0.0"
port = 9999

[reminders]
enabled = false
notifier = "terminal"
`)

	cfg, err := LoadGlobalConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Backend != "file" {
		t.Errorf("expected backend 'file', got '%s'", cfg.Backend)
	}
	if want := filepath.Join(tmpDir, "planner-data"); cfg.DataDir != want {
		t.Errorf("expected data dir %q, got %q", want, cfg.DataDir)
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("expected host '0.0.0.0', got '%s'", cfg.ServerHost)
	}
	if cfg.ServerPort != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.ServerPort)
	}
	if cfg.RemindersEnabled == nil || *cfg.RemindersEnabled {
		t.Errorf("expected reminders disabled, got %v", cfg.RemindersEnabled)
	}
	if cfg.Notifier != "terminal" {
		t.Errorf("expected notifier 'terminal', got '%s'", cfg.Notifier)
	}
}

func TestGlobal_FileNotExists(t *testing.T) {
	cfg, err := LoadGlobalConfigFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error when config doesn't exist, got: %v", err)
	}

	if cfg.ServerHost != "" || cfg.ServerPort != 0 || cfg.Backend != "" || cfg.RemindersEnabled != nil {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestGlobal_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid TOML", "[server\nhost = "},
		{"port out of range", "[server]\nport = 70000\n"},
		{"unknown backend", "[storage]\nbackend = \"postgres\"\n"},
		{"unknown notifier", "[reminders]\nnotifier = \"pager\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeGlobal(t, tmpDir, tt.content)

			if _, err := LoadGlobalConfigFromDir(tmpDir); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGlobal_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeGlobal(t, tmpDir, "")

	cfg, err := LoadGlobalConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "" {
		t.Errorf("expected empty data dir, got %q", cfg.DataDir)
	}
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/u"},
		{"~/data", "/home/u/data"},
		{"/abs/data", "/abs/data"},
		{"rel/data", "rel/data"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := expandHome(tt.in, "/home/u"); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
