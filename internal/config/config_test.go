package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.DataPath != "" || cfg.StrictUpdates {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFile_Parses(t *testing.T) {
	path := writeConfig(t, `
data_path: /srv/snippets.json
log_level: debug
log_file: /tmp/fragments.log
strict_updates: true
highlight_style: dracula
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.DataPath != "/srv/snippets.json" {
		t.Errorf("unexpected data_path %q", cfg.DataPath)
	}
	if cfg.LogLevel != "debug" || cfg.LogFile != "/tmp/fragments.log" {
		t.Errorf("unexpected log settings %+v", cfg)
	}
	if !cfg.StrictUpdates {
		t.Error("expected strict_updates")
	}
	if cfg.HighlightStyle != "dracula" {
		t.Errorf("unexpected style %q", cfg.HighlightStyle)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeConfig(t, "data_path: [unterminated")

	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_DataFilePrecedence(t *testing.T) {
	env := map[string]string{}
	cfg := &Config{DataPath: "/from/yaml.json", lookup: func(k string) string { return env[k] }}

	tests := []struct {
		name     string
		override string
		env      string
		yaml     string
		want     string
	}{
		{"flag wins", "/from/flag.json", "/from/env.json", "/from/yaml.json", "/from/flag.json"},
		{"env over yaml", "", "/from/env.json", "/from/yaml.json", "/from/env.json"},
		{"yaml over default", "", "", "/from/yaml.json", "/from/yaml.json"},
		{"default", "", "", "", DefaultDataPath()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env[EnvDataPath] = tt.env
			cfg.DataPath = tt.yaml
			if got := cfg.DataFile(tt.override); got != tt.want {
				t.Errorf("DataFile(%q) = %q, want %q", tt.override, got, tt.want)
			}
		})
	}
}

func TestConfig_LogPath(t *testing.T) {
	cfg := &Config{}
	if got := cfg.LogPath("/data/fragments.json"); got != filepath.Join("/data", "fragments.log") {
		t.Errorf("unexpected default log path %q", got)
	}

	cfg.LogFile = "/var/log/f.log"
	if got := cfg.LogPath("/data/fragments.json"); got != "/var/log/f.log" {
		t.Errorf("expected configured log path, got %q", got)
	}
}

func TestConfig_Development(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  bool
	}{
		{"default", "", "", false},
		{"env", "development", "", true},
		{"env case", "Development", "", true},
		{"debug level", "", "debug", true},
		{"production", "production", "info", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LogLevel: tt.level,
				lookup:   func(string) string { return tt.env },
			}
			if got := cfg.Development(); got != tt.want {
				t.Errorf("Development() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultDataPath(t *testing.T) {
	if filepath.Base(DefaultDataPath()) != "fragments.json" {
		t.Errorf("unexpected default %q", DefaultDataPath())
	}
}
