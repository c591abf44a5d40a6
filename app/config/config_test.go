package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	cfg := Default()
	if cfg.Rates.Endpoint != DefaultEndpoint || cfg.Rates.Timeout != DefaultTimeout {
		t.Errorf("rates = %+v", cfg.Rates)
	}
	if cfg.Rates.CacheDir != "/tmp/cache/unitcalc" {
		t.Errorf("cache dir = %q", cfg.Rates.CacheDir)
	}
	if cfg.REPL.HistoryFile != "/tmp/cache/unitcalc/history.txt" {
		t.Errorf("history file = %q", cfg.REPL.HistoryFile)
	}
	if cfg.REPL.Prompt != ">> " || cfg.REPL.Continuation != ".. " {
		t.Errorf("prompts = %q %q", cfg.REPL.Prompt, cfg.REPL.Continuation)
	}
	if cfg.Display.Exact {
		t.Error("exact display should default to off")
	}
}

func TestRead(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	doc := `
rates:
  timeout: 3s
  cache_dir: /var/rates
  offline: true
repl:
  prompt: "calc> "
display:
  exact: true
`
	cfg, err := Read(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rates.Timeout != 3*time.Second {
		t.Errorf("timeout = %v", cfg.Rates.Timeout)
	}
	if cfg.Rates.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q", cfg.Rates.Endpoint)
	}
	if cfg.Rates.CacheDir != "/var/rates" || !cfg.Rates.Offline {
		t.Errorf("rates = %+v", cfg.Rates)
	}
	if cfg.REPL.HistoryFile != "/var/rates/history.txt" {
		t.Errorf("history file = %q", cfg.REPL.HistoryFile)
	}
	if cfg.REPL.Prompt != "calc> " || cfg.REPL.Continuation != ".. " {
		t.Errorf("prompts = %q %q", cfg.REPL.Prompt, cfg.REPL.Continuation)
	}
	if !cfg.Display.Exact {
		t.Error("display.exact not read")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "rates:\n  endpoit: x\n"},
		{"unknown section", "colors: {}\n"},
		{"bad duration", "rates:\n  timeout: soon\n"},
		{"negative timeout", "rates:\n  timeout: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.doc), "test"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	// No file at the default location.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load default: %v", err)
	}
	if cfg.Rates.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q", cfg.Rates.Endpoint)
	}

	// An explicit path must exist.
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}

	path := filepath.Join(dir, "unitcalc", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("display:\n  exact: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Display.Exact {
		t.Error("default file not read")
	}

	// Empty documents keep the defaults.
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, err = Load(empty); err != nil || cfg.REPL.Prompt != ">> " {
		t.Errorf("Load empty = %+v, %v", cfg, err)
	}
}
