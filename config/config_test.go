package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ilc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[output]
format = "json"
color = true

[log]
verbosity = 2
file = "ilc.log"

[watch]
interval = "2s"
extensions = [".il", ".ilc"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" || !cfg.Output.Color {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Log.Verbosity != 2 || cfg.Log.File != "ilc.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Watch.Interval.Duration != 2*time.Second {
		t.Errorf("Watch.Interval = %v, want 2s", cfg.Watch.Interval)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".ilc" {
		t.Errorf("Watch.Extensions = %v", cfg.Watch.Extensions)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[log]\nverbosity = 1\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Output.Format != def.Output.Format {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, def.Output.Format)
	}
	if cfg.Watch.Interval != def.Watch.Interval {
		t.Errorf("Watch.Interval = %v, want %v", cfg.Watch.Interval, def.Watch.Interval)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "line" {
		t.Errorf("Output.Format = %q, want line", cfg.Output.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[output\n"},
		{"bad format", "[output]\nformat = \"xml\"\n"},
		{"bad duration", "[watch]\ninterval = \"soon\"\n"},
		{"zero interval", "[watch]\ninterval = \"0s\"\n"},
		{"negative verbosity", "[log]\nverbosity = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of explicit missing file succeeded, want error")
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	if d.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", d.Duration)
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText = %q, want 1m30s", text)
	}
}
