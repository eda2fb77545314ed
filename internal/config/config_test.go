package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeycumines/chartview/internal/schema"
)

func TestConfigParsing(t *testing.T) {
	configContent := `# Global options
chart-type pie
storage.backend memory
storage.namespace  ward-7

[line]
smooth true
lineWidth 3.5
title Nursing QC inspection

[pie]
roseType area`

	config, err := LoadFromReader(strings.NewReader(configContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if value, ok := config.GetGlobalOption(KeyChartType); !ok || value != "pie" {
		t.Errorf("Expected chart-type=pie, got %s (exists: %v)", value, ok)
	}
	if value, _ := config.GetGlobalOption(KeyStorageNamespace); value != "ward-7" {
		t.Errorf("Expected trimmed namespace ward-7, got %q", value)
	}
	if value := config.Charts["line"]["title"]; value != "Nursing QC inspection" {
		t.Errorf("Expected title to keep the rest of the line, got %q", value)
	}
	if value := config.Charts["pie"]["roseType"]; value != "area" {
		t.Errorf("Expected pie.roseType=area, got %q", value)
	}
	if config.HasWarnings() {
		t.Errorf("Expected no warnings, got %v", config.GetWarnings())
	}
}

func TestConfigWarnings(t *testing.T) {
	configContent := `unknown-option 1
storage.timeout soon
storage.backend sqlite

[radar]
foo bar

[line]
smooth maybe
lineWidth wide
nope 1
roseType area`

	config, err := LoadFromReader(strings.NewReader(configContent))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	want := []string{
		`unknown global option: "unknown-option"`,
		`global option "storage.timeout": expected duration`,
		`global option "storage.backend": expected one of`,
		`unknown chart type section: [radar]`,
		`field "smooth" in [line]: expected bool`,
		`field "lineWidth" in [line]: expected number`,
		`unknown field for chart type "line": "nope"`,
		`unknown field for chart type "line": "roseType"`,
	}
	warnings := strings.Join(config.GetWarnings(), "\n")
	for _, w := range want {
		if !strings.Contains(warnings, w) {
			t.Errorf("expected warning containing %q, got:\n%s", w, warnings)
		}
	}
	if len(config.GetWarnings()) != len(want) {
		t.Errorf("expected %d warnings, got %d:\n%s", len(want), len(config.GetWarnings()), warnings)
	}
}

func TestChartValues(t *testing.T) {
	config := NewConfig()
	config.Charts["line"] = map[string]string{
		"smooth":    "yes",
		"lineWidth": "3",
		"pointSize": "big",
		"lineColor": "#ff0000",
		"editData":  "x",
		"unknown":   "x",
		"showTitle": "off",
	}

	got := config.ChartValues(schema.Default(), "line")
	want := map[string]any{
		"smooth":    true,
		"lineWidth": 3.0,
		"lineColor": "#ff0000",
		"showTitle": false,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s: expected %v (%T), got %v (%T)", k, v, v, got[k], got[k])
		}
	}

	if vals := config.ChartValues(schema.Default(), "pie"); len(vals) != 0 {
		t.Errorf("expected no pie values, got %v", vals)
	}
}

func TestLoadFromPath(t *testing.T) {
	t.Run("missing file yields empty config", func(t *testing.T) {
		config, err := LoadFromPath(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(config.Global) != 0 || len(config.Charts) != 0 {
			t.Fatalf("expected empty config, got %+v", config)
		}
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		if err := os.WriteFile(path, []byte("chart-type pie\n"), 0644); err != nil {
			t.Fatal(err)
		}
		config, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, _ := config.GetGlobalOption(KeyChartType); v != "pie" {
			t.Fatalf("expected pie, got %q", v)
		}
	})

	t.Run("rejects symlinks", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target")
		link := filepath.Join(dir, "link")
		if err := os.WriteFile(target, []byte("chart-type pie\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
		if _, err := LoadFromPath(link); err == nil {
			t.Fatal("expected symlink to be rejected")
		}
	})
}

func TestLoadUsesConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("storage.backend none\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := config.GetGlobalOption(KeyStorageBackend); v != "none" {
		t.Fatalf("expected none, got %q", v)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", "On"} {
		if v, err := parseBool(s); err != nil || !v {
			t.Errorf("parseBool(%q) = %v, %v", s, v, err)
		}
	}
	for _, s := range []string{"false", "0", "no", "OFF"} {
		if v, err := parseBool(s); err != nil || v {
			t.Errorf("parseBool(%q) = %v, %v", s, v, err)
		}
	}
	if _, err := parseBool("maybe"); err == nil {
		t.Error("expected error for maybe")
	}
}
