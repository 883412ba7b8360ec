package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FactMaxChars != 2000 {
		t.Errorf("FactMaxChars = %d, want 2000", cfg.FactMaxChars)
	}
	if cfg.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want 127.0.0.1", cfg.Bind)
	}
	if cfg.Port != 8787 {
		t.Errorf("Port = %d, want 8787", cfg.Port)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FactMaxChars != 2000 {
		t.Errorf("FactMaxChars = %d, want default 2000", cfg.FactMaxChars)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"fact_max_chars": 500, "port": 9000, "disabled_tools": ["fact_refresh"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.FactMaxChars != 500 {
		t.Errorf("FactMaxChars = %d, want 500", cfg.FactMaxChars)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want default retained", cfg.Bind)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "fact_refresh" {
		t.Errorf("DisabledTools = %v, want [fact_refresh]", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load = nil error, want parse failure")
	}
}

func TestMerge(t *testing.T) {
	base := &Config{FactMaxChars: 100, Bind: "0.0.0.0", DisabledTools: []string{"a", "b"}}
	overlay := &Config{FactMaxChars: 200, DisabledTools: []string{" b ", "c", ""}}

	got := Merge(base, overlay)

	if got.FactMaxChars != 200 {
		t.Errorf("FactMaxChars = %d, want overlay 200", got.FactMaxChars)
	}
	if got.Bind != "0.0.0.0" {
		t.Errorf("Bind = %q, want base retained", got.Bind)
	}
	want := []string{"a", "b", "c"}
	if len(got.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", got.DisabledTools, want)
	}
	for i := range want {
		if got.DisabledTools[i] != want[i] {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, got.DisabledTools[i], want[i])
		}
	}
}
