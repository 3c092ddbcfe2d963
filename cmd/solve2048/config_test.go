package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseJSONConfigSuccess(t *testing.T) {
	path := writeTempConfig(t, `{"start-sum":6,"stop-sum":40,"initial-capacity":1024,"growth-factor":3.5,"key":"secret","quiet":true}`)

	var cfg Config
	if err := parseJSONConfig(&cfg, path); err != nil {
		t.Fatalf("parseJSONConfig returned error: %v", err)
	}

	if cfg.StartSum != 6 || cfg.StopSum != 40 {
		t.Fatalf("unexpected sum bounds: %+v", cfg)
	}
	if cfg.InitialCapacity != 1024 || cfg.GrowthFactor != 3.5 {
		t.Fatalf("unexpected capacity fields: %+v", cfg)
	}
	if cfg.Key != "secret" || !cfg.Quiet {
		t.Fatalf("unexpected key/quiet fields: %+v", cfg)
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	var cfg Config
	missing := filepath.Join(t.TempDir(), "missing.json")
	if err := parseJSONConfig(&cfg, missing); err == nil {
		t.Fatalf("parseJSONConfig expected error for missing file")
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
