package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("server address = %q", cfg.Server.Address)
	}
	if cfg.Storage.Driver != "memory" || cfg.Persist.Driver != "memory" {
		t.Errorf("drivers = %q / %q", cfg.Storage.Driver, cfg.Persist.Driver)
	}
	if cfg.Persist.Workers != 2 {
		t.Errorf("workers = %d", cfg.Persist.Workers)
	}
	if cfg.LLM.OpenAI.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("api key env = %q", cfg.LLM.OpenAI.APIKeyEnv)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %q / %q", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Runtime.HistoryDepth != 10 {
		t.Errorf("history depth = %d", cfg.Runtime.HistoryDepth)
	}
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	payload := `{"market": {"table_path": "market.yaml"}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(dir, "market.yaml")
	if cfg.Market.TablePath != want {
		t.Errorf("table path = %q, want %q", cfg.Market.TablePath, want)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
