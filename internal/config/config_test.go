package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "./data/records.db"
corpus:
  dataset_path: "./data/dataset.json"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	wantDB := filepath.Join(dir, "data", "records.db")
	if cfg.Storage.DatabasePath != wantDB {
		t.Errorf("database_path = %s, want %s", cfg.Storage.DatabasePath, wantDB)
	}
	wantDataset := filepath.Join(dir, "data", "dataset.json")
	if cfg.Corpus.DatasetPath != wantDataset {
		t.Errorf("dataset_path = %s, want %s", cfg.Corpus.DatasetPath, wantDataset)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Dialog.FuzzyThreshold != 0.6 {
		t.Errorf("default fuzzy_threshold: got %f", cfg.Dialog.FuzzyThreshold)
	}
	if cfg.Ranking.MaxResults != 5 || cfg.Ranking.MinScore != 0.3 {
		t.Errorf("ranking defaults: %+v", cfg.Ranking)
	}
	if cfg.Fallback.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("default api_key_env: got %s", cfg.Fallback.APIKeyEnv)
	}
	if !cfg.Corpus.WatchOrDefault() {
		t.Error("watch should default to true")
	}
	if !cfg.Fallback.EnabledOrDefault() {
		t.Error("fallback should default to enabled")
	}
}

func TestCorpusConfig_WatchOrDefault(t *testing.T) {
	f := false
	c := CorpusConfig{Watch: &f}
	if c.WatchOrDefault() {
		t.Error("explicit false should win")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("/etc/custom.yaml"); got != "/etc/custom.yaml" {
		t.Errorf("explicit path: got %s", got)
	}
	dir := t.TempDir()
	oldwd, _ := os.Getwd()
	defer os.Chdir(oldwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if got := Resolve(""); got != DefaultPath {
		t.Errorf("no cwd config: got %s, want %s", got, DefaultPath)
	}
	if err := os.WriteFile("config.yaml", []byte("debug: true"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := Resolve(""); got != "config.yaml" {
		t.Errorf("cwd config: got %s", got)
	}
}
