package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinWordLength != 3 || cfg.PhraseMinFreq != 3 {
		t.Errorf("Unexpected thresholds: %d %d", cfg.MinWordLength, cfg.PhraseMinFreq)
	}
	if cfg.OutputDir != "./phrase_clouds" {
		t.Errorf("Unexpected output dir %q", cfg.OutputDir)
	}
	if cfg.Render.Width != 2000 || cfg.Render.Height != 1500 || cfg.Render.MaxWords != 150 {
		t.Errorf("Unexpected render defaults: %+v", cfg.Render)
	}
	if len(cfg.CustomStopwords) != 4 {
		t.Errorf("Expected 4 custom stopwords, got %v", cfg.CustomStopwords)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "trending.yaml", `
input_dir: /notes
min_word_length: 4
phrase_min_freq: 2
custom_stopwords: [foo]
workers: 8
render:
  width: 800
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputDir != "/notes" || cfg.MinWordLength != 4 || cfg.PhraseMinFreq != 2 || cfg.Workers != 8 {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if len(cfg.CustomStopwords) != 1 || cfg.CustomStopwords[0] != "foo" {
		t.Errorf("Custom stopwords should be replaced, got %v", cfg.CustomStopwords)
	}
	// Unset keys keep their defaults
	if cfg.Render.Width != 800 || cfg.Render.Height != 1500 {
		t.Errorf("Render merge wrong: %+v", cfg.Render)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging merge wrong: %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRENDING_INPUT_DIR", "/env/notes")
	t.Setenv("TRENDING_PHRASE_MIN_FREQ", "5")
	t.Setenv("TRENDING_WORKERS", "not-a-number")
	t.Setenv("TRENDING_CUSTOM_STOPWORDS", "alpha, beta,,")
	t.Setenv("TRENDING_STRIP_HTML", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InputDir != "/env/notes" || cfg.PhraseMinFreq != 5 {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
	if cfg.Workers != 1 {
		t.Errorf("Unparseable value should be ignored, got %d", cfg.Workers)
	}
	if len(cfg.CustomStopwords) != 2 || cfg.CustomStopwords[1] != "beta" {
		t.Errorf("Unexpected stopwords %v", cfg.CustomStopwords)
	}
	if !cfg.StripHTML {
		t.Error("StripHTML should be enabled")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/trending.yaml"); err == nil {
		t.Error("Should error on missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "workers: [1, 2\n")
	if _, err := Load(path); err == nil {
		t.Error("Should error on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"min word length", func(c *Config) { c.MinWordLength = 0 }},
		{"phrase min freq", func(c *Config) { c.PhraseMinFreq = 0 }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"width", func(c *Config) { c.Render.Width = -1 }},
		{"max words", func(c *Config) { c.Render.MaxWords = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "zero.yaml", "phrase_min_freq: 0\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
