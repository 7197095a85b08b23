// Package config loads run settings from YAML with TRENDING_* environment
// overrides and builds the text-processing components from them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/ingest"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/stoplist"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full run configuration.
type Config struct {
	InputDir        string        `yaml:"input_dir"`
	OutputDir       string        `yaml:"output_dir"`
	MinWordLength   int           `yaml:"min_word_length"`
	PhraseMinFreq   int           `yaml:"phrase_min_freq"`
	CustomStopwords []string      `yaml:"custom_stopwords"`
	StoplistPath    string        `yaml:"stoplist_path"`
	StripHTML       bool          `yaml:"strip_html"`
	Language        string        `yaml:"language"`
	Workers         int           `yaml:"workers"`
	Render          RenderConfig  `yaml:"render"`
	StorePath       string        `yaml:"store_path"`
	MetricsPath     string        `yaml:"metrics_path"`
	Logging         LoggingConfig `yaml:"logging"`
}

// RenderConfig controls the word-cloud images.
type RenderConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	MaxWords int    `yaml:"max_words"`
	FontPath string `yaml:"font_path"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		InputDir:        "./",
		OutputDir:       "./phrase_clouds",
		MinWordLength:   ingest.DefaultMinWordLength,
		PhraseMinFreq:   ingest.DefaultPhraseMinFreq,
		CustomStopwords: append([]string(nil), stoplist.DefaultCustom...),
		Workers:         1,
		Render: RenderConfig{
			Width:    2000,
			Height:   1500,
			MaxWords: 150,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file (if path is non-empty) over the defaults
// and applies environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks numeric settings.
func (c *Config) Validate() error {
	switch {
	case c.MinWordLength < 1:
		return fmt.Errorf("%w: min_word_length must be >= 1, got %d", ErrInvalidConfig, c.MinWordLength)
	case c.PhraseMinFreq < 1:
		return fmt.Errorf("%w: phrase_min_freq must be >= 1, got %d", ErrInvalidConfig, c.PhraseMinFreq)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size must be positive, got %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	case c.Render.MaxWords <= 0:
		return fmt.Errorf("%w: render.max_words must be positive, got %d", ErrInvalidConfig, c.Render.MaxWords)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRENDING_INPUT_DIR"); v != "" {
		cfg.InputDir = v
	}
	if v := os.Getenv("TRENDING_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("TRENDING_MIN_WORD_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinWordLength = n
		}
	}
	if v := os.Getenv("TRENDING_PHRASE_MIN_FREQ"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PhraseMinFreq = n
		}
	}
	if v := os.Getenv("TRENDING_CUSTOM_STOPWORDS"); v != "" {
		cfg.CustomStopwords = splitList(v)
	}
	if v := os.Getenv("TRENDING_STOPLIST_PATH"); v != "" {
		cfg.StoplistPath = v
	}
	if v := os.Getenv("TRENDING_STRIP_HTML"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StripHTML = b
		}
	}
	if v := os.Getenv("TRENDING_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("TRENDING_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("TRENDING_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("TRENDING_METRICS_PATH"); v != "" {
		cfg.MetricsPath = v
	}
	if v := os.Getenv("TRENDING_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TRENDING_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
