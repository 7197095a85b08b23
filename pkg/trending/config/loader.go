package config

import (
	"fmt"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/ingest"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/output"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/stoplist"
)

// Loader constructs components from a Config.
type Loader struct {
	Config *Config
}

// Components holds all loaded configuration components
type Components struct {
	Stoplist  *stoplist.Manager
	Tokenizer *ingest.Tokenizer
	Phrases   *ingest.PhraseExtractor
	Pipeline  *ingest.Pipeline
	Filter    output.Filter
}

// Load builds the stoplist, tokenizer, phrase extractor, pipeline and output
// filter. A nil Config means Default().
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := stoplist.English()
	if cfg.StoplistPath != "" {
		terms, err := stoplist.LoadYAML(cfg.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		base = terms
	}

	comp := &Components{
		Stoplist: stoplist.NewManager(base, cfg.CustomStopwords...),
		Phrases:  ingest.NewPhraseExtractor(cfg.PhraseMinFreq),
		Filter:   output.NewFilter(),
	}
	comp.Tokenizer = ingest.NewTokenizer(comp.Stoplist, ingest.TokenizerOptions{
		MinWordLength: cfg.MinWordLength,
		StripHTML:     cfg.StripHTML,
	})
	comp.Pipeline = ingest.NewPipeline(comp.Tokenizer, comp.Phrases)

	return comp, nil
}
