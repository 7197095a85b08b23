package ingest

import "github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"

// Pipeline orchestrates the per-document flow:
// text → tokenization → phrase extraction → term table
type Pipeline struct {
	tokenizer *Tokenizer
	phrases   *PhraseExtractor
}

// NewPipeline creates a pipeline with the given components
func NewPipeline(tokenizer *Tokenizer, phrases *PhraseExtractor) *Pipeline {
	return &Pipeline{
		tokenizer: tokenizer,
		phrases:   phrases,
	}
}

// ProcessedDoc represents a document after processing
type ProcessedDoc struct {
	Tokens  []string
	Phrases []string
	// Terms counts each token occurrence and each kept phrase with its
	// in-document frequency.
	Terms termfreq.Table
}

// Process runs one document's text through the pipeline.
func (p *Pipeline) Process(text string) ProcessedDoc {
	tokens := p.tokenizer.Tokenize(text)
	phrases, counts := p.phrases.ExtractWithCounts(tokens)

	terms := termfreq.Count(tokens)
	terms.Merge(counts)

	return ProcessedDoc{
		Tokens:  tokens,
		Phrases: phrases,
		Terms:   terms,
	}
}

// Tokenizer returns the pipeline's tokenizer.
func (p *Pipeline) Tokenizer() *Tokenizer {
	return p.tokenizer
}
