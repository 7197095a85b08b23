package ingest

import (
	"strings"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// DefaultPhraseMinFreq is the per-document frequency a phrase needs to be kept.
const DefaultPhraseMinFreq = 3

// phraseSizes are the window lengths considered, in emission order.
var phraseSizes = []int{2, 3}

// PhraseExtractor finds frequent 2- and 3-token phrases within one document.
// The threshold is per document: a phrase seen twice in many documents is
// never kept anywhere.
type PhraseExtractor struct {
	minFreq int
}

// NewPhraseExtractor creates an extractor keeping phrases seen at least
// minFreq times. Non-positive values use DefaultPhraseMinFreq.
func NewPhraseExtractor(minFreq int) *PhraseExtractor {
	if minFreq <= 0 {
		minFreq = DefaultPhraseMinFreq
	}
	return &PhraseExtractor{minFreq: minFreq}
}

// MinFreq returns the effective threshold.
func (p *PhraseExtractor) MinFreq() int {
	return p.minFreq
}

// Extract returns the distinct phrases reaching the threshold, in order of
// first appearance (all bigrams before trigrams).
func (p *PhraseExtractor) Extract(tokens []string) []string {
	phrases, _ := p.ExtractWithCounts(tokens)
	return phrases
}

// ExtractWithCounts is Extract plus the qualifying phrases' in-document
// counts.
func (p *PhraseExtractor) ExtractWithCounts(tokens []string) ([]string, termfreq.Table) {
	counts, order := p.scan(tokens)
	var phrases []string
	kept := make(termfreq.Table)
	for _, ph := range order {
		if counts[ph] >= p.minFreq {
			phrases = append(phrases, ph)
			kept[ph] = counts[ph]
		}
	}
	return phrases, kept
}

// scan slides each window size over tokens with stride one.
func (p *PhraseExtractor) scan(tokens []string) (termfreq.Table, []string) {
	counts := termfreq.New()
	if len(tokens) < 2 {
		return counts, nil
	}

	var order []string
	for _, n := range phraseSizes {
		for i := 0; i+n <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if _, seen := counts[phrase]; !seen {
				order = append(order, phrase)
			}
			counts[phrase]++
		}
	}
	return counts, order
}
