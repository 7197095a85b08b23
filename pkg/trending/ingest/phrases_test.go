package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestPhraseExtractorBigram(t *testing.T) {
	p := NewPhraseExtractor(3)
	tokens := []string{"robust", "model", "robust", "model", "robust", "model"}

	phrases := p.Extract(tokens)
	if !reflect.DeepEqual(phrases, []string{"robust model"}) {
		t.Errorf("Expected [robust model], got %v", phrases)
	}

	_, counts := p.ExtractWithCounts(tokens)
	if counts.Get("robust model") != 3 || len(counts) != 1 {
		t.Errorf("Expected {robust model:3}, got %v", counts)
	}

	candidates, _ := p.scan(tokens)
	if candidates.Get("model robust") != 2 {
		t.Errorf("Expected 'model robust' x2, got %d", candidates.Get("model robust"))
	}
	if candidates.Get("robust model robust") != 2 {
		t.Errorf("Expected trigram x2, got %d", candidates.Get("robust model robust"))
	}
}

func TestPhraseExtractorThresholdBoundary(t *testing.T) {
	p := NewPhraseExtractor(3)

	below := strings.Fields("graph neural filler graph neural filler")
	if phrases := p.Extract(below); len(phrases) != 0 {
		t.Errorf("Phrase seen minFreq-1 times must be excluded, got %v", phrases)
	}

	at := strings.Fields("graph neural aaa graph neural bbb graph neural")
	phrases := p.Extract(at)
	if !reflect.DeepEqual(phrases, []string{"graph neural"}) {
		t.Errorf("Phrase seen exactly minFreq times must be included, got %v", phrases)
	}
}

func TestPhraseExtractorTrigram(t *testing.T) {
	p := NewPhraseExtractor(2)
	tokens := strings.Fields("large language model aaa large language model")

	phrases := p.Extract(tokens)
	expected := []string{"large language", "language model", "large language model"}
	if !reflect.DeepEqual(phrases, expected) {
		t.Errorf("Expected %v (bigrams before trigrams), got %v", expected, phrases)
	}
}

func TestPhraseExtractorShortInput(t *testing.T) {
	p := NewPhraseExtractor(1)

	if phrases := p.Extract(nil); len(phrases) != 0 {
		t.Errorf("Nil tokens should give no phrases, got %v", phrases)
	}
	if phrases := p.Extract([]string{"single"}); len(phrases) != 0 {
		t.Errorf("One token should give no phrases, got %v", phrases)
	}

	phrases := p.Extract([]string{"two", "tokens"})
	if !reflect.DeepEqual(phrases, []string{"two tokens"}) {
		t.Errorf("Two tokens with minFreq 1 should give one bigram, got %v", phrases)
	}
}

func TestPhraseExtractorDefaultThreshold(t *testing.T) {
	if NewPhraseExtractor(0).MinFreq() != DefaultPhraseMinFreq {
		t.Error("Zero threshold should fall back to the default")
	}
	if NewPhraseExtractor(5).MinFreq() != 5 {
		t.Error("Explicit threshold should be kept")
	}
}

func TestPhraseExtractorDistinct(t *testing.T) {
	p := NewPhraseExtractor(1)
	tokens := strings.Fields("aaa bbb aaa bbb aaa bbb")

	seen := make(map[string]bool)
	for _, ph := range p.Extract(tokens) {
		if seen[ph] {
			t.Errorf("Phrase %q reported twice", ph)
		}
		seen[ph] = true
	}
}
