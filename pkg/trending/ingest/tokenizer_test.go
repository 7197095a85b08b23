package ingest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/stoplist"
)

func defaultTokenizer() *Tokenizer {
	stops := stoplist.NewManager(stoplist.English(), stoplist.DefaultCustom...)
	return NewTokenizer(stops, TokenizerOptions{})
}

func TestTokenizerBasic(t *testing.T) {
	tokenizer := defaultTokenizer()

	tokens := tokenizer.Tokenize("The quick brown fox jumps over the lazy dog")

	expected := []string{"quick", "brown", "fox", "jumps", "lazy", "dog"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerMarkdownHeadingAndCustomStopwords(t *testing.T) {
	tokenizer := defaultTokenizer()

	text := "## Show Using arXiv Paper Paper Paper robust model robust model robust model"
	tokens := tokenizer.Tokenize(text)

	expected := []string{"robust", "model", "robust", "model", "robust", "model"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerStopwordsAnyCase(t *testing.T) {
	tokenizer := defaultTokenizer()

	tokens := tokenizer.Tokenize("THE Between ARXIV Paper WHICH network")
	if !reflect.DeepEqual(tokens, []string{"network"}) {
		t.Errorf("Stopwords must be removed regardless of case, got %v", tokens)
	}
}

func TestTokenizerCodeBlockExcluded(t *testing.T) {
	tokenizer := defaultTokenizer()

	text := "diffusion models\n```python\nimport torch\nclassifier = build()\n```\nscaling laws"
	tokens := tokenizer.Tokenize(text)

	expected := []string{"diffusion", "models", "scaling", "laws"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerCodeBlocksNonGreedy(t *testing.T) {
	tokenizer := defaultTokenizer()

	text := "```\nhidden\n``` visible ```\nsecret\n``` remains"
	tokens := tokenizer.Tokenize(text)

	expected := []string{"visible", "remains"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerMarkdownSyntaxSplits(t *testing.T) {
	tokenizer := defaultTokenizer()

	text := "**bold**text [link](target) machine-learning ![image](alt)"
	tokens := tokenizer.Tokenize(text)

	expected := []string{"bold", "text", "link", "target", "machine", "learning", "image", "alt"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerPunctuationAndNumbers(t *testing.T) {
	tokenizer := defaultTokenizer()

	text := "Hello, world! It's 2024; results: 12345 tokens."
	tokens := tokenizer.Tokenize(text)

	expected := []string{"hello", "world", "results", "tokens"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerMinWordLength(t *testing.T) {
	tokenizer := NewTokenizer(nil, TokenizerOptions{MinWordLength: 5})

	tokens := tokenizer.Tokenize("tiny small large gigantic")
	expected := []string{"small", "large", "gigantic"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}

	if tokenizer.MinWordLength() != 5 {
		t.Errorf("Expected min length 5, got %d", tokenizer.MinWordLength())
	}
	if NewTokenizer(nil, TokenizerOptions{}).MinWordLength() != DefaultMinWordLength {
		t.Error("Zero option should fall back to the default")
	}
}

func TestTokenizerCurlyApostrophe(t *testing.T) {
	tokenizer := defaultTokenizer()

	tokens := tokenizer.Tokenize("Don’t stop")
	if !reflect.DeepEqual(tokens, []string{"stop"}) {
		t.Errorf("Curly apostrophe contraction should match the stoplist, got %v", tokens)
	}
}

func TestTokenizerPossessivesAndContractions(t *testing.T) {
	tokenizer := defaultTokenizer()

	tests := []struct {
		text     string
		expected []string
	}{
		{"The arXiv's benchmark improves the model's accuracy", []string{"benchmark", "improves", "model", "accuracy"}},
		{"paper's results", []string{"results"}},
		{"transformer’s attention", []string{"transformer", "attention"}},
		{"they've mightn't needn't we'll see", []string{"see"}},
		{"models' outputs", []string{"models", "outputs"}},
	}
	for _, tt := range tests {
		tokens := tokenizer.Tokenize(tt.text)
		if !reflect.DeepEqual(tokens, tt.expected) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, tokens, tt.expected)
		}
	}
}

func TestTokenizerPossessiveMergesWithBaseWord(t *testing.T) {
	p := NewPipeline(defaultTokenizer(), NewPhraseExtractor(3))

	doc := p.Process("robust model's. robust model. the robust model’s score")
	if doc.Terms.Get("model") != 3 || doc.Terms.Get("robust model") != 3 {
		t.Errorf("Possessive should count toward the base word and its phrases, got %v", doc.Terms)
	}
	if doc.Terms.Get("model's") != 0 {
		t.Errorf("Clitic form must not be counted, got %v", doc.Terms)
	}
}

func TestTokenizerUnicodeCharacters(t *testing.T) {
	tokenizer := defaultTokenizer()

	tokens := tokenizer.Tokenize("Café RÉSUMÉ naïve")
	expected := []string{"café", "résumé", "naïve"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerEmptyInput(t *testing.T) {
	tokenizer := defaultTokenizer()

	if tokens := tokenizer.Tokenize(""); len(tokens) != 0 {
		t.Errorf("Empty input should produce empty output, got %v", tokens)
	}
	if tokens := tokenizer.Tokenize("   \t\n\r   "); len(tokens) != 0 {
		t.Errorf("Whitespace-only input should produce 0 tokens, got %v", tokens)
	}
}

func TestTokenizerOnlySpecialCharacters(t *testing.T) {
	tokenizer := NewTokenizer(nil, TokenizerOptions{MinWordLength: 1})

	tokens := tokenizer.Tokenize("!@#$%^&*()_+-=[]{}|;':\",./<>? ... ---")
	if len(tokens) != 0 {
		t.Errorf("Special characters should produce 0 tokens, got %v", tokens)
	}
}

func TestTokenizerNoPunctuationInTokens(t *testing.T) {
	tokenizer := defaultTokenizer()

	text := "# Title\n* item one, (nested) [ref] -- done! **strong** `inline code`"
	for _, tok := range tokenizer.Tokenize(text) {
		if strings.ContainsAny(tok, "#!*-[](),`") {
			t.Errorf("Token %q contains markup or punctuation", tok)
		}
		if tok != strings.ToLower(tok) {
			t.Errorf("Token %q should be lowercased", tok)
		}
	}
}

func TestTokenizerIdempotent(t *testing.T) {
	tokenizer := defaultTokenizer()

	texts := []string{
		"## Show Using arXiv Paper robust model robust model",
		"Large Language Models (LLMs) are few-shot learners; see [this](link).",
		"Café résumé naïve 2024 x86 model's weights",
	}
	for _, text := range texts {
		first := tokenizer.Tokenize(text)
		for _, tok := range first {
			if strings.ContainsRune(tok, '\'') {
				t.Errorf("Token %q still carries an apostrophe", tok)
			}
		}
		second := tokenizer.Tokenize(strings.Join(first, " "))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Re-tokenizing changed output: %v -> %v", first, second)
		}
	}
}

func TestTokenizerStripHTML(t *testing.T) {
	stops := stoplist.NewManager(stoplist.English())
	plain := NewTokenizer(stops, TokenizerOptions{})
	stripping := NewTokenizer(stops, TokenizerOptions{StripHTML: true})

	text := `<div class="abstract">Sparse attention</div><script>var hidden = 1;</script>`

	got := stripping.Tokenize(text)
	expected := []string{"sparse", "attention"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if tokens := plain.Tokenize(text); reflect.DeepEqual(tokens, expected) {
		t.Errorf("Without StripHTML tag names should survive, got %v", tokens)
	}
}
