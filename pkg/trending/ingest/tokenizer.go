package ingest

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/stoplist"
)

// DefaultMinWordLength is the shortest token kept by default.
const DefaultMinWordLength = 3

var (
	codeFence = regexp.MustCompile("(?s)```.*?```")

	// markdown structure is replaced, not removed, so "[a](b)" stays two words
	markdownReplacer = strings.NewReplacer(
		"#", " ", "!", " ", "*", " ", "-", " ",
		"[", " ", "]", " ", "(", " ", ")", " ",
	)

	apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'")

	// Treebank clitics; UAX#29 keeps them inside the word
	clitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}
)

// TokenizerOptions configures filtering.
type TokenizerOptions struct {
	MinWordLength int  // tokens shorter than this (in runes) are dropped
	StripHTML     bool // remove inline HTML tags before tokenizing
}

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stops     *stoplist.Manager
	minLen    int
	stripHTML bool
}

// NewTokenizer creates a new tokenizer with the given stoplist.
// A nil stoplist filters no words.
func NewTokenizer(stops *stoplist.Manager, opts TokenizerOptions) *Tokenizer {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	minLen := opts.MinWordLength
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}
	return &Tokenizer{
		stops:     stops,
		minLen:    minLen,
		stripHTML: opts.StripHTML,
	}
}

// MinWordLength returns the effective minimum token length.
func (t *Tokenizer) MinWordLength() int {
	return t.minLen
}

// Tokenize turns raw markdown into an ordered sequence of filtered tokens.
// Fenced code blocks contribute nothing.
func (t *Tokenizer) Tokenize(text string) []string {
	text = codeFence.ReplaceAllString(text, "")
	if t.stripHTML {
		text = StripHTML(text)
	}
	text = markdownReplacer.Replace(text)
	text = normalize(text)

	var tokens []string
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if w := t.processToken(word); w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// normalize composes, unifies apostrophes and lowercases with English rules.
// A Caser keeps state, so one is created per call.
func normalize(text string) string {
	text = norm.NFC.String(text)
	text = apostropheReplacer.Replace(text)
	return cases.Lower(language.English).String(text)
}

// processToken returns the token if it survives filtering, or "".
func (t *Tokenizer) processToken(word string) string {
	// whitespace and punctuation segments
	if !hasWordRune(word) {
		return ""
	}
	// whole contractions such as "mightn't" are listed in the stoplist
	if t.stops.IsStop(word) {
		return ""
	}
	word = trimClitic(word)
	if isSinglePunct(word) {
		return ""
	}
	if utf8.RuneCountInString(word) < t.minLen {
		return ""
	}
	if isNumericOnly(word) {
		return ""
	}
	if t.stops.IsStop(word) {
		return ""
	}
	return word
}

// trimClitic drops a trailing possessive or contraction: "model's" becomes
// "model" and "don't" becomes "do".
func trimClitic(word string) string {
	for _, c := range clitics {
		if len(word) > len(c) && strings.HasSuffix(word, c) {
			return word[:len(word)-len(c)]
		}
	}
	return word
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

func isSinglePunct(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// isNumericOnly returns true if the token contains only digits.
func isNumericOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
