// Package lang skips documents that are not written in the configured
// language, so single-language tokenization only sees text it can handle.
package lang

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// sampleBytes bounds how much of a document is fed to the detector.
const sampleBytes = 4096

// candidates are the languages the detector chooses between besides the target.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Chinese,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Russian,
	lingua.Japanese,
	lingua.Korean,
}

// Detector is the subset of lingua.LanguageDetector the guard needs.
type Detector interface {
	DetectLanguageOf(text string) (lingua.Language, bool)
}

// Guard accepts documents written in one target language.
// A nil *Guard accepts everything.
type Guard struct {
	target   lingua.Language
	detector Detector
}

// Parse resolves an ISO 639-1 code such as "en".
func Parse(code string) (lingua.Language, error) {
	code = strings.TrimSpace(code)
	for _, l := range lingua.AllLanguages() {
		if strings.EqualFold(l.IsoCode639_1().String(), code) {
			return l, nil
		}
	}
	return lingua.Unknown, fmt.Errorf("unknown language code %q", code)
}

// NewGuard builds a guard for the given ISO 639-1 code.
func NewGuard(code string) (*Guard, error) {
	target, err := Parse(code)
	if err != nil {
		return nil, err
	}

	langs := []lingua.Language{target}
	for _, l := range candidates {
		if l != target {
			langs = append(langs, l)
		}
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	return NewGuardWithDetector(target, detector), nil
}

// NewGuardWithDetector builds a guard around an existing detector.
func NewGuardWithDetector(target lingua.Language, d Detector) *Guard {
	return &Guard{target: target, detector: d}
}

// Accept reports whether text should be processed. Text the detector
// cannot classify is accepted.
func (g *Guard) Accept(text string) bool {
	if g == nil || g.detector == nil {
		return true
	}
	detected, ok := g.detector.DetectLanguageOf(sample(text))
	if !ok {
		return true
	}
	return detected == g.target
}

// Target returns the accepted language, or "" for a nil guard.
func (g *Guard) Target() string {
	if g == nil {
		return ""
	}
	return strings.ToLower(g.target.IsoCode639_1().String())
}

func sample(text string) string {
	if len(text) <= sampleBytes {
		return text
	}
	cut := sampleBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
