package output

import (
	"unicode"
	"unicode/utf8"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// DefaultMinLength is the shortest term kept for visualization.
const DefaultMinLength = 3

// Filter removes entries that are not worth drawing: terms shorter than
// MinLength runes and terms made only of digits.
type Filter struct {
	MinLength int
}

// NewFilter returns a filter with the default minimum length.
func NewFilter() Filter {
	return Filter{MinLength: DefaultMinLength}
}

// Apply returns the kept subset of t with counts unchanged.
// ok is false when nothing is left to visualize.
func (f Filter) Apply(t termfreq.Table) (kept termfreq.Table, ok bool) {
	minLen := f.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}

	kept = termfreq.New()
	for term, n := range t {
		if utf8.RuneCountInString(term) < minLen || isDigits(term) {
			continue
		}
		kept[term] = n
	}
	return kept, len(kept) > 0
}

func isDigits(s string) bool {
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
