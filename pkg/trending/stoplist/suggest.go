package stoplist

import (
	"sort"
	"strings"
)

// Stats describes how a token is spread over the months of a run.
type Stats struct {
	Token        string
	Count        int     // total occurrences
	MonthPercent float64 // share of months containing the token, 0..100
	Entropy      float64 // normalized entropy of the monthly counts, 0..1
}

// Candidate is a suggested custom stopword.
type Candidate struct {
	Token string
	Score float64
}

// Thresholds define when a token counts as background noise rather than a
// trend: present in most months with a near-uniform distribution.
type Thresholds struct {
	MonthPercent float64
	Entropy      float64
	MinCount     int
}

// DefaultThresholds returns the thresholds used by the CLI.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MonthPercent: 80.0,
		Entropy:      0.8,
		MinCount:     10,
	}
}

// SuggestCandidates returns tokens that meet all thresholds, highest score
// first. Phrases and existing stopwords are never suggested.
func (m *Manager) SuggestCandidates(stats []Stats, th Thresholds) []Candidate {
	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) || strings.Contains(s.Token, " ") {
			continue
		}
		if s.MonthPercent < th.MonthPercent || s.Entropy < th.Entropy || s.Count < th.MinCount {
			continue
		}
		candidates = append(candidates, Candidate{
			Token: s.Token,
			Score: (s.MonthPercent/100.0 + s.Entropy) / 2.0,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
