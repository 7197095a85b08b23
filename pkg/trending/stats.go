package trending

import (
	"math"
	"sort"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/stoplist"
)

// StopwordStats reports how every term is spread over the run's months.
// With fewer than two months there is no spread to measure and the result
// is empty.
func (e *Engine) StopwordStats() []stoplist.Stats {
	snap := e.agg.Snapshot()
	months := len(snap)
	if months < 2 {
		return nil
	}

	perTerm := make(map[string][]int)
	for _, table := range snap {
		for term, n := range table {
			if n > 0 {
				perTerm[term] = append(perTerm[term], n)
			}
		}
	}

	stats := make([]stoplist.Stats, 0, len(perTerm))
	for term, counts := range perTerm {
		total := 0
		for _, n := range counts {
			total += n
		}
		stats = append(stats, stoplist.Stats{
			Token:        term,
			Count:        total,
			MonthPercent: 100 * float64(len(counts)) / float64(months),
			Entropy:      normalizedEntropy(counts, total, months),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Token < stats[j].Token })
	return stats
}

// normalizedEntropy is the Shannon entropy of counts divided by log(months),
// so a term spread evenly over every month scores 1.
func normalizedEntropy(counts []int, total, months int) float64 {
	if total == 0 || months < 2 {
		return 0
	}
	var h float64
	for _, n := range counts {
		p := float64(n) / float64(total)
		h -= p * math.Log(p)
	}
	return h / math.Log(float64(months))
}
