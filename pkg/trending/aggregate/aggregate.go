package aggregate

import (
	"sort"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// Aggregator accumulates per-document term tables into per-month totals.
// Merging is purely additive, so the result does not depend on the order
// documents arrive in. An Aggregator is not safe for concurrent use; parallel
// callers keep one per worker and Combine them at the end.
type Aggregator struct {
	months map[string]termfreq.Table // month key -> accumulated counts
	docs   map[string]int64          // month key -> documents merged
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		months: make(map[string]termfreq.Table),
		docs:   make(map[string]int64),
	}
}

// Add merges one document's table into the bucket for month.
// An empty table still counts as a document but adds no terms.
func (a *Aggregator) Add(month string, table termfreq.Table) {
	a.docs[month]++
	a.bucket(month).Merge(table)
}

// Combine folds every bucket of other into a. other is left unchanged.
func (a *Aggregator) Combine(other *Aggregator) {
	if other == nil {
		return
	}
	for month, table := range other.months {
		a.bucket(month).Merge(table)
	}
	for month, n := range other.docs {
		a.docs[month] += n
	}
}

func (a *Aggregator) bucket(month string) termfreq.Table {
	t, ok := a.months[month]
	if !ok {
		t = termfreq.New()
		a.months[month] = t
	}
	return t
}

// Months returns the month keys seen so far in ascending order.
func (a *Aggregator) Months() []string {
	keys := make([]string, 0, len(a.docs))
	for m := range a.docs {
		keys = append(keys, m)
	}
	sort.Strings(keys)
	return keys
}

// Table returns a copy of the accumulated table for month.
func (a *Aggregator) Table(month string) (termfreq.Table, bool) {
	t, ok := a.months[month]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Docs returns the number of documents merged into month.
func (a *Aggregator) Docs(month string) int64 {
	return a.docs[month]
}

// TotalDocs returns the number of documents merged across all months.
func (a *Aggregator) TotalDocs() int64 {
	var n int64
	for _, d := range a.docs {
		n += d
	}
	return n
}

// Snapshot returns a deep copy of every month bucket.
func (a *Aggregator) Snapshot() map[string]termfreq.Table {
	out := make(map[string]termfreq.Table, len(a.months))
	for month, t := range a.months {
		out[month] = t.Clone()
	}
	return out
}
