package termfreq

import "sort"

// Table maps a term (token or phrase) to its occurrence count.
type Table map[string]int

// Entry is a single term with its count.
type Entry struct {
	Term  string
	Count int
}

// New creates an empty table.
func New() Table {
	return make(Table)
}

// Count builds a table with one count per occurrence of each term.
func Count(terms []string) Table {
	t := make(Table, len(terms))
	for _, term := range terms {
		t[term]++
	}
	return t
}

// Add increments term by n. Non-positive n is ignored so counts never go down.
func (t Table) Add(term string, n int) {
	if n <= 0 {
		return
	}
	t[term] += n
}

// Merge adds every count of other into t.
func (t Table) Merge(other Table) {
	for term, n := range other {
		t.Add(term, n)
	}
}

// Get returns the count for term (0 if absent).
func (t Table) Get(term string) int {
	return t[term]
}

// Total returns the sum of all counts.
func (t Table) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Clone returns an independent copy.
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for term, n := range t {
		c[term] = n
	}
	return c
}

// Equal reports whether both tables hold the same terms with the same counts.
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for term, n := range t {
		if m, ok := other[term]; !ok || m != n {
			return false
		}
	}
	return true
}

// Entries returns all entries ordered by count (desc), then term (asc).
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for term, n := range t {
		entries = append(entries, Entry{Term: term, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Term < entries[j].Term
	})
	return entries
}

// Top returns the n highest-count entries. n <= 0 returns all of them.
func (t Table) Top(n int) []Entry {
	entries := t.Entries()
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
