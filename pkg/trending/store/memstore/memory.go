package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/store"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu     sync.RWMutex
	runs   map[string]store.Run
	months map[string]map[string]store.Month // run ID -> month -> data
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:   make(map[string]store.Run),
		months: make(map[string]map[string]store.Month),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or updates a run.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok, nil
}

// LatestRun returns the run with the greatest ID.
func (s *Store) LatestRun(ctx context.Context) (store.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		latest store.Run
		found  bool
	)
	for id, r := range s.runs {
		if !found || id > latest.ID {
			latest, found = r, true
		}
	}
	return latest, found, nil
}

// SaveMonth replaces one month of a run.
func (s *Store) SaveMonth(ctx context.Context, runID string, m store.Month) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.months[runID] == nil {
		s.months[runID] = make(map[string]store.Month)
	}
	m.Terms = m.Terms.Clone()
	s.months[runID][m.Month] = m
	return nil
}

// Months lists stored months of a run in ascending order.
func (s *Store) Months(ctx context.Context, runID string) ([]store.MonthSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.MonthSummary
	for _, m := range s.months[runID] {
		out = append(out, store.MonthSummary{
			Month: m.Month,
			Image: m.Image,
			Terms: len(m.Terms),
			Total: m.Terms.Total(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// MonthTable returns a copy of a stored month's table.
func (s *Store) MonthTable(ctx context.Context, runID, month string) (termfreq.Table, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.months[runID][month]
	if !ok {
		return nil, false, nil
	}
	return m.Terms.Clone(), true, nil
}
