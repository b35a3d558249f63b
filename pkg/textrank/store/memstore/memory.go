package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/rank"
	"github.com/cognicore/textrank/pkg/textrank/store"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot CLI sessions.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run, keyed by ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) (store.Run, error) {
	r = store.Prepare(r, time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return copyRun(r), nil
}

// GetRun implements store.Store.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// ListRuns implements store.Store.
func (s *Store) ListRuns(ctx context.Context, q store.Query) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []store.Run
	for _, r := range s.runs {
		if q.Source != "" && r.Source != q.Source {
			continue
		}
		runs = append(runs, copyRun(r))
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })
	if limit := q.EffectiveLimit(); len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// DeleteRun implements store.Store.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	delete(s.runs, id)
	return nil
}

func copyRun(r store.Run) store.Run {
	r.Keywords = append([]rank.Keyword(nil), r.Keywords...)
	if r.TopN != nil {
		n := *r.TopN
		r.TopN = &n
	}
	return r
}
