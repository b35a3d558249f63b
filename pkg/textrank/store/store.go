// Package store persists the history of keyword extraction runs.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/textrank/pkg/textrank/rank"
)

// Store is the interface for recording and querying extraction runs
type Store interface {
	Close() error

	// SaveRun records r, assigning an ID and creation time when missing,
	// and returns the stored run.
	SaveRun(ctx context.Context, r Run) (Run, error)
	// GetRun returns internalerr.ErrNotFound for an unknown id.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns runs newest first.
	ListRuns(ctx context.Context, q Query) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error
}

// Run is one recorded extraction.
type Run struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"` // file path or "-" for stdin
	Window     int            `json:"window"`
	TopN       *int           `json:"top_n,omitempty"`
	Keywords   []rank.Keyword `json:"keywords"`
	Candidates int            `json:"candidates"`
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Query filters ListRuns.
type Query struct {
	Source string // exact match, empty matches all
	Limit  int    // <= 0 means DefaultLimit
}

// DefaultLimit bounds ListRuns when no limit is given.
const DefaultLimit = 20

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a ULID for time t. IDs generated in the same
// millisecond are strictly increasing.
func NewID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Prepare fills in the ID and CreatedAt of r when they are unset.
func Prepare(r Run, now time.Time) Run {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	if r.ID == "" {
		r.ID = NewID(r.CreatedAt)
	}
	return r
}

// EffectiveLimit returns the limit of q, or DefaultLimit when unset.
func (q Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}
