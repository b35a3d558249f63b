// Package storetest holds behaviour checks shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/rank"
	"github.com/cognicore/textrank/pkg/textrank/store"
)

// Run exercises st through the store.Store contract. st must be empty.
func Run(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()

	saved, err := st.SaveRun(ctx, store.Run{
		Source:     "notes.txt",
		Window:     3,
		TopN:       rank.Top(2),
		Keywords:   []rank.Keyword{{Word: "graph", Score: 0.6}, {Word: "rank", Score: 0.4}},
		Candidates: 7,
		Iterations: 12,
		Converged:  true,
	})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("SaveRun should assign ID and CreatedAt: %+v", saved)
	}

	got, err := st.GetRun(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Source != "notes.txt" || got.Window != 3 || got.Candidates != 7 || got.Iterations != 12 || !got.Converged {
		t.Errorf("GetRun returned %+v", got)
	}
	if got.TopN == nil || *got.TopN != 2 {
		t.Errorf("TopN = %v, want 2", got.TopN)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != (rank.Keyword{Word: "graph", Score: 0.6}) {
		t.Errorf("Keywords = %+v", got.Keywords)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}

	// Unlimited runs keep a nil TopN.
	all, err := st.SaveRun(ctx, store.Run{Source: "other.txt", Window: 5, Converged: false})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err = st.GetRun(ctx, all.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.TopN != nil || got.Converged {
		t.Errorf("unexpected run %+v", got)
	}

	if _, err := st.GetRun(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetRun(missing) error = %v, want ErrNotFound", err)
	}

	runs, err := st.ListRuns(ctx, store.Query{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != all.ID || runs[1].ID != saved.ID {
		t.Errorf("ListRuns should return newest first, got %d runs", len(runs))
	}

	runs, err = st.ListRuns(ctx, store.Query{Source: "notes.txt"})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != saved.ID {
		t.Errorf("ListRuns(source) = %+v", runs)
	}

	if err := st.DeleteRun(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if err := st.DeleteRun(ctx, saved.ID); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("second DeleteRun error = %v, want ErrNotFound", err)
	}
}

// RunLimit checks that ListRuns honours Query.Limit. st must be empty.
func RunLimit(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < store.DefaultLimit+5; i++ {
		_, err := st.SaveRun(ctx, store.Run{
			Source:    fmt.Sprintf("doc-%02d.txt", i),
			Window:    2,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := st.ListRuns(ctx, store.Query{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != store.DefaultLimit {
		t.Errorf("default limit: got %d runs, want %d", len(runs), store.DefaultLimit)
	}
	want := fmt.Sprintf("doc-%02d.txt", store.DefaultLimit+4)
	if runs[0].Source != want {
		t.Errorf("newest run = %q, want %q", runs[0].Source, want)
	}

	runs, err = st.ListRuns(ctx, store.Query{Limit: 3})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("limit 3: got %d runs", len(runs))
	}
}
