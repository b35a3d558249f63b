package graph

import (
	"fmt"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// DefaultWindow is the co-occurrence window used when none is configured.
const DefaultWindow = 5

type buildOptions struct {
	selfLoops bool
}

// Option adjusts how Build accumulates edges.
type Option func(*buildOptions)

// WithSelfLoops controls whether a word co-occurring with itself inside
// one window adds to a self-loop. Self-loops are kept by default.
func WithSelfLoops(keep bool) Option {
	return func(o *buildOptions) { o.selfLoops = keep }
}

// WithoutSelfLoops drops self co-occurrences.
func WithoutSelfLoops() Option {
	return WithSelfLoops(false)
}

// Build constructs the co-occurrence graph for an ordered candidate
// sequence.
//
// Every distinct word becomes a node. For each position i, the pairs
// (i, j) with i < j < i+window add 1 to the weight of the unordered edge
// between words[i] and words[j]. A window of 1 yields an edgeless graph.
func Build(words []string, window int, opts ...Option) (*Graph, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window size %d: %w", window, internalerr.ErrInvalidParameter)
	}
	o := buildOptions{selfLoops: true}
	for _, opt := range opts {
		opt(&o)
	}

	g := newGraph(len(words))
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = g.addNode(w)
	}

	for i := range ids {
		end := min(i+window, len(ids))
		for j := i + 1; j < end; j++ {
			if ids[i] == ids[j] && !o.selfLoops {
				continue
			}
			g.addWeight(ids[i], ids[j], 1)
		}
	}
	return g, nil
}
