// Package textrank extracts keywords from text by ranking a word
// co-occurrence graph with weighted PageRank.
package textrank

import (
	"context"
	"fmt"
	"io"

	"github.com/cognicore/textrank/internal/ctxlog"
	"github.com/cognicore/textrank/pkg/textrank/config"
	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/ingest"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/pagerank"
	"github.com/cognicore/textrank/pkg/textrank/pajek"
	"github.com/cognicore/textrank/pkg/textrank/rank"
)

// CandidateFilter turns raw text into the ordered, normalized candidate
// words that become graph nodes.
type CandidateFilter interface {
	Candidates(text string) []string
}

// Options configures an Extractor. The zero value selects the defaults:
// window 5, no keyword limit, self-loops kept and the default solver.
type Options struct {
	Filter        CandidateFilter  // nil uses ingest.Default()
	Window        int              // co-occurrence window, 0 means graph.DefaultWindow
	TopN          *int             // default keyword limit, nil keeps all
	DropSelfLoops bool             // skip edges between equal words
	PageRank      pagerank.Options // zero value means pagerank.DefaultOptions()
}

// DefaultOptions returns window 5, no keyword limit, self-loops kept and
// the default solver parameters.
func DefaultOptions() Options {
	return Options{
		Window:   graph.DefaultWindow,
		PageRank: pagerank.DefaultOptions(),
	}
}

// Extractor is the keyword extraction facade. It is immutable after New
// and safe for concurrent use as long as its filter is.
type Extractor struct {
	filter    CandidateFilter
	window    int
	topN      *int
	selfLoops bool
	pr        pagerank.Options
}

// New creates an Extractor with the given dependencies
func New(opts Options) (*Extractor, error) {
	if opts.Filter == nil {
		opts.Filter = ingest.Default()
	}
	if opts.Window == 0 {
		opts.Window = graph.DefaultWindow
	}
	if opts.Window < 0 {
		return nil, fmt.Errorf("window %d must be positive: %w", opts.Window, internalerr.ErrInvalidParameter)
	}
	if opts.PageRank == (pagerank.Options{}) {
		opts.PageRank = pagerank.DefaultOptions()
	}
	if err := opts.PageRank.Validate(); err != nil {
		return nil, err
	}
	var topN *int
	if opts.TopN != nil {
		topN = rank.Top(*opts.TopN)
	}
	return &Extractor{
		filter:    opts.Filter,
		window:    opts.Window,
		topN:      topN,
		selfLoops: !opts.DropSelfLoops,
		pr:        opts.PageRank,
	}, nil
}

// FromSettings builds an Extractor and its candidate filter from loaded
// settings.
func FromSettings(s config.Settings) (*Extractor, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	loader := s.Loader()
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return New(Options{
		Filter:        comp.Pipeline,
		Window:        s.Window,
		TopN:          s.TopN,
		DropSelfLoops: !s.SelfLoops,
		PageRank:      s.PageRank(),
	})
}

// ExtractOptions overrides the extractor defaults for one call.
type ExtractOptions struct {
	Window int  // 0 keeps the extractor's window, negative is invalid
	TopN   *int // nil keeps the extractor's limit
	All    bool // ignore every limit and return all keywords
}

// Result is the outcome of one extraction.
type Result struct {
	Keywords   []rank.Keyword `json:"keywords"`
	Candidates int            `json:"candidates"`
	Graph      graph.Stats    `json:"graph"`
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
}

// Extract ranks the keywords of text. Text without candidates yields an
// empty keyword list, not an error. Failing to converge within the
// iteration bound is reported through Result.Converged.
func (e *Extractor) Extract(ctx context.Context, text string, opts ExtractOptions) (Result, error) {
	words, g, err := e.build(ctx, text, opts.Window)
	if err != nil {
		return Result{}, err
	}

	res, err := pagerank.Solve(g, e.pr)
	if err != nil {
		return Result{}, err
	}

	log := ctxlog.FromContext(ctx)
	stats := g.Stats()
	log.Debug("pagerank solved",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"iterations", res.Iterations,
		"delta", res.Delta)
	if !res.Converged {
		log.Warn("pagerank did not converge",
			"iterations", res.Iterations,
			"delta", res.Delta,
			"tolerance", e.pr.Tolerance)
	}

	topN := e.topN
	if opts.TopN != nil {
		topN = opts.TopN
	}
	if opts.All {
		topN = nil
	}

	return Result{
		Keywords:   rank.Rank(res.Scores, g.Nodes(), topN),
		Candidates: len(words),
		Graph:      stats,
		Iterations: res.Iterations,
		Converged:  res.Converged,
	}, nil
}

// Graph returns the co-occurrence graph of text.
func (e *Extractor) Graph(ctx context.Context, text string, window int) (*graph.Graph, error) {
	_, g, err := e.build(ctx, text, window)
	return g, err
}

// ExportGraph writes the co-occurrence graph of text to w in Pajek format.
func (e *Extractor) ExportGraph(ctx context.Context, text string, window int, w io.Writer) error {
	g, err := e.Graph(ctx, text, window)
	if err != nil {
		return err
	}
	return pajek.Write(w, g)
}

func (e *Extractor) build(ctx context.Context, text string, window int) ([]string, *graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if window == 0 {
		window = e.window
	}

	words := e.filter.Candidates(text)
	g, err := graph.Build(words, window, graph.WithSelfLoops(e.selfLoops))
	if err != nil {
		return nil, nil, err
	}
	if len(words) == 0 {
		ctxlog.FromContext(ctx).Debug("no candidate words", "bytes", len(text))
	}
	return words, g, nil
}
