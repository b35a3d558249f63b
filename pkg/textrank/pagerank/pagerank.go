package pagerank

import (
	"fmt"
	"math"

	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// Options configures the iterative solver.
type Options struct {
	Damping       float64 // probability of following an edge
	Tolerance     float64 // L1 distance between successive vectors that ends iteration
	MaxIterations int     // safety bound
}

// DefaultOptions returns damping 0.85, tolerance 1e-6 and 100 iterations.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// Validate checks that the options describe a usable solver.
func (o Options) Validate() error {
	if math.IsNaN(o.Damping) || o.Damping < 0 || o.Damping > 1 {
		return fmt.Errorf("damping %v outside [0,1]: %w", o.Damping, internalerr.ErrInvalidParameter)
	}
	if !(o.Tolerance > 0) {
		return fmt.Errorf("tolerance %v must be positive: %w", o.Tolerance, internalerr.ErrInvalidParameter)
	}
	if o.MaxIterations <= 0 {
		return fmt.Errorf("max iterations %d must be positive: %w", o.MaxIterations, internalerr.ErrInvalidParameter)
	}
	return nil
}

// Result holds the scores and convergence diagnostics of one solve.
type Result struct {
	// Scores maps every node label to its rank. Empty for an empty graph.
	Scores map[string]float64
	// Vector holds the same scores in graph node order.
	Vector []float64
	// Iterations is the number of full-vector updates performed.
	Iterations int
	// Converged is false when MaxIterations was reached first.
	Converged bool
	// Delta is the L1 distance of the last update.
	Delta float64
}

// arc is an incoming contribution: source node and its transition share.
type arc struct {
	from  int
	share float64
}

// Solve ranks the nodes of g with weighted PageRank.
//
// Each undirected edge of weight w is followed in both directions with
// weight w; a node's transition probability toward a neighbor is the
// edge weight divided by the node's total incident weight. Nodes without
// edges spread their mass uniformly over all nodes every iteration, so
// the score vector always sums to 1.
func Solve(g *graph.Graph, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	n := g.Len()
	switch n {
	case 0:
		return Result{Scores: map[string]float64{}, Converged: true}, nil
	case 1:
		return Result{
			Scores:    map[string]float64{g.Label(0): 1},
			Vector:    []float64{1},
			Converged: true,
		}, nil
	}

	out := g.OutWeights()
	in := make([][]arc, n)
	g.Adjacency(func(i, j int, w float64) {
		in[j] = append(in[j], arc{from: i, share: w / out[i]})
	})

	var dangling []int
	for i, w := range out {
		if w == 0 {
			dangling = append(dangling, i)
		}
	}

	nf := float64(n)
	d := opts.Damping
	base := (1 - d) / nf

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / nf
	}
	next := make([]float64, n)

	res := Result{}
	for res.Iterations < opts.MaxIterations {
		danglingMass := 0.0
		for _, i := range dangling {
			danglingMass += scores[i]
		}
		spread := danglingMass / nf

		delta := 0.0
		for v := range next {
			sum := 0.0
			for _, a := range in[v] {
				sum += scores[a.from] * a.share
			}
			next[v] = base + d*(sum+spread)
			delta += math.Abs(next[v] - scores[v])
		}

		scores, next = next, scores
		res.Iterations++
		res.Delta = delta
		if delta < opts.Tolerance {
			res.Converged = true
			break
		}
	}

	normalize(scores)
	res.Vector = scores
	res.Scores = make(map[string]float64, n)
	for i, s := range scores {
		res.Scores[g.Label(i)] = s
	}
	return res, nil
}

// normalize rescales v in place so it sums to 1.
func normalize(v []float64) {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total <= 0 {
		return
	}
	for i := range v {
		v[i] /= total
	}
}
