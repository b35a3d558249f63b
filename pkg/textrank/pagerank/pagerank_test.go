package pagerank

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

func sum(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}

func mustBuild(t *testing.T, words []string, window int) *graph.Graph {
	t.Helper()
	g, err := graph.Build(words, window)
	require.NoError(t, err)
	return g
}

func TestSolveEmptyGraph(t *testing.T) {
	res, err := Solve(mustBuild(t, nil, 5), DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, res.Scores)
	require.Zero(t, res.Iterations)
}

func TestSolveSingleNode(t *testing.T) {
	res, err := Solve(mustBuild(t, []string{"solo", "solo", "solo"}, 1), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"solo": 1}, res.Scores)
	require.True(t, res.Converged)
	require.Zero(t, res.Iterations)

	// A single node with a self-loop is still a single node.
	res, err = Solve(mustBuild(t, []string{"solo", "solo"}, 5), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1.0, res.Scores["solo"])
}

func TestSolveIsolatedNodesAreUniform(t *testing.T) {
	res, err := Solve(mustBuild(t, []string{"a", "b", "c", "d"}, 1), DefaultOptions())
	require.NoError(t, err)
	for _, label := range []string{"a", "b", "c", "d"} {
		require.InDelta(t, 0.25, res.Scores[label], 1e-12)
	}
	require.True(t, res.Converged)
}

func TestSolveCatDogBird(t *testing.T) {
	g := mustBuild(t, []string{"cat", "dog", "cat", "bird", "dog"}, 3)
	res, err := Solve(g, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Scores, 3)
	require.InDelta(t, 1.0, sum(res.Scores), 1e-6)
	require.GreaterOrEqual(t, res.Scores["dog"], res.Scores["bird"])
	require.GreaterOrEqual(t, res.Scores["cat"], res.Scores["bird"])
	require.True(t, res.Converged)
}

func TestSolveSymmetricPath(t *testing.T) {
	g := mustBuild(t, []string{"a", "b", "c"}, 2)
	res, err := Solve(g, DefaultOptions())
	require.NoError(t, err)

	require.InDelta(t, res.Scores["a"], res.Scores["c"], 1e-9)
	require.Greater(t, res.Scores["b"], res.Scores["a"])
}

func TestSolveStarCenterWins(t *testing.T) {
	g, err := graph.FromEdges(nil, []graph.Edge{
		{U: "hub", V: "s1", Weight: 1},
		{U: "hub", V: "s2", Weight: 1},
		{U: "hub", V: "s3", Weight: 1},
		{U: "hub", V: "s4", Weight: 1},
	})
	require.NoError(t, err)

	res, err := Solve(g, DefaultOptions())
	require.NoError(t, err)
	for _, leaf := range []string{"s1", "s2", "s3", "s4"} {
		require.Greater(t, res.Scores["hub"], res.Scores[leaf])
	}
}

func TestSolveDisconnectedWithDangling(t *testing.T) {
	g, err := graph.FromEdges([]string{"a", "b", "lonely"}, []graph.Edge{
		{U: "a", V: "b", Weight: 2},
	})
	require.NoError(t, err)

	res, err := Solve(g, DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 1.0, sum(res.Scores), 1e-9)
	require.InDelta(t, res.Scores["a"], res.Scores["b"], 1e-9)
	require.Greater(t, res.Scores["a"], res.Scores["lonely"])
	require.Greater(t, res.Scores["lonely"], 0.0)
}

func TestSolveWeightsMatter(t *testing.T) {
	g, err := graph.FromEdges(nil, []graph.Edge{
		{U: "x", V: "heavy", Weight: 9},
		{U: "x", V: "light", Weight: 1},
	})
	require.NoError(t, err)

	res, err := Solve(g, DefaultOptions())
	require.NoError(t, err)
	require.Greater(t, res.Scores["heavy"], res.Scores["light"])
}

func TestSolveMaxIterationsIsNotAnError(t *testing.T) {
	g := mustBuild(t, []string{"a", "b", "c", "a", "d", "e", "b"}, 2)
	opts := DefaultOptions()
	opts.MaxIterations = 1
	opts.Tolerance = 1e-15

	res, err := Solve(g, opts)
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 1, res.Iterations)
	require.InDelta(t, 1.0, sum(res.Scores), 1e-6)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative damping", Options{Damping: -0.1, Tolerance: 1e-6, MaxIterations: 10}},
		{"damping above one", Options{Damping: 1.5, Tolerance: 1e-6, MaxIterations: 10}},
		{"nan damping", Options{Damping: math.NaN(), Tolerance: 1e-6, MaxIterations: 10}},
		{"zero tolerance", Options{Damping: 0.85, Tolerance: 0, MaxIterations: 10}},
		{"zero iterations", Options{Damping: 0.85, Tolerance: 1e-6, MaxIterations: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.opts.Validate(), internalerr.ErrInvalidParameter)
			_, err := Solve(mustBuild(t, []string{"a"}, 1), tt.opts)
			require.ErrorIs(t, err, internalerr.ErrInvalidParameter)
		})
	}
	require.NoError(t, DefaultOptions().Validate())
}

// reference is a dense power iteration used to cross-check Solve.
func reference(g *graph.Graph, d float64, iters int) []float64 {
	n := g.Len()
	labels := g.Nodes()
	out := g.OutWeights()
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}
	for k := 0; k < iters; k++ {
		next := make([]float64, n)
		for v := 0; v < n; v++ {
			total := 0.0
			for u := 0; u < n; u++ {
				if out[u] == 0 {
					total += scores[u] / float64(n)
					continue
				}
				total += scores[u] * g.Weight(labels[u], labels[v]) / out[u]
			}
			next[v] = (1-d)/float64(n) + d*total
		}
		scores = next
	}
	return scores
}

func TestSolveMatchesDenseReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		words := make([]string, 5+rng.Intn(40))
		vocab := 2 + rng.Intn(10)
		for i := range words {
			words[i] = "t" + strconv.Itoa(rng.Intn(vocab))
		}
		g := mustBuild(t, words, 1+rng.Intn(5))

		opts := DefaultOptions()
		opts.Tolerance = 1e-12
		opts.MaxIterations = 1000
		res, err := Solve(g, opts)
		require.NoError(t, err)

		want := reference(g, opts.Damping, 1000)
		for i, label := range g.Nodes() {
			require.InDelta(t, want[i], res.Scores[label], 1e-8, "trial %d node %s", trial, label)
			require.Equal(t, res.Scores[label], res.Vector[i])
		}
		require.InDelta(t, 1.0, sum(res.Scores), 1e-6)
	}
}

func TestSolveScoresAlwaysSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 50; trial++ {
		nodes := make([]string, 1+rng.Intn(15))
		for i := range nodes {
			nodes[i] = "n" + strconv.Itoa(i)
		}
		var edges []graph.Edge
		for k := rng.Intn(20); k > 0; k-- {
			edges = append(edges, graph.Edge{
				U:      nodes[rng.Intn(len(nodes))],
				V:      nodes[rng.Intn(len(nodes))],
				Weight: float64(1 + rng.Intn(5)),
			})
		}
		g, err := graph.FromEdges(nodes, edges)
		require.NoError(t, err)

		res, err := Solve(g, DefaultOptions())
		require.NoError(t, err)
		require.InDelta(t, 1.0, sum(res.Scores), 1e-6, "trial %d", trial)
		for label, s := range res.Scores {
			require.GreaterOrEqual(t, s, 0.0, "trial %d node %s", trial, label)
		}
	}
}
