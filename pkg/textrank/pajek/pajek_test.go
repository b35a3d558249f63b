package pajek

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

func catDogBird(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build([]string{"cat", "dog", "cat", "bird", "dog"}, 3)
	require.NoError(t, err)
	return g
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, catDogBird(t)))

	want := strings.Join([]string{
		"*Vertices 3",
		`1 "cat"`,
		`2 "dog"`,
		`3 "bird"`,
		"*Edges",
		"1 1 1",
		"1 2 3",
		"1 3 1",
		"2 3 2",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestWriteEmptyGraph(t *testing.T) {
	g, err := graph.Build(nil, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g))
	require.Equal(t, "*Vertices 0\n*Edges\n", buf.String())
}

func TestFormatWeight(t *testing.T) {
	tests := map[float64]string{
		1:    "1",
		42:   "42",
		2.5:  "2.5",
		0.25: "0.25",
		1e6:  "1000000",
	}
	for in, want := range tests {
		require.Equal(t, want, FormatWeight(in), "weight %v", in)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]string{
		{"cat", "dog", "cat", "bird", "dog"},
		{"alpha", "beta", "gamma", "alpha", "delta", "beta", "beta", "epsilon"},
		{"only"},
		{"one", "two", "three", "four"},
	}
	for _, words := range inputs {
		for _, window := range []int{1, 2, 5} {
			g, err := graph.Build(words, window)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, g))

			back, err := Parse(&buf)
			require.NoError(t, err)
			require.Equal(t, g.Nodes(), back.Nodes())
			require.Equal(t, g.EdgeCount(), back.EdgeCount())
			require.Equal(t, g.Edges(), back.Edges())
		}
	}
}

func TestRoundTripFractionalWeights(t *testing.T) {
	g, err := graph.FromEdges([]string{"a", "b", "c"}, []graph.Edge{
		{U: "a", V: "b", Weight: 0.75},
		{U: "b", V: "c", Weight: 3},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g))
	require.Contains(t, buf.String(), "1 2 0.75\n")
	require.Contains(t, buf.String(), "2 3 3\n")

	back, err := Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, g.Edges(), back.Edges())
}

func TestWriteNetworksAndParseAll(t *testing.T) {
	g1 := catDogBird(t)
	g2, err := graph.Build([]string{"red", "green", "blue"}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteNetworks(&buf, []Named{
		{Name: "animals.txt", Graph: g1},
		{Name: "colors.txt", Graph: g2},
	}))
	require.True(t, strings.HasPrefix(buf.String(), "\n*Network animals.txt\n*Vertices 3\n"))

	nets, err := ParseAll(&buf)
	require.NoError(t, err)
	require.Len(t, nets, 2)
	require.Equal(t, "animals.txt", nets[0].Name)
	require.Equal(t, g1.Edges(), nets[0].Graph.Edges())
	require.Equal(t, "colors.txt", nets[1].Name)
	require.Equal(t, []string{"red", "green", "blue"}, nets[1].Graph.Nodes())
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"unknown section":     "*Vertices 1\n1 \"a\"\n*Matrix\n",
		"vertex out of range": "*Vertices 1\n2 \"a\"\n",
		"missing vertex":      "*Vertices 2\n1 \"a\"\n*Edges\n",
		"edge out of range":   "*Vertices 1\n1 \"a\"\n*Edges\n1 5 1\n",
		"bad weight":          "*Vertices 2\n1 \"a\"\n2 \"b\"\n*Edges\n1 2 x\n",
		"zero weight":         "*Vertices 2\n1 \"a\"\n2 \"b\"\n*Edges\n1 2 0\n",
		"edges first":         "*Edges\n1 2 1\n",
		"stray data":          "1 2 3\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			require.Error(t, err)
		})
	}
}

func TestParseDefaultsAndComments(t *testing.T) {
	input := "% generated\n*Vertices 2\n1 \"a b\"\n2 plain\n*Edges\n1 2\n"
	g, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"a b", "plain"}, g.Nodes())
	require.Equal(t, 1.0, g.Weight("a b", "plain"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSurfacesIOFailure(t *testing.T) {
	err := Write(failingWriter{}, catDogBird(t))
	require.Error(t, err)
	require.ErrorIs(t, err, internalerr.ErrIO)
	require.Contains(t, err.Error(), "disk full")

	err = WriteNetworks(failingWriter{}, []Named{{Name: "x", Graph: catDogBird(t)}})
	require.ErrorIs(t, err, internalerr.ErrIO)
}
