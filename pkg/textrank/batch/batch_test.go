package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/textrank/pkg/textrank"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/pajek"
)

// fieldsFilter uses every whitespace-separated word as a candidate.
type fieldsFilter struct{}

func (fieldsFilter) Candidates(text string) []string { return strings.Fields(text) }

func newExtractor(t *testing.T) *textrank.Extractor {
	t.Helper()
	opts := textrank.DefaultOptions()
	opts.Filter = fieldsFilter{}
	opts.Window = 3
	ex, err := textrank.New(opts)
	require.NoError(t, err)
	return ex
}

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestFiles(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"b.md":        "x",
		"a.txt":       "x",
		"c.bin":       "x",
		"sub/d.html":  "<p>x</p>",
		"sub/e.TXT":   "x",
		"single.data": "x",
	})

	got, err := Files([]string{filepath.Join(dir, "single.data"), dir})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "single.data"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "sub", "d.html"),
		filepath.Join(dir, "sub", "e.TXT"),
	}, got)

	_, err = Files([]string{filepath.Join(dir, "missing")})
	require.ErrorIs(t, err, internalerr.ErrIO)
}

func TestAnalyze(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt": "cat dog cat bird dog",
		"b.txt": "graph rank graph",
	})
	paths := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "missing.txt"),
		filepath.Join(dir, "b.txt"),
	}

	rep, err := Analyze(context.Background(), newExtractor(t), paths, Options{Concurrency: 2})
	require.NoError(t, err)

	require.Len(t, rep.Results, 2)
	require.Equal(t, paths[0], rep.Results[0].Path)
	require.Equal(t, paths[2], rep.Results[1].Path)
	require.Equal(t, "bird", rep.Results[0].Result.Keywords[2].Word)
	require.Equal(t, "graph", rep.Results[1].Result.Keywords[0].Word)
	require.Equal(t, "utf-8", rep.Results[0].Encoding)

	require.Len(t, rep.Failures, 1)
	require.Equal(t, paths[1], rep.Failures[0].Path)
	require.ErrorIs(t, rep.Failures[0].Err, internalerr.ErrIO)
}

func TestAnalyzeTopN(t *testing.T) {
	dir := writeInputs(t, map[string]string{"a.txt": "cat dog cat bird dog"})
	one := 1
	rep, err := Analyze(context.Background(), newExtractor(t), []string{filepath.Join(dir, "a.txt")}, Options{TopN: &one})
	require.NoError(t, err)
	require.Len(t, rep.Results[0].Result.Keywords, 1)
}

func TestAnalyzeCanceled(t *testing.T) {
	dir := writeInputs(t, map[string]string{"a.txt": "cat dog"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, newExtractor(t), []string{filepath.Join(dir, "a.txt")}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExportDir(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt": "cat dog cat bird dog",
		"b.md":  "graph rank graph",
	})
	out := filepath.Join(t.TempDir(), "nets")
	paths := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.md"), filepath.Join(dir, "gone.txt")}

	written, failures, err := ExportDir(context.Background(), newExtractor(t), paths, out, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "a.net"), filepath.Join(out, "b.net")}, written)
	require.Len(t, failures, 1)

	data, err := os.ReadFile(filepath.Join(out, "a.net"))
	require.NoError(t, err)
	g, err := pajek.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "dog", "bird"}, g.Nodes())
	require.Equal(t, 3.0, g.Weight("cat", "dog"))
}

func TestExportCombined(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt": "cat dog cat bird dog",
		"b.txt": "graph rank graph",
	})
	paths := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}

	var buf bytes.Buffer
	failures, err := ExportCombined(context.Background(), newExtractor(t), paths, &buf, Options{})
	require.NoError(t, err)
	require.Empty(t, failures)

	nets, err := pajek.ParseAll(&buf)
	require.NoError(t, err)
	require.Len(t, nets, 2)
	require.Equal(t, "a.txt", nets[0].Name)
	require.Equal(t, "b.txt", nets[1].Name)
	require.Equal(t, []string{"graph", "rank"}, nets[1].Graph.Nodes())
	require.Equal(t, 1.0, nets[1].Graph.Weight("graph", "graph"))
}

func TestNetworkName(t *testing.T) {
	require.Equal(t, "notes.txt", NetworkName("/tmp/docs/notes.txt"))
	require.Equal(t, "archive.tar.gz", NetworkName("archive.tar.gz"))
	require.Equal(t, "README", NetworkName("README"))
}

func TestOutputNames(t *testing.T) {
	got := OutputNames([]string{
		"docs/notes.md",
		"docs/notes.txt",
		"docs/summary.txt",
		"other/summary.txt",
		"README",
	})
	require.Equal(t, []string{"notes.md.net", "notes.txt.net", "summary.txt.net", "", "README.net"}, got)
}

func TestExportDirSharedStem(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"notes.md":  "cat dog cat",
		"notes.txt": "graph rank graph",
	})
	out := t.TempDir()
	paths := []string{filepath.Join(dir, "notes.md"), filepath.Join(dir, "notes.txt")}

	written, failures, err := ExportDir(context.Background(), newExtractor(t), paths, out, Options{})
	require.NoError(t, err)
	require.Empty(t, failures)
	require.Equal(t, []string{filepath.Join(out, "notes.md.net"), filepath.Join(out, "notes.txt.net")}, written)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(out, "notes.txt.net"))
	require.NoError(t, err)
	g, err := pajek.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"graph", "rank"}, g.Nodes())
}

func TestExportDirNameCollision(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"x/notes.txt": "cat dog cat",
		"y/notes.txt": "graph rank graph",
	})
	out := t.TempDir()
	paths := []string{filepath.Join(dir, "x", "notes.txt"), filepath.Join(dir, "y", "notes.txt")}

	written, failures, err := ExportDir(context.Background(), newExtractor(t), paths, out, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "notes.txt.net")}, written)
	require.Len(t, failures, 1)
	require.Equal(t, paths[1], failures[0].Path)
	require.ErrorIs(t, failures[0].Err, internalerr.ErrInvalidInput)

	data, err := os.ReadFile(filepath.Join(out, "notes.txt.net"))
	require.NoError(t, err)
	g, err := pajek.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "dog"}, g.Nodes())
}

func TestFailureJSON(t *testing.T) {
	data, err := json.Marshal(Failure{Path: "a.txt", Err: internalerr.ErrIO})
	require.NoError(t, err)
	require.JSONEq(t, `{"path":"a.txt","error":"i/o failure"}`, string(data))
}
