// Package batch runs keyword extraction and graph export over many files.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/textrank/internal/ctxlog"
	"github.com/cognicore/textrank/pkg/textrank"
	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/ingest"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/pajek"
)

// Extensions lists the file types picked up when a directory is expanded.
var Extensions = []string{".txt", ".md", ".text", ".html", ".htm"}

// Options configures a batch run.
type Options struct {
	Window      int    // 0 keeps the extractor's window
	TopN        *int   // nil keeps the extractor's limit
	All         bool   // ignore every keyword limit
	Encoding    string // preferred input encoding
	Concurrency int    // <= 0 uses GOMAXPROCS
}

// FileResult is the extraction outcome for one input file.
type FileResult struct {
	Path     string          `json:"path"`
	Encoding string          `json:"encoding"`
	Result   textrank.Result `json:"result"`
}

// Failure records an input that could not be processed.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string { return fmt.Sprintf("%s: %v", f.Path, f.Err) }

func (f Failure) Unwrap() error { return f.Err }

// MarshalJSON renders the failure as {"path": ..., "error": ...}.
func (f Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}{f.Path, fmt.Sprint(f.Err)})
}

// Report collects the per-file outcomes of a batch, in input order.
type Report struct {
	Results  []FileResult `json:"results"`
	Failures []Failure    `json:"failures,omitempty"`
}

// Files expands args into input files. Directories are walked for
// files with one of Extensions; plain files are kept as given.
func Files(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w: %w", arg, internalerr.ErrIO, err)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && hasExtension(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w: %w", arg, internalerr.ErrIO, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// outcome is the per-file slot filled by a worker.
type outcome[T any] struct {
	value T
	err   error
}

// each runs fn for every path with bounded parallelism. Per-file errors
// are kept in the returned slots; only context cancellation aborts.
func each[T any](ctx context.Context, paths []string, limit int, fn func(ctx context.Context, path string) (T, error)) ([]outcome[T], error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	slots := make([]outcome[T], len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(gctx, path)
			slots[i] = outcome[T]{value: v, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, ctx.Err()
}

// Analyze extracts keywords from every file in paths. Files that cannot
// be read or analysed are reported in Report.Failures and skipped.
func Analyze(ctx context.Context, ex *textrank.Extractor, paths []string, opts Options) (Report, error) {
	log := ctxlog.FromContext(ctx)

	slots, err := each(ctx, paths, opts.Concurrency, func(ctx context.Context, path string) (FileResult, error) {
		src, err := ingest.ReadFile(path, opts.Encoding)
		if err != nil {
			return FileResult{}, err
		}
		res, err := ex.Extract(ctx, src.Text, textrank.ExtractOptions{Window: opts.Window, TopN: opts.TopN, All: opts.All})
		if err != nil {
			return FileResult{}, err
		}
		return FileResult{Path: path, Encoding: src.Encoding, Result: res}, nil
	})
	if err != nil {
		return Report{}, err
	}

	var rep Report
	for i, s := range slots {
		if s.err != nil {
			log.Warn("skipping file", "path", paths[i], "err", s.err)
			rep.Failures = append(rep.Failures, Failure{Path: paths[i], Err: s.err})
			continue
		}
		rep.Results = append(rep.Results, s.value)
	}
	log.Info("batch analysed", "files", len(paths), "ok", len(rep.Results), "failed", len(rep.Failures))
	return rep, nil
}

// NetworkName is the Pajek network name used for path: its base name.
func NetworkName(path string) string {
	return filepath.Base(path)
}

// OutputNames picks the .net file name for every input. The base name
// without extension is used unless another input shares it, in which
// case the full base name is kept ("notes.md.net"). An input whose
// name still collides with an earlier one gets "".
func OutputNames(paths []string) []string {
	stems := make(map[string]int, len(paths))
	for _, p := range paths {
		stems[stem(p)]++
	}

	names := make([]string, len(paths))
	taken := make(map[string]bool, len(paths))
	for i, p := range paths {
		name := stem(p) + ".net"
		if stems[stem(p)] > 1 {
			name = filepath.Base(p) + ".net"
		}
		if taken[name] {
			continue
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func graphs(ctx context.Context, ex *textrank.Extractor, paths []string, opts Options) ([]outcome[*graph.Graph], error) {
	return each(ctx, paths, opts.Concurrency, func(ctx context.Context, path string) (*graph.Graph, error) {
		src, err := ingest.ReadFile(path, opts.Encoding)
		if err != nil {
			return nil, err
		}
		return ex.Graph(ctx, src.Text, opts.Window)
	})
}

// ExportDir writes one Pajek file per input into dir, named by
// OutputNames. It returns the written paths and the inputs that failed;
// an input whose output name is already used by another input fails
// with ErrInvalidInput rather than overwriting it.
func ExportDir(ctx context.Context, ex *textrank.Extractor, paths []string, dir string, opts Options) ([]string, []Failure, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create %s: %w: %w", dir, internalerr.ErrIO, err)
	}
	slots, err := graphs(ctx, ex, paths, opts)
	if err != nil {
		return nil, nil, err
	}

	log := ctxlog.FromContext(ctx)
	names := OutputNames(paths)
	var (
		written  []string
		failures []Failure
	)
	for i, s := range slots {
		if s.err == nil && names[i] == "" {
			s.err = fmt.Errorf("output name for %s already used: %w", paths[i], internalerr.ErrInvalidInput)
		}
		if s.err == nil {
			out := filepath.Join(dir, names[i])
			if s.err = writeFile(out, s.value); s.err == nil {
				written = append(written, out)
				continue
			}
		}
		log.Warn("skipping file", "path", paths[i], "err", s.err)
		failures = append(failures, Failure{Path: paths[i], Err: s.err})
	}
	return written, failures, nil
}

func writeFile(path string, g *graph.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", path, internalerr.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w: %w", path, internalerr.ErrIO, cerr)
		}
	}()
	return pajek.Write(f, g)
}

// ExportCombined writes the graphs of all inputs into w as one Pajek
// file, each introduced by "*Network <name>". Failed inputs are left out.
func ExportCombined(ctx context.Context, ex *textrank.Extractor, paths []string, w io.Writer, opts Options) ([]Failure, error) {
	slots, err := graphs(ctx, ex, paths, opts)
	if err != nil {
		return nil, err
	}

	log := ctxlog.FromContext(ctx)
	var (
		networks []pajek.Named
		failures []Failure
	)
	for i, s := range slots {
		if s.err != nil {
			log.Warn("skipping file", "path", paths[i], "err", s.err)
			failures = append(failures, Failure{Path: paths[i], Err: s.err})
			continue
		}
		networks = append(networks, pajek.Named{Name: NetworkName(paths[i]), Graph: s.value})
	}
	if err := pajek.WriteNetworks(w, networks); err != nil {
		return failures, err
	}
	return failures, nil
}
