package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrank/internal/ctxlog"
	"github.com/cognicore/textrank/pkg/textrank/batch"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/store"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		limits      limitFlags
		asJSON      bool
		outDir      string
		combined    string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <file|dir>...",
		Short: "Analyse or export many documents",
		Long: "Analyse every input and print its keywords, or, with --out-dir or\n" +
			"--combined, export the co-occurrence graphs in Pajek format.\n" +
			"Directories are searched for text and HTML files. Unreadable\n" +
			"inputs are reported and skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir != "" && combined != "" {
				return fmt.Errorf("--out-dir and --combined are exclusive: %w", internalerr.ErrInvalidParameter)
			}
			opts, err := limits.options(cmd)
			if err != nil {
				return err
			}
			ex, err := a.extractor()
			if err != nil {
				return err
			}
			paths, err := batch.Files(args)
			if err != nil {
				return err
			}
			bopts := batch.Options{
				Window:      opts.Window,
				TopN:        opts.TopN,
				All:         opts.All,
				Encoding:    a.encoding,
				Concurrency: concurrency,
			}

			ctx := cmd.Context()
			log := ctxlog.FromContext(ctx)
			switch {
			case outDir != "":
				written, failures, err := batch.ExportDir(ctx, ex, paths, outDir, bopts)
				if err != nil {
					return err
				}
				for _, p := range written {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return failed(len(paths), failures)

			case combined != "":
				var buf bytes.Buffer
				failures, err := batch.ExportCombined(ctx, ex, paths, &buf, bopts)
				if err != nil {
					return err
				}
				if err := failed(len(paths), failures); err != nil {
					return err
				}
				werr := writeOutput(cmd, combined, buf.Bytes())
				if werr == nil || combined == "-" {
					return werr
				}
				dir := filepath.Dir(combined)
				log.Warn("combined export failed, writing one file per input", "path", combined, "dir", dir, "err", werr)
				written, failures, err := batch.ExportDir(ctx, ex, paths, dir, bopts)
				if err != nil {
					return errors.Join(werr, err)
				}
				for _, p := range written {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return failed(len(paths), failures)
			}

			rep, err := batch.Analyze(ctx, ex, paths, bopts)
			if err != nil {
				return err
			}

			st, err := a.history(ctx)
			if err != nil {
				return err
			}
			if st != nil {
				window, topN := a.recorded(opts)
				for _, r := range rep.Results {
					if _, err := st.SaveRun(ctx, store.Run{
						Source:     r.Path,
						Window:     window,
						TopN:       topN,
						Keywords:   r.Result.Keywords,
						Candidates: r.Result.Candidates,
						Iterations: r.Result.Iterations,
						Converged:  r.Result.Converged,
					}); err != nil {
						return err
					}
				}
				log.Info("runs recorded", "count", len(rep.Results))
			}

			if asJSON {
				if err := printJSON(cmd.OutOrStdout(), rep); err != nil {
					return err
				}
				return failed(len(paths), rep.Failures)
			}
			for i, r := range rep.Results {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", r.Path)
				if err := printKeywords(cmd.OutOrStdout(), r.Result.Keywords); err != nil {
					return err
				}
			}
			return failed(len(paths), rep.Failures)
		},
	}
	limits.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write one .net file per input into this directory")
	cmd.Flags().StringVar(&combined, "combined", "", `write all graphs into one .net file ("-" for stdout)`)
	cmd.Flags().IntVarP(&concurrency, "jobs", "j", 0, "parallel workers (default GOMAXPROCS)")
	return cmd
}

// failed turns per-file failures into a command error only when no
// input succeeded.
func failed(total int, failures []batch.Failure) error {
	if len(failures) == 0 || len(failures) < total {
		return nil
	}
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return fmt.Errorf("all %d inputs failed: %w", total, errors.Join(errs...))
}
