package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrank/internal/ctxlog"
	"github.com/cognicore/textrank/pkg/textrank"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/rank"
	"github.com/cognicore/textrank/pkg/textrank/store"
)

type limitFlags struct {
	window int
	top    string
	all    bool
}

func (f *limitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.window, "window", "w", 0, "co-occurrence window (default from settings)")
	cmd.Flags().StringVarP(&f.top, "top", "n", "", `number of keywords to print, or "all" (default from settings)`)
	cmd.Flags().BoolVar(&f.all, "all", false, "print every keyword")
}

func (f *limitFlags) options(cmd *cobra.Command) (textrank.ExtractOptions, error) {
	opts := textrank.ExtractOptions{Window: f.window, All: f.all}
	if err := checkWindow(cmd, f.window); err != nil {
		return opts, err
	}
	if cmd.Flags().Changed("top") {
		n, err := rank.ParseTopN(f.top)
		if err != nil {
			return opts, err
		}
		opts.TopN = n
		opts.All = opts.All || n == nil
	}
	return opts, nil
}

// checkWindow rejects an explicit --window that is not positive. The
// flag's zero default stands for the settings' window.
func checkWindow(cmd *cobra.Command, window int) error {
	if cmd.Flags().Changed("window") && window <= 0 {
		return fmt.Errorf("window %d must be positive: %w", window, internalerr.ErrInvalidParameter)
	}
	return nil
}

// recorded returns the window and keyword limit a run with opts used,
// resolving the zero values to the settings they stand for.
func (a *app) recorded(opts textrank.ExtractOptions) (int, *int) {
	window := opts.Window
	if window == 0 {
		window = a.settings.Window
	}
	switch {
	case opts.All:
		return window, nil
	case opts.TopN != nil:
		return window, opts.TopN
	}
	return window, a.settings.TopN
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		limits limitFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Print the ranked keywords of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			opts, err := limits.options(cmd)
			if err != nil {
				return err
			}
			ex, err := a.extractor()
			if err != nil {
				return err
			}
			text, err := a.readInput(cmd, source)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := ex.Extract(ctx, text, opts)
			if err != nil {
				return err
			}

			st, err := a.history(ctx)
			if err != nil {
				return err
			}
			if st != nil {
				window, topN := a.recorded(opts)
				run, err := st.SaveRun(ctx, store.Run{
					Source:     source,
					Window:     window,
					TopN:       topN,
					Keywords:   res.Keywords,
					Candidates: res.Candidates,
					Iterations: res.Iterations,
					Converged:  res.Converged,
				})
				if err != nil {
					return err
				}
				ctxlog.FromContext(ctx).Info("run recorded", "id", run.ID)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			return printKeywords(cmd.OutOrStdout(), res.Keywords)
		},
	}
	limits.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
