package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded extraction runs (requires --history)",
	}
	cmd.AddCommand(newHistoryListCmd(a), newHistoryShowCmd(a), newHistoryDeleteCmd(a))
	return cmd
}

func (a *app) requireHistory(cmd *cobra.Command) (store.Store, error) {
	st, err := a.history(cmd.Context())
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("no run history configured, pass --history: %w", internalerr.ErrInvalidParameter)
	}
	return st, nil
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		q      store.Query
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.requireHistory(cmd)
			if err != nil {
				return err
			}
			runs, err := st.ListRuns(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []store.Run{}
				}
				return printJSON(cmd.OutOrStdout(), runs)
			}
			for _, r := range runs {
				words := make([]string, 0, 3)
				for i, kw := range r.Keywords {
					if i == 3 {
						break
					}
					words = append(words, kw.Word)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  window=%d  %s\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Source, r.Window, strings.Join(words, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Source, "source", "", "only runs of this source")
	cmd.Flags().IntVar(&q.Limit, "limit", store.DefaultLimit, "maximum number of runs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print runs as JSON")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the keywords of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.requireHistory(cmd)
			if err != nil {
				return err
			}
			r, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s %s window=%d\n", r.ID, r.Source, r.Window)
			return printKeywords(cmd.OutOrStdout(), r.Keywords)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")
	return cmd
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.requireHistory(cmd)
			if err != nil {
				return err
			}
			return st.DeleteRun(cmd.Context(), args[0])
		},
	}
}
