package main

import (
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		window int
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write the co-occurrence graph of a document in Pajek format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			if err := checkWindow(cmd, window); err != nil {
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

			w, closeOut, err := createOutput(cmd, output)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeOut(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			return ex.ExportGraph(cmd.Context(), text, window, w)
		},
	}
	cmd.Flags().IntVarP(&window, "window", "w", 0, "co-occurrence window (default from settings)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output .net file (default stdout)")
	return cmd
}
