package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrank/internal/ctxlog"
	"github.com/cognicore/textrank/pkg/textrank"
	"github.com/cognicore/textrank/pkg/textrank/config"
	"github.com/cognicore/textrank/pkg/textrank/ingest"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/store"
	"github.com/cognicore/textrank/pkg/textrank/store/memstore"
	"github.com/cognicore/textrank/pkg/textrank/store/sqlite"
)

// memoryHistory selects the in-process run store.
const memoryHistory = ":memory:"

// app holds the state shared by all subcommands.
type app struct {
	configPath  string
	logLevel    string
	logFormat   string
	historyPath string
	encoding    string

	settings config.Settings
	ex       *textrank.Extractor
	store    store.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "textrank",
		Short:         "Extract keywords with TextRank",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.store != nil {
				return a.store.Close()
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", os.Getenv("TEXTRANK_CONFIG"), "settings YAML file [$TEXTRANK_CONFIG]")
	pf.StringVar(&a.logLevel, "log-level", envOr("TEXTRANK_LOG_LEVEL", "warn"), "log level: debug, info, warn, error [$TEXTRANK_LOG_LEVEL]")
	pf.StringVar(&a.logFormat, "log-format", envOr("TEXTRANK_LOG_FORMAT", "text"), "log format: text or json [$TEXTRANK_LOG_FORMAT]")
	pf.StringVar(&a.historyPath, "history", os.Getenv("TEXTRANK_HISTORY"),
		"SQLite file recording extraction runs, "+memoryHistory+" keeps them in memory [$TEXTRANK_HISTORY]")
	pf.StringVar(&a.encoding, "encoding", "", "preferred input encoding (default from settings)")

	cmd.AddCommand(
		newExtractCmd(a),
		newExportCmd(a),
		newBatchCmd(a),
		newHistoryCmd(a),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (a *app) setup(cmd *cobra.Command) error {
	logger := ctxlog.New(cmd.ErrOrStderr(), a.logFormat, a.logLevel)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctxlog.WithLogger(ctx, logger))

	a.settings = config.DefaultSettings()
	if a.configPath != "" {
		s, err := config.LoadSettings(a.configPath)
		if err != nil {
			return err
		}
		a.settings = s
	}
	if a.encoding == "" {
		a.encoding = a.settings.Encoding
	}
	logger.Debug("settings loaded", "config", a.configPath, "window", a.settings.Window)
	return nil
}

// extractor builds the extractor on first use.
func (a *app) extractor() (*textrank.Extractor, error) {
	if a.ex != nil {
		return a.ex, nil
	}
	ex, err := textrank.FromSettings(a.settings)
	if err != nil {
		return nil, err
	}
	a.ex = ex
	return ex, nil
}

// history opens the run store, or returns nil when recording is off.
func (a *app) history(ctx context.Context) (store.Store, error) {
	if a.store != nil || a.historyPath == "" {
		return a.store, nil
	}
	if a.historyPath == memoryHistory {
		a.store = memstore.New()
		return a.store, nil
	}
	st, err := sqlite.OpenSQLite(ctx, a.historyPath)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

// readInput returns the text of path, or of stdin when path is "-".
func (a *app) readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text, _, err := ingest.Decode(data, a.encoding)
		return text, err
	}
	src, err := ingest.ReadFile(path, a.encoding)
	if err != nil {
		return "", err
	}
	return src.Text, nil
}

// createOutput opens path for writing, or returns stdout for "" and "-".
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w: %w", path, internalerr.ErrIO, err)
	}
	return f, f.Close, nil
}

// writeOutput writes data to path as createOutput resolves it.
func writeOutput(cmd *cobra.Command, path string, data []byte) (err error) {
	w, closeOut, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w: %w", path, internalerr.ErrIO, cerr)
		}
	}()
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, internalerr.ErrIO, err)
	}
	return nil
}
