// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/bookvibe/internal/catalog"
	"github.com/tomtom215/bookvibe/internal/config"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// options holds the persistent flags shared by every command.
type options struct {
	booksPath    string
	ratingsPath  string
	duckdbPath   string
	booksTable   string
	ratingsTable string
	jsonOutput   bool
	k            int
	logLevel     string
}

// app is the state shared between the root command and its children.
type app struct {
	opts    options
	version string
	engine  *recommend.Engine
	status  recommend.Status
}

// NewRootCmd builds the bookvibe command tree. Each call returns an
// independent tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	rootCmd := &cobra.Command{
		Use:   "bookvibe",
		Short: "Book recommendations from the command line",
		Long: `BookVibe recommends books by content similarity, by the ratings of
similar readers, or by a weighted blend of both.

Data comes from CSV files (--books, --ratings) or a DuckDB database (--duckdb).
Without either, or when they cannot be read, the built-in sample catalog is used.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.opts.booksPath, "books", "", "path to the books CSV (Book_ID,Title,Author,Genre)")
	flags.StringVar(&a.opts.ratingsPath, "ratings", "", "path to the ratings CSV (User_ID,Book_ID,Rating)")
	flags.StringVar(&a.opts.duckdbPath, "duckdb", "", "path to a DuckDB database with books and ratings tables")
	flags.StringVar(&a.opts.booksTable, "books-table", "books", "DuckDB table holding the catalog")
	flags.StringVar(&a.opts.ratingsTable, "ratings-table", "ratings", "DuckDB table holding ratings")
	flags.BoolVar(&a.opts.jsonOutput, "json", false, "output results as JSON")
	flags.IntVarP(&a.opts.k, "k", "k", 0, "number of recommendations (0 uses the engine default)")
	flags.StringVar(&a.opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	rootCmd.AddCommand(
		newTitlesCmd(a),
		newUsersCmd(a),
		newContentCmd(a),
		newUserCmd(a),
		newHybridCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// validate checks flag combinations before any data is read.
func (o *options) validate() error {
	if o.ratingsPath != "" && o.booksPath == "" {
		return errors.New("--ratings requires --books")
	}
	if o.duckdbPath != "" && o.booksPath != "" {
		return errors.New("--duckdb and --books are mutually exclusive")
	}
	if o.k < 0 {
		return fmt.Errorf("--k must be non-negative, got %d", o.k)
	}
	return nil
}

// dataConfig maps the flags onto a data source configuration. Missing or
// unreadable files fall back to the sample catalog.
func (o *options) dataConfig() config.DataConfig {
	cfg := config.DataConfig{
		Source:           config.SourceSample,
		FallbackToSample: true,
		BreakerFailures:  1,
		BreakerTimeout:   time.Minute,
	}

	switch {
	case o.duckdbPath != "":
		cfg.Source = config.SourceDuckDB
		cfg.DuckDBPath = o.duckdbPath
		cfg.BooksTable = o.booksTable
		cfg.RatingsTable = o.ratingsTable
	case o.booksPath != "":
		cfg.Source = config.SourceCSV
		cfg.BooksPath = o.booksPath
		cfg.RatingsPath = o.ratingsPath
	}
	return cfg
}

// load reads the dataset and publishes a snapshot before a command runs.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	if err := a.opts.validate(); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), a.opts.logLevel)

	source, err := catalog.NewSource(a.opts.dataConfig(), logger)
	if err != nil {
		return fmt.Errorf("configure data source: %w", err)
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	status, err := recommend.NewLoader(engine, source, logger).Reload(cmd.Context())
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	logger.Debug().
		Str("origin", status.Origin).
		Int("items", status.Items).
		Int("users", status.Users).
		Dur("build_duration", status.BuildDuration).
		Msg("Snapshot ready")

	a.engine = engine
	a.status = status
	return nil
}

// newLogger writes human-readable diagnostics to w.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookvibe version %s\n", a.version)
		},
	}
}
