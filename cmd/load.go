package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tourism-cli/internal/db"
	"github.com/sells-group/tourism-cli/internal/store"
	"github.com/sells-group/tourism-cli/internal/visitors"
)

var (
	loadInput       string
	loadSource      string
	loadDriver      string
	loadDatabaseURL string
	loadTable       string
	loadShowTotals  bool
	loadAppend      bool
	loadKeepCounts  bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the cleaned visitor table into SQLite or PostgreSQL",
	Long: `With the sqlite driver the rows of --source are replaced in one transaction and
the load is recorded in load_runs. With the postgres driver the rows are upserted
into store.table keyed on (year, month, country); --append copies them in with
plain COPY instead, for an empty table, and --keep-counts leaves stored counts
in place where the incoming count is null.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg.Store.Driver = orDefault(loadDriver, cfg.Store.Driver)
		cfg.Store.DatabaseURL = orDefault(loadDatabaseURL, cfg.Store.DatabaseURL)
		cfg.Store.Table = orDefault(loadTable, cfg.Store.Table)
		if err := cfg.Validate("load"); err != nil {
			return err
		}

		input := orDefault(loadInput, cfg.Clean.Output)
		records, err := visitors.ReadFile(input)
		if err != nil {
			return eris.Wrap(err, "load: read cleaned table")
		}
		source := orDefault(loadSource, sourceName(input))

		switch cfg.Store.Driver {
		case "postgres":
			return loadPostgres(ctx, records)
		default:
			return loadSQLite(ctx, source, records)
		}
	},
}

var loadHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent SQLite loads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg.Store.DatabaseURL = orDefault(loadDatabaseURL, cfg.Store.DatabaseURL)

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		limit, _ := cmd.Flags().GetInt("limit")
		loads, err := st.ListLoads(ctx, limit)
		if err != nil {
			return eris.Wrap(err, "load history")
		}
		if len(loads) == 0 {
			fmt.Fprintln(os.Stderr, "No loads found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tROWS\tLOADED")
		for _, l := range loads {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.ID, l.Source, l.Rows, l.LoadedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

// sourceName derives a source label from the input file name.
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	dsn := cfg.Store.DatabaseURL
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrap(err, "load: create database dir")
		}
	}
	st, err := store.NewSQLite(dsn)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func loadSQLite(ctx context.Context, source string, records []visitors.Record) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	run, err := st.ReplaceVisitors(ctx, source, records)
	if err != nil {
		return eris.Wrap(err, "load")
	}
	zap.L().Info("load: replaced visitor rows",
		zap.String("run_id", run.ID),
		zap.String("source", source),
		zap.Int("rows", run.Rows),
		zap.String("database", cfg.Store.DatabaseURL),
	)
	fmt.Printf("Loaded %d rows into %s (source %s, run %s)\n", run.Rows, cfg.Store.DatabaseURL, source, run.ID)

	if !loadShowTotals {
		return nil
	}
	totals, err := st.YearlyTotalsByRegion(ctx, source, cfg.Charts.Metric)
	if err != nil {
		return eris.Wrap(err, "load: totals")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "YEAR\tREGION\t%s\n", strings.ToUpper(cfg.Charts.Metric))
	for _, t := range totals {
		fmt.Fprintf(w, "%d\t%s\t%d\n", t.Year, t.Region, t.Value)
	}
	return w.Flush()
}

func loadPostgres(ctx context.Context, records []visitors.Record) error {
	pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureVisitorTable(ctx, pool, cfg.Store.Table); err != nil {
		return err
	}
	if loadAppend {
		n, err := db.AppendVisitors(ctx, pool, cfg.Store.Table, records)
		if err != nil {
			return err
		}
		fmt.Printf("Copied %d rows into %s\n", n, cfg.Store.Table)
		return nil
	}
	n, err := db.PublishVisitors(ctx, pool, cfg.Store.Table, records, loadKeepCounts)
	if err != nil {
		return err
	}
	fmt.Printf("Upserted %d rows into %s\n", n, cfg.Store.Table)
	return nil
}

func init() {
	loadCmd.PersistentFlags().StringVar(&loadDatabaseURL, "database-url", "", "SQLite path or PostgreSQL DSN; overrides store.database_url")
	loadCmd.Flags().StringVar(&loadInput, "input", "", "cleaned visitor CSV; defaults to clean.output")
	loadCmd.Flags().StringVar(&loadSource, "source", "", "label the rows are stored under (sqlite); defaults to the input file name")
	loadCmd.Flags().StringVar(&loadDriver, "driver", "", "sqlite or postgres; overrides store.driver")
	loadCmd.Flags().StringVar(&loadTable, "table", "", "PostgreSQL table; overrides store.table")
	loadCmd.Flags().BoolVar(&loadShowTotals, "totals", false, "print yearly totals by region after a sqlite load")
	loadCmd.Flags().BoolVar(&loadAppend, "append", false, "postgres: COPY without upsert into an empty table")
	loadCmd.Flags().BoolVar(&loadKeepCounts, "keep-counts", false, "postgres: keep stored counts where the incoming count is null")
	loadHistoryCmd.Flags().Int("limit", 20, "maximum loads to list")
	loadCmd.AddCommand(loadHistoryCmd)
	rootCmd.AddCommand(loadCmd)
}
