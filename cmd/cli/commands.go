package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dsjohal14/catalogsearch/internal/libs/config"
	"github.com/dsjohal14/catalogsearch/internal/libs/obs"
	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/dsjohal14/catalogsearch/internal/streamlite"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	catalogPath string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "catalogsearch",
		Short:        "Search and autocomplete over a product catalog",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			obs.InitLogger(opts.logLevel)
		},
	}

	root.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", defaultCatalogPath(),
		"catalog file (JSON array or JSONL)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newSearchCmd(opts),
		newSuggestCmd(opts),
		newImportCmd(opts),
	)
	return root
}

func defaultCatalogPath() string {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = filepath.Join(".", "data")
	}
	return filepath.Join(dir, catalog.CatalogFile)
}

// openSource connects to the catalog source import reads from
var openSource = func(ctx context.Context, url string) (catalog.Source, func(), error) {
	src, err := catalog.NewPostgresSource(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	return src, src.Close, nil
}

// newEngine builds the engine with the same WEIGHT_* overrides the API uses
func newEngine() (*search.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return search.NewEngine(search.WithWeights(cfg.Weights)), nil
}

func loadCatalog(path string) ([]search.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return catalog.DecodeDocuments(f)
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank catalog products against a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadCatalog(opts.catalogPath)
			if err != nil {
				return err
			}

			engine, err := newEngine()
			if err != nil {
				return err
			}

			results := engine.SearchScored(docs, args[0], limit)
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, results)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tID\tNAME\tBRAND\tCATEGORY")
			for _, r := range results {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					r.Score, r.Document.ID, r.Document.Name, r.Document.Brand, r.Document.Category)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultSearchLimit, "maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	var limit int
	var detail bool

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Print typeahead suggestions for a partial query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadCatalog(opts.catalogPath)
			if err != nil {
				return err
			}

			engine, err := newEngine()
			if err != nil {
				return err
			}

			items := engine.SuggestCandidates(docs, args[0], limit)
			out := cmd.OutOrStdout()
			for _, item := range items {
				if detail {
					fmt.Fprintf(out, "%s\t%d\t%s\n", item.Text, item.Score, item.Provenance)
					continue
				}
				fmt.Fprintln(out, item.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultSuggestLimit, "maximum number of suggestions")
	cmd.Flags().BoolVar(&detail, "detail", false, "include score and provenance")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the Postgres products table into the catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbURL == "" {
				return fmt.Errorf("--from-db or DATABASE_URL is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			src, closeSource, err := openSource(ctx, dbURL)
			if err != nil {
				return err
			}
			defer closeSource()

			store, err := catalog.NewFileStoreAt(opts.catalogPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			syncer := streamlite.NewCatalogSync("import", src, store, 0, obs.Logger("cli"))
			n, err := syncer.SyncOnce(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d products into %s\n", n, store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&dbURL, "from-db", os.Getenv("DATABASE_URL"), "Postgres connection string")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
