package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/store"
)

func newLoadCmd(verbose *bool) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "load <annotations.tsv>",
		Short: "Load reference annotations into the local database",
		Long: `Load reference annotations into the local DuckDB database.

The input is a tab-separated file (optionally gzipped) with a header line:

  rsid  chrom  pos  ref  alt  clinical_significance  review_status
  consequence  allele_frequency  homozygote_count  gene_symbol  oe_lof_upper

Loading replaces any previously loaded data.`,
		Example: `  vibe-acmg load clinvar_gnomad.tsv.gz
  vibe-acmg load --db /data/annotations.duckdb clinvar_gnomad.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args[0], dbPath, *verbose)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Annotation database path (default: ~/.vibe-acmg/annotations.duckdb)")

	return cmd
}

func runLoad(tsvPath, dbPath string, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	db, err := store.OpenDuckDB(dbPath)
	if err != nil {
		return fmt.Errorf("open annotation database: %w", err)
	}
	defer db.Close()

	logger.Info("loading annotations", zap.String("tsv", tsvPath), zap.String("db", dbPath))
	if err := db.Load(tsvPath); err != nil {
		return err
	}

	count, err := db.Count()
	if err != nil {
		return err
	}
	logger.Info("load complete", zap.Int64("records", count))
	fmt.Printf("Loaded %d annotation records into %s\n", count, dbPath)
	return nil
}
