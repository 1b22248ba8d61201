package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/evidence"
	"github.com/inodb/vibe-acmg/internal/output"
	"github.com/inodb/vibe-acmg/internal/pipeline"
	"github.com/inodb/vibe-acmg/internal/store"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Variant line formats accepted by the classify command.
var (
	// Genomic: chr12:25245350:C:A  or  12-25245350-C-A  or  chr12:25245350:C>A
	reGenomic = regexp.MustCompile(`^(chr)?(\w+)[:\-](\d+)[:\-]([ACGTNacgtn]+)[>:\-/]([ACGTNacgtn]+)$`)
	// dbSNP identifier: rs202075563
	reRSID = regexp.MustCompile(`^rs\d+$`)
)

func newClassifyCmd(verbose *bool) *cobra.Command {
	var (
		dbPath     string
		outputFile string
		workers    int
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "classify <variants-file>",
		Short: "Classify variants against the ACMG/AMP framework",
		Long: `Classify variants against the ACMG/AMP framework.

The input file holds one variant per line, either as an rsID (rs12345) or
as coordinates (chr12:25245350:C:A). Use '-' for stdin. Reference
annotations come from the local DuckDB database created by 'vibe-acmg load'.`,
		Example: `  vibe-acmg classify variants.txt
  vibe-acmg classify -o results.tsv variants.txt
  echo rs202075563 | vibe-acmg classify -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(args[0], dbPath, outputFile, workers, strict, *verbose)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Annotation database path (default: ~/.vibe-acmg/annotations.duckdb)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker count (default: number of CPUs)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if the annotation store has ambiguous keys")

	return cmd
}

// thresholdsFromConfig reads evaluator cutoffs from viper, falling back to
// the defaults. Validation happens at pipeline construction.
func thresholdsFromConfig() evidence.Thresholds {
	th := evidence.DefaultThresholds()
	if viper.IsSet("thresholds.ba1_min_freq") {
		th.BA1MinFreq = viper.GetFloat64("thresholds.ba1_min_freq")
	}
	if viper.IsSet("thresholds.bs1_min_freq") {
		th.BS1MinFreq = viper.GetFloat64("thresholds.bs1_min_freq")
	}
	if viper.IsSet("thresholds.pm2_max_freq") {
		th.PM2MaxFreq = viper.GetFloat64("thresholds.pm2_max_freq")
	}
	if viper.IsSet("thresholds.bp2_min_homozygotes") {
		th.BP2MinHomozygotes = viper.GetInt64("thresholds.bp2_min_homozygotes")
	}
	if viper.IsSet("thresholds.bs2_min_homozygotes") {
		th.BS2MinHomozygotes = viper.GetInt64("thresholds.bs2_min_homozygotes")
	}
	if viper.IsSet("thresholds.lof_tolerance_oe") {
		th.LoFToleranceOE = viper.GetFloat64("thresholds.lof_tolerance_oe")
	}
	return th
}

func runClassify(inputPath, dbPath, outputFile string, workers int, strict, verbose bool) error {
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

	if !db.Loaded() {
		return fmt.Errorf("annotation database %s is empty; run 'vibe-acmg load' first", dbPath)
	}

	mem, err := db.PreloadToMemory()
	if err != nil {
		return fmt.Errorf("preload annotations: %w", err)
	}
	logger.Info("loaded annotation store",
		zap.Int("records", mem.Count()),
		zap.Int("ambiguous_keys", mem.AmbiguousKeys()))

	if strict {
		if err := mem.Validate(); err != nil {
			return fmt.Errorf("strict mode: %w", err)
		}
	}

	variants, err := readVariants(inputPath)
	if err != nil {
		return err
	}

	p, err := pipeline.New(mem, thresholdsFromConfig())
	if err != nil {
		return err
	}
	p.SetLogger(logger)
	p.SetWorkers(workers)

	batch := p.Run(variants)

	var out *os.File
	if outputFile == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	writer := output.NewTabWriter(out)
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range batch.Results {
		if err := writer.Write(r); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	output.WriteSummary(os.Stderr, batch)
	return nil
}

// readVariants parses the one-variant-per-line input format. Unparseable
// lines become deliberately invalid identities so the pipeline counts them
// as excluded instead of dropping them silently.
func readVariants(path string) ([]variant.Identity, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open variants file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var variants []variant.Identity
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		variants = append(variants, parseVariantLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read variants file: %w", err)
	}
	return variants, nil
}

func parseVariantLine(line string) variant.Identity {
	if reRSID.MatchString(strings.ToLower(line)) {
		return variant.Identity{RSID: line}
	}
	if m := reGenomic.FindStringSubmatch(line); m != nil {
		pos, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return variant.Identity{Chrom: m[2]}
		}
		return variant.Identity{
			Chrom: m[2],
			Pos:   pos,
			Ref:   strings.ToUpper(m[4]),
			Alt:   strings.ToUpper(m[5]),
		}
	}
	// Let Validate reject it and the pipeline count it.
	return variant.Identity{Chrom: line, Pos: -1}
}
