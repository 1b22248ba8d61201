// Package main provides the vibe-acmg command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "vibe-acmg",
		Short:         "ACMG/AMP variant classifier",
		Long:          "vibe-acmg classifies genomic variants against the ACMG/AMP pathogenicity framework using a local reference annotation database.",
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newClassifyCmd(&verbose))
	cmd.AddCommand(newLoadCmd(&verbose))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig wires viper to ~/.vibe-acmg.yaml. A missing config file is
// fine; defaults apply.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	viper.SetConfigFile(filepath.Join(home, ".vibe-acmg.yaml"))
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger. Logs go to stderr so they never mix with
// tabular output on stdout.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// defaultDBPath returns the default annotation database location,
// ~/.vibe-acmg/annotations.duckdb, honoring the database.path config key.
func defaultDBPath() string {
	if p := viper.GetString("database.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "annotations.duckdb"
	}
	return filepath.Join(home, ".vibe-acmg", "annotations.duckdb")
}
