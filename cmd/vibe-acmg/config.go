package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// thresholdKeys maps the configurable evaluator cutoffs to their value
// kind. Keys under thresholds. that are not listed here are rejected by
// 'config set' so typos do not silently fall back to defaults.
var thresholdKeys = map[string]string{
	"thresholds.ba1_min_freq":        "float",
	"thresholds.bs1_min_freq":        "float",
	"thresholds.pm2_max_freq":        "float",
	"thresholds.bp2_min_homozygotes": "int",
	"thresholds.bs2_min_homozygotes": "int",
	"thresholds.lof_tolerance_oe":    "float",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-acmg configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vibe-acmg.yaml.",
		Example: `  vibe-acmg config                                  # show all config
  vibe-acmg config set thresholds.lof_tolerance_oe 0.35
  vibe-acmg config get thresholds.ba1_min_freq`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.vibe-acmg.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// setConfigValue parses and stores a single key. Threshold keys must be
// known and numeric; the resulting cutoff set must pass validation before
// anything is persisted.
func setConfigValue(key, value string) error {
	if strings.HasPrefix(key, "thresholds.") {
		kind, ok := thresholdKeys[key]
		if !ok {
			return fmt.Errorf("unknown threshold key %q (valid keys: %s)", key, strings.Join(sortedThresholdKeys(), ", "))
		}
		switch kind {
		case "int":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("%s requires an integer value, got %q", key, value)
			}
			viper.Set(key, n)
		default:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("%s requires a numeric value, got %q", key, value)
			}
			viper.Set(key, f)
		}
		if err := thresholdsFromConfig().Validate(); err != nil {
			return fmt.Errorf("rejecting %s=%s: %w", key, value, err)
		}
		return nil
	}

	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}
	return nil
}

func sortedThresholdKeys() []string {
	keys := make([]string, 0, len(thresholdKeys))
	for k := range thresholdKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runConfigSet(key, value string) error {
	if err := setConfigValue(key, value); err != nil {
		return err
	}

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vibe-acmg.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}
