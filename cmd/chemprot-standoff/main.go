// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chemprot-standoff CLI, which
// converts a ChemProt corpus partition into Brat standoff files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chemprot-standoff/internal/convert"
	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts one partition; subcommands cover the corpus index.
var rootCmd = &cobra.Command{
	Use:   "chemprot-standoff -i <partition> -o <output-dir>",
	Short: "Convert the ChemProt corpus to Brat standoff format",
	Long: `chemprot-standoff reads a ChemProt partition (the *_abstracts.tsv,
*_entities.tsv and *_gold_standard.tsv files) and writes one <pmid>.txt and
one <pmid>.ann file per abstract, in Brat standoff format.

Records with bad column counts, out-of-range offsets, or references to
unknown entities are skipped with a warning on stderr.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chemprot-standoff.yaml or ~/.config/chemprot-standoff/chemprot-standoff.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite corpus index to write (convert) or read (stats)")

	rootCmd.Flags().StringP("input", "i", "", "ChemProt partition directory or *_abstracts.tsv file (required)")
	rootCmd.Flags().StringP("output", "o", "", "destination directory for .txt and .ann files (required)")
	rootCmd.Flags().String("separator", types.DefaultSeparator, "string joining title and abstract")
	rootCmd.Flags().Bool("create-output", false, "create the output directory if it does not exist")
	rootCmd.Flags().String("report", "", "write a YAML conversion report to this path")

	cobra.CheckErr(bindConfig(rootCmd))
}

// configKeys maps each config key, the yaml name of a
// types.ConversionConfig field, to the flag that sets it.
var configKeys = map[string]string{
	"input":         "input",
	"output":        "output",
	"separator":     "separator",
	"create_output": "create-output",
	"report":        "report",
	"db":            "db",
}

// bindConfig binds the flags of cmd to their config keys, so each setting
// resolves from flag, CHEMPROT_STANDOFF_<KEY>, or the config file.
func bindConfig(cmd *cobra.Command) error {
	for key, name := range configKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag == nil {
			return fmt.Errorf("config key %s: no --%s flag", key, name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chemprot-standoff")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chemprot-standoff"))
		}
	}

	viper.SetEnvPrefix("CHEMPROT_STANDOFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// conversionConfig resolves flags, config file, and environment.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Input:        viper.GetString("input"),
		Output:       viper.GetString("output"),
		Separator:    viper.GetString("separator"),
		CreateOutput: viper.GetBool("create_output"),
		ReportPath:   viper.GetString("report"),
		DBPath:       viper.GetString("db"),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig()
	if cfg.Input == "" || cfg.Output == "" {
		return fmt.Errorf("provide an input partition with -i and an output directory with -o")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := convert.Run(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
