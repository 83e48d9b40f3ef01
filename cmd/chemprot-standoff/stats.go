// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chemprot-standoff/internal/index"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a corpus index written with --db",
	Long: `Stats reads the SQLite corpus index produced by a conversion run with
--db and prints the number of documents and the entity and relation counts
per type.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("db")
	if dbPath == "" {
		return fmt.Errorf("provide the corpus index with --db")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("reading corpus index: %w", err)
	}

	store, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return formatStats(cmd.OutOrStdout(), stats, format)
}

func formatStats(w io.Writer, stats index.Stats, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(stats)
	case "table", "":
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}

	fmt.Fprintf(w, "Documents: %d\n", stats.Documents)
	writeCounts(w, "Entity type", stats.Entities)
	writeCounts(w, "Relation type", stats.Relations)
	return nil
}

func writeCounts(w io.Writer, heading string, counts []index.TypeCount) {
	fmt.Fprintf(w, "\n%-20s  %s\n", heading, "Count")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	if len(counts) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(w, "%-20s  %d\n", c.Type, c.Count)
	}
}

func init() {
	statsCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(statsCmd)
}
