// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/chemprot-standoff/internal/chemprot"
	"github.com/pdiddy/chemprot-standoff/internal/index"
	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

// Run converts the partition at cfg.Input into cfg.Output. Status lines go
// to stdout and record-level warnings to stderr. Returned errors are
// unrecoverable: bad input paths, unwritable output, index failures.
func Run(ctx context.Context, cfg types.ConversionConfig, stdout, stderr io.Writer) (BatchResult, error) {
	if cfg.Input == "" || cfg.Output == "" {
		return BatchResult{}, fmt.Errorf("both input and output paths are required")
	}
	if err := PrepareOutput(cfg.Output, cfg.CreateOutput); err != nil {
		return BatchResult{}, err
	}

	partition, err := chemprot.Discover(cfg.Input)
	if err != nil {
		return BatchResult{}, err
	}

	sep := cfg.SeparatorOrDefault()
	corpus, err := chemprot.Load(partition, chemprot.LoadOptions{Separator: sep, Warnings: stderr})
	if err != nil {
		return BatchResult{}, err
	}

	var sink Sink
	if cfg.DBPath != "" {
		store, err := index.Open(cfg.DBPath)
		if err != nil {
			return BatchResult{}, err
		}
		defer store.Close()
		sink = store
	}

	result, err := ConvertCorpus(ctx, corpus, cfg.Output, sink, stdout)
	if err != nil {
		return result, err
	}

	if cfg.ReportPath != "" {
		report := NewReport(cfg.Input, sep, partition, corpus, result)
		if err := WriteReport(cfg.ReportPath, report); err != nil {
			return result, err
		}
		fmt.Fprintf(stdout, "Report written to %s\n", cfg.ReportPath)
	}
	return result, nil
}
