// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chemprot-standoff/internal/chemprot"
)

// FileDigest names an emitted file and its BLAKE3-256 digest.
type FileDigest struct {
	Name   string `json:"name" yaml:"name"`
	BLAKE3 string `json:"blake3" yaml:"blake3"`
}

func digest(name, content string) FileDigest {
	sum := blake3.Sum256([]byte(content))
	return FileDigest{Name: name, BLAKE3: hex.EncodeToString(sum[:])}
}

// Summary holds the counts of a run.
type Summary struct {
	Documents int `json:"documents" yaml:"documents"`
	Entities  int `json:"entities" yaml:"entities"`
	Relations int `json:"relations" yaml:"relations"`
	Skipped   int `json:"skipped_records" yaml:"skipped_records"`
}

// Report describes a finished run. It carries no timestamps, so identical
// input yields an identical report.
type Report struct {
	Input       string                `json:"input" yaml:"input"`
	Separator   string                `json:"separator" yaml:"separator"`
	Sources     chemprot.Partition    `json:"sources" yaml:"sources"`
	Summary     Summary               `json:"summary" yaml:"summary"`
	Diagnostics []chemprot.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Files       []FileDigest          `json:"files" yaml:"files"`
}

// NewReport assembles the report of a run.
func NewReport(input, separator string, p chemprot.Partition, corpus *chemprot.Corpus, result BatchResult) Report {
	return Report{
		Input:     input,
		Separator: separator,
		Sources:   p,
		Summary: Summary{
			Documents: result.Converted,
			Entities:  result.Entities,
			Relations: result.Relations,
			Skipped:   result.Skipped,
		},
		Diagnostics: corpus.Diagnostics,
		Files:       result.Files,
	}
}

// WriteReport writes r as YAML to path.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
