// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultSeparator joins a document's title and abstract.
const DefaultSeparator = " "

// ConversionConfig holds settings for a conversion run. The CLI fills it
// from flags, the config file, and CHEMPROT_STANDOFF_* environment variables.
type ConversionConfig struct {
	// Input is a ChemProt partition directory or an *_abstracts.tsv file.
	Input string `json:"input" yaml:"input"`

	// Output is the destination directory for .txt and .ann files.
	Output string `json:"output" yaml:"output"`

	// Separator joins title and abstract (default " ").
	Separator string `json:"separator" yaml:"separator"`

	// CreateOutput creates Output when it does not exist. When false a
	// missing Output is a fatal error.
	CreateOutput bool `json:"create_output" yaml:"create_output"`

	// ReportPath, when set, receives a YAML conversion report.
	ReportPath string `json:"report" yaml:"report"`

	// DBPath, when set, receives a SQLite index of the converted corpus.
	DBPath string `json:"db" yaml:"db"`
}

// SeparatorOrDefault returns Separator, or DefaultSeparator when unset.
func (c ConversionConfig) SeparatorOrDefault() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}
