// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemprot

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Kind classifies a record-level problem. None of them stop a run.
type Kind string

const (
	KindMalformed         Kind = "malformed"
	KindMissingFile       Kind = "missing-file"
	KindDuplicateDocument Kind = "duplicate-document"
	KindUnknownDocument   Kind = "unknown-document"
	KindDuplicateEntity   Kind = "duplicate-entity"
	KindOffset            Kind = "offset"
	KindTextMismatch      Kind = "text-mismatch"
	KindDanglingRelation  Kind = "dangling-relation"
)

// Diagnostic describes one skipped record or missing input.
type Diagnostic struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	DocID   string `json:"document,omitempty" yaml:"document,omitempty"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// String formats the diagnostic as "file:line: kind: [doc] message".
func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if d.DocID != "" {
		return fmt.Sprintf("%s: %s: document %s: %s", loc, d.Kind, d.DocID, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Kind, d.Message)
}

var warnPrefix = color.New(color.FgYellow, color.Bold)

// reporter collects diagnostics and echoes each one to w as it occurs.
type reporter struct {
	w     io.Writer
	diags []Diagnostic
}

func (r *reporter) add(d Diagnostic) {
	r.diags = append(r.diags, d)
	if r.w == nil {
		return
	}
	warnPrefix.Fprint(r.w, "warning:")
	fmt.Fprintf(r.w, " %s\n", d)
}
