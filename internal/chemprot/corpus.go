// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemprot

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

// Corpus is a loaded partition: documents in abstracts-file order plus the
// diagnostics raised while loading.
type Corpus struct {
	Documents   []*types.Document
	Diagnostics []Diagnostic
}

// Skipped returns the number of diagnostics that dropped a record.
func (c *Corpus) Skipped() int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Kind != KindMissingFile {
			n++
		}
	}
	return n
}

// LoadOptions controls how a partition is assembled.
type LoadOptions struct {
	// Separator joins title and abstract; empty means types.DefaultSeparator.
	Separator string

	// Warnings receives one "warning:" line per diagnostic. May be nil.
	Warnings io.Writer
}

// docState tracks a document while its annotations are loaded.
type docState struct {
	doc   *types.Document
	runes []rune
	// seen holds every entity local ID read for the document, valid or not.
	seen map[string]bool
	// entities holds the local IDs of entities that passed validation.
	entities map[string]bool
}

// Load reads every file of p and returns the validated corpus. Only I/O
// failures are returned as errors; bad records become diagnostics.
func Load(p Partition, opts LoadOptions) (*Corpus, error) {
	sep := opts.Separator
	if sep == "" {
		sep = types.DefaultSeparator
	}

	l := &loader{
		sep:  sep,
		rep:  &reporter{w: opts.Warnings},
		docs: make(map[string]*docState),
	}

	for _, path := range p.Abstracts {
		if err := scanFile(path, l.abstractLine(path)); err != nil {
			return nil, err
		}
	}

	if len(p.Entities) == 0 {
		l.rep.add(Diagnostic{File: partitionName(p), Kind: KindMissingFile, Message: "no entities file; documents have no entity annotations"})
	}
	for _, path := range p.Entities {
		if err := scanFile(path, l.entityLine(path)); err != nil {
			return nil, err
		}
	}

	if len(p.Relations) == 0 {
		l.rep.add(Diagnostic{File: partitionName(p), Kind: KindMissingFile, Message: "no relations file; documents have no relation annotations"})
	}
	for _, path := range p.Relations {
		if err := scanFile(path, l.relationLine(path)); err != nil {
			return nil, err
		}
	}

	return &Corpus{Documents: l.order, Diagnostics: l.rep.diags}, nil
}

// partitionName names the partition in diagnostics that have no line.
func partitionName(p Partition) string {
	if len(p.Abstracts) == 0 {
		return ""
	}
	return filepath.Dir(p.Abstracts[0])
}

type loader struct {
	sep   string
	rep   *reporter
	docs  map[string]*docState
	order []*types.Document
}

func (l *loader) abstractLine(path string) func(int, string) {
	return func(lineNo int, line string) {
		rec, err := ParseAbstract(line)
		if err != nil {
			l.rep.add(Diagnostic{File: path, Line: lineNo, Kind: KindMalformed, Message: err.Error()})
			return
		}
		if _, dup := l.docs[rec.DocID]; dup {
			l.rep.add(Diagnostic{File: path, Line: lineNo, DocID: rec.DocID, Kind: KindDuplicateDocument,
				Message: "document ID already seen; keeping the first record"})
			return
		}

		text := rec.Title + l.sep + rec.Abstract
		doc := &types.Document{ID: rec.DocID, Title: rec.Title, Abstract: rec.Abstract, Text: text}
		l.docs[rec.DocID] = &docState{doc: doc, runes: []rune(text), seen: make(map[string]bool), entities: make(map[string]bool)}
		l.order = append(l.order, doc)
	}
}

func (l *loader) entityLine(path string) func(int, string) {
	return func(lineNo int, line string) {
		rec, err := ParseEntity(line)
		if err != nil {
			l.rep.add(Diagnostic{File: path, Line: lineNo, Kind: KindMalformed, Message: err.Error()})
			return
		}
		diag := Diagnostic{File: path, Line: lineNo, DocID: rec.DocID}

		st, ok := l.docs[rec.DocID]
		if !ok {
			diag.Kind, diag.Message = KindUnknownDocument, fmt.Sprintf("entity %s belongs to a document with no abstract", rec.EntityID)
			l.rep.add(diag)
			return
		}
		if st.seen[rec.EntityID] {
			diag.Kind, diag.Message = KindDuplicateEntity, fmt.Sprintf("entity %s already defined", rec.EntityID)
			l.rep.add(diag)
			return
		}
		st.seen[rec.EntityID] = true

		// Brat has no zero-length text-bound annotations.
		if rec.Start < 0 || rec.Start >= rec.End || rec.End > len(st.runes) {
			diag.Kind = KindOffset
			diag.Message = fmt.Sprintf("entity %s offsets [%d,%d) outside text of length %d", rec.EntityID, rec.Start, rec.End, len(st.runes))
			l.rep.add(diag)
			return
		}
		if span := string(st.runes[rec.Start:rec.End]); span != rec.Text {
			diag.Kind = KindTextMismatch
			diag.Message = fmt.Sprintf("entity %s text %q does not match %q at [%d,%d)", rec.EntityID, rec.Text, span, rec.Start, rec.End)
			l.rep.add(diag)
			return
		}

		st.entities[rec.EntityID] = true
		st.doc.Entities = append(st.doc.Entities, types.Entity{
			LocalID: rec.EntityID,
			Type:    rec.Type,
			Start:   rec.Start,
			End:     rec.End,
			Text:    rec.Text,
		})
	}
}

func (l *loader) relationLine(path string) func(int, string) {
	return func(lineNo int, line string) {
		rec, err := ParseRelation(line)
		if err != nil {
			l.rep.add(Diagnostic{File: path, Line: lineNo, Kind: KindMalformed, Message: err.Error()})
			return
		}
		diag := Diagnostic{File: path, Line: lineNo, DocID: rec.DocID}

		st, ok := l.docs[rec.DocID]
		if !ok {
			diag.Kind, diag.Message = KindUnknownDocument, fmt.Sprintf("%s relation belongs to a document with no abstract", rec.Type)
			l.rep.add(diag)
			return
		}
		for _, arg := range []string{rec.Arg1, rec.Arg2} {
			if !st.entities[arg] {
				diag.Kind, diag.Message = KindDanglingRelation, fmt.Sprintf("%s relation references unknown or skipped entity %s", rec.Type, arg)
				l.rep.add(diag)
				return
			}
		}

		st.doc.Relations = append(st.doc.Relations, types.Relation{Type: rec.Type, Arg1: rec.Arg1, Arg2: rec.Arg2})
	}
}
