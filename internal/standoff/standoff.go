// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package standoff renders a ChemProt document as Brat standoff
// annotations. Entities are renumbered T1..Tn and relations R1..Rn in
// corpus order, with counters scoped to a single document.
package standoff

import (
	"fmt"
	"strings"

	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

// TextBound is an entity with its Brat ID.
type TextBound struct {
	ID string
	types.Entity
}

// Link is a relation whose arguments are Brat entity IDs.
type Link struct {
	ID   string
	Type string
	Arg1 string
	Arg2 string
}

// Standoff is the Brat rendering of one document.
type Standoff struct {
	DocID     string
	Text      string
	Entities  []TextBound
	Relations []Link
}

// Build numbers the annotations of doc. It fails when a relation
// references an entity that doc does not contain.
func Build(doc *types.Document) (*Standoff, error) {
	s := &Standoff{
		DocID:     doc.ID,
		Text:      doc.Text,
		Entities:  make([]TextBound, len(doc.Entities)),
		Relations: make([]Link, len(doc.Relations)),
	}

	ids := make(map[string]string, len(doc.Entities))
	for i, e := range doc.Entities {
		id := fmt.Sprintf("T%d", i+1)
		s.Entities[i] = TextBound{ID: id, Entity: e}
		ids[e.LocalID] = id
	}

	for i, r := range doc.Relations {
		arg1, ok1 := ids[r.Arg1]
		arg2, ok2 := ids[r.Arg2]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("document %s: relation %s %s-%s references a missing entity", doc.ID, r.Type, r.Arg1, r.Arg2)
		}
		s.Relations[i] = Link{ID: fmt.Sprintf("R%d", i+1), Type: r.Type, Arg1: arg1, Arg2: arg2}
	}
	return s, nil
}

// TextFile returns the .txt content: the document text and one newline.
func (s *Standoff) TextFile() string {
	return s.Text + "\n"
}

// AnnFile returns the .ann content: entity lines, then relation lines,
// each newline-terminated. A document without annotations yields "".
func (s *Standoff) AnnFile() string {
	var b strings.Builder
	for _, e := range s.Entities {
		fmt.Fprintf(&b, "%s\t%s %d %d\t%s\n", e.ID, e.Type, e.Start, e.End, e.Text)
	}
	for _, r := range s.Relations {
		fmt.Fprintf(&b, "%s\t%s Arg1:%s Arg2:%s\n", r.ID, r.Type, r.Arg1, r.Arg2)
	}
	return b.String()
}
