// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chemprot reads a ChemProt corpus partition: it locates the
// abstracts, entities, and relations files, parses each line into an
// explicit record, and assembles validated documents.
package chemprot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned for any line that does not match its
// file's record layout.
var ErrMalformedRecord = errors.New("malformed record")

// AbstractRecord is one line of an *_abstracts.tsv file:
// doc_id, title, abstract.
type AbstractRecord struct {
	DocID    string
	Title    string
	Abstract string
}

// EntityRecord is one line of an *_entities.tsv file:
// doc_id, entity_id, type, start, end, text.
type EntityRecord struct {
	DocID    string
	EntityID string
	Type     string
	Start    int
	End      int
	Text     string
}

// RelationRecord is one line of a relations file. RelationID is empty for
// the ChemProt layouts, which carry no relation identifier.
type RelationRecord struct {
	DocID      string
	RelationID string
	Type       string
	Arg1       string
	Arg2       string
}

// ParseAbstract parses a 3-column abstract line.
func ParseAbstract(line string) (AbstractRecord, error) {
	cols := splitColumns(line)
	if len(cols) != 3 {
		return AbstractRecord{}, columnError("abstract", len(cols), "3")
	}
	if cols[0] == "" {
		return AbstractRecord{}, fmt.Errorf("%w: empty document ID", ErrMalformedRecord)
	}
	// Document IDs become file names.
	if cols[0] == "." || cols[0] == ".." || strings.ContainsAny(cols[0], `/\`) {
		return AbstractRecord{}, fmt.Errorf("%w: document ID %q is not a valid file name", ErrMalformedRecord, cols[0])
	}
	return AbstractRecord{DocID: cols[0], Title: cols[1], Abstract: cols[2]}, nil
}

// ParseEntity parses a 6-column entity line. Offsets must be integers;
// range checks against the document text happen during loading.
func ParseEntity(line string) (EntityRecord, error) {
	cols := splitColumns(line)
	if len(cols) != 6 {
		return EntityRecord{}, columnError("entity", len(cols), "6")
	}
	if cols[0] == "" || cols[1] == "" {
		return EntityRecord{}, fmt.Errorf("%w: empty document or entity ID", ErrMalformedRecord)
	}
	if cols[2] == "" {
		return EntityRecord{}, fmt.Errorf("%w: empty entity type", ErrMalformedRecord)
	}
	start, err := strconv.Atoi(cols[3])
	if err != nil {
		return EntityRecord{}, fmt.Errorf("%w: start offset %q is not an integer", ErrMalformedRecord, cols[3])
	}
	end, err := strconv.Atoi(cols[4])
	if err != nil {
		return EntityRecord{}, fmt.Errorf("%w: end offset %q is not an integer", ErrMalformedRecord, cols[4])
	}
	return EntityRecord{
		DocID:    cols[0],
		EntityID: cols[1],
		Type:     cols[2],
		Start:    start,
		End:      end,
		Text:     cols[5],
	}, nil
}

// ParseRelation parses a relation line in one of three layouts, chosen by
// column count:
//
//	5: doc_id, relation_id, type, arg1, arg2
//	4: doc_id, type, arg1, arg2                          (gold standard)
//	6: doc_id, type, evaluated, fine_type, arg1, arg2    (relations file)
//
// Argument references lose their "Arg1:"/"Arg2:" role prefix.
func ParseRelation(line string) (RelationRecord, error) {
	cols := splitColumns(line)

	var rec RelationRecord
	switch len(cols) {
	case 5:
		rec = RelationRecord{DocID: cols[0], RelationID: cols[1], Type: cols[2], Arg1: cols[3], Arg2: cols[4]}
	case 4:
		rec = RelationRecord{DocID: cols[0], Type: cols[1], Arg1: cols[2], Arg2: cols[3]}
	case 6:
		rec = RelationRecord{DocID: cols[0], Type: cols[1], Arg1: cols[4], Arg2: cols[5]}
	default:
		return RelationRecord{}, columnError("relation", len(cols), "4, 5 or 6")
	}

	rec.Arg1 = stripRole(rec.Arg1)
	rec.Arg2 = stripRole(rec.Arg2)

	if rec.DocID == "" {
		return RelationRecord{}, fmt.Errorf("%w: empty document ID", ErrMalformedRecord)
	}
	if rec.Type == "" {
		return RelationRecord{}, fmt.Errorf("%w: empty relation type", ErrMalformedRecord)
	}
	if rec.Arg1 == "" || rec.Arg2 == "" {
		return RelationRecord{}, fmt.Errorf("%w: empty relation argument", ErrMalformedRecord)
	}
	return rec, nil
}

func splitColumns(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r\n"), "\t")
}

func columnError(kind string, got int, want string) error {
	return fmt.Errorf("%w: %s record has %d columns, want %s", ErrMalformedRecord, kind, got, want)
}

// stripRole removes a leading "ArgN:" prefix from an entity reference.
func stripRole(ref string) string {
	if i := strings.IndexByte(ref, ':'); i >= 0 && strings.HasPrefix(ref, "Arg") {
		return ref[i+1:]
	}
	return ref
}
