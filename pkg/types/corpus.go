// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the chemprot-standoff
// converter: the parsed corpus (documents, entities, relations) and the
// configuration of a conversion run.
package types

// Document is one ChemProt abstract keyed by its PubMed ID.
type Document struct {
	// ID is the PubMed ID (PMID) of the abstract.
	ID string `json:"id" yaml:"id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the abstract body.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Text is the standoff text: Title, the separator, then Abstract.
	// Entity offsets index into Text.
	Text string `json:"text" yaml:"text"`

	// Entities holds the validated entities in corpus order.
	Entities []Entity `json:"entities" yaml:"entities"`

	// Relations holds the validated relations in corpus order.
	Relations []Relation `json:"relations" yaml:"relations"`
}

// Entity is a typed text span inside a Document.
type Entity struct {
	// LocalID is the corpus identifier, unique within the document (e.g. "T3").
	LocalID string `json:"local_id" yaml:"local_id"`

	// Type is the entity label (e.g. "CHEMICAL", "GENE-Y").
	Type string `json:"type" yaml:"type"`

	// Start is the inclusive character offset into Document.Text.
	Start int `json:"start" yaml:"start"`

	// End is the exclusive character offset into Document.Text.
	End int `json:"end" yaml:"end"`

	// Text is the literal span covered by [Start, End).
	Text string `json:"text" yaml:"text"`
}

// Relation links two entities of the same Document.
type Relation struct {
	// Type is the relation label (e.g. "CPR:4").
	Type string `json:"type" yaml:"type"`

	// Arg1 is the LocalID of the first participant.
	Arg1 string `json:"arg1" yaml:"arg1"`

	// Arg2 is the LocalID of the second participant.
	Arg2 string `json:"arg2" yaml:"arg2"`
}
