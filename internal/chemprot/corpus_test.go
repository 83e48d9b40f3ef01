// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemprot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

// loadPartition writes the three partition files into a temp dir and loads them.
func loadPartition(t *testing.T, abstracts, entities, relations []string) (*Corpus, string) {
	t.Helper()
	dir := t.TempDir()
	p := Partition{
		Abstracts: []string{writeLines(t, dir, "p_abstracts.tsv", abstracts...)},
		Entities:  []string{writeLines(t, dir, "p_entities.tsv", entities...)},
		Relations: []string{writeLines(t, dir, "p_gold_standard.tsv", relations...)},
	}
	var warnings bytes.Buffer
	corpus, err := Load(p, LoadOptions{Warnings: &warnings})
	require.NoError(t, err)
	return corpus, warnings.String()
}

func TestLoad_Basic(t *testing.T) {
	corpus, warnings := loadPartition(t,
		[]string{"D1\tTitle\tBody text.", "", "D2\tAspirin\tinhibits COX-1."},
		[]string{
			"D1\tT1\tCHEMICAL\t0\t5\tTitle",
			"D2\tT4\tCHEMICAL\t0\t7\tAspirin",
			"D2\tT9\tGENE-N\t17\t22\tCOX-1",
		},
		[]string{"D2\tCPR:4\tArg1:T4\tArg2:T9"},
	)

	assert.Empty(t, warnings)
	assert.Empty(t, corpus.Diagnostics)
	require.Len(t, corpus.Documents, 2)

	d1 := corpus.Documents[0]
	assert.Equal(t, "D1", d1.ID)
	assert.Equal(t, "Title Body text.", d1.Text)
	assert.Equal(t, []types.Entity{{LocalID: "T1", Type: "CHEMICAL", Start: 0, End: 5, Text: "Title"}}, d1.Entities)
	assert.Empty(t, d1.Relations)

	d2 := corpus.Documents[1]
	assert.Equal(t, "Aspirin inhibits COX-1.", d2.Text)
	require.Len(t, d2.Entities, 2)
	assert.Equal(t, []types.Relation{{Type: "CPR:4", Arg1: "T4", Arg2: "T9"}}, d2.Relations)
}

func TestLoad_CustomSeparator(t *testing.T) {
	dir := t.TempDir()
	p := Partition{Abstracts: []string{writeLines(t, dir, "p_abstracts.tsv", "D1\tTitle\tBody")}}

	corpus, err := Load(p, LoadOptions{Separator: "\n"})
	require.NoError(t, err)
	assert.Equal(t, "Title\nBody", corpus.Documents[0].Text)
}

func TestLoad_OffsetsCountCharacters(t *testing.T) {
	corpus, warnings := loadPartition(t,
		[]string{"D1\tα-Tocopherol\tand β-carotene."},
		[]string{
			"D1\tT1\tCHEMICAL\t0\t12\tα-Tocopherol",
			"D1\tT2\tCHEMICAL\t17\t27\tβ-carotene",
		},
		nil,
	)
	assert.Empty(t, warnings)
	assert.Len(t, corpus.Documents[0].Entities, 2)
}

func TestLoad_SkipsBadRecords(t *testing.T) {
	corpus, warnings := loadPartition(t,
		[]string{
			"D1\tTitle\tBody text.",
			"D1\tDuplicate\tShould be ignored.",
			"D2\tonly two columns",
		},
		[]string{
			"D1\tT1\tCHEMICAL\t0\t5\tTitle",
			"D1\tT2\tCHEMICAL\t6\t3\tBody",
			"D1\tT3\tCHEMICAL\t6\t99\tBody",
			"D1\tT4\tGENE-Y\t6\t10\tbody",
			"D1\tT1\tGENE-Y\t6\t10\tBody",
			"D9\tT1\tCHEMICAL\t0\t5\tTitle",
			"D1\tT5\tCHEMICAL\tzero\t5\tTitle",
			"D1\tT6\tGENE-N\t6\t10\tBody",
			"D1\tT2\tGENE-N\t6\t10\tBody",
			"D1\tT7\tGENE-N\t6\t6\t",
		},
		[]string{
			"D1\tCPR:3\tArg1:T1\tArg2:T2",
			"D1\tCPR:4\tArg1:T1\tArg2:T6",
			"D1\tCPR:9\tArg1:T6\tArg2:T7",
			"D9\tCPR:4\tArg1:T1\tArg2:T6",
			"D1\tCPR:4",
		},
	)

	require.Len(t, corpus.Documents, 1)
	doc := corpus.Documents[0]
	assert.Equal(t, "Title Body text.", doc.Text, "first record wins for duplicate IDs")

	var ids []string
	for _, e := range doc.Entities {
		ids = append(ids, e.LocalID)
	}
	assert.Equal(t, []string{"T1", "T6"}, ids)
	assert.Equal(t, []types.Relation{{Type: "CPR:4", Arg1: "T1", Arg2: "T6"}}, doc.Relations)

	assert.Equal(t, []Kind{
		KindDuplicateDocument,
		KindMalformed,
		KindOffset,
		KindOffset,
		KindTextMismatch,
		KindDuplicateEntity,
		KindUnknownDocument,
		KindMalformed,
		KindDuplicateEntity,
		KindOffset,
		KindDanglingRelation,
		KindDanglingRelation,
		KindUnknownDocument,
		KindMalformed,
	}, kinds(corpus.Diagnostics))
	assert.Equal(t, 14, corpus.Skipped())

	assert.Equal(t, 14, strings.Count(warnings, "warning:"))
	assert.Contains(t, warnings, "p_entities.tsv:9: duplicate-entity: document D1: entity T2 already defined",
		"a repeated ID is a duplicate even when the first record was skipped")
	assert.Contains(t, warnings, "p_entities.tsv:10: offset: document D1: entity T7 offsets [6,6)")
	assert.Contains(t, warnings, "p_entities.tsv:2: offset: document D1: entity T2 offsets [6,3)")
	assert.Contains(t, warnings, "references unknown or skipped entity T2")
}

func TestLoad_MissingAnnotationFiles(t *testing.T) {
	dir := t.TempDir()
	p := Partition{Abstracts: []string{writeLines(t, dir, "p_abstracts.tsv", "D1\tTitle\tBody")}}

	corpus, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	assert.Len(t, corpus.Documents, 1)
	assert.Equal(t, []Kind{KindMissingFile, KindMissingFile}, kinds(corpus.Diagnostics))
	assert.Zero(t, corpus.Skipped(), "missing files do not count as skipped records")
}

func TestLoad_XZInput(t *testing.T) {
	dir := t.TempDir()
	p := Partition{
		Abstracts: []string{writeXZ(t, dir, "p_abstracts.tsv.xz", "D1\tTitle\tBody text.")},
		Entities:  []string{writeXZ(t, dir, "p_entities.tsv.xz", "D1\tT1\tCHEMICAL\t0\t5\tTitle")},
		Relations: []string{writeLines(t, dir, "p_gold_standard.tsv")},
	}

	corpus, err := Load(p, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, corpus.Documents, 1)
	assert.Len(t, corpus.Documents[0].Entities, 1)
}

func TestLoad_UnreadableFile(t *testing.T) {
	p := Partition{Abstracts: []string{"/nonexistent/p_abstracts.tsv"}}
	_, err := Load(p, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening /nonexistent/p_abstracts.tsv")
}
