// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chemprot-standoff/internal/index"
	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

func TestRun_WritesIndex(t *testing.T) {
	in := setupPartition(t)
	dbPath := filepath.Join(t.TempDir(), "corpus.db")

	cfg := types.ConversionConfig{Input: in, Output: t.TempDir(), DBPath: dbPath}
	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	store, err := index.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, []index.TypeCount{{Type: "CHEMICAL", Count: 2}, {Type: "GENE-N", Count: 2}}, stats.Entities)
	assert.Equal(t, []index.TypeCount{{Type: "CPR:4", Count: 2}}, stats.Relations)
}
