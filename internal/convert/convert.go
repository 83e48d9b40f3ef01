// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert writes a loaded ChemProt corpus as Brat standoff files:
// one <doc_id>.txt and one <doc_id>.ann per document.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/chemprot-standoff/internal/chemprot"
	"github.com/pdiddy/chemprot-standoff/internal/standoff"
	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

const (
	textExt = ".txt"
	annExt  = ".ann"
)

// ErrOutputMissing is returned when the output directory does not exist
// and creating it was not requested.
var ErrOutputMissing = errors.New("output directory does not exist")

// Sink receives each document after its files are written. The SQLite
// index implements it.
type Sink interface {
	Put(ctx context.Context, doc *types.Document, so *standoff.Standoff) error
}

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Entities  int
	Relations int
	// Skipped counts input records dropped by validation.
	Skipped int
	Files   []FileDigest
}

// HasSkips reports whether any input record was dropped.
func (r BatchResult) HasSkips() bool {
	return r.Skipped > 0
}

// PrepareOutput checks that dir is a usable output directory, creating it
// when create is set.
func PrepareOutput(dir string, create bool) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("output %s is not a directory", dir)
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("checking output %s: %w", dir, err)
	case !create:
		return fmt.Errorf("%w: %s (create it or pass --create-output)", ErrOutputMissing, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output %s: %w", dir, err)
	}
	return nil
}

// WriteDocument writes the .txt and .ann files of so into outDir and
// returns their digests.
func WriteDocument(so *standoff.Standoff, outDir string) ([]FileDigest, error) {
	txt, err := writeFile(outDir, so.DocID+textExt, so.TextFile())
	if err != nil {
		return nil, err
	}
	ann, err := writeFile(outDir, so.DocID+annExt, so.AnnFile())
	if err != nil {
		return nil, err
	}
	return []FileDigest{txt, ann}, nil
}

// writeFile holds the file open only for the duration of one write.
func writeFile(dir, name, content string) (FileDigest, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return FileDigest{}, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, content); err != nil {
		return FileDigest{}, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return FileDigest{}, fmt.Errorf("closing %s: %w", path, err)
	}
	return digest(name, content), nil
}

// ConvertCorpus writes every document of corpus to outDir in order,
// printing one status line per document to w and a summary at the end.
// A nil sink is allowed. Write failures stop the run.
func ConvertCorpus(ctx context.Context, corpus *chemprot.Corpus, outDir string, sink Sink, w io.Writer) (BatchResult, error) {
	result := BatchResult{Skipped: corpus.Skipped()}

	for _, doc := range corpus.Documents {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		so, err := standoff.Build(doc)
		if err != nil {
			return result, err
		}
		files, err := WriteDocument(so, outDir)
		if err != nil {
			return result, err
		}
		if sink != nil {
			if err := sink.Put(ctx, doc, so); err != nil {
				return result, fmt.Errorf("indexing %s: %w", doc.ID, err)
			}
		}

		result.Converted++
		result.Entities += len(so.Entities)
		result.Relations += len(so.Relations)
		result.Files = append(result.Files, files...)
		fmt.Fprintf(w, "converted: %s (%d entities, %d relations)\n", doc.ID, len(so.Entities), len(so.Relations))
	}

	fmt.Fprintf(w, "\nBatch summary: %d documents, %d entities, %d relations written; %d records skipped\n",
		result.Converted, result.Entities, result.Relations, result.Skipped)
	return result, nil
}
