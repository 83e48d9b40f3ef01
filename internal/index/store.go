// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index stores a converted corpus in SQLite so that documents,
// entities, and relations can be queried after conversion.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/chemprot-standoff/internal/standoff"
	"github.com/pdiddy/chemprot-standoff/pkg/types"
)

// Store manages the corpus index database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index database at path and creates the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entities (
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			brat_id TEXT NOT NULL,
			local_id TEXT NOT NULL,
			type TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (document_id, brat_id)
		)`,
		`CREATE TABLE IF NOT EXISTS relations (
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			brat_id TEXT NOT NULL,
			type TEXT NOT NULL,
			arg1 TEXT NOT NULL,
			arg2 TEXT NOT NULL,
			PRIMARY KEY (document_id, brat_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type)`,
		`CREATE INDEX IF NOT EXISTS idx_relations_type ON relations(type)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put stores one converted document, replacing any earlier copy of it.
func (s *Store) Put(ctx context.Context, doc *types.Document, so *standoff.Standoff) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"relations", "entities", "documents"} {
		col := "document_id"
		if table == "documents" {
			col = "id"
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+col+` = ?`, doc.ID); err != nil {
			return fmt.Errorf("deleting old %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, abstract, text) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Abstract, doc.Text,
	); err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	entStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entities (document_id, brat_id, local_id, type, start_offset, end_offset, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entity insert: %w", err)
	}
	defer entStmt.Close()

	for _, e := range so.Entities {
		if _, err := entStmt.ExecContext(ctx, doc.ID, e.ID, e.LocalID, e.Type, e.Start, e.End, e.Text); err != nil {
			return fmt.Errorf("inserting entity %s: %w", e.ID, err)
		}
	}

	relStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO relations (document_id, brat_id, type, arg1, arg2) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing relation insert: %w", err)
	}
	defer relStmt.Close()

	for _, r := range so.Relations {
		if _, err := relStmt.ExecContext(ctx, doc.ID, r.ID, r.Type, r.Arg1, r.Arg2); err != nil {
			return fmt.Errorf("inserting relation %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
