// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
)

// TypeCount is the number of annotations carrying one label.
type TypeCount struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// Stats summarizes the indexed corpus.
type Stats struct {
	Documents int         `json:"documents" yaml:"documents"`
	Entities  []TypeCount `json:"entities" yaml:"entities"`
	Relations []TypeCount `json:"relations" yaml:"relations"`
}

// Stats counts documents, and entities and relations per type. Types are
// ordered by descending count, then by name.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&st.Documents); err != nil {
		return Stats{}, fmt.Errorf("counting documents: %w", err)
	}

	var err error
	if st.Entities, err = s.countByType(ctx, "entities"); err != nil {
		return Stats{}, err
	}
	if st.Relations, err = s.countByType(ctx, "relations"); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *Store) countByType(ctx context.Context, table string) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, count(*) AS n FROM `+table+` GROUP BY type ORDER BY n DESC, type ASC`)
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", table, err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning %s count: %w", table, err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}
