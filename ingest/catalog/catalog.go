// Package catalog reads dependency edges from a system-catalog snapshot
// database: the SQLite extract produced per database instance by the
// catalog ETL. One snapshot is one source.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/migratehq/depscope/objgraph"
)

const dependenciesQuery = `
SELECT referencing_name, referencing_type, referenced_name, referenced_type
FROM object_dependencies
ORDER BY referencing_name, referenced_name`

// SnapshotIngestor reads the object_dependencies table of one catalog
// snapshot. The snapshot is opened read-only per ReadEdges call; nothing is
// held between runs.
type SnapshotIngestor struct {
	Path   string
	Source string
}

// NewSnapshotIngestor returns an ingestor for one snapshot database file,
// attributing every record to the given source.
func NewSnapshotIngestor(path, source string) *SnapshotIngestor {
	return &SnapshotIngestor{Path: path, Source: source}
}

func (s *SnapshotIngestor) Name() string {
	return "catalog:" + filepath.Base(s.Path)
}

func (s *SnapshotIngestor) ReadEdges(ctx context.Context) ([]objgraph.RawEdgeRecord, error) {
	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog snapshot: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, dependenciesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query object_dependencies: %w", err)
	}
	defer rows.Close()

	var records []objgraph.RawEdgeRecord
	for rows.Next() {
		var referencingName, referencingType string
		var referencedName, referencedType sql.NullString
		if err := rows.Scan(&referencingName, &referencingType, &referencedName, &referencedType); err != nil {
			return nil, fmt.Errorf("failed to scan dependency row: %w", err)
		}
		records = append(records, objgraph.RawEdgeRecord{
			ReferencingName: referencingName,
			ReferencingKind: referencingType,
			ReferencedName:  referencedName.String,
			ReferencedKind:  referencedType.String,
			Source:          s.Source,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read object_dependencies: %w", err)
	}

	return records, nil
}
