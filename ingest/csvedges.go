package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/migratehq/depscope/objgraph"
)

// CSVIngestor reads raw edge records from a CSV file, one record per row:
//
//	referencing_name,referencing_kind,referenced_name,referenced_kind[,source]
//
// A header row is skipped if present. Rows without a source column use the
// ingestor's default source.
type CSVIngestor struct {
	Path          string
	DefaultSource string
}

// NewCSVIngestor returns an ingestor for one CSV edge file.
func NewCSVIngestor(path, defaultSource string) *CSVIngestor {
	return &CSVIngestor{Path: path, DefaultSource: defaultSource}
}

func (c *CSVIngestor) Name() string {
	return "csv:" + filepath.Base(c.Path)
}

func (c *CSVIngestor) ReadEdges(ctx context.Context) ([]objgraph.RawEdgeRecord, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []objgraph.RawEdgeRecord
	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read edge file: %w", err)
		}

		if line == 1 && isHeaderRow(row) {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", line, len(row))
		}

		rec := objgraph.RawEdgeRecord{
			ReferencingName: strings.TrimSpace(row[0]),
			ReferencingKind: strings.TrimSpace(row[1]),
			ReferencedName:  strings.TrimSpace(row[2]),
			ReferencedKind:  strings.TrimSpace(row[3]),
			Source:          c.DefaultSource,
		}
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			rec.Source = strings.TrimSpace(row[4])
		}
		records = append(records, rec)
	}

	return records, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "referencing_name")
}
