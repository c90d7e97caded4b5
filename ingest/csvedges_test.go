package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEdgeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVIngestorReadsRecords(t *testing.T) {
	path := writeEdgeFile(t, `referencing_name,referencing_kind,referenced_name,referenced_kind,source
dbo.spOrderCreate,P,dbo.OrderHeader,U,erp
dbo.spOrderCreate,P,dbo.spOrderAudit,P,erp
`)

	records, err := NewCSVIngestor(path, "fallback").ReadEdges(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "dbo.spOrderCreate", records[0].ReferencingName)
	assert.Equal(t, "U", records[0].ReferencedKind)
	assert.Equal(t, "erp", records[0].Source)
}

func TestCSVIngestorDefaultSource(t *testing.T) {
	path := writeEdgeFile(t, "dbo.spA,P,dbo.spB,P\n")

	records, err := NewCSVIngestor(path, "staging").ReadEdges(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "staging", records[0].Source, "rows without a source column fall back to the default")
}

func TestCSVIngestorNoHeader(t *testing.T) {
	path := writeEdgeFile(t, "dbo.spA,P,dbo.spB,P,erp\ndbo.spB,P,dbo.Orders,U,erp\n")

	records, err := NewCSVIngestor(path, "").ReadEdges(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2, "a file without a header row loses no records")
}

func TestCSVIngestorTooFewColumns(t *testing.T) {
	path := writeEdgeFile(t, "dbo.spA,P\n")

	_, err := NewCSVIngestor(path, "").ReadEdges(context.Background())
	assert.Error(t, err)
}

func TestCSVIngestorMissingFile(t *testing.T) {
	_, err := NewCSVIngestor(filepath.Join(t.TempDir(), "nope.csv"), "").ReadEdges(context.Background())
	assert.Error(t, err)
}
