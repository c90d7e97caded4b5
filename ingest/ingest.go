// Package ingest collects raw dependency edge records from heterogeneous
// per-source catalogs and code scans, producing the canonical record stream
// the graph build consumes.
package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/migratehq/depscope/objgraph"
)

// Ingestor reads dependency records from one source. Implementations own
// all source-specific retrieval; the records they emit are the canonical
// shape consumed by objgraph.Build.
type Ingestor interface {
	// Name identifies the ingestor for logs and error messages.
	Name() string
	// ReadEdges returns every raw edge record the source knows about.
	// Duplicates are fine; they are deduplicated during the graph build.
	ReadEdges(ctx context.Context) ([]objgraph.RawEdgeRecord, error)
}

// Collect fans ingestion out across all ingestors concurrently and joins
// the record streams in ingestor order, so the combined stream is
// deterministic regardless of which source finishes first.
func Collect(ctx context.Context, ingestors ...Ingestor) ([]objgraph.RawEdgeRecord, error) {
	perIngestor := make([][]objgraph.RawEdgeRecord, len(ingestors))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, ing := range ingestors {
		i, ing := i, ing
		group.Go(func() error {
			records, err := ing.ReadEdges(groupCtx)
			if err != nil {
				return fmt.Errorf("%s: %w", ing.Name(), err)
			}
			perIngestor[i] = records
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var combined []objgraph.RawEdgeRecord
	for _, records := range perIngestor {
		combined = append(combined, records...)
	}
	return combined, nil
}
