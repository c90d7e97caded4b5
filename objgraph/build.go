package objgraph

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// RawEdgeRecord is one dependency record as ingested from a source catalog
// or code scan: referencing object → referenced object. Order is irrelevant
// and duplicates are tolerated; both are normalized away during the build.
type RawEdgeRecord struct {
	ReferencingName string
	ReferencingKind string
	ReferencedName  string
	ReferencedKind  string
	Source          string
	Container       string
}

// BuildDiagnostics accumulates the per-record problems encountered while
// building the graph. One bad record never aborts the run; it is skipped or
// degraded and noted here.
type BuildDiagnostics struct {
	MalformedEdges      []string
	AmbiguousReferences []string
}

// BuildOptions configures graph construction. A nil Logger falls back to
// slog.Default.
type BuildOptions struct {
	Logger *slog.Logger
}

// Build normalizes a raw edge stream into a registry and an immutable
// store, in two passes: first every referencing endpoint is registered so
// the registry's name index is complete, then referenced names are resolved
// against it and edges are linked by internal ID.
//
// Referenced objects that resolve to no registered node are registered as
// new nodes (unknown-kind if the record carries no kind) rather than
// dropped: an unresolved reference usually means a missing object or a
// cross-boundary call, which is exactly what impact analysis needs to see.
// Ambiguous partial references are not guessed; they are recorded as
// diagnostics and materialized as fresh nodes under the partial name.
func Build(records []RawEdgeRecord, opts BuildOptions) (*Store, BuildDiagnostics, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := NewRegistry()
	var diags BuildDiagnostics

	// Pass 1: register every referencing endpoint.
	valid := make([]RawEdgeRecord, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.ReferencingName) == "" || strings.TrimSpace(rec.ReferencedName) == "" {
			detail := fmt.Sprintf("source %q: %q -> %q", rec.Source, rec.ReferencingName, rec.ReferencedName)
			diags.MalformedEdges = append(diags.MalformedEdges, detail)
			logger.Warn("skipping malformed edge record", "source", rec.Source,
				"referencing", rec.ReferencingName, "referenced", rec.ReferencedName)
			continue
		}
		if _, err := registry.Register(RawObject{
			QualifiedName: rec.ReferencingName,
			Kind:          rec.ReferencingKind,
			Source:        rec.Source,
			Container:     rec.Container,
		}); err != nil {
			diags.MalformedEdges = append(diags.MalformedEdges, err.Error())
			logger.Warn("skipping unregistrable edge record", "error", err)
			continue
		}
		valid = append(valid, rec)
	}

	// Pass 2: resolve referenced names against the full registry and link
	// edges by internal ID.
	edges := make([]Edge, 0, len(valid))
	for _, rec := range valid {
		from, err := registry.Register(RawObject{
			QualifiedName: rec.ReferencingName,
			Kind:          rec.ReferencingKind,
			Source:        rec.Source,
			Container:     rec.Container,
		})
		if err != nil {
			// Registered successfully in pass 1; cannot fail here.
			return nil, diags, err
		}

		to, err := resolveReferenced(registry, rec, &diags, logger)
		if err != nil {
			diags.MalformedEdges = append(diags.MalformedEdges, err.Error())
			logger.Warn("skipping unresolvable edge record", "error", err)
			continue
		}

		edges = append(edges, Edge{From: from, To: to})
	}

	store, err := NewStore(registry, edges)
	if err != nil {
		return nil, diags, err
	}
	return store, diags, nil
}

// resolveReferenced maps a referenced name to a node ID, consulting the
// registry's index before creating a new node.
func resolveReferenced(registry *Registry, rec RawEdgeRecord, diags *BuildDiagnostics, logger *slog.Logger) (NodeID, error) {
	id, err := registry.Resolve(rec.ReferencedName, rec.Source, rec.Container)
	if err == nil {
		return id, nil
	}

	var ambiguous *AmbiguousError
	if errors.As(err, &ambiguous) {
		diags.AmbiguousReferences = append(diags.AmbiguousReferences, ambiguous.Error())
		logger.Warn("ambiguous referenced name, keeping unresolved node",
			"name", rec.ReferencedName, "candidates", ambiguous.Candidates)
	}

	// Unresolved (or ambiguous, which we refuse to guess): register the
	// reference as seen so the dependency stays visible.
	return registry.Register(RawObject{
		QualifiedName: rec.ReferencedName,
		Kind:          rec.ReferencedKind,
		Source:        rec.Source,
		Container:     rec.Container,
	})
}
