package objgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLinksResolvedReferences(t *testing.T) {
	records := []RawEdgeRecord{
		{ReferencingName: "dbo.spA", ReferencingKind: "P", ReferencedName: "dbo.spB", ReferencedKind: "P", Source: "prod"},
		{ReferencingName: "dbo.spB", ReferencingKind: "P", ReferencedName: "dbo.OrderHeader", ReferencedKind: "U", Source: "prod"},
	}

	store, diags, err := Build(records, BuildOptions{})
	require.NoError(t, err)
	assert.Empty(t, diags.MalformedEdges)
	assert.Equal(t, 3, store.Registry().Len())

	id, err := store.Registry().Resolve("dbo.spA", "prod", "")
	require.NoError(t, err)
	assert.Len(t, store.Neighbors(id, Forward), 1)
}

func TestBuildPartialReferenceResolvesToRegisteredNode(t *testing.T) {
	// The catalog registers dbo.spTarget fully qualified; a code scan
	// references it by bare name. Both must land on one node.
	records := []RawEdgeRecord{
		{ReferencingName: "dbo.spTarget", ReferencingKind: "P", ReferencedName: "dbo.OrderHeader", ReferencedKind: "U", Source: "prod"},
		{ReferencingName: "OrderSearchAction", ReferencingKind: "ui-component", ReferencedName: "spTarget", Source: "prod"},
	}

	store, _, err := Build(records, BuildOptions{})
	require.NoError(t, err)

	ui, err := store.Registry().Resolve("OrderSearchAction", "prod", "")
	require.NoError(t, err)
	target, err := store.Registry().Resolve("dbo.spTarget", "prod", "")
	require.NoError(t, err)

	neighbors := store.Neighbors(ui, Forward)
	require.Len(t, neighbors, 1)
	assert.Equal(t, target, neighbors[0], "partial reference must resolve through the registry index")
}

func TestBuildUnresolvedReferenceBecomesUnknownLeaf(t *testing.T) {
	records := []RawEdgeRecord{
		{ReferencingName: "dbo.spX", ReferencingKind: "P", ReferencedName: "spGhost", Source: "prod"},
	}

	store, diags, err := Build(records, BuildOptions{})
	require.NoError(t, err)
	assert.Empty(t, diags.MalformedEdges, "an unresolved reference is not an error")

	x, err := store.Registry().Resolve("dbo.spX", "prod", "")
	require.NoError(t, err)
	neighbors := store.Neighbors(x, Forward)
	require.Len(t, neighbors, 1)

	ghost := store.Registry().Node(neighbors[0])
	assert.Equal(t, KindUnknown, ghost.Key.Kind, "the missing object stays visible as an unknown-kind node")
	assert.Empty(t, store.Neighbors(neighbors[0], Forward), "and it is a leaf")
}

func TestBuildSkipsMalformedRecords(t *testing.T) {
	records := []RawEdgeRecord{
		{ReferencingName: "", ReferencedName: "dbo.spB", Source: "prod"},
		{ReferencingName: "dbo.spA", ReferencedName: "   ", Source: "prod"},
		{ReferencingName: "dbo.spA", ReferencingKind: "P", ReferencedName: "dbo.spB", ReferencedKind: "P", Source: "prod"},
	}

	store, diags, err := Build(records, BuildOptions{})
	require.NoError(t, err, "a bad record must not abort the run")
	assert.Len(t, diags.MalformedEdges, 2)
	assert.Equal(t, 2, store.Registry().Len(), "only the valid record contributes nodes")
}

func TestBuildAmbiguousReferenceIsReportedNotGuessed(t *testing.T) {
	records := []RawEdgeRecord{
		{ReferencingName: "dbo.spGetOrders", ReferencingKind: "P", ReferencedName: "dbo.OrderHeader", ReferencedKind: "U", Source: "prod"},
		{ReferencingName: "archive.spGetOrders", ReferencingKind: "P", ReferencedName: "archive.OrderHeader", ReferencedKind: "U", Source: "prod"},
		{ReferencingName: "OrderAction", ReferencingKind: "ui-component", ReferencedName: "spGetOrders", Source: "prod"},
	}

	store, diags, err := Build(records, BuildOptions{})
	require.NoError(t, err)
	require.Len(t, diags.AmbiguousReferences, 1)

	ui, err := store.Registry().Resolve("OrderAction", "prod", "")
	require.NoError(t, err)
	neighbors := store.Neighbors(ui, Forward)
	require.Len(t, neighbors, 1)

	// Neither candidate was picked; the reference went to a fresh node.
	target := store.Registry().Node(neighbors[0])
	assert.Equal(t, "", target.Key.Namespace)
	assert.Equal(t, "spgetorders", target.Key.Name)
}

func TestBuildDeduplicatesRecords(t *testing.T) {
	rec := RawEdgeRecord{ReferencingName: "dbo.spA", ReferencingKind: "P", ReferencedName: "dbo.spB", ReferencedKind: "P", Source: "prod"}

	store, _, err := Build([]RawEdgeRecord{rec, rec, rec}, BuildOptions{})
	require.NoError(t, err)

	id, err := store.Registry().Resolve("dbo.spA", "prod", "")
	require.NoError(t, err)
	assert.Len(t, store.Neighbors(id, Forward), 1)
}

func TestBuildThenResolveUnknownLeafScenario(t *testing.T) {
	// Edge X→Y where Y is never separately cataloged: forward resolution
	// from X must report leaf Y with kind unknown.
	records := []RawEdgeRecord{
		{ReferencingName: "dbo.spX", ReferencingKind: "P", ReferencedName: "dbo.spY", Source: "prod"},
	}

	store, _, err := Build(records, BuildOptions{})
	require.NoError(t, err)

	x, err := store.Registry().Resolve("dbo.spX", "prod", "")
	require.NoError(t, err)

	res, err := store.Resolve(context.Background(), []NodeID{x}, Forward, 0)
	require.NoError(t, err)

	leaves := ExtractLeaves(res.Paths)
	require.Len(t, leaves, 1)
	leaf := store.Registry().Node(leaves[0].Terminal)
	assert.Equal(t, "dbo.spY", leaf.Display)
	assert.Equal(t, KindUnknown, leaf.Key.Kind)
}
