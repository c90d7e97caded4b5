package objgraph

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderFixtureRecords() []RawEdgeRecord {
	return []RawEdgeRecord{
		{ReferencingName: "dbo.spOrderCreate", ReferencingKind: "P", ReferencedName: "dbo.spOrderAudit", ReferencedKind: "P", Source: "erp"},
		{ReferencingName: "dbo.spOrderCreate", ReferencingKind: "P", ReferencedName: "dbo.spOrderValidate", ReferencedKind: "P", Source: "erp"},
		{ReferencingName: "dbo.spOrderAudit", ReferencingKind: "P", ReferencedName: "dbo.OrderHeader", ReferencedKind: "U", Source: "erp"},
		{ReferencingName: "dbo.spOrderValidate", ReferencingKind: "P", ReferencedName: "dbo.OrderHeader", ReferencedKind: "U", Source: "erp"},
	}
}

func TestAnalyzeForwardReportSnapshot(t *testing.T) {
	store, diags, err := Build(orderFixtureRecords(), BuildOptions{})
	require.NoError(t, err)

	report, err := Analyze(context.Background(), store, Request{
		Roots:     []string{"dbo.spOrderCreate"},
		Source:    "erp",
		Direction: "forward",
	}, diags)
	require.NoError(t, err)

	data, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "analyze_report", data)
}

func TestAnalyzeBothDirections(t *testing.T) {
	store, diags, err := Build(orderFixtureRecords(), BuildOptions{})
	require.NoError(t, err)

	report, err := Analyze(context.Background(), store, Request{
		Roots:     []string{"dbo.spOrderAudit"},
		Source:    "erp",
		Direction: "both",
	}, diags)
	require.NoError(t, err)

	require.Len(t, report.Roots, 2)
	assert.Equal(t, "forward", report.Roots[0].Direction)
	assert.Equal(t, "reverse", report.Roots[1].Direction)

	require.Len(t, report.Roots[0].Leaves, 1)
	assert.Equal(t, "dbo.OrderHeader", report.Roots[0].Leaves[0].Terminal)
	require.Len(t, report.Roots[1].Leaves, 1)
	assert.Equal(t, "dbo.spOrderCreate", report.Roots[1].Leaves[0].Terminal)
}

func TestAnalyzeAmbiguousRootIsSkipped(t *testing.T) {
	records := append(orderFixtureRecords(),
		RawEdgeRecord{ReferencingName: "archive.spOrderCreate", ReferencingKind: "P", ReferencedName: "archive.OrderHeader", ReferencedKind: "U", Source: "erp"},
	)
	store, diags, err := Build(records, BuildOptions{})
	require.NoError(t, err)

	report, err := Analyze(context.Background(), store, Request{
		Roots:     []string{"spOrderCreate", "dbo.spOrderAudit"},
		Source:    "erp",
		Direction: "forward",
	}, diags)
	require.NoError(t, err)

	require.Len(t, report.Roots, 1, "the ambiguous root is skipped, the rest still resolve")
	assert.Equal(t, "dbo.spOrderAudit", report.Roots[0].Root)
	require.Len(t, report.AmbiguousResolutions, 1)
	assert.Contains(t, report.AmbiguousResolutions[0], "spOrderCreate")
}

func TestAnalyzeUnknownRootIsReported(t *testing.T) {
	store, diags, err := Build(orderFixtureRecords(), BuildOptions{})
	require.NoError(t, err)

	report, err := Analyze(context.Background(), store, Request{
		Roots:     []string{"dbo.spNoSuchThing"},
		Source:    "erp",
		Direction: "forward",
	}, diags)
	require.NoError(t, err)

	assert.Empty(t, report.Roots)
	require.Len(t, report.AmbiguousResolutions, 1)
	assert.Contains(t, report.AmbiguousResolutions[0], "not found")
}

func TestAnalyzeRejectsUnknownDirection(t *testing.T) {
	store, diags, err := Build(orderFixtureRecords(), BuildOptions{})
	require.NoError(t, err)

	_, err = Analyze(context.Background(), store, Request{
		Roots:     []string{"dbo.spOrderCreate"},
		Source:    "erp",
		Direction: "sideways",
	}, diags)
	assert.Error(t, err)
}

func TestParseDirections(t *testing.T) {
	tests := []struct {
		raw     string
		want    []Direction
		wantErr bool
	}{
		{raw: "", want: []Direction{Forward}},
		{raw: "forward", want: []Direction{Forward}},
		{raw: "Reverse", want: []Direction{Reverse}},
		{raw: "both", want: []Direction{Forward, Reverse}},
		{raw: "diagonal", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseDirections(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
