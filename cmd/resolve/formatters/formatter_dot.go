package formatters

import (
	"errors"
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/migratehq/depscope/objgraph"
)

// DOTFormatter renders the resolved path sub-graph as Graphviz DOT, with
// nodes colored by object kind.
type DOTFormatter struct{}

func (f *DOTFormatter) Format(report objgraph.Report, opts FormatOptions) (string, error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())

	names := make([]string, 0, len(report.Nodes))
	for name := range report.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		err := g.AddVertex(name,
			graphlib.VertexAttribute("shape", "box"),
			graphlib.VertexAttribute("style", "filled"),
			graphlib.VertexAttribute("fillcolor", kindColor(report.Nodes[name])),
		)
		if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return "", err
		}
	}

	for _, root := range report.Roots {
		for _, path := range root.Paths {
			for i := 0; i+1 < len(path); i++ {
				err := g.AddEdge(path[i], path[i+1])
				if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
					return "", err
				}
			}
		}
	}

	var sb strings.Builder
	var err error
	if opts.Label != "" {
		err = draw.DOT(g, &sb, draw.GraphAttribute("label", opts.Label))
	} else {
		err = draw.DOT(g, &sb)
	}
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
