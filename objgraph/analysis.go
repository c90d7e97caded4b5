package objgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Request selects what to analyze: one or more root objects (fully or
// partially qualified), the source/container scope to resolve them in, a
// direction, and the depth cap (<= 0 means node count).
type Request struct {
	Roots     []string
	Source    string
	Container string
	Direction string
	MaxDepth  int
}

// PathReport is one path rendered as its node display-name sequence.
type PathReport []string

// LeafReport is one terminal object: its display name, kind, and every
// maximal path that ends there. This is the shape downstream exporters
// consume.
type LeafReport struct {
	Terminal string       `json:"terminal"`
	Kind     Kind         `json:"kind"`
	Paths    []PathReport `json:"paths"`
}

// RootReport is the resolution outcome for one root in one direction.
type RootReport struct {
	Root      string       `json:"root"`
	Direction string       `json:"direction"`
	Truncated bool         `json:"truncated"`
	Paths     []PathReport `json:"paths"`
	Leaves    []LeafReport `json:"leaves"`
}

// Report is the full result set of an analysis run, plus the accumulated
// diagnostics. Serialization is the exporter's responsibility; this is the
// hand-off shape.
type Report struct {
	Roots                []RootReport    `json:"roots"`
	Nodes                map[string]Kind `json:"nodes"`
	AmbiguousResolutions []string        `json:"ambiguousResolutions"`
	MalformedEdges       []string        `json:"malformedEdges"`
}

// ParseDirections expands a direction string into the traversal directions
// to run. "both" runs forward then reverse.
func ParseDirections(direction string) ([]Direction, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "forward":
		return []Direction{Forward}, nil
	case "reverse":
		return []Direction{Reverse}, nil
	case "both":
		return []Direction{Forward, Reverse}, nil
	default:
		return nil, fmt.Errorf("unknown direction %q (valid options: forward, reverse, both)", direction)
	}
}

// Analyze resolves the requested roots against the store and assembles the
// report for downstream exporters.
//
// Roots are independent, so each (root, direction) resolution runs as its
// own task against the shared read-only store; results land in
// pre-assigned slots so the report order matches the request order.
// An ambiguous or unknown root is reported and skipped, never guessed, and
// never prevents resolution of the remaining roots.
func Analyze(ctx context.Context, store *Store, req Request, buildDiags BuildDiagnostics) (Report, error) {
	report := Report{
		Nodes:                make(map[string]Kind),
		AmbiguousResolutions: append([]string{}, buildDiags.AmbiguousReferences...),
		MalformedEdges:       append([]string{}, buildDiags.MalformedEdges...),
	}

	directions, err := ParseDirections(req.Direction)
	if err != nil {
		return Report{}, err
	}

	registry := store.Registry()

	type task struct {
		slot      int
		seed      NodeID
		direction Direction
	}
	var tasks []task
	for _, root := range req.Roots {
		seed, err := registry.Resolve(root, req.Source, req.Container)
		if err != nil {
			var ambiguous *AmbiguousError
			if errors.As(err, &ambiguous) {
				report.AmbiguousResolutions = append(report.AmbiguousResolutions,
					fmt.Sprintf("root %s; skipped", ambiguous.Error()))
			} else {
				report.AmbiguousResolutions = append(report.AmbiguousResolutions,
					fmt.Sprintf("root %q not found in source %q; skipped", root, req.Source))
			}
			continue
		}
		for _, direction := range directions {
			tasks = append(tasks, task{slot: len(tasks), seed: seed, direction: direction})
		}
	}

	report.Roots = make([]RootReport, len(tasks))
	group, groupCtx := errgroup.WithContext(ctx)
	for _, tk := range tasks {
		tk := tk
		group.Go(func() error {
			resolution, err := store.Resolve(groupCtx, []NodeID{tk.seed}, tk.direction, req.MaxDepth)
			if err != nil {
				return err
			}
			report.Roots[tk.slot] = buildRootReport(registry, tk.seed, tk.direction, resolution)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, err
	}

	for _, root := range report.Roots {
		for _, path := range root.Paths {
			for _, name := range path {
				if _, ok := report.Nodes[name]; !ok {
					report.Nodes[name] = KindUnknown
				}
			}
		}
	}
	// Second sweep fills in real kinds; paths only carry display names.
	for id := 0; id < registry.Len(); id++ {
		node := registry.Node(NodeID(id))
		if _, ok := report.Nodes[node.Display]; ok {
			report.Nodes[node.Display] = node.Key.Kind
		}
	}

	return report, nil
}

func buildRootReport(registry *Registry, seed NodeID, direction Direction, resolution Resolution) RootReport {
	root := RootReport{
		Root:      registry.Node(seed).Display,
		Direction: direction.String(),
		Truncated: resolution.Truncated,
		Paths:     make([]PathReport, 0, len(resolution.Paths)),
		Leaves:    []LeafReport{},
	}

	for _, path := range resolution.Paths {
		root.Paths = append(root.Paths, renderPath(registry, path))
	}

	for _, leaf := range ExtractLeaves(resolution.Paths) {
		node := registry.Node(leaf.Terminal)
		rendered := LeafReport{
			Terminal: node.Display,
			Kind:     node.Key.Kind,
			Paths:    make([]PathReport, 0, len(leaf.Paths)),
		}
		for _, path := range leaf.Paths {
			rendered.Paths = append(rendered.Paths, renderPath(registry, path))
		}
		root.Leaves = append(root.Leaves, rendered)
	}

	return root
}

func renderPath(registry *Registry, path Path) PathReport {
	rendered := make(PathReport, len(path))
	for i, id := range path {
		rendered[i] = registry.Node(id).Display
	}
	return rendered
}
