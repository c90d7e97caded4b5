package objgraph

import (
	"context"
	"strconv"
	"strings"
)

// Path is one walk through the graph from a seed, as a sequence of internal
// IDs. No ID repeats within a path.
type Path []NodeID

// Last returns the terminal node of the path.
func (p Path) Last() NodeID {
	return p[len(p)-1]
}

// Contains reports whether the path already visits id. This is the cycle
// exclusion check: membership is exact ID equality, never a serialized
// substring test.
func (p Path) Contains(id NodeID) bool {
	for _, visited := range p {
		if visited == id {
			return true
		}
	}
	return false
}

// Extend returns a new path with one more hop appended. The receiver is not
// mutated; retained paths from earlier rounds stay intact.
func (p Path) Extend(id NodeID) Path {
	extended := make(Path, len(p), len(p)+1)
	copy(extended, p)
	return append(extended, id)
}

// key serializes the ID sequence for use as a map key.
func (p Path) key() string {
	var sb strings.Builder
	for i, id := range p {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	return sb.String()
}

// Resolution is the accumulated output of one traversal: every path
// discovered across all rounds, in round order, plus whether the depth
// bound cut the expansion short.
type Resolution struct {
	Paths     []Path
	Truncated bool
}

// Resolve expands paths outward from the seed nodes one hop per round until
// a round produces no new paths or maxDepth rounds have elapsed.
//
// Round d only extends the paths produced in round d-1, so a path that
// found no valid extension is final the moment its round ends. Cycle
// exclusion (no ID repeats within a path) already bounds the expansion at
// NodeCount rounds; maxDepth caps it earlier when set, and
// maxDepth <= 0 selects the node count as the default.
//
// Truncation by maxDepth is reported on the result, never swallowed. The
// context is checked between rounds so interactive callers can abort
// without observing a partially expanded round.
func (s *Store) Resolve(ctx context.Context, seeds []NodeID, direction Direction, maxDepth int) (Resolution, error) {
	if maxDepth <= 0 {
		maxDepth = s.NodeCount()
	}

	frontier := make([]Path, 0, len(seeds))
	for _, seed := range seeds {
		frontier = append(frontier, Path{seed})
	}

	paths := make([]Path, 0, len(frontier))
	paths = append(paths, frontier...)

	for depth := 1; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return Resolution{}, err
		}
		if depth > maxDepth {
			return Resolution{Paths: paths, Truncated: s.extendable(frontier, direction)}, nil
		}

		var next []Path
		for _, path := range frontier {
			for _, neighbor := range s.Neighbors(path.Last(), direction) {
				if path.Contains(neighbor) {
					continue
				}
				next = append(next, path.Extend(neighbor))
			}
		}

		paths = append(paths, next...)
		frontier = next
	}

	return Resolution{Paths: paths}, nil
}

// extendable reports whether any frontier path still has an unvisited
// neighbor, i.e. whether stopping now loses real continuations.
func (s *Store) extendable(frontier []Path, direction Direction) bool {
	for _, path := range frontier {
		for _, neighbor := range s.Neighbors(path.Last(), direction) {
			if !path.Contains(neighbor) {
				return true
			}
		}
	}
	return false
}
