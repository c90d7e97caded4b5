package objgraph

import (
	"fmt"
	"sort"
)

// Direction selects which adjacency index a traversal follows.
type Direction int

const (
	// Forward follows referencing → referenced edges ("what does X depend on").
	Forward Direction = iota
	// Reverse follows referenced → referencing edges ("what depends on X").
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Store is the immutable in-memory adjacency structure built from the
// canonical edge stream. Forward and reverse indices are constructed
// together from the same edge set and stay in sync by construction; after
// NewStore returns the store is read-only and safe for concurrent
// traversals.
type Store struct {
	registry *Registry
	forward  [][]NodeID
	reverse  [][]NodeID
}

// NewStore builds the adjacency indices from a canonical edge stream.
// Duplicate edges collapse to one; self-edges are discarded since they
// represent no real dependency hop. An edge referencing an ID outside the
// registry is a programming invariant violation and fails construction.
func NewStore(registry *Registry, edges []Edge) (*Store, error) {
	n := registry.Len()
	s := &Store{
		registry: registry,
		forward:  make([][]NodeID, n),
		reverse:  make([][]NodeID, n),
	}

	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if int(e.From) < 0 || int(e.From) >= n || int(e.To) < 0 || int(e.To) >= n {
			return nil, fmt.Errorf("edge %d->%d references unregistered node (registry has %d nodes)", e.From, e.To, n)
		}
		if e.From == e.To {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		s.forward[e.From] = append(s.forward[e.From], e.To)
		s.reverse[e.To] = append(s.reverse[e.To], e.From)
	}

	// Neighbor lists are pre-sorted by node key so expansion order, and
	// therefore the reported path set, is reproducible for a given graph.
	for _, adjacency := range [][][]NodeID{s.forward, s.reverse} {
		for _, neighbors := range adjacency {
			sort.Slice(neighbors, func(i, j int) bool {
				return registry.Node(neighbors[i]).Key.SortKey() < registry.Node(neighbors[j]).Key.SortKey()
			})
		}
	}

	return s, nil
}

// Neighbors returns the adjacency bucket for a node in the given direction,
// ordered by node key. The returned slice is owned by the store and must
// not be mutated.
func (s *Store) Neighbors(id NodeID, direction Direction) []NodeID {
	if direction == Reverse {
		return s.reverse[id]
	}
	return s.forward[id]
}

// Registry returns the registry the store was built against.
func (s *Store) Registry() *Registry {
	return s.registry
}

// NodeCount reports the number of nodes the store indexes.
func (s *Store) NodeCount() int {
	return len(s.forward)
}
