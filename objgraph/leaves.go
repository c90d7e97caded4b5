package objgraph

// Leaf is one terminal object of a traversal: the last node of at least one
// maximal path, with every maximal path that ends there attached.
type Leaf struct {
	Terminal NodeID
	Paths    []Path
}

// ExtractLeaves filters a path set down to its maximal paths and groups
// them by terminal node.
//
// A path is maximal if no other path in the set has it as a proper prefix.
// Because the resolver always places the zero-length seed path in the set,
// a seed with no dependencies surfaces naturally as its own leaf; a seed
// that was extended is a proper prefix of its extensions and drops out.
// Leaves appear in first-discovery order, which is deterministic given the
// resolver's deterministic expansion order.
func ExtractLeaves(paths []Path) []Leaf {
	extended := make(map[string]bool)
	for _, path := range paths {
		for i := 1; i < len(path); i++ {
			extended[path[:i].key()] = true
		}
	}

	byTerminal := make(map[NodeID]int)
	var leaves []Leaf
	for _, path := range paths {
		if extended[path.key()] {
			continue
		}
		terminal := path.Last()
		if idx, ok := byTerminal[terminal]; ok {
			leaves[idx].Paths = append(leaves[idx].Paths, path)
			continue
		}
		byTerminal[terminal] = len(leaves)
		leaves = append(leaves, Leaf{Terminal: terminal, Paths: []Path{path}})
	}

	return leaves
}
