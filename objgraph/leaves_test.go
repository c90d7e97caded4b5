package objgraph

import "testing"

func TestExtractLeavesDropsProperPrefixes(t *testing.T) {
	paths := []Path{
		{0},
		{0, 1},
		{0, 1, 2},
		{0, 3},
	}

	leaves := ExtractLeaves(paths)

	if len(leaves) != 2 {
		t.Fatalf("got %d leaves, want 2: %v", len(leaves), leaves)
	}
	if leaves[0].Terminal != 2 || leaves[1].Terminal != 3 {
		t.Fatalf("unexpected terminals: %v", leaves)
	}
	for _, leaf := range leaves {
		for _, p := range leaf.Paths {
			for _, other := range paths {
				if len(other) > len(p) && other[:len(p)].key() == p.key() {
					t.Fatalf("leaf path %v is a proper prefix of %v", p, other)
				}
			}
		}
	}
}

func TestExtractLeavesGroupsByTerminal(t *testing.T) {
	paths := []Path{
		{0},
		{0, 1}, {0, 2},
		{0, 1, 3}, {0, 2, 3},
	}

	leaves := ExtractLeaves(paths)

	if len(leaves) != 1 {
		t.Fatalf("got %d leaves, want terminal 3 reported once: %v", len(leaves), leaves)
	}
	if leaves[0].Terminal != 3 {
		t.Fatalf("terminal = %d, want 3", leaves[0].Terminal)
	}
	if len(leaves[0].Paths) != 2 {
		t.Fatalf("got %d paths on leaf, want both chains: %v", len(leaves[0].Paths), leaves[0].Paths)
	}
}

func TestExtractLeavesZeroHopSeed(t *testing.T) {
	leaves := ExtractLeaves([]Path{{7}})

	if len(leaves) != 1 || leaves[0].Terminal != 7 {
		t.Fatalf("a lone seed path must surface as its own leaf, got %v", leaves)
	}
}

func TestExtractLeavesEmptyInput(t *testing.T) {
	if leaves := ExtractLeaves(nil); len(leaves) != 0 {
		t.Fatalf("expected no leaves, got %v", leaves)
	}
}

func TestExtractLeavesSharedSuffixIsNotAPrefix(t *testing.T) {
	// [1,2] ends with the same nodes as [0,1,2] but is not its prefix, so
	// both are maximal.
	paths := []Path{
		{0}, {1},
		{0, 1}, {1, 2},
		{0, 1, 2},
	}

	leaves := ExtractLeaves(paths)

	if len(leaves) != 1 {
		t.Fatalf("got %d leaves, want 1 terminal (node 2) with two maximal paths: %v", len(leaves), leaves)
	}
	if len(leaves[0].Paths) != 2 {
		t.Fatalf("got %d paths, want both [1 2] and [0 1 2]: %v", len(leaves[0].Paths), leaves[0].Paths)
	}
}
