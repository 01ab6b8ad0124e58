package cobtree

import (
	"fmt"
	"testing"

	tp "github.com/xlab/treeprint"
)

// intCmp is the comparator of every int-item test in this package (the kv
// tests use cmpKV below); spec.md's concrete scenarios are all phrased over
// int items.
func intCmp(a, b int) int { return a - b }

func newIntTree(degree int) *Tree[int] {
	return New(Degree[int](degree), WithComparator(intCmp))
}

// kv is a key/value item used by tests (scenario 3 in particular) that need
// to distinguish an item's sort key from its payload, unlike the bare-int
// trees most other tests use where the two coincide.
type kv struct {
	Key, Val int
}

func cmpKV(a, b kv) int { return a.Key - b.Key }

func newKVTree(degree int) *Tree[kv] {
	return New(Degree[kv](degree), WithComparator(cmpKV))
}

// printTree pretty-prints a tree's node shape for test-failure output,
// grounded on persistent/btree/btree_test.go's printTree/ppt pair.
func printTree(tree *Tree[int]) string {
	header := fmt.Sprintf("\nTree(height=%d count=%d)\n", tree.Height(), tree.Count())
	p := tp.New()
	pptInt(p, tree.root)
	return header + p.String() + "\n"
}

func fmtInt(v int) string { return fmt.Sprintf("%d", v) }

func pptInt(p tp.Tree, n *node[int]) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		p.AddNode(n.String(fmtInt))
		return
	}
	branch := p.AddBranch(n.String(fmtInt))
	for _, ch := range n.children {
		pptInt(branch, ch)
	}
}

// checkInvariants walks a tree and fails t if any of the universal
// invariants from spec.md §8 are violated.
func checkInvariants(t *testing.T, tree *Tree[int]) {
	t.Helper()
	if tree.root == nil {
		return
	}
	count := 0
	var walk func(n *node[int], depth int, isRoot bool) int
	walk = func(n *node[int], depth int, isRoot bool) int {
		if !isRoot {
			if n.nitems() < tree.minItems || n.nitems() > tree.maxItems {
				t.Errorf("node at depth %d has %d items, want [%d,%d]", depth, n.nitems(), tree.minItems, tree.maxItems)
			}
		} else if n.nitems() < 1 || n.nitems() > tree.maxItems {
			t.Errorf("root has %d items, want [1,%d]", n.nitems(), tree.maxItems)
		}
		count += len(n.items)
		if n.isLeaf() {
			return depth
		}
		if len(n.children) != len(n.items)+1 {
			t.Errorf("branch at depth %d has %d items but %d children", depth, len(n.items), len(n.children))
		}
		leafDepth := -1
		for _, ch := range n.children {
			d := walk(ch, depth+1, false)
			if leafDepth == -1 {
				leafDepth = d
			} else if d != leafDepth {
				t.Errorf("leaves at mismatched depths: %d vs %d", leafDepth, d)
			}
		}
		return leafDepth
	}
	leafDepth := walk(tree.root, 0, true)
	if leafDepth+1 != tree.Height() {
		t.Errorf("leaf depth %d does not match tree height %d", leafDepth, tree.Height())
	}
	if count != tree.Count() {
		t.Errorf("deep item count %d does not match Count() %d", count, tree.Count())
	}
	prev, havePrev := 0, false
	tree.Ascend(func(it int) bool {
		if havePrev && it <= prev {
			t.Errorf("in-order walk not strictly increasing at %d (after %d)", it, prev)
		}
		prev, havePrev = it, true
		return true
	})
}
