package cobtree

// insertStatus is the internal result code threaded back up the recursive
// insert, distinct from a plain ok/error so each level unwinds exactly the
// state it owns (mirrors the "must-split" propagation called for in
// §4.4 of the design this package follows).
type insertStatus int

const (
	inserted insertStatus = iota
	replaced
	mustSplit
)

// Set inserts item into the tree, or replaces the stored item with an
// equal key. It returns the previous item and true if a replacement
// occurred. On allocator failure it returns the zero value, false, and
// leaves the tree's logical content unchanged; Tree.OOM reports true
// afterwards.
func (tree *Tree[T]) Set(item T) (previous T, hadPrevious bool, err error) {
	return tree.setHinted(item, nil)
}

// SetHint behaves like Set but consults and updates the supplied Hint to
// accelerate the search for nearby keys.
func (tree *Tree[T]) SetHint(item T, hint *Hint) (previous T, hadPrevious bool, err error) {
	return tree.setHinted(item, hint)
}

func (tree *Tree[T]) setHinted(item T, hint *Hint) (previous T, hadPrevious bool, err error) {
	tree.oom = false
	if tree.cfg.itemClone != nil {
		item, err = tree.cfg.itemClone(item)
		if err != nil {
			tree.oom = true
			return previous, false, ErrOutOfMemory
		}
	}
	if tree.root == nil {
		leaf := newLeaf[T](tree.maxItems)
		leaf.items = append(leaf.items, item)
		tree.root = leaf
		tree.height = 1
		tree.count++
		return previous, false, nil
	}
	if err = cowFan(tree, &tree.root); err != nil {
		tree.oom = true
		return previous, false, err
	}
	status, prev, err := tree.insertInto(&tree.root, item, 0, hint, false)
	if err != nil {
		tree.oom = true
		return previous, false, err
	}
	if status == mustSplit {
		tree.growRoot()
		if tree.oom {
			return previous, false, ErrOutOfMemory
		}
		// the freshly grown root has room; this retry cannot mustSplit again.
		status, prev, err = tree.insertInto(&tree.root, item, 0, hint, false)
		if err != nil {
			tree.oom = true
			return previous, false, err
		}
	}
	if status == replaced {
		if tree.cfg.itemFree != nil {
			tree.cfg.itemFree(prev)
		}
		return prev, true, nil
	}
	tree.count++
	return previous, false, nil
}

// insertInto recurses into *slot, which the caller has already COW-fanned.
// depth counts levels from the root, used to index the hint buffer.
func (tree *Tree[T]) insertInto(slot **node[T], item T, depth int, hint *Hint, leanLeft bool) (insertStatus, T, error) {
	n := *slot
	found, i := tree.find(n.items, item, hint, depth)
	if found {
		var prev T
		prev, n.items[i] = n.items[i], item
		return replaced, prev, nil
	}
	if n.isLeaf() {
		var zero T
		if len(n.items) == tree.maxItems {
			return mustSplit, zero, nil
		}
		n.items = insertAt(n.items, i, item)
		return inserted, zero, nil
	}
	if err := cowFan(tree, &n.children[i]); err != nil {
		var zero T
		return inserted, zero, err
	}
	status, prev, err := tree.insertInto(&n.children[i], item, depth+1, hint, leanLeft)
	if err != nil || status != mustSplit {
		return status, prev, err
	}
	var zero T
	if len(n.items) == tree.maxItems {
		return mustSplit, zero, nil
	}
	mid, right, err := tree.splitChild(n.children[i], leanLeft)
	if err != nil {
		return inserted, zero, err
	}
	n.items = insertAt(n.items, i, mid)
	n.children = insertChildAt(n.children, i+1, right)
	// re-enter at n: the item now belongs under one of the two new children.
	return tree.insertInto(slot, item, depth, hint, leanLeft)
}

func (tree *Tree[T]) find(items []T, key T, hint *Hint, depth int) (bool, int) {
	if hint != nil {
		return hintedSearch(items, key, tree.cfg.cmp, hint, depth)
	}
	return tree.cfg.searcher(items, key, tree.cfg.cmp)
}

// splitChild splits an overfull child (len(items) == maxItems) into a left
// half (mutated in place) and a freshly allocated right half, returning the
// median item to be promoted into the parent. leanLeft biases the split
// toward the load fast path: the left keeps as many items as possible,
// leaving the right at minItems so the next ascending arrivals append
// cheaply.
func (tree *Tree[T]) splitChild(child *node[T], leanLeft bool) (median T, right *node[T], err error) {
	if err = tree.allocator().Reserve(); err != nil {
		var zero T
		return zero, nil, ErrOutOfMemory
	}
	medianIdx := tree.maxItems / 2
	if leanLeft {
		medianIdx = tree.maxItems - 1 - tree.minItems
	}
	median = child.items[medianIdx]
	rightCount := len(child.items) - (medianIdx + 1)
	if child.isLeaf() {
		right = newLeaf[T](tree.maxItems)
	} else {
		right = newBranch[T](tree.maxItems)
	}
	right.items = append(right.items, child.items[medianIdx+1:]...)
	if !child.isLeaf() {
		right.children = append(right.children, child.children[medianIdx+1:]...)
	}
	child.items = child.items[:medianIdx]
	if !child.isLeaf() {
		child.children = child.children[:medianIdx+1]
	}
	tracer().Debugf("split: med=%v, left=%d items, right=%d items", median, medianIdx, rightCount)
	return median, right, nil
}

// growRoot is called when the top-level insert leaves the old root
// overfull after a child split bubbled all the way up. It allocates a new
// branch root, splits the old root, and increments the tree's height.
func (tree *Tree[T]) growRoot() {
	old := tree.root
	median, right, err := tree.splitChild(old, false)
	if err != nil {
		tree.oom = true
		return
	}
	newRoot := newBranch[T](tree.maxItems)
	newRoot.items = append(newRoot.items, median)
	newRoot.children = append(newRoot.children, old, right)
	tree.root = newRoot
	tree.height++
}

// Load is a fast path for ascending insertion: if the new item sorts
// strictly after the current maximum and the rightmost leaf has room, it
// is appended directly into that leaf instead of re-descending from the
// root. Otherwise (a full rightmost leaf, or unordered input) the item goes
// through the regular insert from the root, with lean-left splits, at a
// small constant penalty.
func (tree *Tree[T]) Load(item T) error {
	tree.oom = false
	if tree.root == nil {
		_, _, err := tree.Set(item)
		return err
	}
	if err := cowFan(tree, &tree.root); err != nil {
		tree.oom = true
		return err
	}
	appended, err := tree.loadRightSpine(&tree.root, item)
	if err != nil {
		tree.oom = true
		return err
	}
	if appended {
		tree.count++
		return nil
	}
	status, prev, err := tree.insertInto(&tree.root, item, 0, nil, true)
	if err != nil {
		tree.oom = true
		return err
	}
	if status == mustSplit {
		tree.growRoot()
		if tree.oom {
			return ErrOutOfMemory
		}
		status, prev, err = tree.insertInto(&tree.root, item, 0, nil, true)
		if err != nil {
			tree.oom = true
			return err
		}
	}
	if status != replaced {
		tree.count++
	} else if tree.cfg.itemFree != nil {
		tree.cfg.itemFree(prev)
	}
	return nil
}

// loadRightSpine descends the rightmost spine, COW-fanning as it goes, and
// appends item to the rightmost leaf if that leaf has room and item sorts
// strictly after the leaf's last item. It reports whether the fast-path
// append happened; false means the caller must fall back to a regular
// insert (and any COW-fan already performed along the spine is harmless,
// since those nodes are now uniquely owned regardless of which path wins).
func (tree *Tree[T]) loadRightSpine(slot **node[T], item T) (bool, error) {
	n := *slot
	if n.isLeaf() {
		if len(n.items) < tree.maxItems && tree.cfg.cmp(n.items[len(n.items)-1], item) < 0 {
			n.items = append(n.items, item)
			return true, nil
		}
		return false, nil
	}
	last := len(n.children) - 1
	if err := cowFan(tree, &n.children[last]); err != nil {
		return false, err
	}
	return tree.loadRightSpine(&n.children[last], item)
}

// --- slice helpers -----------------------------------------------------

func insertAt[T any](items []T, at int, item T) []T {
	var zero T
	items = append(items, zero)
	copy(items[at+1:], items[at:])
	items[at] = item
	return items
}

func insertChildAt[T any](children []*node[T], at int, child *node[T]) []*node[T] {
	children = append(children, nil)
	copy(children[at+1:], children[at:])
	children[at] = child
	return children
}

func removeAt[T any](items []T, at int) []T {
	return append(items[:at], items[at+1:]...)
}

func removeChildAt[T any](children []*node[T], at int) []*node[T] {
	return append(children[:at], children[at+1:]...)
}
