package cobtree

// Tree is an in-memory, ordered, copy-on-write B-tree. The zero value is
// not directly usable as a tree (unlike the persistent map this package is
// grounded on, Tree carries a comparator that must be supplied by New), but
// a *Tree returned by New with no items inserted is a valid empty tree.
type Tree[T any] struct {
	root     *node[T]
	count    uint64
	height   uint16
	maxItems int
	minItems int
	cfg      config[T]
	oom      bool
}

// New constructs an empty tree. WithComparator should always be supplied;
// without it the tree treats every item as equal to every other one.
func New[T any](opts ...Option[T]) *Tree[T] {
	tree := &Tree[T]{
		maxItems: 2*defaultDegree - 1,
		minItems: (2*defaultDegree - 1) / 2,
		cfg:      config[T]{cmp: compareZero[T]},
	}
	for _, opt := range opts {
		opt(tree)
	}
	if tree.cfg.searcher == nil {
		tree.cfg.searcher = search[T]
	}
	return tree
}

func (tree *Tree[T]) allocator() Allocator {
	if tree.cfg.allocator != nil {
		return tree.cfg.allocator
	}
	return DefaultAllocator
}

// Count returns the total number of items in the tree. O(1).
func (tree *Tree[T]) Count() int {
	return int(tree.count)
}

// Height returns the tree's depth: 0 if empty, else the number of node
// levels from root to leaf inclusive. O(1).
func (tree *Tree[T]) Height() int {
	return int(tree.height)
}

// OOM reports whether the most recent mutating call failed due to an
// allocator or item-clone refusal. It is cleared at the start of every
// mutating call.
func (tree *Tree[T]) OOM() bool {
	return tree.oom
}

// Clone returns a new tree handle sharing the current root via an
// incremented reference count. Subsequent independent mutations on tree
// or its clone copy-on-write fan out only the nodes each one touches.
func (tree *Tree[T]) Clone() *Tree[T] {
	clone := &Tree[T]{
		root:     tree.root,
		count:    tree.count,
		height:   tree.height,
		maxItems: tree.maxItems,
		minItems: tree.minItems,
		cfg:      tree.cfg,
	}
	if clone.root != nil {
		clone.root.addRef()
		tracer().Debugf("clone: root now has rc=%d", clone.root.refCount())
	}
	return clone
}

// Items returns every item in ascending order, a thin convenience wrapper
// over Ascend used mainly by round-trip tests.
func (tree *Tree[T]) Items() []T {
	items := make([]T, 0, tree.count)
	tree.Ascend(func(it T) bool {
		items = append(items, it)
		return true
	})
	return items
}
