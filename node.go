package cobtree

import (
	"strings"
	"sync/atomic"
)

// node is either a leaf (children == nil) or a branch (len(children) ==
// len(items)+1). items and children are allocated at node-creation time
// with capacity maxItems / maxItems+1 and never grow past it; this is the
// idiomatic Go rendering of the single packed allocation per node — see
// DESIGN.md for why this project doesn't chase a literal header+children+
// items arena via unsafe pointer arithmetic.
//
// rc is the reference count of holders beyond the node's single owning
// parent pointer. rc == 0 means the node is uniquely reachable through that
// one pointer and may be mutated in place; rc > 0 means at least one other
// tree incarnation also points at it, and it must be copied before any
// write touches it.
type node[T any] struct {
	items    []T
	children []*node[T]
	rc       int32
}

func newLeaf[T any](maxItems int) *node[T] {
	return &node[T]{items: make([]T, 0, maxItems)}
}

func newBranch[T any](maxItems int) *node[T] {
	return &node[T]{
		items:    make([]T, 0, maxItems),
		children: make([]*node[T], 0, maxItems+1),
	}
}

func (n *node[T]) isLeaf() bool {
	return n.children == nil
}

func (n *node[T]) nitems() int {
	if n == nil {
		return 0
	}
	return len(n.items)
}

func (n *node[T]) overfull(maxItems int) bool {
	return len(n.items) > maxItems
}

func (n *node[T]) underfull(minItems int) bool {
	return len(n.items) < minItems
}

// rc helpers -----------------------------------------------------------

func (n *node[T]) refCount() int32 {
	return atomic.LoadInt32(&n.rc)
}

func (n *node[T]) shared() bool {
	return n.refCount() > 0
}

func (n *node[T]) addRef() {
	atomic.AddInt32(&n.rc, 1)
}

// unref drops a reference to n. If other holders remain, it only
// decrements; otherwise it recursively unrefs n's children, invokes the
// tree's item-free callback on n's items, and n becomes garbage.
func unref[T any](tree *Tree[T], n *node[T]) {
	if n == nil {
		return
	}
	newVal := atomic.AddInt32(&n.rc, -1)
	if newVal+1 > 0 { // pre-decrement value was > 0: other holders remain
		return
	}
	if !n.isLeaf() {
		for _, ch := range n.children {
			unref(tree, ch)
		}
	}
	if tree.cfg.itemFree != nil {
		for _, it := range n.items {
			tree.cfg.itemFree(it)
		}
	}
}

// clone makes a private copy of n with the given item capacity (rounded up
// to at least len(n.items)). The duplicate is born with rc == 0. Child
// links are copied (not deep-copied) and, per the copy-on-write contract,
// it is the caller's responsibility to addRef each duplicated child.
func (n *node[T]) clone(tree *Tree[T], itemCap int) (*node[T], error) {
	if err := tree.allocator().Reserve(); err != nil {
		return nil, ErrOutOfMemory
	}
	if itemCap < len(n.items) {
		itemCap = len(n.items)
	}
	if itemCap < 1 {
		itemCap = 1
	}
	dup := &node[T]{items: make([]T, len(n.items), itemCap)}
	if clone := tree.cfg.itemClone; clone != nil {
		for i, it := range n.items {
			cl, err := clone(it)
			if err != nil {
				if tree.cfg.itemFree != nil {
					for _, done := range dup.items[:i] {
						tree.cfg.itemFree(done)
					}
				}
				return nil, ErrOutOfMemory
			}
			dup.items[i] = cl
		}
	} else {
		copy(dup.items, n.items)
	}
	if !n.isLeaf() {
		dup.children = make([]*node[T], len(n.children), itemCap+1)
		copy(dup.children, n.children)
	}
	return dup, nil
}

// cowFan ensures that *slot is uniquely owned (rc == 0), copying it first
// if necessary. It is called on the root at the start of every mutating
// call, and recursively on each child the engine is about to descend into
// and possibly mutate.
func cowFan[T any](tree *Tree[T], slot **node[T]) error {
	n := *slot
	if n == nil || !n.shared() {
		return nil
	}
	dup, err := n.clone(tree, cap(n.items))
	if err != nil {
		return err
	}
	for _, ch := range dup.children {
		if ch != nil {
			ch.addRef()
		}
	}
	*slot = dup
	unref(tree, n)
	return nil
}

func (n *node[T]) String(fmtItem func(T) string) string {
	if n == nil || len(n.items) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteRune('[')
	for i, it := range n.items {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(fmtItem(it))
	}
	sb.WriteRune(']')
	return sb.String()
}
