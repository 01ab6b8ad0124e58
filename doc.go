/*
Package cobtree implements an in-memory, ordered associative container as a
copy-on-write (COW) B-tree over user-supplied items.

Trees are value handles: Tree[T] carries a root pointer, sizing parameters and
a capability set (comparator plus optional item-clone/item-free hooks), and is
cheap to clone. Clone shares structure with the original by incrementing the
root's reference count; independent subsequent mutations on either tree fan
out copies of only the nodes they touch.

	tree := cobtree.New(cobtree.Degree[int](8), cobtree.WithComparator(func(a, b int) int { return a - b }))
	tree.Set(42)
	v, found := tree.Get(42)

Trees are not safe for concurrent mutation of a single handle. Two handles
produced by Clone may be mutated concurrently by different goroutines, as
long as each handle is only ever touched by one goroutine at a time; the only
state shared across handles is the per-node atomic reference count.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cobtree

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("cobtree")
}
