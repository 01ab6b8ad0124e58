package cobtree

// Iter is a stateful cursor over a tree. Mutations performed on a clone of
// the tree do not affect it: the clone COW-fans the shared nodes it touches,
// so the node pointers an in-flight Iter has pushed onto its path stack keep
// pointing at the unmodified versions. Mutations performed on the tree
// itself are not isolated from the Iter: nodes the tree owns alone
// (rc == 0) are edited in place, and First/Last/Seek read the tree's
// current root. Mutating the tree while an Iter over it is in use is not
// supported.
//
// The zero value is not usable; obtain one with Tree.Iter.
type Iter[T any] struct {
	tree    *Tree[T]
	stack   []iterFrame[T]
	item    T
	seeked  bool
	atStart bool
	atEnd   bool
}

type iterFrame[T any] struct {
	n *node[T]
	i int
}

// Iter returns a cursor positioned before the first item. Call First, Last,
// or Seek to position it, or Next, which implicitly calls First the first
// time. Prev on a cursor that has not been positioned returns false.
func (tree *Tree[T]) Iter() Iter[T] {
	return Iter[T]{tree: tree}
}

// First moves the cursor to the smallest item. Returns false on an empty
// tree.
func (it *Iter[T]) First() bool {
	it.seeked = true
	it.atStart, it.atEnd = false, false
	it.stack = it.stack[:0]
	n := it.tree.root
	if n == nil {
		return false
	}
	for {
		it.stack = append(it.stack, iterFrame[T]{n, 0})
		if n.isLeaf() {
			break
		}
		n = n.children[0]
	}
	frame := &it.stack[len(it.stack)-1]
	it.item = frame.n.items[frame.i]
	return true
}

// Last moves the cursor to the largest item. Returns false on an empty tree.
func (it *Iter[T]) Last() bool {
	it.seeked = true
	it.atStart, it.atEnd = false, false
	it.stack = it.stack[:0]
	n := it.tree.root
	if n == nil {
		return false
	}
	for {
		it.stack = append(it.stack, iterFrame[T]{n, len(n.items)})
		if n.isLeaf() {
			it.stack[len(it.stack)-1].i--
			break
		}
		n = n.children[len(n.items)]
	}
	frame := &it.stack[len(it.stack)-1]
	it.item = frame.n.items[frame.i]
	return true
}

// Seek moves the cursor to the first item not less than key. Returns false
// if no such item exists.
func (it *Iter[T]) Seek(key T) bool {
	it.seeked = true
	it.atStart, it.atEnd = false, false
	it.stack = it.stack[:0]
	n := it.tree.root
	if n == nil {
		return false
	}
	depth := 0
	for {
		found, i := it.tree.find(n.items, key, nil, depth)
		it.stack = append(it.stack, iterFrame[T]{n, i})
		if found {
			it.item = n.items[i]
			return true
		}
		if n.isLeaf() {
			it.stack[len(it.stack)-1].i--
			return it.Next()
		}
		n = n.children[i]
		depth++
	}
}

// Next advances the cursor to the next item in ascending order. It returns
// false once the cursor has moved past the largest item or the tree is
// empty; further Next calls then keep returning false, while a Prev moves
// back to the largest item. After Prev has moved before the smallest item,
// Next behaves as First.
func (it *Iter[T]) Next() bool {
	if !it.seeked {
		return it.First()
	}
	if len(it.stack) == 0 {
		if it.atStart {
			return it.First()
		}
		return false
	}
	frame := &it.stack[len(it.stack)-1]
	frame.i++
	if frame.n.isLeaf() {
		if frame.i == len(frame.n.items) {
			for {
				it.stack = it.stack[:len(it.stack)-1]
				if len(it.stack) == 0 {
					it.atEnd = true
					return false
				}
				frame = &it.stack[len(it.stack)-1]
				if frame.i < len(frame.n.items) {
					break
				}
			}
		}
	} else {
		n := frame.n.children[frame.i]
		for {
			it.stack = append(it.stack, iterFrame[T]{n, 0})
			if n.isLeaf() {
				break
			}
			n = n.children[0]
		}
	}
	frame = &it.stack[len(it.stack)-1]
	it.item = frame.n.items[frame.i]
	return true
}

// Prev moves the cursor to the previous item in ascending order. It returns
// false once the cursor has moved before the smallest item or the tree is
// empty.
func (it *Iter[T]) Prev() bool {
	if !it.seeked {
		return false
	}
	if len(it.stack) == 0 {
		if it.atEnd {
			return it.Last()
		}
		return false
	}
	frame := &it.stack[len(it.stack)-1]
	if frame.n.isLeaf() {
		frame.i--
		if frame.i == -1 {
			for {
				it.stack = it.stack[:len(it.stack)-1]
				if len(it.stack) == 0 {
					it.atStart = true
					return false
				}
				frame = &it.stack[len(it.stack)-1]
				frame.i--
				if frame.i > -1 {
					break
				}
			}
		}
	} else {
		n := frame.n.children[frame.i]
		for {
			it.stack = append(it.stack, iterFrame[T]{n, len(n.items)})
			if n.isLeaf() {
				it.stack[len(it.stack)-1].i--
				break
			}
			n = n.children[len(n.items)]
		}
	}
	frame = &it.stack[len(it.stack)-1]
	it.item = frame.n.items[frame.i]
	return true
}

// Item returns the item the cursor currently sits on. Its result is
// meaningless unless the most recent First/Last/Seek/Next/Prev returned
// true.
func (it *Iter[T]) Item() T {
	return it.item
}
