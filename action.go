package cobtree

// Action is the verdict an ActionFunc returns for the item it was just
// handed during a mutating traversal.
type Action int

const (
	// ActionNone proceeds to the next item without modifying the tree.
	ActionNone Action = iota
	// ActionStop halts the traversal immediately.
	ActionStop
	// ActionUpdate writes the returned item back, provided it compares
	// equal to the original under the tree's comparator. If it does not,
	// the change is discarded and the callback is invoked again for the
	// same item, up to maxUpdateRetries times.
	ActionUpdate
	// ActionDelete removes the item.
	ActionDelete
)

// ActionFunc is the callback driving ActionAscend/ActionDescend. Its
// return value is only consulted when action == ActionUpdate.
type ActionFunc[T any] func(item T) (T, Action)

// maxUpdateRetries bounds how many times an ActionUpdate whose result
// drifts off the original sort key is retried before the traversal gives
// up and reports ErrKeyDrift. The source this engine is grounded on
// retries such a slot indefinitely, which is fragile under a misbehaving
// callback.
const maxUpdateRetries = 8

// actionSignal is threaded back up the action-traversal recursion: a plain
// bool return can't distinguish "callback said stop" from "a delete forced
// a restart from a pivot" from "an allocator refused a COW copy".
type actionSignal[T any] struct {
	stop        bool
	restart     bool
	restartItem T
	err         error
}

// ActionAscend walks the tree in ascending order, letting fn decide per
// item whether to continue, stop, update, or delete. A delete that cannot
// be satisfied by a simple in-place shift (the containing leaf would drop
// below minItems) invokes the regular delete engine — which may rebalance
// nodes out from under the traversal — and then resumes ascending using
// the deleted item as a pivot.
func (tree *Tree[T]) ActionAscend(fn ActionFunc[T]) error {
	return tree.actionTraverse(tree.actionAscendNode, fn)
}

// ActionDescend is the descending mirror of ActionAscend.
func (tree *Tree[T]) ActionDescend(fn ActionFunc[T]) error {
	return tree.actionTraverse(tree.actionDescendNode, fn)
}

type actionNodeFunc[T any] func(slot **node[T], hasPivot bool, pivot T, depth int, fn ActionFunc[T]) actionSignal[T]

func (tree *Tree[T]) actionTraverse(walk actionNodeFunc[T], fn ActionFunc[T]) error {
	tree.oom = false
	hasPivot := false
	var pivot T
	for tree.root != nil {
		if err := cowFan(tree, &tree.root); err != nil {
			tree.oom = true
			return err
		}
		sig := walk(&tree.root, hasPivot, pivot, 0, fn)
		if sig.err != nil {
			if sig.err != ErrKeyDrift {
				tree.oom = true
			}
			return sig.err
		}
		if sig.stop {
			return nil
		}
		if !sig.restart {
			return nil
		}
		if _, _, err := tree.deleteAction(delKey, sig.restartItem, nil); err != nil {
			return err
		}
		hasPivot = true
		pivot = sig.restartItem
	}
	return nil
}

// resolveAction invokes fn for item, retrying while it returns ActionUpdate
// with a result that drifts off the original sort key.
func (tree *Tree[T]) resolveAction(item T, fn ActionFunc[T]) (T, Action, error) {
	var zero T
	for retries := 0; ; retries++ {
		newItem, action := fn(item)
		if action != ActionUpdate || tree.cfg.cmp(item, newItem) == 0 {
			return newItem, action, nil
		}
		if retries >= maxUpdateRetries {
			return zero, ActionNone, ErrKeyDrift
		}
	}
}

func (tree *Tree[T]) actionAscendNode(slot **node[T], hasPivot bool, pivot T, depth int, fn ActionFunc[T]) actionSignal[T] {
	n := *slot
	i, found := 0, false
	if hasPivot {
		found, i = tree.find(n.items, pivot, nil, depth)
	}
	if !found && !n.isLeaf() {
		if err := cowFan(tree, &n.children[i]); err != nil {
			return actionSignal[T]{err: err}
		}
		if sig := tree.actionAscendNode(&n.children[i], hasPivot, pivot, depth+1, fn); sig.stop || sig.restart || sig.err != nil {
			return sig
		}
	}
	k := i
	for k < len(n.items) {
		item := n.items[k]
		newItem, action, err := tree.resolveAction(item, fn)
		if err != nil {
			return actionSignal[T]{err: err}
		}
		switch action {
		case ActionStop:
			return actionSignal[T]{stop: true}
		case ActionUpdate:
			n.items[k] = newItem
		case ActionDelete:
			if n.isLeaf() && len(n.items) > tree.minItems {
				n.items = removeAt(n.items, k)
				tree.count--
				if tree.cfg.itemFree != nil {
					tree.cfg.itemFree(item)
				}
				continue
			}
			return actionSignal[T]{restart: true, restartItem: item}
		}
		if !n.isLeaf() {
			if err := cowFan(tree, &n.children[k+1]); err != nil {
				return actionSignal[T]{err: err}
			}
			if sig := tree.actionAscendNode(&n.children[k+1], false, pivot, depth+1, fn); sig.stop || sig.restart || sig.err != nil {
				return sig
			}
		}
		k++
	}
	return actionSignal[T]{}
}

func (tree *Tree[T]) actionDescendNode(slot **node[T], hasPivot bool, pivot T, depth int, fn ActionFunc[T]) actionSignal[T] {
	n := *slot
	i, found := len(n.items), false
	if hasPivot {
		found, i = tree.find(n.items, pivot, nil, depth)
	}
	if !found {
		if !n.isLeaf() {
			if err := cowFan(tree, &n.children[i]); err != nil {
				return actionSignal[T]{err: err}
			}
			if sig := tree.actionDescendNode(&n.children[i], hasPivot, pivot, depth+1, fn); sig.stop || sig.restart || sig.err != nil {
				return sig
			}
		}
		i--
	}
	k := i
	for k >= 0 {
		item := n.items[k]
		newItem, action, err := tree.resolveAction(item, fn)
		if err != nil {
			return actionSignal[T]{err: err}
		}
		switch action {
		case ActionStop:
			return actionSignal[T]{stop: true}
		case ActionUpdate:
			n.items[k] = newItem
		case ActionDelete:
			if n.isLeaf() && len(n.items) > tree.minItems {
				n.items = removeAt(n.items, k)
				tree.count--
				if tree.cfg.itemFree != nil {
					tree.cfg.itemFree(item)
				}
				k--
				continue
			}
			return actionSignal[T]{restart: true, restartItem: item}
		}
		if !n.isLeaf() {
			if err := cowFan(tree, &n.children[k]); err != nil {
				return actionSignal[T]{err: err}
			}
			if sig := tree.actionDescendNode(&n.children[k], false, pivot, depth+1, fn); sig.stop || sig.restart || sig.err != nil {
				return sig
			}
		}
		k--
	}
	return actionSignal[T]{}
}
