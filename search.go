package cobtree

// Hint is an 8-byte per-depth memo of the last index found at each of the
// first 8 depths of a tree, used to accelerate searches for keys near a
// previously searched one. A zero Hint is a valid, cold hint. Hints never
// affect the correctness of a search, only its cost; a stale hint degrades
// gracefully to a plain bisect.
type Hint [8]byte

// search returns the lowest index i such that key <= items[i] under cmp,
// along with found == true iff items[i] compares equal to key. It never
// returns an index greater than that strict lower bound.
func search[T any](items []T, key T, cmp Comparator[T]) (found bool, index int) {
	lo, hi := 0, len(items)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(items[mid], key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(items) && cmp(items[lo], key) == 0, lo
}

// hintedSearch behaves like search, but first narrows [lo,hi) using the
// hint byte recorded for this depth, then falls through to a plain bisect
// within the narrowed window. The hint byte for this depth is always
// overwritten with the result, clipped to [0,255].
func hintedSearch[T any](items []T, key T, cmp Comparator[T], hint *Hint, depth int) (found bool, index int) {
	if hint == nil || depth >= len(hint) {
		return search(items, key, cmp)
	}
	lo, hi := 0, len(items)
	probe := int(hint[depth])
	if probe < hi {
		switch c := cmp(items[probe], key); {
		case c == 0:
			hint[depth] = clipHint(probe)
			return true, probe
		case c < 0:
			lo = probe + 1
		default:
			hi = probe
		}
	}
	found, index = searchWindow(items, key, cmp, lo, hi)
	hint[depth] = clipHint(index)
	return found, index
}

func searchWindow[T any](items []T, key T, cmp Comparator[T], lo, hi int) (bool, int) {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(items[mid], key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(items) && cmp(items[lo], key) == 0, lo
}

func clipHint(i int) byte {
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return byte(i)
}
