package cobtree

// Allocator gates node creation. The core calls Reserve before allocating
// the right-hand node of a split and before each copy-on-write duplicate; a
// non-nil error aborts the in-flight mutation and is surfaced as
// ErrOutOfMemory with the OOM flag latched on the tree. The first leaf of an
// empty tree and the new root allocated when the root splits are created
// without a Reserve call.
//
// Go's garbage collector has no fallible incremental allocator, so an
// Allocator here is not a malloc/free pair — it is a budget gate a caller
// can use to test OOM-unwind behavior (deny after N reservations) or to
// impose a ceiling on tree growth. DefaultAllocator never refuses.
type Allocator interface {
	Reserve() error
}

// DefaultAllocator always grants the reservation.
type defaultAllocator struct{}

func (defaultAllocator) Reserve() error { return nil }

// DefaultAllocator is the Allocator used when a tree is constructed without
// WithAllocator. It is exposed as an explicit value rather than registered
// as hidden process-wide state, so callers who want the default can still
// name it (e.g. when building a custom Allocator that wraps it).
var DefaultAllocator Allocator = defaultAllocator{}
