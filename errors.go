package cobtree

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned (and latched onto the tree's OOM flag) when the
// configured Allocator refuses a reservation or an item-clone callback
// fails. The tree's logical content is unchanged by a call that fails this
// way; any node fanned out for the attempt is discarded.
var ErrOutOfMemory = errors.New("cobtree: allocator refused reservation")

// ErrKeyDrift is returned by ActionAscend/ActionDescend when a callback's
// ActionUpdate result changes an item's sort key and the bounded number of
// retries (see maxUpdateRetries) is exhausted. The source this package is
// grounded on retries such a slot indefinitely; that is fragile under a
// misbehaving callback, so this package bounds the retry and reports
// misuse instead of looping forever.
var ErrKeyDrift = errors.New("cobtree: callback changed sort key under ActionUpdate")

// assertThat panics with a formatted message if `that` is false. Used for
// debug-mode invariant checks that are correctness-critical but too costly,
// or too deep in the recursion, to report as an error.
func assertThat(that bool, msg string, args ...interface{}) {
	if !that {
		panic(fmt.Sprintf("cobtree: "+msg, args...))
	}
}
