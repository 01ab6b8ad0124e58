package cobtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFindsExactMatch(t *testing.T) {
	items := []int{1, 3, 5, 7, 9}
	found, idx := search(items, 5, intCmp)
	assert.True(t, found)
	assert.Equal(t, 2, idx)
}

func TestSearchReturnsLowerBoundOnMiss(t *testing.T) {
	items := []int{1, 3, 5, 7, 9}
	found, idx := search(items, 6, intCmp)
	assert.False(t, found)
	assert.Equal(t, 3, idx)
}

func TestSearchEmpty(t *testing.T) {
	found, idx := search([]int(nil), 6, intCmp)
	assert.False(t, found)
	assert.Equal(t, 0, idx)
}

func TestHintedSearchAgreesWithPlainSearch(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i * 2
	}
	var hint Hint
	for _, key := range []int{0, 1, 50, 51, 198, 199, 200} {
		wantFound, wantIdx := search(items, key, intCmp)
		gotFound, gotIdx := hintedSearch(items, key, intCmp, &hint, 0)
		assert.Equal(t, wantFound, gotFound, "key=%d", key)
		assert.Equal(t, wantIdx, gotIdx, "key=%d", key)
	}
}

func TestHintedSearchWithStaleHintStillCorrect(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}
	hint := &Hint{7: 49} // deliberately wrong for most keys probed below
	for _, key := range []int{0, 5, 25, 49} {
		found, idx := hintedSearch(items, key, intCmp, hint, 7)
		assert.True(t, found)
		assert.Equal(t, key, idx)
	}
}

func TestHintedSearchIgnoresHintBeyondDepth(t *testing.T) {
	items := []int{1, 2, 3}
	found, idx := hintedSearch(items, 2, intCmp, &Hint{}, 8)
	assert.True(t, found)
	assert.Equal(t, 1, idx)
}

func TestClipHint(t *testing.T) {
	assert.EqualValues(t, 0, clipHint(-1))
	assert.EqualValues(t, 255, clipHint(9999))
	assert.EqualValues(t, 42, clipHint(42))
}
