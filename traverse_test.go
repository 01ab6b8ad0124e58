package cobtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, degree int, n int) *Tree[int] {
	t.Helper()
	tree := newIntTree(degree)
	for i := 0; i < n; i++ {
		_, _, err := tree.Set(i)
		require.NoError(t, err)
	}
	return tree
}

func TestAscendFull(t *testing.T) {
	tree := buildTree(t, 3, 100)
	var got []int
	tree.Ascend(func(v int) bool {
		got = append(got, v)
		return true
	})
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestAscendStopsEarly(t *testing.T) {
	tree := buildTree(t, 3, 100)
	var got []int
	tree.Ascend(func(v int) bool {
		got = append(got, v)
		return v < 4
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestDescendFull(t *testing.T) {
	tree := buildTree(t, 3, 100)
	var got []int
	tree.Descend(func(v int) bool {
		got = append(got, v)
		return true
	})
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, 99-i, v)
	}
}

func TestAscendPivotStartsAtOrAfterPivot(t *testing.T) {
	tree := buildTree(t, 3, 100)
	for _, pivot := range []int{0, 1, 50, 51, 99, 100} {
		var got []int
		tree.AscendPivot(pivot, func(v int) bool {
			got = append(got, v)
			return true
		})
		if pivot >= 100 {
			assert.Empty(t, got)
			continue
		}
		require.NotEmpty(t, got)
		assert.Equal(t, pivot, got[0])
		assert.Equal(t, 99, got[len(got)-1])
	}
}

func TestDescendPivotEndsAtOrBeforePivot(t *testing.T) {
	tree := buildTree(t, 3, 100)
	for _, pivot := range []int{0, 1, 50, 51, 99, -1} {
		var got []int
		tree.DescendPivot(pivot, func(v int) bool {
			got = append(got, v)
			return true
		})
		if pivot < 0 {
			assert.Empty(t, got)
			continue
		}
		require.NotEmpty(t, got)
		assert.Equal(t, pivot, got[0])
		assert.Equal(t, 0, got[len(got)-1])
	}
}

func TestGetHint(t *testing.T) {
	tree := buildTree(t, 4, 200)
	var hint Hint
	for i := 0; i < 200; i++ {
		v, found := tree.GetHint(i, &hint)
		require.True(t, found)
		assert.Equal(t, i, v)
	}
}

func TestMinMax(t *testing.T) {
	tree := newIntTree(4)
	_, found := tree.Min()
	assert.False(t, found)
	_, found = tree.Max()
	assert.False(t, found)

	tree = buildTree(t, 4, 50)
	min, found := tree.Min()
	require.True(t, found)
	assert.Equal(t, 0, min)
	max, found := tree.Max()
	require.True(t, found)
	assert.Equal(t, 49, max)
}

// TestHintCorrectness is scenario 4 of spec.md §8: an 8-byte hint zeroed
// once, insert [0..99] in order, then get each key in order reusing the
// same hint; all gets succeed. A random-access reuse of the same hint must
// also succeed.
func TestHintCorrectness(t *testing.T) {
	tree := newIntTree(8)
	var hint Hint
	for i := 0; i < 100; i++ {
		_, _, err := tree.SetHint(i, &hint)
		require.NoError(t, err)
	}
	for i := 0; i < 100; i++ {
		v, found := tree.GetHint(i, &hint)
		require.True(t, found, "ordered get of %d", i)
		assert.Equal(t, i, v)
	}
	randomOrder := []int{73, 1, 54, 99, 0, 12, 88, 40}
	for _, key := range randomOrder {
		v, found := tree.GetHint(key, &hint)
		require.True(t, found, "random-access get of %d", key)
		assert.Equal(t, key, v)
	}
}
