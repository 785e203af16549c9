package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateSplitsInOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

	pages, err := Paginate(items, 6)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, pages[0])
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, pages[1])
	assert.Equal(t, []int{13}, pages[2])
}

func TestPaginateExactMultiple(t *testing.T) {
	pages, err := Paginate([]string{"a", "b", "c", "d"}, 2)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Len(t, pages[1], 2)
}

func TestPaginateEmptyInputYieldsOnePage(t *testing.T) {
	pages, err := Paginate([]string(nil), 6)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0])
}

func TestPaginateRejectsBadPageSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Paginate([]int{1, 2, 3}, size)
		assert.ErrorIs(t, err, ErrPageSize)
	}
}
