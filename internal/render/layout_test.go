package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout(t *testing.T) {
	t.Run("fits naturally", func(t *testing.T) {
		l := computeLayout([]int{2, 4, 5}, []int{2, 5, 17}, 0, 120)
		assert.Equal(t, []int{2, 5, 17}, l.Widths)
		assert.Equal(t, 0, l.HiddenColumns)
		assert.Equal(t, 30, l.ContentWidth)
		assert.False(t, l.NeedsTrailer())
	})

	t.Run("hides columns on narrow terminal", func(t *testing.T) {
		natural := []int{5, 5, 5, 5, 5, 5, 5, 5}
		l := computeLayout(make([]int, 8), natural, 0, 30)
		assert.Equal(t, 4, l.Visible())
		assert.Equal(t, 4, l.HiddenColumns)
		assert.Equal(t, []int{4, 4, 4, 4}, l.Widths)
		assert.Equal(t, 25, l.ContentWidth)
		assert.Equal(t, "... 4 more columns", l.Trailer())
	})

	t.Run("always keeps one column", func(t *testing.T) {
		l := computeLayout([]int{3, 3}, []int{40, 40}, 0, 1)
		require.Equal(t, 1, l.Visible())
		assert.Equal(t, []int{3}, l.Widths)
		assert.Equal(t, 1, l.HiddenColumns)
	})

	t.Run("expands for title", func(t *testing.T) {
		l := computeLayout([]int{1}, []int{1}, 10, 120)
		assert.Equal(t, []int{12}, l.Widths)
		assert.Equal(t, 12, l.ContentWidth)
	})

	t.Run("title expansion goes to last column", func(t *testing.T) {
		l := computeLayout([]int{1, 1}, []int{2, 2}, 20, 120)
		assert.Equal(t, []int{2, 17}, l.Widths)
		assert.Equal(t, 22, l.ContentWidth)
	})

	t.Run("title expansion bounded by terminal", func(t *testing.T) {
		l := computeLayout([]int{1}, []int{1}, 100, 30)
		assert.Equal(t, 26, l.ContentWidth)
	})

	t.Run("no columns", func(t *testing.T) {
		assert.Equal(t, Layout{}, computeLayout(nil, nil, 0, 80))
	})

	t.Run("zero width columns are clamped", func(t *testing.T) {
		l := computeLayout([]int{0, 0}, []int{0, 0}, 0, 80)
		assert.Equal(t, []int{1, 1}, l.Widths)
	})
}

func TestCompress(t *testing.T) {
	t.Run("shares within budget are kept", func(t *testing.T) {
		assert.Equal(t, []int{6, 6, 6}, compress([]int{10, 10, 10}, []int{1, 1, 1}, 20))
	})

	t.Run("ties favour the lowest index", func(t *testing.T) {
		assert.Equal(t, []int{6, 7, 7}, compress([]int{10, 10, 10}, []int{7, 7, 7}, 20))
	})

	t.Run("sqrt shares damp wide columns", func(t *testing.T) {
		assert.Equal(t, []int{5, 25}, compress([]int{4, 100}, []int{2, 4}, 30))
	})

	t.Run("floor is at least three cells", func(t *testing.T) {
		assert.Equal(t, []int{3, 46}, compress([]int{1, 200}, []int{1, 3}, 50))
	})

	t.Run("header floor protects narrow headers", func(t *testing.T) {
		assert.Equal(t, []int{4, 8}, compress([]int{20, 8}, []int{2, 8}, 12))
	})

	t.Run("headers give way when nothing else fits", func(t *testing.T) {
		assert.Equal(t, []int{4, 4}, compress([]int{10, 10}, []int{10, 10}, 8))
	})
}

func TestShrinkWidest(t *testing.T) {
	widths := []int{5, 5, 3}
	shrinkWidest(widths, []int{3, 3, 3}, 11)
	assert.Equal(t, []int{4, 4, 3}, widths)

	stuck := []int{3, 3}
	shrinkWidest(stuck, []int{3, 3}, 4)
	assert.Equal(t, []int{3, 3}, stuck)
}

func TestLayoutTrailer(t *testing.T) {
	assert.Equal(t, "", Layout{}.Trailer())
	assert.Equal(t, "... 7 more rows", Layout{HiddenRows: 7}.Trailer())
	assert.Equal(t, "... 1 more row, 1 more column", Layout{HiddenRows: 1, HiddenColumns: 1}.Trailer())
	assert.Equal(t, "... 2 more columns", Layout{HiddenColumns: 2}.Trailer())
}
