package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	t.Run("30 items with 12 per page", func(t *testing.T) {
		pg := Derive(30, 12, 1)
		assert.Equal(t, 3, pg.TotalPages)
		assert.Equal(t, 0, pg.StartIndex)
		assert.Equal(t, 12, pg.EndIndex)
		assert.False(t, pg.HasPrevious)
		assert.True(t, pg.HasNext)

		pg = Derive(30, 12, 3)
		assert.Equal(t, 24, pg.StartIndex)
		assert.Equal(t, 30, pg.EndIndex)
		assert.True(t, pg.HasPrevious)
		assert.False(t, pg.HasNext)
	})

	t.Run("empty result set still has one page", func(t *testing.T) {
		pg := Derive(0, 12, 1)
		assert.Equal(t, 1, pg.TotalPages)
		assert.Equal(t, 0, pg.StartIndex)
		assert.Equal(t, 0, pg.EndIndex)
		assert.False(t, pg.HasPrevious)
		assert.False(t, pg.HasNext)
		assert.Equal(t, []int{1}, pg.PageRange)
	})

	t.Run("page out of bounds is clamped", func(t *testing.T) {
		pg := Derive(30, 12, 99)
		assert.Equal(t, 3, pg.CurrentPage)

		pg = Derive(30, 12, -5)
		assert.Equal(t, 1, pg.CurrentPage)
	})

	t.Run("degenerate inputs are sanitized", func(t *testing.T) {
		pg := Derive(-10, 0, 0)
		assert.Equal(t, 0, pg.TotalItems)
		assert.Equal(t, 1, pg.ItemsPerPage)
		assert.Equal(t, 1, pg.CurrentPage)
	})

	t.Run("slice bounds always valid", func(t *testing.T) {
		for total := 0; total <= 40; total++ {
			for page := -1; page <= 6; page++ {
				pg := Derive(total, 12, page)
				assert.GreaterOrEqual(t, pg.StartIndex, 0)
				assert.LessOrEqual(t, pg.StartIndex, pg.EndIndex)
				assert.LessOrEqual(t, pg.EndIndex, total)
			}
		}
	})
}

func TestPageRange(t *testing.T) {
	t.Run("window is centered on current page", func(t *testing.T) {
		pg := Derive(120, 12, 5) // 10 页
		assert.Equal(t, []int{3, 4, 5, 6, 7}, pg.PageRange)
	})

	t.Run("window clamps at the start", func(t *testing.T) {
		pg := Derive(120, 12, 1)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, pg.PageRange)
	})

	t.Run("window clamps at the end", func(t *testing.T) {
		pg := Derive(120, 12, 10)
		assert.Equal(t, []int{6, 7, 8, 9, 10}, pg.PageRange)
	})

	t.Run("fewer pages than the window", func(t *testing.T) {
		pg := Derive(30, 12, 2)
		assert.Equal(t, []int{1, 2, 3}, pg.PageRange)
	})
}

func TestPaginator(t *testing.T) {
	t.Run("navigation clamps silently", func(t *testing.T) {
		p := New(12)
		p.SetTotal(30)

		assert.Equal(t, 2, p.NextPage().CurrentPage)
		assert.Equal(t, 3, p.NextPage().CurrentPage)
		assert.Equal(t, 3, p.NextPage().CurrentPage) // 已是末页
		assert.Equal(t, 2, p.PreviousPage().CurrentPage)
		assert.Equal(t, 1, p.GoToPage(-3).CurrentPage)
		assert.Equal(t, 3, p.GoToPage(100).CurrentPage)
	})

	t.Run("shrinking total pulls current page back", func(t *testing.T) {
		p := New(12)
		p.SetTotal(120)
		p.GoToPage(10)

		pg := p.SetTotal(30)
		assert.Equal(t, 3, pg.CurrentPage)
	})

	t.Run("reset returns to first page", func(t *testing.T) {
		p := New(12)
		p.SetTotal(120)
		p.GoToPage(7)

		pg := p.Reset()
		assert.Equal(t, 1, pg.CurrentPage)
		assert.Equal(t, 0, pg.StartIndex)
	})
}
