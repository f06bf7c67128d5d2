package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 25))
	assert.Equal(t, 50, Offset(3, 25))
	assert.Equal(t, 0, Offset(0, 25), "pages below 1 read the first page")
}

func TestLastPage(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 25, 1},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{100, 25, 4},
		{10, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LastPage(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 3, ClampPage(5, 3))
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-4, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
}

func TestPager_Navigation(t *testing.T) {
	p := Pager{Page: 1, LastPage: 3, Total: 60, Size: 25}
	assert.False(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Previous())
	assert.Equal(t, 2, p.Next())

	last := Pager{Page: 3, LastPage: 3}
	assert.False(t, last.HasNext())
	assert.Equal(t, 3, last.Next())

	single := Pager{Page: 1, LastPage: 1}
	assert.False(t, single.HasPrevious())
	assert.False(t, single.HasNext())
}

func TestPageCursor_HasNextWhenPageIsFull(t *testing.T) {
	assert.True(t, PageCursor{Page: 1, Size: 25, Fetched: 25}.HasNext())
	assert.False(t, PageCursor{Page: 1, Size: 25, Fetched: 24}.HasNext())
	assert.False(t, PageCursor{Page: 2, Size: 25, Fetched: 0}.HasNext())
	assert.True(t, PageCursor{Page: 2}.HasPrevious())
	assert.False(t, PageCursor{Page: 1}.HasPrevious())
}
