package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name          string
		items         []int
		currentPage   int
		itemsPerPage  int
		wantItems     []int
		wantTotalPage int
	}{
		{
			name:          "last short page",
			items:         seq(25),
			currentPage:   3,
			itemsPerPage:  10,
			wantItems:     []int{21, 22, 23, 24, 25},
			wantTotalPage: 3,
		},
		{
			name:          "first page",
			items:         seq(25),
			currentPage:   1,
			itemsPerPage:  10,
			wantItems:     seq(10),
			wantTotalPage: 3,
		},
		{
			name:          "empty collection",
			items:         []int{},
			currentPage:   1,
			itemsPerPage:  10,
			wantItems:     []int{},
			wantTotalPage: 0,
		},
		{
			name:          "page past the end",
			items:         seq(5),
			currentPage:   4,
			itemsPerPage:  2,
			wantItems:     []int{},
			wantTotalPage: 3,
		},
		{
			name:          "page zero",
			items:         seq(5),
			currentPage:   0,
			itemsPerPage:  2,
			wantItems:     []int{},
			wantTotalPage: 3,
		},
		{
			name:          "exact multiple",
			items:         seq(20),
			currentPage:   2,
			itemsPerPage:  10,
			wantItems:     []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			wantTotalPage: 2,
		},
		{
			name:          "non positive page size",
			items:         seq(3),
			currentPage:   1,
			itemsPerPage:  0,
			wantItems:     []int{},
			wantTotalPage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(tt.items, tt.currentPage, tt.itemsPerPage)
			assert.Equal(t, tt.wantItems, page.Items)
			assert.Equal(t, tt.wantTotalPage, page.TotalPages)
			assert.Equal(t, tt.currentPage, page.CurrentPage)
		})
	}
}

func TestPaginate_IsStable(t *testing.T) {
	items := []string{"b", "a", "c"}
	first := Paginate(items, 1, 2)
	second := Paginate(items, 1, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"b", "a"}, first.Items)
}

func TestPaginate_DoesNotShareItems(t *testing.T) {
	items := []int{1, 2, 3, 4}
	page := Paginate(items, 1, 2)

	page.Items = append(page.Items, 99)
	page.Items[0] = 42
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}

func TestPage_Navigation(t *testing.T) {
	page := Paginate(seq(25), 1, 10)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrev())

	page = Paginate(seq(25), 3, 10)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrev())

	page = Paginate([]int{}, 1, 10)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrev())
}
