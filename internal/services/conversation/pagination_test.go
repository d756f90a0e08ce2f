package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorVisibleCountAndHasMore(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		total       int
		wantVisible int
		wantMore    bool
	}{
		{"empty history", 1, 0, 0, false},
		{"partial first page", 1, 7, 7, false},
		{"exactly one page", 1, 20, 20, false},
		{"one past a page", 1, 21, 20, true},
		{"middle page", 2, 45, 40, true},
		{"last page", 3, 45, 45, false},
		{"page beyond history", 4, 45, 45, false},
		{"zero page is invalid", 0, 45, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := Cursor{Page: tt.page, PageSize: PageSize}
			assert.Equal(t, tt.wantVisible, cursor.VisibleCount(tt.total))
			assert.Equal(t, tt.wantMore, cursor.HasMore(tt.total))
		})
	}
}

// Advancing the cursor terminates after ceil(total/pageSize) pages.
func TestCursorTerminates(t *testing.T) {
	for _, total := range []int{0, 1, 19, 20, 21, 45, 100, 101} {
		cursor := Cursor{Page: 1, PageSize: PageSize}
		pages := 1
		for cursor.HasMore(total) {
			cursor.Page++
			pages++
		}
		want := (total + PageSize - 1) / PageSize
		if want == 0 {
			want = 1
		}
		assert.Equal(t, want, pages, "total=%d", total)
	}
}
