package conversation

// Cursor is the pagination state for the selected chatroom's history.
// Pages are 1-indexed.
type Cursor struct {
	Page     int
	PageSize int
}

// VisibleCount reports how many of total messages the cursor exposes.
func (c Cursor) VisibleCount(total int) int {
	if c.Page < 1 || c.PageSize <= 0 {
		return 0
	}
	visible := c.Page * c.PageSize
	if visible > total {
		return total
	}
	return visible
}

// HasMore reports whether another page of history exists beyond the cursor.
func (c Cursor) HasMore(total int) bool {
	if c.Page < 1 || c.PageSize <= 0 {
		return false
	}
	return c.Page*c.PageSize < total
}
