// Package list provides cursor and scrolling helpers shared by the list views.
package list

// Cursor tracks the highlighted row of a list and the scroll window
// that keeps it visible.
type Cursor struct {
	selected int
	offset   int
	length   int
}

// SetLen updates the number of rows and clamps the cursor.
func (c *Cursor) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	c.length = n
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
	if c.offset > c.selected {
		c.offset = c.selected
	}
}

// Len returns the number of rows.
func (c *Cursor) Len() int {
	return c.length
}

// Selected returns the highlighted row.
func (c *Cursor) Selected() int {
	return c.selected
}

// MoveUp moves the cursor one row up.
func (c *Cursor) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
	if c.selected < c.offset {
		c.offset = c.selected
	}
}

// MoveDown moves the cursor one row down.
func (c *Cursor) MoveDown() {
	if c.selected < c.length-1 {
		c.selected++
	}
}

// Reset moves the cursor back to the first row.
func (c *Cursor) Reset() {
	c.selected = 0
	c.offset = 0
}

// Window returns the half-open range of rows to render so that the
// cursor stays within visible rows.
func (c *Cursor) Window(visible int) (start, end int) {
	if visible < 1 {
		visible = 1
	}
	if c.selected >= c.offset+visible {
		c.offset = c.selected - visible + 1
	}
	if c.selected < c.offset {
		c.offset = c.selected
	}
	start = c.offset
	end = start + visible
	if end > c.length {
		end = c.length
	}
	return start, end
}
