package rtad

import (
	"net/url"
	"strconv"
)

// Cursor is the last processed row id of a table. The zero value is unset,
// which means "fetch the full set".
type Cursor struct {
	id    int64
	valid bool
}

// CursorAt returns a cursor positioned at id.
func CursorAt(id int64) Cursor {
	return Cursor{id: id, valid: true}
}

// Valid reports whether the cursor has been set.
func (c Cursor) Valid() bool { return c.valid }

// Value returns the cursor id; only meaningful when Valid.
func (c Cursor) Value() int64 { return c.id }

// Advance moves the cursor to id. Lower ids are ignored so the cursor never
// moves backwards while polling continues.
func (c *Cursor) Advance(id int64) {
	if c.valid && id <= c.id {
		return
	}
	c.id = id
	c.valid = true
}

// Reset unsets the cursor.
func (c *Cursor) Reset() {
	*c = Cursor{}
}

// Query returns the request parameters for this cursor.
func (c Cursor) Query() url.Values {
	q := url.Values{}
	if c.valid {
		q.Set("last_id", strconv.FormatInt(c.id, 10))
	}
	return q
}

// String renders the cursor for logs and the status bar.
func (c Cursor) String() string {
	if !c.valid {
		return "none"
	}
	return strconv.FormatInt(c.id, 10)
}
