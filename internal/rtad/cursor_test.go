package rtad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_ZeroIsUnset(t *testing.T) {
	var c Cursor
	assert.False(t, c.Valid())
	assert.Empty(t, c.Query())
	assert.Equal(t, "none", c.String())
}

func TestCursor_Advance(t *testing.T) {
	var c Cursor
	c.Advance(5)
	assert.True(t, c.Valid())
	assert.Equal(t, int64(5), c.Value())
	assert.Equal(t, "5", c.Query().Get("last_id"))

	c.Advance(3)
	assert.Equal(t, int64(5), c.Value(), "cursor must not move backwards")

	c.Advance(9)
	assert.Equal(t, int64(9), c.Value())
}

func TestCursor_AdvanceFromZeroID(t *testing.T) {
	var c Cursor
	c.Advance(0)
	assert.True(t, c.Valid())
	assert.Equal(t, "0", c.Query().Get("last_id"))
}

func TestCursor_Reset(t *testing.T) {
	c := CursorAt(42)
	c.Reset()
	assert.False(t, c.Valid())
	assert.Empty(t, c.Query().Get("last_id"))
}
