package rtad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(t *Table, column int) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.Row(i).Cell(column)
	}
	return out
}

func ids(t *Table) []int64 {
	out := make([]int64, t.Len())
	for i := range out {
		out[i] = t.Row(i).ID
	}
	return out
}

func TestNextSort(t *testing.T) {
	first := NextSort(nil, 3)
	assert.Equal(t, SortState{Column: 3, Direction: Asc}, first)

	second := NextSort(&first, 3)
	assert.Equal(t, SortState{Column: 3, Direction: Desc}, second)

	third := NextSort(&second, 3)
	assert.Equal(t, Asc, third.Direction)

	other := NextSort(&second, 1)
	assert.Equal(t, SortState{Column: 1, Direction: Asc}, other)

	var unsorted *SortState
	assert.Equal(t, first, unsorted.Toggle(3))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestSorter_TimestampColumn(t *testing.T) {
	tbl := NewTable(KindLastb, nil)
	tbl.Update([]Entry{
		lastb(1, "2024-03-01T10:00:00+00:00", "a"),
		lastb(2, "2024-02-28T23:59:59+00:00", "b"),
		lastb(3, "2024-03-01T09:00:00-02:00", "c"), // 11:00 UTC
	})

	s := NewSorter("en", nil)
	require.NoError(t, s.Sort(tbl, TimestampColumn, Asc))
	assert.Equal(t, []int64{2, 1, 3}, ids(tbl))

	require.NoError(t, s.Sort(tbl, TimestampColumn, Desc))
	assert.Equal(t, []int64{3, 1, 2}, ids(tbl))
	assert.Equal(t, 3, s.dates.Len())
}

func TestSorter_UnparseableTimestampsSortFirst(t *testing.T) {
	tbl := NewTable(KindLastb, nil)
	tbl.Update([]Entry{
		lastb(1, "2024-03-01T10:00:00+00:00", "a"),
		lastb(2, "yesterday", "b"),
	})

	require.NoError(t, NewSorter("en", nil).Sort(tbl, TimestampColumn, Asc))
	assert.Equal(t, []int64{2, 1}, ids(tbl))
}

func TestSorter_NumericColumn(t *testing.T) {
	tbl := NewTable(KindProxy, nil)
	tbl.Update([]Entry{
		proxy(1, "a", 502),
		proxy(2, "b", 404),
		proxy(3, "c", 1000),
	})

	codeCol, err := KindProxy.ColumnIndex("Code")
	require.NoError(t, err)

	require.NoError(t, NewSorter("en", nil).Sort(tbl, codeCol, Asc))
	// Numeric, not lexicographic: "1000" would sort before "404" as text.
	assert.Equal(t, []int64{2, 1, 3}, ids(tbl))
}

func TestSorter_MixedColumnOrderIgnoresArrival(t *testing.T) {
	cityCol, err := KindLastb.ColumnIndex("City")
	require.NoError(t, err)

	inputs := [][]string{
		{"2", "10", "1a"},
		{"1a", "2", "10"},
		{"10", "1a", "2"},
		{"2", "1a", "10"},
	}

	for _, cities := range inputs {
		t.Run(strings.Join(cities, ","), func(t *testing.T) {
			entries := make([]Entry, len(cities))
			for i, c := range cities {
				e := lastb(int64(i+1), "2024-03-01T10:00:00+00:00", "192.0.2.1").(LastbEntry)
				e.City = c
				entries[i] = e
			}
			tbl := NewTable(KindLastb, nil)
			tbl.Update(entries)

			require.NoError(t, NewSorter("en", nil).Sort(tbl, cityCol, Asc))
			// One non-numeric cell makes the whole column collate as text.
			assert.Equal(t, []string{"10", "1a", "2"}, cells(tbl, cityCol))
		})
	}
}

func TestSorter_NumericColumnWithEmptyCells(t *testing.T) {
	userCol, err := KindLastb.ColumnIndex("User")
	require.NoError(t, err)

	var entries []Entry
	for i, u := range []string{"10", "", "9"} {
		e := lastb(int64(i+1), "2024-03-01T10:00:00+00:00", "192.0.2.1").(LastbEntry)
		e.User = u
		entries = append(entries, e)
	}
	tbl := NewTable(KindLastb, nil)
	tbl.Update(entries)

	require.NoError(t, NewSorter("en", nil).Sort(tbl, userCol, Asc))
	assert.Equal(t, []string{"", "9", "10"}, cells(tbl, userCol))

	require.NoError(t, NewSorter("en", nil).Sort(tbl, userCol, Desc))
	assert.Equal(t, []string{"10", "9", ""}, cells(tbl, userCol))
}

func TestSorter_CollatedText(t *testing.T) {
	tbl := NewTable(KindProxy, nil)
	tbl.Update([]Entry{
		proxy(1, "zeta.example", 404),
		proxy(2, "Alpha.example", 404),
		proxy(3, "beta.example", 404),
	})

	require.NoError(t, NewSorter("en", nil).Sort(tbl, 1, Asc))
	// Case-insensitive at the primary level, unlike a byte comparison.
	assert.Equal(t, []int64{2, 3, 1}, ids(tbl))
}

func TestSorter_Stable(t *testing.T) {
	tbl := NewTable(KindProxy, nil)
	tbl.Update([]Entry{
		proxy(1, "same", 404),
		proxy(2, "other", 500),
		proxy(3, "same", 404),
		proxy(4, "same", 404),
	})

	require.NoError(t, NewSorter("en", nil).Sort(tbl, 1, Desc))
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(tbl))
}

func TestSorter_Rejects(t *testing.T) {
	tbl := NewTable(KindLastb, nil)
	s := NewSorter("not a locale!", nil)

	assert.Error(t, s.Sort(tbl, -1, Asc))
	assert.Error(t, s.Sort(tbl, len(KindLastb.Columns()), Asc))
	assert.Error(t, s.Sort(tbl, 1, Direction("up")))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" -1.5 ", -1.5, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"10.0.0.1", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"12abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestDateCache(t *testing.T) {
	c := NewDateCache()

	ms, ok := c.Millis("1970-01-01T00:00:01Z")
	require.True(t, ok)
	assert.Equal(t, int64(1000), ms)

	_, ok = c.Millis("garbage")
	assert.False(t, ok)

	c.Millis("1970-01-01T00:00:01Z")
	assert.Equal(t, 2, c.Len(), "failures are cached and hits do not add entries")
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "not a time", FormatTimestamp("not a time"))
	assert.Len(t, FormatTimestamp("2024-03-01T10:00:00+00:00"), len("2006-01-02 15:04:05"))
}
