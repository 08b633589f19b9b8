package rtad

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/rtad/internal/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is asc or desc.
func (d Direction) Valid() bool { return d == Asc || d == Desc }

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Arrow returns the header indicator for d.
func (d Direction) Arrow() string {
	if d == Desc {
		return "▼"
	}
	return "▲"
}

// ParseDirection accepts asc/desc (any case); empty means asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", errors.New(errors.ErrInput,
		fmt.Sprintf("Unknown sort direction %q", s),
		"Use asc or desc")
}

// SortState is the active ordering of a table.
type SortState struct {
	Column    int       `json:"column"`
	Direction Direction `json:"direction"`
}

// String renders the state as "col 3 asc".
func (s SortState) String() string {
	return fmt.Sprintf("col %d %s", s.Column, s.Direction)
}

// NextSort is the header-click transition: the first click or a click on a
// different column sorts ascending; a click on the active column flips it.
func NextSort(current *SortState, column int) SortState {
	if current != nil && current.Column == column {
		return SortState{Column: column, Direction: current.Direction.Flip()}
	}
	return SortState{Column: column, Direction: Asc}
}

// Sorter orders table rows by one column.
//
// The timestamp column compares cached epoch milliseconds. Any other column
// compares numerically when every non-empty cell in it is a number, and by
// locale collation otherwise. Sorting is stable.
type Sorter struct {
	dates    *DateCache
	collator *collate.Collator
}

// compareMode is how a column's cells are compared, fixed for one sort.
type compareMode int

const (
	modeCollate compareMode = iota
	modeNumeric
	modeTimestamp
)

// NewSorter creates a sorter collating text for locale (a BCP 47 tag).
// Unknown locales fall back to the root collation.
func NewSorter(locale string, dates *DateCache) *Sorter {
	if dates == nil {
		dates = NewDateCache()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return &Sorter{
		dates:    dates,
		collator: collate.New(tag),
	}
}

// Sort reorders all rows of t by column in direction dir.
func (s *Sorter) Sort(t *Table, column int, dir Direction) error {
	if n := len(t.kind.Columns()); column < 0 || column >= n {
		return errors.New(errors.ErrInput,
			fmt.Sprintf("Column %d out of range for table %s", column, t.kind),
			fmt.Sprintf("Use a column between 0 and %d", n-1))
	}
	if !dir.Valid() {
		return errors.New(errors.ErrInput,
			fmt.Sprintf("Unknown sort direction %q", dir),
			"Use asc or desc")
	}

	mode := s.columnMode(t.rows, column)
	sort.SliceStable(t.rows, func(i, j int) bool {
		c := s.compare(t.rows[i], t.rows[j], column, mode)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return nil
}

// columnMode picks numeric comparison only when every non-empty cell of
// column parses as a number. An all-empty column collates.
func (s *Sorter) columnMode(rows []*Row, column int) compareMode {
	if column == TimestampColumn {
		return modeTimestamp
	}
	numbers := 0
	for _, r := range rows {
		cell := strings.TrimSpace(r.Cell(column))
		if cell == "" {
			continue
		}
		if _, ok := parseNumber(cell); !ok {
			return modeCollate
		}
		numbers++
	}
	if numbers == 0 {
		return modeCollate
	}
	return modeNumeric
}

// compare orders two rows by column under mode, returning -1, 0 or 1.
// In numeric mode empty cells sort before numbers.
func (s *Sorter) compare(a, b *Row, column int, mode compareMode) int {
	switch mode {
	case modeTimestamp:
		return s.compareTimestamps(a.Timestamp, b.Timestamp)
	case modeNumeric:
		an, aok := parseNumber(a.Cell(column))
		bn, bok := parseNumber(b.Cell(column))
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		}
		return compareFloats(an, bn)
	}
	return s.collator.CompareString(a.Cell(column), b.Cell(column))
}

// compareTimestamps puts unparseable timestamps before parseable ones.
func (s *Sorter) compareTimestamps(a, b string) int {
	am, aok := s.dates.Millis(a)
	bm, bok := s.dates.Millis(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	case am < bm:
		return -1
	case am > bm:
		return 1
	}
	return 0
}

// parseNumber accepts cells that are a number and nothing else.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Toggle returns the state after a click on column. A nil receiver is the
// unsorted state.
func (s *SortState) Toggle(column int) SortState {
	return NextSort(s, column)
}
