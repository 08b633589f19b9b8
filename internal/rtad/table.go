package rtad

// Table holds the rendered rows of one RTAD table.
type Table struct {
	kind TableKind
	rows []*Row
	pool *RowPool
}

// NewTable creates an empty table drawing rows from pool.
func NewTable(kind TableKind, pool *RowPool) *Table {
	if pool == nil {
		pool = NewRowPool()
	}
	return &Table{kind: kind, pool: pool}
}

// Kind returns the table kind.
func (t *Table) Kind() TableKind { return t.kind }

// Len returns the number of attached rows.
func (t *Table) Len() int { return len(t.rows) }

// Pool returns the table's row pool.
func (t *Table) Pool() *RowPool { return t.pool }

// Row returns the attached row at position i.
func (t *Table) Row(i int) *Row { return t.rows[i] }

// Update makes the table display entries, in order.
//
// Existing rows are reused by position, missing rows come from the pool
// before any allocation, and surplus rows go back to the pool. Every reused
// row is fully rewritten.
func (t *Table) Update(entries []Entry) {
	old := len(t.rows)

	for i, e := range entries {
		var r *Row
		if i < old {
			r = t.rows[i]
		} else {
			r = t.pool.Acquire()
			t.rows = append(t.rows, r)
		}
		r.fill(e)
	}

	if n := len(entries); n < old {
		for i := n; i < old; i++ {
			t.pool.Release(t.rows[i])
			t.rows[i] = nil
		}
		t.rows = t.rows[:n]
	}
}

// Snapshot returns detached copies of the rows in display order.
func (t *Table) Snapshot() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.clone()
	}
	return out
}
