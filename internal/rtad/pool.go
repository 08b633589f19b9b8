package rtad

// Row is one rendered table row. Rows are recycled through a RowPool, so
// every field is rewritten on reuse.
type Row struct {
	ID        int64
	Cells     []string
	Timestamp string
	IP        string
	Class     StatusClass

	attached bool
}

// fill overwrites the row with e, reusing the cell slice's capacity.
func (r *Row) fill(e Entry) {
	r.ID = e.EntryID()
	r.Cells = e.Cells(r.Cells[:0])
	r.Timestamp = e.RawTimestamp()
	r.IP = e.SourceIP()
	r.Class = e.Status()
}

// Cell returns the cell at column i, or "" when out of range.
func (r *Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// clone returns a detached copy safe to hand to renderers.
func (r *Row) clone() Row {
	c := *r
	c.Cells = append([]string(nil), r.Cells...)
	c.attached = false
	return c
}

// RowPool is a free-list of detached rows. It is bounded only by the
// largest table it has served and is never persisted.
type RowPool struct {
	free []*Row
}

// NewRowPool creates an empty pool.
func NewRowPool() *RowPool {
	return &RowPool{}
}

// Acquire pops a detached row, or allocates one when the pool is empty.
// The returned row is marked attached.
func (p *RowPool) Acquire() *Row {
	var r *Row
	if n := len(p.free); n > 0 {
		r = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		r = &Row{}
	}
	r.attached = true
	return r
}

// Release detaches r and pushes it onto the free-list. Its content is
// cleared; only the cell slice's capacity survives.
func (p *RowPool) Release(r *Row) {
	if r == nil {
		return
	}
	cells := r.Cells[:0]
	*r = Row{Cells: cells}
	p.free = append(p.free, r)
}

// Len returns the number of rows waiting for reuse.
func (p *RowPool) Len() int {
	return len(p.free)
}
