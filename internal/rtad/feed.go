package rtad

import (
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/logger"
)

// DefaultMaxRows matches the size of the backend's per-table buffer.
const DefaultMaxRows = 1000

// FeedOptions configures a Feed.
type FeedOptions struct {
	// MaxRows bounds the retained rows; the oldest are evicted first.
	MaxRows int
	// Locale is the BCP 47 tag used to collate text columns.
	Locale string
	// Store persists the sort state. Nil keeps it in memory only.
	Store *StateStore
	// Dates may be shared between feeds.
	Dates  *DateCache
	Logger logger.Logger
}

// Feed is the client-side state of one RTAD table: cursor, retained rows,
// the rendered table with its row pool, and the active sort.
//
// A Feed is safe for concurrent use; the poller writes while the UI reads.
type Feed struct {
	mu sync.RWMutex

	kind    TableKind
	cursor  Cursor
	entries []Entry
	table   *Table
	sorter  *Sorter
	sort    *SortState
	store   *StateStore
	maxRows int
	log     logger.Logger
	updated time.Time
}

// FeedStats summarizes a feed for headers and metrics.
type FeedStats struct {
	Kind        TableKind
	Rows        int
	DistinctIPs int
	PoolFree    int
	Cursor      Cursor
	Updated     time.Time
}

// NewFeed creates the feed for kind and restores its persisted sort state.
// A stored state that is malformed or out of range is ignored.
func NewFeed(kind TableKind, opts FeedOptions) *Feed {
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	f := &Feed{
		kind:    kind,
		table:   NewTable(kind, NewRowPool()),
		sorter:  NewSorter(opts.Locale, opts.Dates),
		store:   opts.Store,
		maxRows: opts.MaxRows,
		log:     opts.Logger,
	}
	f.sort = f.loadSort()
	return f
}

func (f *Feed) loadSort() *SortState {
	if f.store == nil {
		return nil
	}
	st, err := f.store.Load(f.kind.StateKey())
	if err != nil {
		f.log.Warn("%s: ignoring stored sort state: %s", f.kind, errors.Summary(err))
		return nil
	}
	if st == nil {
		return nil
	}
	if st.Column >= len(f.kind.Columns()) {
		f.log.Warn("%s: ignoring stored sort state %s: no such column", f.kind, st)
		return nil
	}
	f.log.Debug("%s: restored sort %s", f.kind, st)
	return st
}

// Kind returns the table kind.
func (f *Feed) Kind() TableKind { return f.kind }

// Cursor returns the last processed id.
func (f *Feed) Cursor() Cursor {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cursor
}

// Apply merges a fetch response into the feed and returns the number of
// rows added. Rows at or below the cursor are dropped, so a response can
// never move the cursor backwards. An empty response changes nothing.
//
// Apply leaves rows in arrival order; call Resort to restore the active
// sort.
func (f *Feed) Apply(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for _, e := range entries {
		if f.cursor.Valid() && e.EntryID() <= f.cursor.Value() {
			continue
		}
		f.entries = append(f.entries, e)
		f.cursor.Advance(e.EntryID())
		added++
	}
	if added == 0 {
		return 0
	}

	if drop := len(f.entries) - f.maxRows; drop > 0 {
		n := copy(f.entries, f.entries[drop:])
		clear(f.entries[n:])
		f.entries = f.entries[:n]
	}

	f.table.Update(f.entries)
	f.updated = time.Now()
	return added
}

// Resort reapplies the active sort, if any.
func (f *Feed) Resort() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sort == nil {
		return nil
	}
	return f.sorter.Sort(f.table, f.sort.Column, f.sort.Direction)
}

// ClickColumn applies a header click on column: it sorts the table and
// persists the new state. The sort is applied even when persisting fails.
func (f *Feed) ClickColumn(column int) (SortState, error) {
	f.mu.Lock()
	next := f.sort.Toggle(column)
	f.mu.Unlock()

	return next, f.SetSort(next)
}

// SetSort sorts by st and persists it.
func (f *Feed) SetSort(st SortState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.sorter.Sort(f.table, st.Column, st.Direction); err != nil {
		return err
	}
	f.sort = &st
	if f.store == nil {
		return nil
	}
	return f.store.Save(f.kind.StateKey(), st)
}

// ClearSort drops the active sort, restores arrival order and removes the
// persisted state.
func (f *Feed) ClearSort() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sort = nil
	f.table.Update(f.entries)
	if f.store == nil {
		return nil
	}
	return f.store.Delete(f.kind.StateKey())
}

// SortState returns the active sort; ok is false when the table is
// unsorted.
func (f *Feed) SortState() (st SortState, ok bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.sort == nil {
		return SortState{}, false
	}
	return *f.sort, true
}

// Reset unsets the cursor and detaches every row, ready for a full fetch.
// The sort state is kept.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cursor.Reset()
	clear(f.entries)
	f.entries = f.entries[:0]
	f.table.Update(nil)
}

// Snapshot returns detached copies of the rows in display order.
func (f *Feed) Snapshot() []Row {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.table.Snapshot()
}

// Len returns the number of displayed rows.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.table.Len()
}

// PoolLen returns the number of detached rows waiting for reuse.
func (f *Feed) PoolLen() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.table.Pool().Len()
}

// Stats summarizes the feed.
func (f *Feed) Stats() FeedStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ips := make(map[string]struct{}, len(f.entries))
	for _, e := range f.entries {
		ips[e.SourceIP()] = struct{}{}
	}
	return FeedStats{
		Kind:        f.kind,
		Rows:        f.table.Len(),
		DistinctIPs: len(ips),
		PoolFree:    f.table.Pool().Len(),
		Cursor:      f.cursor,
		Updated:     f.updated,
	}
}

// CollectIPs adds the source IP of every retained row to set.
func (f *Feed) CollectIPs(set map[string]struct{}) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, e := range f.entries {
		set[e.SourceIP()] = struct{}{}
	}
}

// Tail returns the last n retained entries in arrival order.
func (f *Feed) Tail(n int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]Entry, n)
	copy(out, f.entries[len(f.entries)-n:])
	return out
}

// String renders the feed for logs.
func (f *Feed) String() string {
	st := f.Stats()
	return fmt.Sprintf("%s(rows=%d cursor=%s)", f.kind, st.Rows, st.Cursor)
}
