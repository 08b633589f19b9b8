// Package rtad implements the incremental table client for the RTAD
// (real-time attack detection) endpoints of the metrics backend.
//
// # Architecture
//
// Each watched table gets one Feed, constructed once and passed around
// explicitly. A Feed owns everything that table needs:
//
//	Cursor     - last processed row id; unset means "fetch the full set"
//	Table      - the rendered rows, rebuilt in place on every update
//	RowPool    - free-list of detached rows reused by the Table
//	DateCache  - memoized timestamp -> epoch milliseconds
//	Sorter     - column comparator (timestamp, numeric, collated text)
//	SortState  - active column/direction, persisted in a StateStore
//
// # Message Flow
//
// The Poller runs one goroutine per Feed:
//
//  1. Fetch GET /rtad_<table>?last_id=<cursor> (no last_id when unset)
//  2. Feed.Apply merges the rows, updates the Table, advances the Cursor
//  3. Sink.FeedUpdated notifies the UI, which re-applies the active sort
//  4. Wait for the next tick; the next request only starts after the
//     previous one finished, so responses can never apply out of order
//
// Failures are logged and reported to the Sink; the Cursor and Table are
// left untouched and the next tick retries.
//
// # Manual Refresh
//
// Poller.Refresh cancels any in-flight request, resets every Cursor and
// refetches the full set. Results of the cancelled request are discarded.
package rtad
