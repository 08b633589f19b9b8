// Package watch implements the live RTAD dashboard.
//
// The dashboard shows the failed-login (lastb) and proxy-error tables of the
// metrics backend, one at a time, with a summary header, per-column sorting
// and row coloring by HTTP status class.
//
// # Architecture
//
// Polling happens outside Bubble Tea. An rtad.Poller runs one serial loop
// per table and reports through a Bridge, which forwards each outcome to
// the program with program.Send:
//
//  1. The poller applies a response to its rtad.Feed (cursor, rows, pool)
//  2. Bridge.FeedUpdated sends FeedUpdatedMsg
//  3. Update schedules a resortMsg, so the sort is restored one message
//     cycle after the rows land
//  4. View renders a snapshot of each feed
//
// When stdout is not a terminal, or --plain is given, Run skips the TUI
// and prints new rows as lines (see Stream).
//
// # Keyboard Shortcuts
//
//	tab / shift+tab   - Switch table
//	←/→, h/l          - Move column focus
//	s, enter          - Sort by focused column (again to flip direction)
//	1-9               - Sort by column N
//	c                 - Clear sort
//	↑/↓, j/k          - Scroll
//	r                 - Refresh (reload both tables from scratch)
//	?                 - Toggle help
//	q, ctrl+c         - Quit
//
// Clicking a column header with the mouse sorts by that column.
package watch
