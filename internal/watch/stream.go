package watch

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

// Stream implements rtad.Sink for non-interactive output: every newly
// applied row is printed as one tab-separated line prefixed by its table.
// Failures go to errOut.
type Stream struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	feeds  map[rtad.TableKind]*rtad.Feed
}

var _ rtad.Sink = (*Stream)(nil)

// NewStream creates a stream sink over feeds.
func NewStream(out, errOut io.Writer, feeds []*rtad.Feed) *Stream {
	byKind := make(map[rtad.TableKind]*rtad.Feed, len(feeds))
	for _, f := range feeds {
		byKind[f.Kind()] = f
	}
	return &Stream{out: out, errOut: errOut, feeds: byKind}
}

// FeedReset notes a refresh.
func (s *Stream) FeedReset(kind rtad.TableKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, "# %s: refreshing\n", kind)
}

// FeedUpdated prints the rows just added, oldest first.
func (s *Stream) FeedUpdated(kind rtad.TableKind, added int) {
	if added == 0 {
		return
	}
	feed := s.feeds[kind]
	if feed == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range feed.Tail(added) {
		fmt.Fprintln(s.out, FormatLine(kind, e))
	}
}

// FetchFailed prints the failure; the poller retries on the next tick.
func (s *Stream) FetchFailed(kind rtad.TableKind, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, "✗ %s: %s\n", kind, errors.Summary(err))
}

// FormatLine renders one entry as "kind<TAB>cell<TAB>cell...", with the
// timestamp in local time.
func FormatLine(kind rtad.TableKind, e rtad.Entry) string {
	cells := e.Cells(nil)
	if len(cells) > rtad.TimestampColumn {
		cells[rtad.TimestampColumn] = rtad.FormatTimestamp(cells[rtad.TimestampColumn])
	}
	return kind.String() + "\t" + strings.Join(cells, "\t")
}
