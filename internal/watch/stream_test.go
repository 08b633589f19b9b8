package watch

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_PrintsAddedRows(t *testing.T) {
	feeds := newTestFeeds(t)
	var out, errOut bytes.Buffer
	s := NewStream(&out, &errOut, feeds)

	feeds[0].Apply(lastbEntries(1, 2))
	s.FeedUpdated(rtad.KindLastb, 2)
	added := feeds[0].Apply(lastbEntries(3, 3))
	s.FeedUpdated(rtad.KindLastb, added)
	s.FeedUpdated(rtad.KindLastb, 0)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "lastb\t"))
	assert.Contains(t, lines[0], "user1")
	assert.Contains(t, lines[2], "user3")
	assert.Empty(t, errOut.String())
}

func TestStream_ReportsFailuresAndResets(t *testing.T) {
	var out, errOut bytes.Buffer
	s := NewStream(&out, &errOut, newTestFeeds(t))

	s.FetchFailed(rtad.KindProxy, fmt.Errorf("timeout"))
	s.FeedReset(rtad.KindProxy)
	s.FeedUpdated(rtad.TableKind("unknown"), 3)

	assert.Contains(t, errOut.String(), "✗ proxy: timeout")
	assert.Contains(t, errOut.String(), "# proxy: refreshing")
	assert.Empty(t, out.String())
}

func TestFormatLine(t *testing.T) {
	e := rtad.ProxyEntry{ID: 1, Domain: "example.com", IPAddress: "10.0.0.1", ErrorCode: 404, URL: "/x", Timestamp: "bad"}
	line := FormatLine(rtad.KindProxy, e)
	assert.Equal(t, "proxy\tbad\texample.com\t10.0.0.1\t\t\t\t404\t/x", line)
}

// staticFetcher serves one fixed batch and then nothing.
type staticFetcher struct {
	mu      sync.Mutex
	entries []rtad.Entry
	served  bool
}

func (f *staticFetcher) Fetch(ctx context.Context, kind rtad.TableKind, cursor rtad.Cursor) ([]rtad.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind != rtad.KindLastb || f.served {
		return nil, nil
	}
	f.served = true
	return f.entries, nil
}

// syncBuffer is a bytes.Buffer safe for the poller goroutines.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestRunStream(t *testing.T) {
	feeds := newTestFeeds(t)
	fetcher := &staticFetcher{entries: lastbEntries(1, 2)}
	var out, errOut syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunStream(ctx, fetcher, feeds, RunOptions{Interval: time.Second, Out: &out, ErrOut: &errOut})
	}()

	assert.Eventually(t, func() bool {
		return strings.Count(out.String(), "\n") == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunStream did not stop")
	}
	assert.Equal(t, int64(2), feeds[0].Cursor().Value())
	assert.Contains(t, errOut.String(), "# polling lastb, proxy every 1s")
}
