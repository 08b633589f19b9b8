package rtad

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/logger"
)

// MinInterval is the shortest accepted poll interval.
const MinInterval = 500 * time.Millisecond

// Sink receives poll outcomes. Implementations must not block; the TUI
// bridge forwards them as tea messages.
type Sink interface {
	// FeedReset reports that a refresh emptied the feed.
	FeedReset(kind TableKind)
	FeedUpdated(kind TableKind, added int)
	FetchFailed(kind TableKind, err error)
}

// Recorder observes fetches for metrics.
type Recorder interface {
	ObserveFetch(kind TableKind, elapsed time.Duration, err error)
	ObserveFeed(stats FeedStats, added int)
}

type noopSink struct{}

func (noopSink) FeedReset(TableKind)          {}
func (noopSink) FeedUpdated(TableKind, int)   {}
func (noopSink) FetchFailed(TableKind, error) {}

type noopRecorder struct{}

func (noopRecorder) ObserveFetch(TableKind, time.Duration, error) {}
func (noopRecorder) ObserveFeed(FeedStats, int)                   {}

// Poller drives one polling loop per feed.
//
// Each loop is serial: a tick waits for the previous request to finish
// before issuing the next, so responses are always applied in request
// order. Refresh cancels the in-flight request of every loop, discards
// whatever it returns, resets the feed and fetches the full set at once.
type Poller struct {
	fetcher  Fetcher
	feeds    []*Feed
	interval time.Duration
	log      logger.Logger
	sink     Sink
	rec      Recorder
	refresh  []chan struct{}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithLogger sets the poller's logger. Nil keeps the default.
func WithLogger(l logger.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// WithSink sets the receiver of poll outcomes. Nil keeps the default.
func WithSink(s Sink) PollerOption {
	return func(p *Poller) {
		if s != nil {
			p.sink = s
		}
	}
}

// WithRecorder sets the metrics recorder. Nil keeps the default.
func WithRecorder(r Recorder) PollerOption {
	return func(p *Poller) {
		if r != nil {
			p.rec = r
		}
	}
}

// NewPoller creates a poller fetching feeds through fetcher every interval.
// Intervals below MinInterval are raised to it.
func NewPoller(fetcher Fetcher, interval time.Duration, feeds []*Feed, opts ...PollerOption) *Poller {
	if interval < MinInterval {
		interval = MinInterval
	}
	p := &Poller{
		fetcher:  fetcher,
		feeds:    feeds,
		interval: interval,
		log:      logger.Noop(),
		sink:     noopSink{},
		rec:      noopRecorder{},
		refresh:  make([]chan struct{}, len(feeds)),
	}
	for i := range p.refresh {
		p.refresh[i] = make(chan struct{}, 1)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Feeds returns the polled feeds in order.
func (p *Poller) Feeds() []*Feed { return p.feeds }

// Feed returns the feed for kind, or nil.
func (p *Poller) Feed(kind TableKind) *Feed {
	for _, f := range p.feeds {
		if f.Kind() == kind {
			return f
		}
	}
	return nil
}

// Interval returns the effective poll interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Run polls until ctx is cancelled. The first fetch of every feed is issued
// immediately.
func (p *Poller) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i, feed := range p.feeds {
		wg.Add(1)
		go func(feed *Feed, refresh <-chan struct{}) {
			defer wg.Done()
			p.loop(ctx, feed, refresh)
		}(feed, p.refresh[i])
	}
	wg.Wait()
	return ctx.Err()
}

// Refresh requests a full reload of every feed. It does not block; repeated
// calls before a loop notices collapse into one.
func (p *Poller) Refresh() {
	for _, ch := range p.refresh {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (p *Poller) loop(ctx context.Context, feed *Feed, refresh <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Debug("%s: polling every %s", feed.Kind(), p.interval)
	p.tick(ctx, feed, refresh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, feed, refresh)
		case <-refresh:
			p.reset(feed)
			p.tick(ctx, feed, refresh)
		}
	}
}

type fetchResult struct {
	entries []Entry
	err     error
}

// tick performs one fetch. A refresh arriving mid-request cancels it, waits
// for it to return, and starts over from an unset cursor.
func (p *Poller) tick(ctx context.Context, feed *Feed, refresh <-chan struct{}) {
	for {
		reqCtx, cancel := context.WithCancel(ctx)
		done := make(chan fetchResult, 1)
		cursor := feed.Cursor()
		start := time.Now()

		go func() {
			entries, err := p.fetcher.Fetch(reqCtx, feed.Kind(), cursor)
			done <- fetchResult{entries: entries, err: err}
		}()

		select {
		case res := <-done:
			cancel()
			p.handle(feed, res, time.Since(start))
			return
		case <-refresh:
			cancel()
			<-done
			p.log.Debug("%s: refresh cancelled request at cursor %s", feed.Kind(), cursor)
			p.reset(feed)
		case <-ctx.Done():
			cancel()
			<-done
			return
		}
	}
}

func (p *Poller) reset(feed *Feed) {
	feed.Reset()
	p.log.Info("%s: refreshing full table", feed.Kind())
	p.rec.ObserveFeed(feed.Stats(), 0)
	p.sink.FeedReset(feed.Kind())
}

func (p *Poller) handle(feed *Feed, res fetchResult, elapsed time.Duration) {
	kind := feed.Kind()
	p.rec.ObserveFetch(kind, elapsed, res.err)

	if res.err != nil {
		p.log.Warn("%s: fetch failed, keeping cursor %s: %s", kind, feed.Cursor(), errors.Summary(res.err))
		p.sink.FetchFailed(kind, res.err)
		return
	}

	added := feed.Apply(res.entries)
	if added > 0 {
		p.log.Debug("%s: applied %d rows, cursor now %s", kind, added, feed.Cursor())
	}
	p.rec.ObserveFeed(feed.Stats(), added)
	p.sink.FeedUpdated(kind, added)
}
