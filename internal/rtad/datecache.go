package rtad

import (
	"strings"
	"sync"
	"time"
)

// timestampLayouts are tried in order. The backend emits ISO-8601 with an
// offset; the naive forms cover older backends.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses a backend timestamp. Naive timestamps are read in
// the local zone.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type cachedMillis struct {
	ms int64
	ok bool
}

// DateCache memoizes raw timestamp -> epoch milliseconds. Timestamps are
// immutable once issued, so entries are never invalidated.
type DateCache struct {
	mu sync.Mutex
	m  map[string]cachedMillis
}

// NewDateCache creates an empty cache.
func NewDateCache() *DateCache {
	return &DateCache{m: make(map[string]cachedMillis)}
}

// Millis returns the epoch milliseconds for raw; ok is false when raw does
// not parse. Failures are cached too.
func (c *DateCache) Millis(raw string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, hit := c.m[raw]; hit {
		return v.ms, v.ok
	}
	var v cachedMillis
	if t, ok := ParseTimestamp(raw); ok {
		v = cachedMillis{ms: t.UnixMilli(), ok: true}
	}
	c.m[raw] = v
	return v.ms, v.ok
}

// Len returns the number of cached timestamps.
func (c *DateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// FormatTimestamp renders raw for display in the local zone, falling back to
// the raw text when it does not parse.
func FormatTimestamp(raw string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
