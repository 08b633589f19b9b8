package watch

import (
	"time"

	"github.com/rileyhilliard/rtad/internal/rtad"
)

// FeedResetMsg is sent when a refresh has emptied a feed.
type FeedResetMsg struct {
	Kind rtad.TableKind
}

// FeedUpdatedMsg is sent after a successful fetch was applied.
type FeedUpdatedMsg struct {
	Kind  rtad.TableKind
	Added int
	At    time.Time
}

// FetchFailedMsg is sent when a fetch fails. The feed is unchanged.
type FetchFailedMsg struct {
	Kind rtad.TableKind
	Err  error
}

// resortMsg reapplies the active sort of one feed.
type resortMsg struct {
	kind rtad.TableKind
}

// clockMsg refreshes relative times in the header.
type clockMsg time.Time
