package watch

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

// Bridge implements rtad.Sink and forwards poll outcomes to the Bubble Tea
// program via program.Send(). This is goroutine-safe.
type Bridge struct {
	program *tea.Program
}

var _ rtad.Sink = (*Bridge)(nil)

// NewBridge creates a bridge that forwards events to the given program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// FeedReset forwards a refresh reset to the TUI.
func (b *Bridge) FeedReset(kind rtad.TableKind) {
	b.program.Send(FeedResetMsg{Kind: kind})
}

// FeedUpdated forwards an applied fetch to the TUI.
func (b *Bridge) FeedUpdated(kind rtad.TableKind, added int) {
	b.program.Send(FeedUpdatedMsg{Kind: kind, Added: added, At: time.Now()})
}

// FetchFailed forwards a fetch failure to the TUI.
func (b *Bridge) FetchFailed(kind rtad.TableKind, err error) {
	b.program.Send(FetchFailedMsg{Kind: kind, Err: err})
}
