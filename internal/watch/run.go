package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtad/internal/logger"
	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/rileyhilliard/rtad/internal/util"
	"golang.org/x/term"
)

// RunOptions configures the dashboard execution.
type RunOptions struct {
	Interval time.Duration
	BaseURL  string
	// Plain forces line output even on a terminal.
	Plain    bool
	Recorder rtad.Recorder
	Logger   logger.Logger
	// Out and ErrOut are used in plain mode; they default to stdout/stderr.
	Out    io.Writer
	ErrOut io.Writer
}

func (o *RunOptions) defaults() {
	if o.Logger == nil {
		o.Logger = logger.Noop()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.ErrOut == nil {
		o.ErrOut = os.Stderr
	}
}

// Run polls feeds through fetcher and shows them until the user quits or ctx
// is cancelled. Without a terminal on stdout it streams lines instead.
func Run(ctx context.Context, fetcher rtad.Fetcher, feeds []*rtad.Feed, opts RunOptions) error {
	opts.defaults()

	if opts.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return RunStream(ctx, fetcher, feeds, opts)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The model needs the poller's Refresh and the poller needs the
	// program's bridge; the closure is only called once the program runs.
	var poller *rtad.Poller
	model := NewModel(feeds, ModelOptions{
		Refresh:  func() { poller.Refresh() },
		Interval: opts.Interval,
		BaseURL:  opts.BaseURL,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	poller = rtad.NewPoller(fetcher, opts.Interval, feeds,
		rtad.WithSink(NewBridge(program)),
		rtad.WithRecorder(opts.Recorder),
		rtad.WithLogger(opts.Logger),
	)

	done := make(chan error, 1)
	go func() {
		done <- poller.Run(ctx)
	}()

	_, err := program.Run()
	cancel()
	<-done

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// RunStream polls feeds and prints new rows until ctx is cancelled.
func RunStream(ctx context.Context, fetcher rtad.Fetcher, feeds []*rtad.Feed, opts RunOptions) error {
	opts.defaults()

	names := make([]string, len(feeds))
	for i, f := range feeds {
		names[i] = f.Kind().String()
	}
	fmt.Fprintf(opts.ErrOut, "# polling %s every %s\n", util.JoinOrNone(names), opts.Interval)

	poller := rtad.NewPoller(fetcher, opts.Interval, feeds,
		rtad.WithSink(NewStream(opts.Out, opts.ErrOut, feeds)),
		rtad.WithRecorder(opts.Recorder),
		rtad.WithLogger(opts.Logger),
	)

	err := poller.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
