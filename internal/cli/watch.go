package cli

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtad/internal/logger"
	"github.com/rileyhilliard/rtad/internal/metrics"
	"github.com/rileyhilliard/rtad/internal/rtad"
	"github.com/rileyhilliard/rtad/internal/watch"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "rtad-debug.log"

type watchOptions struct {
	Flags       FeedFlags
	Plain       bool
	MetricsAddr string
}

// watchCommand polls the configured tables until ctx is cancelled or the
// user quits the dashboard.
func watchCommand(ctx context.Context, out, errOut io.Writer, opts watchOptions) error {
	a, err := loadApp(&opts.Flags)
	if err != nil {
		return err
	}
	kinds, err := a.kinds()
	if err != nil {
		return err
	}
	feeds := a.newFeeds(kinds)
	client := a.newClient()

	interactive := !opts.Plain && isTerminal(out)
	if interactive {
		// Log lines written over the alt screen corrupt the frame.
		if logger.DebugEnabled() {
			f, err := tea.LogToFile(debugLogFile, "rtad")
			if err == nil {
				defer f.Close()
			}
		} else {
			log.SetOutput(io.Discard)
		}
	}

	addr := opts.MetricsAddr
	if addr == "" {
		addr = a.cfg.Metrics.Addr
	}
	var recorder rtad.Recorder
	if addr != "" {
		rec := metrics.New()
		if _, err := rec.Serve(ctx, addr, a.log); err != nil {
			return err
		}
		recorder = rec
	}

	a.log.Debug("watching %v on %s every %s", kinds, client.BaseURL(), a.cfg.Poll.Interval)

	return watch.Run(ctx, client, feeds, watch.RunOptions{
		Interval: a.cfg.Poll.Interval,
		BaseURL:  client.BaseURL(),
		Plain:    !interactive,
		Recorder: recorder,
		Logger:   a.log,
		Out:      out,
		ErrOut:   errOut,
	})
}
