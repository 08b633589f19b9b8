package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/rtad/internal/config"
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/spf13/cobra"
)

// FeedFlags holds the flags that override which tables are polled and how
// often: --tables, --interval and --url.
type FeedFlags struct {
	Tables   string
	Interval string
	URL      string
}

// AddFeedFlags registers --tables, --interval and --url on a command.
func AddFeedFlags(cmd *cobra.Command, flags *FeedFlags) {
	cmd.Flags().StringVar(&flags.Tables, "tables", "", "comma-separated tables to poll (lastb,proxy)")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "poll interval (e.g., 5s, 1m)")
	cmd.Flags().StringVar(&flags.URL, "url", "", "backend base URL (overrides server.base_url)")
}

// Apply copies any set flag into cfg.
func (f *FeedFlags) Apply(cfg *config.Config) error {
	tables, err := ParseTablesFlag(f.Tables)
	if err != nil {
		return err
	}
	if tables != nil {
		cfg.Tables = tables
	}

	interval, err := ParseInterval(f.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Poll.Interval = interval
	}

	if f.URL != "" {
		cfg.Server.BaseURL = strings.TrimRight(f.URL, "/")
	}
	return nil
}

// ParseInterval parses a poll interval flag. Returns zero if the flag is
// empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 5s, 1m, or 500ms.")
	}
	if duration < config.MinPollInterval {
		return 0, errors.New(errors.ErrInput,
			fmt.Sprintf("Interval %s is too short", duration),
			fmt.Sprintf("Minimum interval is %s.", config.MinPollInterval))
	}
	return duration, nil
}

// ParseTablesFlag splits a comma-separated --tables value. Returns nil if
// the flag is empty.
func ParseTablesFlag(flag string) ([]string, error) {
	if strings.TrimSpace(flag) == "" {
		return nil, nil
	}
	return config.ParseTables(strings.Split(flag, ","))
}
