package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/logger"
	"github.com/rileyhilliard/rtad/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "rtad",
	Short: "Live view of RTAD failed logins and proxy errors",
	Long: `rtad polls the RTAD tables of a metrics backend and keeps a live,
sortable view of failed SSH logins (lastb) and reverse-proxy errors (proxy).

Each table is fetched incrementally: only rows newer than the last seen id
are requested. Sort order is remembered per table between runs.

Examples:
  rtad watch
  rtad watch --tables proxy --interval 2s
  rtad fetch lastb --json
  rtad sort proxy Code desc`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	DisableSuggestions:         true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .rtad.yaml, then ~/.config/rtad/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure. SIGINT and
// SIGTERM cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
		os.Exit(1)
	}

	if isUnknownCommandError(err) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "\n  Did you mean: %s?\n", strings.Join(suggestions, ", "))
			}
		}
		fmt.Fprintln(os.Stderr, "\n  Run 'rtad --help' for the list of commands.")
		os.Exit(1)
	}

	var rtadErr *errors.Error
	if stderrors.As(err, &rtadErr) {
		fmt.Fprint(os.Stderr, rtadErr.Error())
	} else {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
	}
	os.Exit(1)
}

// isUnknownCommandError reports whether cobra rejected the command line
// itself rather than a command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls "foo" out of `unknown command "foo" for "rtad"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
