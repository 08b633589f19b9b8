package cli

import (
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	watchFlags       FeedFlags
	watchPlain       bool
	watchMetricsAddr string
	fetchURL         string
	fetchLastID      int64
	fetchJSON        bool
	sortClear        bool
	stateShowJSON    bool
	stateResetYes    bool
	initURLFlag      string
	initIntervalFlag string
	initTablesFlag   string
	initForce        bool
	initNonInteract  bool
)

// watchCmd is the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard of the RTAD tables",
	Long: `Poll the configured RTAD tables and show them in a live dashboard.

Each table is polled on its own: a request is only sent once the previous
one has finished, and only rows newer than the last seen id are requested.
Click a column header (or press s) to sort; the order is remembered.

When stdout is not a terminal, or with --plain, new rows are printed as
tab-separated lines instead.

Examples:
  rtad watch
  rtad watch --tables proxy --interval 2s
  rtad watch --plain | grep 500
  rtad watch --metrics-addr :9464`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), watchOptions{
			Flags:       watchFlags,
			Plain:       watchPlain,
			MetricsAddr: watchMetricsAddr,
		})
	},
}

// fetchCmd fetches one table once
var fetchCmd = &cobra.Command{
	Use:   "fetch <table>",
	Short: "Fetch a table once and print it",
	Long: `Fetch one RTAD table and print it, sorted by the remembered sort order.

Tables: lastb (failed logins), proxy (proxy errors).

Examples:
  rtad fetch lastb
  rtad fetch proxy --last-id 1200
  rtad fetch proxy --json | jq '.data.rows[].cells'`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"lastb", "proxy"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fetchOptions{
			Table: args[0],
			URL:   fetchURL,
			JSON:  fetchJSON,
		}
		if cmd.Flags().Changed("last-id") {
			opts.LastID = &fetchLastID
		}
		return fetchCommand(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
	},
}

// sortCmd shows or changes a table's remembered sort order
var sortCmd = &cobra.Command{
	Use:   "sort <table> [column [asc|desc]]",
	Short: "Show or set a table's sort order",
	Long: `Show or change the sort order remembered for a table.

The column is a 0-based index or a column title. Without a direction the
column toggles like a header click: a new column sorts ascending, the
current column flips.

Examples:
  rtad sort proxy
  rtad sort proxy Code desc
  rtad sort lastb 0
  rtad sort lastb --clear`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sortCommand(cmd.OutOrStdout(), args, sortClear)
	},
}

// stateCmd groups the durable state subcommands
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset stored sort state",
	Long: `Inspect or reset the sort state rtad keeps between runs.

The state file defaults to $XDG_STATE_HOME/rtad/state.json and can be moved
with state.path in .rtad.yaml.`,
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored sort state",
	Long: `Print the sort state stored for every table.

Examples:
  rtad state show
  rtad state show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stateShowCommand(cmd.OutOrStdout(), stateShowJSON)
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored sort state",
	Long: `Delete the state file, returning every table to arrival order.

Examples:
  rtad state reset
  rtad state reset --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stateResetCommand(cmd.OutOrStdout(), stateResetYes)
	},
}

// initCmd creates a new .rtad.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .rtad.yaml configuration",
	Long: `Create a .rtad.yaml file in the current directory.

Prompts for the backend URL, poll interval and tables unless
--non-interactive is given or stdin is not a terminal.

Examples:
  rtad init
  rtad init --url http://metrics.lan:5000 --non-interactive
  rtad init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			URL:            initURLFlag,
			Interval:       initIntervalFlag,
			Tables:         initTablesFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteract || !stdinIsTerminal(),
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for rtad.

Examples:
  # Bash
  rtad completion bash > /etc/bash_completion.d/rtad

  # Zsh
  rtad completion zsh > "${fpath[1]}/_rtad"

  # Fish
  rtad completion fish > ~/.config/fish/completions/rtad.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrInput,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// watch command flags
	AddFeedFlags(watchCmd, &watchFlags)
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print new rows as lines instead of the dashboard")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g., :9464)")

	// fetch command flags
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "backend base URL (overrides server.base_url)")
	fetchCmd.Flags().Int64Var(&fetchLastID, "last-id", 0, "only fetch rows with a greater id")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output JSON")

	// sort command flags
	sortCmd.Flags().BoolVar(&sortClear, "clear", false, "forget the sort order (arrival order)")

	// state subcommands
	stateShowCmd.Flags().BoolVar(&stateShowJSON, "json", false, "output JSON")
	stateResetCmd.Flags().BoolVarP(&stateResetYes, "yes", "y", false, "skip the confirmation prompt")
	stateCmd.AddCommand(stateShowCmd, stateResetCmd)

	// init command flags
	initCmd.Flags().StringVar(&initURLFlag, "url", "", "backend base URL")
	initCmd.Flags().StringVar(&initIntervalFlag, "interval", "", "poll interval (e.g., 5s)")
	initCmd.Flags().StringVar(&initTablesFlag, "tables", "", "comma-separated tables (lastb,proxy)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteract, "non-interactive", false, "skip prompts and use flags or defaults")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
