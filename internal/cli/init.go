package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/rtad/internal/config"
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/ui"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	URL            string // Pre-specified backend URL
	Interval       string // Pre-specified poll interval
	Tables         string // Pre-specified comma-separated tables
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags or defaults
}

// initFile is the YAML written by rtad init. Durations are kept as strings
// so the file stays readable.
type initFile struct {
	Version int         `yaml:"version"`
	Server  initServer  `yaml:"server"`
	Poll    initPoll    `yaml:"poll"`
	Tables  []string    `yaml:"tables"`
	Display initDisplay `yaml:"display"`
}

type initServer struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type initPoll struct {
	Interval string `yaml:"interval"`
}

type initDisplay struct {
	Locale  string `yaml:"locale"`
	MaxRows int    `yaml:"max_rows"`
}

const initHeader = `# rtad configuration
# Run 'rtad watch' for the live dashboard, 'rtad fetch <table>' for a one-off.
# Every key can be overridden with RTAD_<SECTION>_<KEY>, e.g. RTAD_SERVER_BASE_URL.

`

// Init creates a new .rtad.yaml configuration file in the current directory.
func Init(out io.Writer, opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	proceed, err := checkExistingConfig(out, configPath, opts)
	if err != nil || !proceed {
		return err
	}

	defaults := config.DefaultConfig()
	values := initValues{
		URL:      firstNonEmpty(opts.URL, defaults.Server.BaseURL),
		Interval: firstNonEmpty(opts.Interval, defaults.Poll.Interval.String()),
		Tables:   defaults.Tables,
	}
	if opts.Tables != "" {
		tables, err := ParseTablesFlag(opts.Tables)
		if err != nil {
			return err
		}
		values.Tables = tables
	}

	if !opts.NonInteractive {
		if err := promptInitValues(&values); err != nil {
			return err
		}
	}

	if err := validateBaseURL(values.URL); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("'%s' is not a usable backend URL", values.URL),
			"Use something like http://localhost:5000")
	}
	if _, err := ParseInterval(values.Interval); err != nil {
		return err
	}

	file := initFile{
		Version: config.CurrentConfigVersion,
		Server: initServer{
			BaseURL: strings.TrimRight(values.URL, "/"),
			Timeout: defaults.Server.Timeout.String(),
		},
		Poll:   initPoll{Interval: values.Interval},
		Tables: values.Tables,
		Display: initDisplay{
			Locale:  defaults.Display.Locale,
			MaxRows: defaults.Display.MaxRows,
		},
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.WriteFile(configPath, []byte(initHeader+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  rtad fetch lastb  - Check the backend answers")
	fmt.Fprintln(out, "  rtad watch        - Open the live dashboard")
	return nil
}

// initValues are the answers collected by the prompts.
type initValues struct {
	URL      string
	Interval string
	Tables   []string
}

// checkExistingConfig decides whether Init may write configPath.
func checkExistingConfig(out io.Writer, configPath string, opts InitOptions) (bool, error) {
	if _, err := os.Stat(configPath); err != nil || opts.Overwrite {
		return true, nil
	}

	if opts.NonInteractive {
		return false, errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", configPath),
			"Use --force to overwrite")
	}

	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	if !overwrite {
		fmt.Fprintln(out, "Cancelled.")
		return false, nil
	}
	return true, nil
}

func promptInitValues(v *initValues) error {
	tableOptions := make([]huh.Option[string], len(config.KnownTables))
	for i, t := range config.KnownTables {
		tableOptions[i] = huh.NewOption(t, t)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Root of the metrics backend serving /rtad_lastb and /rtad_proxy").
				Placeholder("http://localhost:5000").
				Value(&v.URL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Poll interval").
				Description(fmt.Sprintf("How often each table is fetched (minimum %s)", config.MinPollInterval)).
				Placeholder("5s").
				Value(&v.Interval).
				Validate(func(s string) error {
					if _, err := ParseInterval(s); err != nil {
						return fmt.Errorf("use a duration such as 5s, at least %s", config.MinPollInterval)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tables").
				Options(tableOptions...).
				Value(&v.Tables).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("pick at least one table")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive")
	}
	return nil
}

// validateBaseURL accepts absolute http(s) URLs with a host.
func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
