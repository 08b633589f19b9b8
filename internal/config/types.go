package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Table names accepted in the `tables` list.
const (
	TableLastb = "lastb"
	TableProxy = "proxy"
)

// KnownTables lists every table the backend exposes, in display order.
var KnownTables = []string{TableLastb, TableProxy}

// MinPollInterval is the shortest allowed poll interval.
const MinPollInterval = 500 * time.Millisecond

// Config represents the complete .rtad.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Poll    PollConfig    `yaml:"poll" mapstructure:"poll"`
	Tables  []string      `yaml:"tables" mapstructure:"tables"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	State   StateConfig   `yaml:"state" mapstructure:"state"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ServerConfig describes the metrics backend that serves the RTAD tables.
type ServerConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:5000.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single fetch. Zero disables the timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are sent with every request (reverse-proxy auth and the like).
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// PollConfig controls the refresh loop.
type PollConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DisplayConfig controls how tables are rendered and ordered.
type DisplayConfig struct {
	// Locale selects the collation used for text columns (BCP 47 tag).
	Locale string `yaml:"locale" mapstructure:"locale"`

	// MaxRows caps the rows retained per table; oldest rows are evicted first.
	MaxRows int `yaml:"max_rows" mapstructure:"max_rows"`
}

// StateConfig controls where durable client state (sort order) lives.
type StateConfig struct {
	// Path of the JSON state file. Empty uses $XDG_STATE_HOME/rtad/state.json.
	Path string `yaml:"path" mapstructure:"path"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	// Addr to serve /metrics on, e.g. ":9464". Empty disables the endpoint.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 30 * time.Second,
			Headers: make(map[string]string),
		},
		Poll: PollConfig{
			Interval: 5 * time.Second,
		},
		Tables: []string{TableLastb, TableProxy},
		Display: DisplayConfig{
			Locale:  "en",
			MaxRows: 1000,
		},
	}
}
