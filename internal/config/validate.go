package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/rtad/internal/errors"
	"golang.org/x/text/language"
)

// Validate checks the config for errors and returns structured error messages.
// It also normalizes cfg.Tables: names are lowercased, and blanks and
// duplicates are dropped.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but rtad only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade rtad to the latest release.")
	}

	if err := validateServer(cfg.Server); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'server' section in your .rtad.yaml.")
	}

	if cfg.Poll.Interval < MinPollInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %s is too short", cfg.Poll.Interval),
			fmt.Sprintf("Minimum interval is %s to avoid hammering the backend.", MinPollInterval))
	}

	tables, err := ParseTables(cfg.Tables)
	if err != nil {
		return err
	}
	cfg.Tables = tables

	if _, err := language.Parse(cfg.Display.Locale); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unknown display.locale %q", cfg.Display.Locale),
			"Use a BCP 47 tag such as en, de or pt-BR.")
	}

	if cfg.Display.MaxRows < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("display.max_rows must be positive, got %d", cfg.Display.MaxRows),
			"The backend keeps 1000 rows per table; 1000 is a good value.")
	}

	return nil
}

func validateServer(s ServerConfig) error {
	if s.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url has no host")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}
	return nil
}

// ParseTables normalizes and validates a list of table names, dropping
// duplicates while keeping the first occurrence's position.
func ParseTables(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No tables selected",
			fmt.Sprintf("Pick at least one of: %s", strings.Join(KnownTables, ", ")))
	}

	seen := make(map[string]bool)
	var out []string
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		if !isKnownTable(name) {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown table %q", raw),
				fmt.Sprintf("Known tables: %s", strings.Join(KnownTables, ", ")))
		}
		seen[name] = true
		out = append(out, name)
	}

	if len(out) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No tables selected",
			fmt.Sprintf("Pick at least one of: %s", strings.Join(KnownTables, ", ")))
	}
	return out, nil
}

func isKnownTable(name string) bool {
	for _, t := range KnownTables {
		if t == name {
			return true
		}
	}
	return false
}
