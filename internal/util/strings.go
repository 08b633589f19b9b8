// Package util provides small formatting helpers shared by the CLI and the
// dashboard.
package util

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// JoinOrNone joins strings with ", " or returns "(none)" for empty slices.
func JoinOrNone(items []string) string {
	return JoinOrDefault(items, "(none)")
}

// JoinOrDefault joins strings with ", " or returns the default value for empty slices.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// CountNoun renders "1 row" or "1,234 rows".
func CountNoun(count int, singular, plural string) string {
	return humanize.Comma(int64(count)) + " " + Pluralize(count, singular, plural)
}
