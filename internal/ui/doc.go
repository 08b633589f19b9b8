// Package ui provides styled terminal output for rtad's one-shot commands.
//
// The live dashboard lives in package watch; this package covers what the
// plain commands print: tables of fetched rows, key/value blocks for stored
// state, a banner header, and a spinner for blocking fetches.
//
// Colors are true-color hex values. Call DisableColors for --no-color or
// when NO_COLOR is set; lipgloss then renders plain text.
package ui
