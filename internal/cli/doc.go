// Package cli implements the rtad command-line interface.
//
// Each Cobra command is a thin shell around a *Command function that takes
// its writers and options explicitly, so the commands can be driven from
// tests without a terminal.
//
// # Command Structure
//
//	rtad watch              - Live dashboard (or line stream when piped)
//	rtad fetch <table>      - Fetch a table once and print it
//	rtad sort <table> ...   - Show, set, toggle or clear a table's sort
//	rtad state show|reset   - Inspect or forget stored sort state
//	rtad init               - Create .rtad.yaml
//	rtad version            - Build information
//	rtad completion <shell> - Shell completion script
//
// # Configuration
//
// Every command loads .rtad.yaml through config.LoadOrDefault, applies its
// flag overrides (see FeedFlags) and validates the result before touching
// the network or the state file.
//
// # Output
//
// Human output is styled with package ui. Commands with --json write a
// JSONEnvelope instead and switch Execute into machine mode, so failures
// are reported as JSON too.
package cli
