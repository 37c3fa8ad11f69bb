package main

import (
	"os"

	"github.com/mclang/kiho-wt-puncher/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing
// and execution, and turns the outcome into the process exit code.
//
// kiho-wt-puncher is a command-line client for the Kiho v3 worktime API that:
//   - Records LOGIN/LOGOUT punches against the user's timesheet, pre-checking
//     the latest punch on the server so it never creates two consecutive
//     punches of the same kind
//   - Queries the latest N punch lines, optionally filtered by punch type
//   - Bootstraps a sample TOML configuration file on first run and stops with
//     a distinct exit code so the user can fill in their API key
//
// Error handling strategy:
//   - The API client classifies every failure (rejected, unavailable,
//     protocol, invalid argument) and never retries; a failed punch must be
//     re-invoked explicitly so the user always knows the true outcome
//   - Sequence violations (already started / not started) are detected before
//     any write and reported as plain user errors
//
// Exit codes: 0 on success, 1 on any failure, 2 when a sample configuration
// file was just created and needs to be edited.
func main() {
	os.Exit(cmd.Execute())
}
