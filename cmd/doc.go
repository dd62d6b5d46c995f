// Package cmd implements the confect command line.
//
// Each subcommand parses its flags, opens the repository through
// workflows.Open and prints the workflow result with the ui formatters.
// Errors are returned to Execute, which prints them and exits non-zero.
package cmd
