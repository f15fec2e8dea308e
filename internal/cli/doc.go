// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates the positional file argument and ambient flags into the
// application's Config.
package cli
