// Package system holds process-level plumbing shared by the CLI and the
// console: the application logger and the external command runner.
package system

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for CLI output. It prints to
// stderr with timestamps; the TUI never writes to stdout outside its
// alternate screen.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "hoards",
})
