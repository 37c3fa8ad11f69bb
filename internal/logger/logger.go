package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.

// Info logs informational messages in green color.
// Green is typically used for success or normal info to catch user attention pleasantly.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Magenta is bright and stands out, signaling caution without being too alarming.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
// Red is commonly associated with errors or critical problems to draw immediate attention.
var Error = color.New(color.FgRed).PrintfFunc()

// Verbose logs progress messages in the default terminal color when the user asked
// for them with `-v`/`--verbose`, otherwise it is a no-op.
// Assigned dynamically during Init based on the verbose flag.
var Verbose func(format string, a ...any)

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on debug flag.
// When debug logging is disabled, Debug is assigned to an empty function that does nothing.
var Debug func(format string, a ...any)

// Init initializes the logger package, enabling or disabling verbose and debug output.
// Parameters:
// - enableVerbose: boolean flag to turn progress messages on or off.
// - enableDebug: boolean flag to turn debug messages on or off (implies verbose).
// When disabled, the corresponding function is a no-op that silently ignores its logs.
func Init(enableVerbose, enableDebug bool) {
	noop := func(format string, a ...any) {}

	if enableVerbose || enableDebug {
		// Verbose output stays uncolored so it reads as plain program narration.
		Verbose = color.New().PrintfFunc()
	} else {
		Verbose = noop
	}

	if enableDebug {
		// Assign Debug to print cyan-colored debug messages.
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		// Assign Debug to a no-op function that ignores all debug logs to avoid runtime overhead.
		Debug = noop
	}
}

// init makes the dynamic log levels safe to call even if Init never runs,
// e.g. when a package under test logs before any CLI flags are parsed.
func init() {
	Init(false, false)
}
