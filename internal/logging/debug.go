package logging

import (
	"fmt"
	"io"
	"os"
)

// debugOutput is where debug traces go; replaced in tests
var debugOutput io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via LT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("LT_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOutput, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(debugOutput, args...)
	}
}
