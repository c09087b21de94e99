// Package iolog provides the ambient logging and fatal-error helpers used
// throughout cassis instead of ad-hoc fmt.Println/panic calls.
package iolog

import (
	"fmt"
	"os"
	"time"
)

// Verbose enables Info output. Set by the cmd package's --verbose flag.
var Verbose = false

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// LogError logs err to stderr with a timestamp prefix. It does not exit.
func LogError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] error: %v\n", timestamp(), err)
}

// ExitWithMessage logs err and terminates the process with a non-zero
// status. Used by the CLI layer for unrecoverable conditions (§7).
func ExitWithMessage(err error) {
	LogError(err)
	os.Exit(1)
}

// Warn logs a non-fatal warning.
func Warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] warning: %s\n", timestamp(), fmt.Sprintf(format, args...))
}

// Info logs an informational message, only if Verbose is set.
func Info(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] info: %s\n", timestamp(), fmt.Sprintf(format, args...))
}

// Assert panics with a formatted message if cond is false. Used for
// internal invariants that must never be violated (§7 propagation policy).
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
