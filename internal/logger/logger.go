// Package logger provides verbose logging for the DocuFlow CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to trace API calls, normalisation and storage.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. The TUI sets io.Discard while it owns the terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(false, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	write(false, "", "\n=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(false, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write(false, "[WARN] ", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	write(true, "[ERROR] ", format, args...)
}

// Component prefixes every message with a component name.
type Component string

// Debug prints a component message if verbose mode is enabled.
func (c Component) Debug(format string, args ...any) {
	Debug("["+string(c)+"] "+format, args...)
}

// Warn prints a component warning if verbose mode is enabled.
func (c Component) Warn(format string, args ...any) {
	Warn("["+string(c)+"] "+format, args...)
}

// Error prints a component error regardless of verbose mode.
func (c Component) Error(format string, args ...any) {
	Error("["+string(c)+"] "+format, args...)
}
