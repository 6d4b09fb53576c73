// Package logger provides verbose logging for the ReFast search pipeline.
// When verbose mode is enabled, debug messages are printed to stderr to
// help users understand query fan-out, session lifecycle, and ranking.
// When a log file is configured, output additionally goes to a rolling
// file so the pipeline can be inspected after a headless run.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	logFile *lumberjack.Logger
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

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetFile routes log output to a size-capped rolling file as well as the
// current writer. Passing an empty path removes the file output.
func SetFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close() //nolint:errcheck
		logFile = nil
	}
	if path == "" {
		return
	}
	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
}

// writer returns the effective output. Callers must hold mu.
func writer() io.Writer {
	if logFile == nil {
		return output
	}
	return io.MultiWriter(output, logFile)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(writer(), "[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(writer(), "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(writer(), "[INFO] "+format+"\n", args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(writer(), "[WARN] "+format+"\n", args...)
	}
}
