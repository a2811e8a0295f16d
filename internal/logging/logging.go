// Package logging provides the merge engine's structured logger, grounded
// on open-platform-model-cli's internal/output package: a package-level
// *log.Logger wrapping charmbracelet/log, with a verbosity toggle and thin
// level helpers.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the package-level logger used throughout pkg/engine.
var Logger *log.Logger

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// SetVerbose switches between Info and Debug level, matching
// SetupLogging(verbose) in the grounding example.
func SetVerbose(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
}

func Debug(msg string, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { Logger.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { Logger.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
