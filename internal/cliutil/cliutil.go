// Package cliutil provides the colorized, tagged status logging and
// the fatal-error helper shared by the three cmd/ entry points.
package cliutil

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
)

// Logger wraps a tagged, colorized status logger for one party.
type Logger struct {
	tag string
	l   *log.Logger
	use bool
}

// NewLogger returns a Logger prefixed with tag (e.g. "QUERY", "HOLDER",
// "AGG", "RESULT"). colorOn selects whether status lines are colorized.
func NewLogger(tag string, colorOn bool) *Logger {
	return &Logger{tag: tag, l: log.New(os.Stdout, "", log.LstdFlags), use: colorOn}
}

// Info logs a status line, colorized green when color is on.
func (lg *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if lg.use {
		color.Set(color.FgGreen, color.Bold)
		defer color.Unset()
	}
	lg.l.Printf("{%s} %s\n", lg.tag, msg)
}

// Result logs a final-answer line, colorized cyan when color is on.
func (lg *Logger) Result(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if lg.use {
		color.Set(color.FgCyan, color.Bold)
		defer color.Unset()
	}
	lg.l.Printf("{%s} %s\n", lg.tag, msg)
}

// Std returns the underlying *log.Logger, for packages (like holder's
// diagnostic logging) that only need a plain log.Logger.
func (lg *Logger) Std() *log.Logger { return lg.l }

// Check exits the process with status 1 if err is non-nil, logging it
// first. It is used only at the top of cmd/ main functions — library
// code always returns errors instead.
func Check(err error) {
	if err != nil {
		log.Printf("fatal: %v\n", err)
		os.Exit(1)
	}
}
