package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output.
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly output. Warnings go
// through here so non-fatal conditions (like ambiguous annotations) are
// reported without aborting the run.
type DiagnosticSystem struct {
	level    DiagnosticLevel
	showTime bool
	output   io.Writer
	errorOut io.Writer
	warnings int
}

// NewDiagnosticSystem creates a diagnostic system at the given level.
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:    level,
		showTime: level >= DiagnosticVerbose,
		output:   os.Stdout,
		errorOut: os.Stderr,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors.
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output.
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

var levelColors = map[string]*color.Color{
	"ERROR":   color.New(color.FgRed),
	"WARN":    color.New(color.FgYellow),
	"INFO":    color.New(color.FgBlue),
	"SUCCESS": color.New(color.FgGreen),
	"VERBOSE": color.New(color.FgHiBlack),
	"DEBUG":   color.New(color.FgMagenta),
}

// Error outputs error messages (always shown unless silent).
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", format, args...)
	}
}

// Warn outputs warning messages and counts them for the run summary.
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.warnings++
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", format, args...)
	}
}

// Info outputs informational messages.
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", format, args...)
	}
}

// Success outputs success messages with emphasis.
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only).
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", format, args...)
	}
}

// Debug outputs debug messages (highest verbosity).
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", format, args...)
	}
}

// Section creates a prominent section header.
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s\n", title)
	}
}

// Subsection creates a subsection header.
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s:\n", title)
	}
}

// List outputs a bulleted list item.
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "- %s\n", fmt.Sprintf(format, args...))
	}
}

// Stat is one line of the run summary.
type Stat struct {
	Name  string
	Value interface{}
}

// Summary outputs a final summary with statistics, in the order given.
func (d *DiagnosticSystem) Summary(title string, stats []Stat) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s\n", title)
		for _, stat := range stats {
			fmt.Fprintf(d.output, "   %s: %v\n", stat.Name, stat.Value)
		}
		fmt.Fprintln(d.output)
	}
}

// WarningCount returns how many warnings were raised so far.
func (d *DiagnosticSystem) WarningCount() int {
	return d.warnings
}

// SetOutput redirects all output, primarily for tests.
func (d *DiagnosticSystem) SetOutput(out io.Writer) {
	d.output = out
	d.errorOut = out
}

func (d *DiagnosticSystem) writeMessage(writer io.Writer, level, format string, args ...interface{}) {
	var sb strings.Builder

	if d.showTime {
		sb.WriteString(time.Now().Format("15:04:05 "))
	}

	if c, ok := levelColors[level]; ok {
		sb.WriteString(c.Sprintf("[%s]", level))
	} else {
		fmt.Fprintf(&sb, "[%s]", level)
	}
	sb.WriteString(" ")
	sb.WriteString(fmt.Sprintf(format, args...))
	sb.WriteString("\n")

	fmt.Fprint(writer, sb.String())
}
