package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Logger writes human-readable status lines with redaction support
type Logger struct {
	out     io.Writer
	debug   bool
	noColor bool
	secrets []string
}

// New creates a logger writing to stderr. Color is disabled when noColor is set,
// NO_COLOR is present, or stderr is not a terminal.
func New(debug, noColor bool) *Logger {
	return NewWithWriter(os.Stderr, debug, noColor || !colorSupported(os.Stderr))
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer, debug, noColor bool) *Logger {
	return &Logger{
		out:     w,
		debug:   debug,
		noColor: noColor,
	}
}

func colorSupported(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Track registers values that must never appear in log output
func (l *Logger) Track(values ...string) {
	l.secrets = append(l.secrets, values...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.print(infoStyle, "✓", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.print(warnStyle, "⚠", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.print(errorStyle, "✗", format, args...)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.print(debugStyle, "[DEBUG]", format, args...)
}

func (l *Logger) print(style lipgloss.Style, marker, format string, args ...interface{}) {
	msg := Redact(fmt.Sprintf(format, args...), l.secrets)
	if !l.noColor {
		marker = style.Render(marker)
	}
	fmt.Fprintf(l.out, "%s %s\n", marker, msg)
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" {
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}
