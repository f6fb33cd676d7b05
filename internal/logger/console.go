// Package logger provides leveled console logging for the screening CLI.
//
// Log lines go to a writer, normally stderr, so that stdout carries only the
// assessment itself. The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/screening/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the logging surface used by the commands
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSessionStart(sessionID, assessment string, questions int)
	LogVerdict(summary models.Summary, flags models.RiskFlags)
	LogLeadRecorded(summary models.Summary, sink string)
}

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// Messages below the configured level are dropped.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// An empty or unknown logLevel defaults to "info".
// Color is enabled when the writer is a terminal and NO_COLOR is not set.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: IsTerminal(writer),
		now:         time.Now,
	}
}

// IsTerminal reports whether w is a color-capable terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel lowercases and validates a level, defaulting to "info"
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelValues[normalized]; ok {
		return normalized
	}
	return "info"
}

var levelValues = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// ValidLevel reports whether level is one of trace, debug, info, warn, error
func ValidLevel(level string) bool {
	_, ok := levelValues[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return levelValues[messageLevel] >= levelValues[cl.logLevel]
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) { cl.logWithLevel("TRACE", message) }

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) { cl.logWithLevel("DEBUG", message) }

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) { cl.logWithLevel("INFO", message) }

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) { cl.logWithLevel("WARN", message) }

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) { cl.logWithLevel("ERROR", message) }

// LogSessionStart logs the beginning of an assessment session at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] session <id> started: <assessment> (<n> questions)"
func (cl *ConsoleLogger) LogSessionStart(sessionID, assessment string, questions int) {
	cl.logWithLevel("DEBUG", fmt.Sprintf("session %s started: %s (%d questions)", sessionID, assessment, questions))
}

// LogVerdict logs the scored outcome at INFO level, highlighting priority outreach.
// Active risk flags are appended as "flags: a, b".
func (cl *ConsoleLogger) LogVerdict(summary models.Summary, flags models.RiskFlags) {
	msg := fmt.Sprintf("session %s scored %d/%d (%s)", summary.SessionID, summary.Score, summary.MaxScore, summary.Severity)
	if summary.Priority {
		priority := "priority outreach"
		if cl.colorOutput {
			priority = color.New(color.FgRed, color.Bold).Sprint(priority)
		}
		msg += ", " + priority
	}
	msg += flagSuffix(flags)
	cl.logWithLevel("INFO", msg)
}

// flagSuffix renders the active flags for a verdict log line
func flagSuffix(flags models.RiskFlags) string {
	if !flags.Any() {
		return ""
	}
	return " flags: " + flagList(flags)
}

func flagList(flags models.RiskFlags) string {
	active := flags.Active()
	names := make([]string, len(active))
	for i, f := range active {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// LogLeadRecorded logs a successful handoff to a lead sink at INFO level
func (cl *ConsoleLogger) LogLeadRecorded(summary models.Summary, sink string) {
	cl.logWithLevel("INFO", fmt.Sprintf("lead for session %s recorded to %s", summary.SessionID, sink))
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

func colorLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}
