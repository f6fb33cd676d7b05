package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/screening/internal/models"
)

// FileLogger writes log lines to a timestamped run log under logDir and keeps
// a latest.log symlink pointing at it. Each scored session also gets a short
// summary file in the sessions/ subdirectory. Individual answers are never
// written. It is safe for concurrent use.
type FileLogger struct {
	logDir      string
	runLog      *os.File
	runFile     string
	sessionsDir string
	logLevel    string
	mu          sync.Mutex
	now         func() time.Time
}

// NewFileLogger creates the log directory if needed, opens a new run log,
// and repoints latest.log at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	sessionsDir := filepath.Join(logDir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	now := time.Now()
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", now.Format("20060102-150405.000")))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:      logDir,
		runLog:      file,
		runFile:     runFile,
		sessionsDir: sessionsDir,
		logLevel:    normalizeLogLevel(logLevel),
		now:         time.Now,
	}

	fl.writeRunLog("=== Screening Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", now.Format(time.RFC3339)))

	return fl, nil
}

// RunFile returns the path of the current run log
func (fl *FileLogger) RunFile() string { return fl.runFile }

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return levelValues[messageLevel] >= levelValues[fl.logLevel]
}

// LogTrace logs a trace-level message.
func (fl *FileLogger) LogTrace(message string) { fl.logWithLevel("TRACE", message) }

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) { fl.logWithLevel("DEBUG", message) }

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) { fl.logWithLevel("INFO", message) }

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) { fl.logWithLevel("WARN", message) }

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) { fl.logWithLevel("ERROR", message) }

// LogSessionStart records the start of a session at DEBUG level
func (fl *FileLogger) LogSessionStart(sessionID, assessment string, questions int) {
	fl.logWithLevel("DEBUG", fmt.Sprintf("session %s started: %s (%d questions)", sessionID, assessment, questions))
}

// LogVerdict records the outcome in the run log and writes
// sessions/session-<id>.log with the handoff summary.
func (fl *FileLogger) LogVerdict(summary models.Summary, flags models.RiskFlags) {
	msg := fmt.Sprintf("session %s scored %d/%d (%s)", summary.SessionID, summary.Score, summary.MaxScore, summary.Severity)
	if summary.Priority {
		msg += ", priority outreach"
	}
	fl.logWithLevel("INFO", msg+flagSuffix(flags))

	if err := fl.writeSessionLog(summary, flags); err != nil {
		fl.logWithLevel("WARN", err.Error())
	}
}

// LogLeadRecorded records a successful lead handoff at INFO level
func (fl *FileLogger) LogLeadRecorded(summary models.Summary, sink string) {
	fl.logWithLevel("INFO", fmt.Sprintf("lead for session %s recorded to %s", summary.SessionID, sink))
}

func (fl *FileLogger) writeSessionLog(summary models.Summary, flags models.RiskFlags) error {
	if summary.SessionID == "" {
		return nil
	}

	path := filepath.Join(fl.sessionsDir, fmt.Sprintf("session-%s.log", summary.SessionID))
	var b strings.Builder
	fmt.Fprintf(&b, "=== Session %s ===\n", summary.SessionID)
	fmt.Fprintf(&b, "Assessment: %s\n", summary.AssessmentType)
	fmt.Fprintf(&b, "Score: %d / %d\n", summary.Score, summary.MaxScore)
	fmt.Fprintf(&b, "Severity: %s\n", summary.Severity)
	fmt.Fprintf(&b, "Priority: %t\n", summary.Priority)
	fmt.Fprintf(&b, "Result: %s\n", summary.ResultText)
	if flags.Any() {
		fmt.Fprintf(&b, "Flags: %s\n", flagList(flags))
	}
	if !summary.CompletedAt.IsZero() {
		fmt.Fprintf(&b, "Completed at: %s\n", summary.CompletedAt.Format(time.RFC3339))
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", fl.now().Format("15:04:05"), level, message))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}

// MultiLogger fans every call out to each wrapped logger in order
type MultiLogger []Logger

func (m MultiLogger) LogTrace(message string) {
	for _, l := range m {
		l.LogTrace(message)
	}
}

func (m MultiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m MultiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m MultiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m MultiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

func (m MultiLogger) LogSessionStart(sessionID, assessment string, questions int) {
	for _, l := range m {
		l.LogSessionStart(sessionID, assessment, questions)
	}
}

func (m MultiLogger) LogVerdict(summary models.Summary, flags models.RiskFlags) {
	for _, l := range m {
		l.LogVerdict(summary, flags)
	}
}

func (m MultiLogger) LogLeadRecorded(summary models.Summary, sink string) {
	for _, l := range m {
		l.LogLeadRecorded(summary, sink)
	}
}
