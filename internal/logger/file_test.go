package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/screening/internal/models"
)

func sampleSummary(priority bool) models.Summary {
	return models.Summary{
		SessionID:      "abc-123",
		AssessmentType: "substance_use",
		Score:          18,
		MaxScore:       24,
		Severity:       "severe",
		ResultText:     "Severe substance use concerns (score 18 of 24)",
		Priority:       priority,
		CompletedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewFileLogger_CreatesLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(dir, "info")
	require.NoError(t, err)
	defer fl.Close()

	assert.DirExists(t, filepath.Join(dir, "sessions"))
	assert.FileExists(t, fl.RunFile())

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.RunFile()), target)
}

func TestFileLogger_LevelFiltering(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "warn")
	require.NoError(t, err)
	fl.now = func() time.Time { return time.Date(2026, 1, 1, 8, 15, 0, 0, time.UTC) }

	fl.LogDebug("hidden debug")
	fl.LogInfo("hidden info")
	fl.LogWarn("shown warning")
	fl.LogError("shown error")
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "=== Screening Run Log ===")
	assert.NotContains(t, content, "hidden")
	assert.Contains(t, content, "[08:15:00] [WARN] shown warning")
	assert.Contains(t, content, "[08:15:00] [ERROR] shown error")
}

func TestFileLogger_LogVerdictWritesSessionFile(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLogger(dir, "info")
	require.NoError(t, err)

	fl.LogVerdict(sampleSummary(true), models.RiskFlags{WithdrawalRisk: true, PriorityOutreach: true})
	require.NoError(t, fl.Close())

	run, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	assert.Contains(t, string(run), "session abc-123 scored 18/24 (severe), priority outreach flags: withdrawal_risk, priority_outreach")

	session, err := os.ReadFile(filepath.Join(dir, "sessions", "session-abc-123.log"))
	require.NoError(t, err)
	assert.Contains(t, string(session), "Severity: severe")
	assert.Contains(t, string(session), "Priority: true")
	assert.Contains(t, string(session), "Flags: withdrawal_risk, priority_outreach")
	assert.Contains(t, string(session), "Completed at: 2026-03-01T09:30:00Z")
}

func TestFileLogger_WritesAfterCloseAreDropped(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	require.NoError(t, err)
	require.NoError(t, fl.Close())

	assert.NotPanics(t, func() { fl.LogInfo("late") })
	assert.NoError(t, fl.Close(), "second close is a no-op")
}

func TestMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	m := MultiLogger{NewConsoleLogger(&a, "trace"), NewConsoleLogger(&b, "info")}

	m.LogTrace("config loaded")
	m.LogSessionStart("s1", "substance_use", 8)
	m.LogVerdict(sampleSummary(false), models.RiskFlags{})
	m.LogLeadRecorded(sampleSummary(false), "leads.db")

	assert.Contains(t, a.String(), "[TRACE] config loaded")
	assert.NotContains(t, b.String(), "config loaded")
	assert.Contains(t, a.String(), "session s1 started")
	assert.NotContains(t, b.String(), "session s1 started", "debug line filtered at info")
	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "scored 18/24 (severe)")
		assert.Equal(t, 1, strings.Count(out, "recorded to leads.db"))
	}
}
