package leads

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/screening/internal/models"
)

// Lead is a stored summary with its row id
type Lead struct {
	ID int64
	models.Summary
	RecordedAt time.Time
}

// SQLiteStore keeps leads in a SQLite database
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens or creates the database at dbPath and applies migrations.
// Use ":memory:" for a throwaway store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases from splitting per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return store, nil
}

// execWithRetry retries "database is locked" failures with exponential backoff
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record implements Sink
func (s *SQLiteStore) Record(ctx context.Context, sum models.Summary) error {
	if err := validate(sum); err != nil {
		return err
	}

	completedAt := sum.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	query := `INSERT INTO leads
		(session_id, assessment_type, score, max_score, severity, result_text, priority, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		sum.SessionID,
		sum.AssessmentType,
		sum.Score,
		sum.MaxScore,
		sum.Severity,
		sum.ResultText,
		sum.Priority,
		completedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// List returns the most recent leads first. A limit of 0 returns all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Lead, error) {
	query := `SELECT id, session_id, assessment_type, score, max_score, severity, result_text, priority, completed_at, recorded_at
		FROM leads
		ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var l Lead
		var sessionID, resultText sql.NullString
		if err := rows.Scan(
			&l.ID,
			&sessionID,
			&l.AssessmentType,
			&l.Score,
			&l.MaxScore,
			&l.Severity,
			&resultText,
			&l.Priority,
			&l.CompletedAt,
			&l.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		l.SessionID = sessionID.String
		l.ResultText = resultText.String
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return out, nil
}

// CountPriority returns how many stored leads asked for priority scheduling
func (s *SQLiteStore) CountPriority(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads WHERE priority = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count priority leads: %w", err)
	}
	return n, nil
}
