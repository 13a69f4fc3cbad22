package practice

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteService struct {
	db *sql.DB
}

func NewSQLiteService(dbPath string) (Service, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteService{db: db}, nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS practice_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    simulation_type TEXT NOT NULL,
    accuracy REAL NOT NULL,
    correct_count INTEGER NOT NULL,
    incorrect_count INTEGER NOT NULL,
    hands_played INTEGER NOT NULL,
    duration_seconds INTEGER NOT NULL,
    created_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_practice_sessions_user ON practice_sessions(user_id, created_at_ms DESC);

CREATE TABLE IF NOT EXISTS practice_scores (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    simulation_type TEXT NOT NULL,
    score INTEGER NOT NULL,
    created_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_practice_scores_user ON practice_scores(user_id, created_at_ms DESC);
`)
	return err
}

func (s *sqliteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteService) SaveSession(ctx context.Context, rec SessionRecord) (SessionRecord, error) {
	rec, err := prepareSession(rec)
	if err != nil {
		return rec, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO practice_sessions
    (id, user_id, simulation_type, accuracy, correct_count, incorrect_count, hands_played, duration_seconds, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.UserID, rec.SimulationType, rec.Accuracy, rec.CorrectCount, rec.IncorrectCount,
		rec.HandsPlayed, rec.DurationSeconds, rec.CreatedAt.UnixMilli())
	if err != nil {
		return rec, fmt.Errorf("insert session: %w", err)
	}
	return rec, nil
}

func (s *sqliteService) SaveScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error) {
	rec, err := prepareScore(rec)
	if err != nil {
		return rec, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO practice_scores (id, user_id, simulation_type, score, created_at_ms)
VALUES (?, ?, ?, ?, ?)
`, rec.ID, rec.UserID, rec.SimulationType, rec.Score, rec.CreatedAt.UnixMilli())
	if err != nil {
		return rec, fmt.Errorf("insert score: %w", err)
	}
	return rec, nil
}

func (s *sqliteService) ListSessions(ctx context.Context, userID string, limit int) ([]SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, simulation_type, accuracy, correct_count, incorrect_count, hands_played, duration_seconds, created_at_ms
FROM practice_sessions
WHERE user_id = ?
ORDER BY created_at_ms DESC, rowid DESC
LIMIT ?
`, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SessionRecord, 0, 8)
	for rows.Next() {
		var rec SessionRecord
		var createdAtMs int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SimulationType, &rec.Accuracy, &rec.CorrectCount,
			&rec.IncorrectCount, &rec.HandsPlayed, &rec.DurationSeconds, &createdAtMs); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *sqliteService) ListScores(ctx context.Context, userID string, limit int) ([]ScoreRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, simulation_type, score, created_at_ms
FROM practice_scores
WHERE user_id = ?
ORDER BY created_at_ms DESC, rowid DESC
LIMIT ?
`, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ScoreRecord, 0, 8)
	for rows.Next() {
		var rec ScoreRecord
		var createdAtMs int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SimulationType, &rec.Score, &createdAtMs); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(createdAtMs).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
