package practice

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type postgresService struct {
	db *sql.DB
}

func NewPostgresService(dsn string) (Service, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensurePostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &postgresService{db: db}, nil
}

func ensurePostgresSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS practice_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    simulation_type TEXT NOT NULL,
    accuracy DOUBLE PRECISION NOT NULL,
    correct_count INTEGER NOT NULL,
    incorrect_count INTEGER NOT NULL,
    hands_played INTEGER NOT NULL,
    duration_seconds BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_practice_sessions_user ON practice_sessions(user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS practice_scores (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    simulation_type TEXT NOT NULL,
    score INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_practice_scores_user ON practice_scores(user_id, created_at DESC);
`)
	if err != nil {
		return fmt.Errorf("ensure practice schema: %w", err)
	}
	return nil
}

func (s *postgresService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *postgresService) SaveSession(ctx context.Context, rec SessionRecord) (SessionRecord, error) {
	rec, err := prepareSession(rec)
	if err != nil {
		return rec, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO practice_sessions
    (id, user_id, simulation_type, accuracy, correct_count, incorrect_count, hands_played, duration_seconds, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, rec.ID, rec.UserID, rec.SimulationType, rec.Accuracy, rec.CorrectCount, rec.IncorrectCount,
		rec.HandsPlayed, rec.DurationSeconds, rec.CreatedAt)
	if err != nil {
		return rec, fmt.Errorf("insert session: %w", err)
	}
	return rec, nil
}

func (s *postgresService) SaveScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error) {
	rec, err := prepareScore(rec)
	if err != nil {
		return rec, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO practice_scores (id, user_id, simulation_type, score, created_at)
VALUES ($1, $2, $3, $4, $5)
`, rec.ID, rec.UserID, rec.SimulationType, rec.Score, rec.CreatedAt)
	if err != nil {
		return rec, fmt.Errorf("insert score: %w", err)
	}
	return rec, nil
}

func (s *postgresService) ListSessions(ctx context.Context, userID string, limit int) ([]SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, simulation_type, accuracy, correct_count, incorrect_count, hands_played, duration_seconds, created_at
FROM practice_sessions
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SessionRecord, 0, 8)
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SimulationType, &rec.Accuracy, &rec.CorrectCount,
			&rec.IncorrectCount, &rec.HandsPlayed, &rec.DurationSeconds, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *postgresService) ListScores(ctx context.Context, userID string, limit int) ([]ScoreRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, simulation_type, score, created_at
FROM practice_scores
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, userID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ScoreRecord, 0, 8)
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SimulationType, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
