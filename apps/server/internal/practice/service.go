package practice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"blackjack-lite/blackjack"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

var ErrInvalidUser = errors.New("invalid user id")

// Service persists finished practice sessions and their scores. Callers treat it as a
// sink: nothing read back from it feeds the engine.
type Service interface {
	Close() error
	SaveSession(ctx context.Context, rec SessionRecord) (SessionRecord, error)
	SaveScore(ctx context.Context, rec ScoreRecord) (ScoreRecord, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]SessionRecord, error)
	ListScores(ctx context.Context, userID string, limit int) ([]ScoreRecord, error)
}

type SessionRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	SimulationType  string    `json:"simulation_type"`
	Accuracy        float64   `json:"accuracy"`
	CorrectCount    int       `json:"correct_count"`
	IncorrectCount  int       `json:"incorrect_count"`
	HandsPlayed     int       `json:"hands_played"`
	DurationSeconds int64     `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type ScoreRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	SimulationType string    `json:"simulation_type"`
	Score          int       `json:"score"`
	CreatedAt      time.Time `json:"created_at"`
}

// Records converts an engine summary into store records. The score record is nil for
// unscored modes.
func Records(userID string, sum blackjack.SessionSummary) (SessionRecord, *ScoreRecord) {
	sess := SessionRecord{
		UserID:          userID,
		SimulationType:  string(sum.SimulationType),
		Accuracy:        sum.Accuracy,
		CorrectCount:    sum.CorrectCount,
		IncorrectCount:  sum.IncorrectCount,
		HandsPlayed:     sum.HandsPlayed,
		DurationSeconds: sum.DurationSeconds,
	}
	if sum.Score == nil {
		return sess, nil
	}
	return sess, &ScoreRecord{
		UserID:         userID,
		SimulationType: string(sum.SimulationType),
		Score:          *sum.Score,
	}
}

func prepareSession(rec SessionRecord) (SessionRecord, error) {
	rec.UserID = strings.TrimSpace(rec.UserID)
	if rec.UserID == "" {
		return rec, ErrInvalidUser
	}
	if rec.HandsPlayed < 0 || rec.CorrectCount < 0 || rec.IncorrectCount < 0 {
		return rec, fmt.Errorf("negative counters in session record")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec, nil
}

func prepareScore(rec ScoreRecord) (ScoreRecord, error) {
	rec.UserID = strings.TrimSpace(rec.UserID)
	if rec.UserID == "" {
		return rec, ErrInvalidUser
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

type memoryService struct {
	mu       sync.RWMutex
	sessions map[string][]SessionRecord
	scores   map[string][]ScoreRecord
}

func NewMemoryService() Service {
	return &memoryService{
		sessions: make(map[string][]SessionRecord),
		scores:   make(map[string][]ScoreRecord),
	}
}

func (s *memoryService) Close() error {
	return nil
}

func (s *memoryService) SaveSession(_ context.Context, rec SessionRecord) (SessionRecord, error) {
	rec, err := prepareSession(rec)
	if err != nil {
		return rec, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.UserID] = append(s.sessions[rec.UserID], rec)
	return rec, nil
}

func (s *memoryService) SaveScore(_ context.Context, rec ScoreRecord) (ScoreRecord, error) {
	rec, err := prepareScore(rec)
	if err != nil {
		return rec, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[rec.UserID] = append(s.scores[rec.UserID], rec)
	return rec, nil
}

func (s *memoryService) ListSessions(_ context.Context, userID string, limit int) ([]SessionRecord, error) {
	s.mu.RLock()
	list := append([]SessionRecord(nil), s.sessions[userID]...)
	s.mu.RUnlock()

	// newest first; insertion order breaks ties
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if n := normalizeLimit(limit); len(list) > n {
		list = list[:n]
	}
	return list, nil
}

func (s *memoryService) ListScores(_ context.Context, userID string, limit int) ([]ScoreRecord, error) {
	s.mu.RLock()
	list := append([]ScoreRecord(nil), s.scores[userID]...)
	s.mu.RUnlock()

	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if n := normalizeLimit(limit); len(list) > n {
		list = list[:n]
	}
	return list, nil
}
