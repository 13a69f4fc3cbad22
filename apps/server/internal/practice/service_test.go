package practice

import (
	"context"
	"errors"
	"testing"
	"time"

	"blackjack-lite/apps/server/internal/config"
	"blackjack-lite/blackjack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func services(t *testing.T) map[string]Service {
	t.Helper()
	lite, err := NewSQLiteService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })
	return map[string]Service{
		"memory": NewMemoryService(),
		"sqlite": lite,
	}
}

func TestService_SessionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for name, svc := range services(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				saved, err := svc.SaveSession(ctx, SessionRecord{
					UserID:         "alice",
					SimulationType: "counting",
					Accuracy:       float64(80 + i),
					CorrectCount:   8 + i,
					IncorrectCount: 2,
					HandsPlayed:    10 + i,
					CreatedAt:      base.Add(time.Duration(i) * time.Minute),
				})
				require.NoError(t, err)
				assert.NotEmpty(t, saved.ID)
			}
			_, err := svc.SaveSession(ctx, SessionRecord{UserID: "bob", SimulationType: "basic_strategy", HandsPlayed: 1})
			require.NoError(t, err)

			list, err := svc.ListSessions(ctx, "alice", 2)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, 12, list[0].HandsPlayed, "newest first")
			assert.Equal(t, 11, list[1].HandsPlayed)
			assert.True(t, list[0].CreatedAt.Equal(base.Add(2*time.Minute)))

			none, err := svc.ListSessions(ctx, "carol", 0)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestService_Scores(t *testing.T) {
	ctx := context.Background()
	for name, svc := range services(t) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SaveScore(ctx, ScoreRecord{UserID: "alice", SimulationType: "counting", Score: 450})
			require.NoError(t, err)
			_, err = svc.SaveScore(ctx, ScoreRecord{UserID: "alice", SimulationType: "deviations", Score: -50})
			require.NoError(t, err)

			list, err := svc.ListScores(ctx, "alice", 10)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.ElementsMatch(t, []int{450, -50}, []int{list[0].Score, list[1].Score})
		})
	}
}

func TestService_RejectsMissingUser(t *testing.T) {
	ctx := context.Background()
	for name, svc := range services(t) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SaveSession(ctx, SessionRecord{UserID: "  "})
			assert.True(t, errors.Is(err, ErrInvalidUser))
			_, err = svc.SaveScore(ctx, ScoreRecord{})
			assert.True(t, errors.Is(err, ErrInvalidUser))
		})
	}
}

func TestRecords(t *testing.T) {
	score := 350
	sess, sc := Records("alice", blackjack.SessionSummary{
		SimulationType: blackjack.ModeCounting,
		Accuracy:       87.5,
		CorrectCount:   7,
		IncorrectCount: 1,
		HandsPlayed:    5,
		Score:          &score,
	})
	assert.Equal(t, "counting", sess.SimulationType)
	assert.Equal(t, 87.5, sess.Accuracy)
	require.NotNil(t, sc)
	assert.Equal(t, 350, sc.Score)

	_, sc = Records("alice", blackjack.SessionSummary{SimulationType: blackjack.ModeBasic})
	assert.Nil(t, sc)
}

func TestNewServiceFromConfig(t *testing.T) {
	svc, mode, err := NewServiceFromConfig(config.Config{StoreMode: config.StoreModeMemory})
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
	assert.NoError(t, svc.Close())

	_, _, err = NewServiceFromConfig(config.Config{StoreMode: "redis"})
	assert.Error(t, err)
}
