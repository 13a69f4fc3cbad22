package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blackjack-lite/apps/server/internal/practice"
	"blackjack-lite/blackjack"
	"blackjack-lite/blackjack/bot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, practice.Service) {
	t.Helper()
	store := practice.NewMemoryService()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(store, bot.NewRegistry(), blackjack.DefaultConfig(), logger).Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string, out any) int {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	var body map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/health", &body))
	assert.Equal(t, true, body["ok"])
}

func TestBankrollEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var kelly map[string]float64
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/bankroll/kelly?bankroll=10000&edge=0.01", &kelly))
	assert.InDelta(t, 0.51, kelly["win_prob"], 1e-9)
	assert.InDelta(t, 0.02, kelly["kelly_pct"], 1e-9)
	assert.InDelta(t, 200, kelly["full_bet"], 1e-6)

	var bet map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/bankroll/bet?bankroll=10000&true_count=1.5&base_unit=20", &bet))
	assert.Equal(t, float64(80), bet["bet"])
	assert.Equal(t, float64(4), bet["units"])

	var bad map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/bankroll/bet?true_count=lots", &bad))
	assert.Contains(t, bad["error"], "true_count")

	var risk map[string]float64
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/bankroll/risk?bankroll=10000&win_rate=0&sd=1000", &risk))
	assert.Equal(t, float64(100), risk["risk_of_ruin"])
	assert.Equal(t, float64(-1), risk["bankroll_needed"], "infinite bankroll is reported as -1")
}

func TestStrategyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var resp struct {
		Basic       string `json:"basic"`
		Recommended string `json:"recommended"`
		Total       int    `json:"total"`
		Deviation   *struct {
			Name string `json:"name"`
		} `json:"deviation"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/strategy?hand=Ts,6c&upcard=Kh&true_count=0.5", &resp))
	assert.Equal(t, "hit", resp.Basic)
	assert.Equal(t, "stand", resp.Recommended)
	assert.Equal(t, 16, resp.Total)
	require.NotNil(t, resp.Deviation)
	assert.Equal(t, "16v10", resp.Deviation.Name)

	resp.Deviation = nil
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/strategy?hand=Ts,6c&upcard=Kh&true_count=-1", &resp))
	assert.Equal(t, "hit", resp.Recommended)
	assert.Nil(t, resp.Deviation)

	// 11 v 6 doubles on two cards only
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/strategy?hand=5s,6c&upcard=6h&can_double=true", &resp))
	assert.Equal(t, "double", resp.Recommended)
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/strategy?hand=2s,3c,6d&upcard=6h&can_double=true", &resp))
	assert.Equal(t, "hit", resp.Recommended)
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/strategy?hand=Ts,6c&upcard=6h&can_split=true", &resp))
	assert.Equal(t, "stand", resp.Recommended)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/strategy?hand=Ts&upcard=Kh", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/strategy?hand=Ts,6c&upcard=Zz", nil))

	var devs struct {
		Deviations []map[string]any `json:"deviations"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/strategy/deviations", &devs))
	assert.Len(t, devs.Deviations, len(blackjack.Deviations()))
}

func TestHistoryEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	_, err := store.SaveSession(ctx, practice.SessionRecord{UserID: "alice", SimulationType: "counting", HandsPlayed: 12})
	require.NoError(t, err)
	_, err = store.SaveScore(ctx, practice.ScoreRecord{UserID: "alice", SimulationType: "counting", Score: 900})
	require.NoError(t, err)

	var sessions struct {
		Rows []practice.SessionRecord `json:"rows"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/users/alice/sessions", &sessions))
	require.Len(t, sessions.Rows, 1)
	assert.Equal(t, 12, sessions.Rows[0].HandsPlayed)

	var scores struct {
		Rows []practice.ScoreRecord `json:"rows"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/users/alice/scores?limit=5", &scores))
	require.Len(t, scores.Rows, 1)
	assert.Equal(t, 900, scores.Rows[0].Score)

	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/users/bob/scores", &scores))
	assert.Empty(t, scores.Rows)
}

const splitSpec = `{
  "rules": {"deck_count": 6, "penetration": 0.75, "mode": "deviations"},
  "deck": ["8s", "6h", "8d", "Tc", "3s", "2h", "9c", "Td"],
  "actions": [
    {"hand": 0, "type": "split"},
    {"hand": 0, "type": "double"},
    {"hand": 1, "type": "stand"}
  ],
  "rng": {"seed": 42}
}`

func TestReplayEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var tape struct {
		RoundID string `json:"roundId"`
		Events  []struct {
			Type        string `json:"type"`
			EnvelopeB64 string `json:"envelopeB64"`
		} `json:"events"`
	}
	require.Equal(t, http.StatusOK, postJSON(t, srv, "/api/replay", splitSpec, &tape))
	require.NotEmpty(t, tape.Events)
	assert.Equal(t, "roundStart", tape.Events[0].Type)
	assert.Equal(t, "settle", tape.Events[len(tape.Events)-1].Type)
	for _, e := range tape.Events {
		assert.NotEmpty(t, e.EnvelopeB64)
	}

	bad := strings.Replace(splitSpec, `"split"`, `"surrender"`, 1)
	var failed struct {
		Error struct {
			StepIndex int    `json:"step_index"`
			Reason    string `json:"reason"`
		} `json:"error"`
	}
	require.Equal(t, http.StatusUnprocessableEntity, postJSON(t, srv, "/api/replay", bad, &failed))
	assert.Equal(t, "invalid_action_type", failed.Error.Reason)
	assert.Equal(t, 0, failed.Error.StepIndex)

	assert.Equal(t, http.StatusBadRequest, postJSON(t, srv, "/api/replay", "{", nil))
}

func TestSimulateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var bots struct {
		Bots []bot.Profile `json:"bots"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/api/bots", &bots))
	assert.NotEmpty(t, bots.Bots)

	var sim struct {
		Rounds int             `json:"rounds"`
		Stats  blackjack.Stats `json:"stats"`
	}
	require.Equal(t, http.StatusOK, postJSON(t, srv, "/api/simulate", `{"profile":"basic","rounds":50,"seed":4}`, &sim))
	assert.Equal(t, 50, sim.Rounds)
	assert.Equal(t, 50, sim.Stats.HandsPlayed)
	assert.Zero(t, sim.Stats.Incorrect, "the basic profile plays the basic-mode recommendation")

	assert.Equal(t, http.StatusNotFound, postJSON(t, srv, "/api/simulate", `{"profile":"nobody","rounds":5}`, nil))
	assert.Equal(t, http.StatusBadRequest, postJSON(t, srv, "/api/simulate", `{"profile":"basic","rounds":0}`, nil))
}
