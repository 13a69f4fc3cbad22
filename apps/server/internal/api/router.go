// Package api serves the practice server's JSON endpoints: bankroll calculators,
// strategy lookups, session history, replays and bot simulations.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"blackjack-lite/apps/server/internal/practice"
	"blackjack-lite/bankroll"
	"blackjack-lite/blackjack"
	"blackjack-lite/blackjack/bot"
	"blackjack-lite/card"
	"blackjack-lite/replay"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxSimRounds = 100000

type Server struct {
	store  practice.Service
	bots   *bot.Registry
	rules  blackjack.Config
	logger *slog.Logger
}

func New(store practice.Service, bots *bot.Registry, rules blackjack.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if bots == nil {
		bots = bot.NewRegistry()
	}
	return &Server{store: store, bots: bots, rules: rules, logger: logger}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/bankroll/kelly", s.handleKelly)
		r.Get("/bankroll/bet", s.handleBet)
		r.Get("/bankroll/risk", s.handleRisk)

		r.Get("/strategy", s.handleStrategy)
		r.Get("/strategy/deviations", s.handleDeviations)

		r.Get("/users/{userID}/sessions", s.handleSessions)
		r.Get("/users/{userID}/scores", s.handleScores)

		r.Post("/replay", s.handleReplay)

		r.Get("/bots", s.handleBots)
		r.Post("/simulate", s.handleSimulate)
	})
	return r
}

func (s *Server) handleKelly(w http.ResponseWriter, r *http.Request) {
	q := queryFloats{r: r}
	bank := q.get("bankroll", 0)
	edge := q.get("edge", 0)
	winProb := q.get("win_prob", 0.5+edge)
	fraction := q.get("fraction", 1)
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bankroll.Kelly(bank, edge, winProb, fraction))
}

func (s *Server) handleBet(w http.ResponseWriter, r *http.Request) {
	q := queryFloats{r: r}
	bank := q.get("bankroll", 0)
	tc := q.get("true_count", 0)
	unit := q.get("base_unit", 0)
	maxBet := q.get("max_bet", 0)
	fraction := q.get("fraction", 0.5)
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bankroll.BetFromTrueCount(bank, tc, unit, maxBet, fraction))
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	q := queryFloats{r: r}
	bank := q.get("bankroll", 0)
	winRate := q.get("win_rate", 0)
	sd := q.get("sd", 0)
	hours := q.get("hours", 100)
	target := q.get("target_risk", 5)
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}
	p := bankroll.Project(bank, winRate, sd, hours, target)
	writeJSON(w, http.StatusOK, map[string]any{
		"risk_of_ruin":      finite(p.RiskOfRuin),
		"bankroll_needed":   finite(p.BankrollNeeded),
		"expected_win":      p.ExpectedWin,
		"sd":                p.SD,
		"hours":             p.Hours,
		"loss_chance":       p.LossChance1SD,
		"target_risk_pct":   target,
		"hourly_win_rate":   winRate,
		"hourly_sd":         sd,
		"starting_bankroll": bank,
	})
}

type strategyResponse struct {
	Hand        []card.Card          `json:"hand"`
	Upcard      card.Card            `json:"upcard"`
	Total       int                  `json:"total"`
	Soft        bool                 `json:"soft"`
	TrueCount   float64              `json:"true_count"`
	Basic       blackjack.Action     `json:"basic"`
	Recommended blackjack.Action     `json:"recommended"`
	Deviation   *blackjack.Deviation `json:"deviation,omitempty"`
}

// handleStrategy answers ?hand=Ts,6c&upcard=9h[&true_count=..][&can_double=..][&can_split=..].
func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	hand, err := card.ParseList(strings.Split(r.URL.Query().Get("hand"), ","))
	if err != nil || len(hand) < 2 {
		writeError(w, http.StatusBadRequest, "hand must list at least two cards, e.g. Ts,6c")
		return
	}
	up, err := card.Parse(r.URL.Query().Get("upcard"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid upcard: "+err.Error())
		return
	}
	q := queryFloats{r: r}
	tc := q.get("true_count", 0)
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err.Error())
		return
	}
	// doubles and splits only exist on the first two cards
	twoCards := len(hand) == 2
	canDouble := queryBool(r, "can_double", twoCards) && twoCards
	canSplit := queryBool(r, "can_split", blackjack.IsPair(hand)) && blackjack.IsPair(hand)

	basic := blackjack.Recommend(hand, up, canDouble, canSplit)
	v := blackjack.Evaluate(hand)
	resp := strategyResponse{
		Hand:        hand,
		Upcard:      up,
		Total:       v.Total,
		Soft:        v.Soft,
		TrueCount:   tc,
		Basic:       basic,
		Recommended: basic,
	}
	if dev, ok := blackjack.MatchDeviation(hand, up, tc, basic, canDouble, canSplit); ok {
		resp.Deviation = &dev
		resp.Recommended = dev.Action
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeviations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"deviations": blackjack.Deviations()})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	list, err := s.store.ListSessions(r.Context(), userID, queryInt(r, "limit", 0))
	if err != nil {
		s.logger.Error("[API] List sessions failed", "user", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "list sessions failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": list})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	list, err := s.store.ListScores(r.Context(), userID, queryInt(r, "limit", 0))
	if err != nil {
		s.logger.Error("[API] List scores failed", "user", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "list scores failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": list})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	var spec replay.RoundSpec
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid round spec: "+err.Error())
		return
	}
	tape, err := replay.GenerateTape(spec)
	if err != nil {
		var replayErr *replay.ReplayError
		if errors.As(err, &replayErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": replayErr})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, replay.ToWireTape(tape))
}

func (s *Server) handleBots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"bots": s.bots.All()})
}

type simulateRequest struct {
	Profile   string `json:"profile"`
	Rounds    int    `json:"rounds"`
	Seed      int64  `json:"seed"`
	DeckCount int    `json:"deck_count"`
}

type simulateResponse struct {
	Profile    string                   `json:"profile"`
	Rounds     int                      `json:"rounds"`
	Stats      blackjack.Stats          `json:"stats"`
	Accuracy   float64                  `json:"accuracy"`
	Reshuffles int                      `json:"reshuffles"`
	Summary    blackjack.SessionSummary `json:"summary"`
}

// handleSimulate plays a bot profile on the server's table rules.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	profile := s.bots.Get(req.Profile)
	if profile == nil {
		writeError(w, http.StatusNotFound, "unknown bot profile "+strconv.Quote(req.Profile))
		return
	}
	if req.Rounds < 1 || req.Rounds > maxSimRounds {
		writeError(w, http.StatusBadRequest, "rounds must be within 1.."+strconv.Itoa(maxSimRounds))
		return
	}

	cfg := s.rules
	cfg.DeckOverride = nil
	cfg.Seed = req.Seed
	if req.DeckCount != 0 {
		cfg.DeckCount = req.DeckCount
	}
	if profile.UsesDeviations {
		cfg.Mode = blackjack.ModeDeviations
	} else {
		cfg.Mode = blackjack.ModeBasic
	}
	g, err := blackjack.NewGame(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := bot.Simulate(g, bot.NewRuleBrain(profile, req.Seed), req.Rounds, nil)
	if err != nil {
		s.logger.Error("[API] Simulation failed", "profile", profile.ID, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, simulateResponse{
		Profile:    profile.ID,
		Rounds:     res.Rounds,
		Stats:      res.Stats,
		Accuracy:   res.Stats.Accuracy(),
		Reshuffles: res.Reshuffles,
		Summary:    res.Summary,
	})
}
