// Package bankroll holds the bet-sizing and risk formulas used by counting players.
package bankroll

import "math"

// EdgePerTrueCount is the player edge gained per point of true count.
const EdgePerTrueCount = 0.005

type KellyResult struct {
	Edge     float64 `json:"edge"`
	WinProb  float64 `json:"win_prob"`
	KellyPct float64 `json:"kelly_pct"`

	FullBet    float64 `json:"full_bet"`
	HalfBet    float64 `json:"half_bet"`
	QuarterBet float64 `json:"quarter_bet"`
	// RecommendedBet applies the caller's Kelly fraction.
	RecommendedBet float64 `json:"recommended_bet"`
}

// Kelly sizes a bet for an even-money wager won with winProb.
func Kelly(bankroll, edge, winProb, kellyFraction float64) KellyResult {
	pct := clamp01(winProb - (1 - winProb))
	if bankroll < 0 {
		bankroll = 0
	}
	full := bankroll * pct
	return KellyResult{
		Edge:           edge,
		WinProb:        winProb,
		KellyPct:       pct,
		FullBet:        full,
		HalfBet:        full / 2,
		QuarterBet:     full / 4,
		RecommendedBet: full * kellyFraction,
	}
}

// BetSizing is a Kelly bet rounded to table units.
type BetSizing struct {
	KellyResult
	TrueCount float64 `json:"true_count"`
	Bet       float64 `json:"bet"`
	Units     int     `json:"units"`
	Capped    bool    `json:"capped"`
}

// BetFromTrueCount turns the true count into an edge and a Kelly bet, rounded to the
// nearest baseUnit and capped at maxBet. A non-positive baseUnit or maxBet disables
// that step.
func BetFromTrueCount(bankroll, trueCount, baseUnit, maxBet, kellyFraction float64) BetSizing {
	edge := math.Max(0, trueCount*EdgePerTrueCount)
	k := Kelly(bankroll, edge, 0.5+edge, kellyFraction)

	s := BetSizing{KellyResult: k, TrueCount: trueCount, Bet: k.RecommendedBet}
	if baseUnit > 0 {
		s.Bet = math.Round(s.Bet/baseUnit) * baseUnit
	}
	if maxBet > 0 && s.Bet > maxBet {
		s.Bet = maxBet
		s.Capped = true
	}
	if baseUnit > 0 {
		s.Units = int(math.Round(s.Bet / baseUnit))
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
