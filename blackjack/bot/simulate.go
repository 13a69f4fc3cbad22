package bot

import (
	"fmt"

	"blackjack-lite/blackjack"
)

// RoundHook observes a settled round together with the true count it was dealt at.
type RoundHook func(round int, trueCount float64, res *blackjack.SettlementResult)

type SimResult struct {
	Rounds     int
	Stats      blackjack.Stats
	Reshuffles int
	Summary    blackjack.SessionSummary
}

// Simulate plays rounds on g with brain. hook may be nil.
func Simulate(g *blackjack.Game, brain Brain, rounds int, hook RoundHook) (SimResult, error) {
	if rounds < 1 {
		return SimResult{}, fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	for i := 1; i <= rounds; i++ {
		tc := g.TrueCount()
		res, _, err := PlayRound(g, brain)
		if err != nil {
			return SimResult{}, fmt.Errorf("round %d: %w", i, err)
		}
		if hook != nil {
			hook(i, tc, res)
		}
	}
	snap := g.Snapshot()
	return SimResult{
		Rounds:     rounds,
		Stats:      snap.Stats,
		Reshuffles: snap.Reshuffles,
		Summary:    g.Summary(),
	}, nil
}
