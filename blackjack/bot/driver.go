package bot

import (
	"fmt"

	"blackjack-lite/blackjack"
)

// maxDecisions bounds one round: four hands can never need more hits than this.
const maxDecisions = 64

// PlayRound deals a round and lets brain act until it settles.
func PlayRound(g *blackjack.Game, brain Brain) (*blackjack.SettlementResult, []blackjack.Decision, error) {
	res, err := g.StartRound()
	if err != nil {
		return nil, nil, err
	}
	if res != nil {
		return res, nil, nil
	}

	decisions := make([]blackjack.Decision, 0, 4)
	for i := 0; i < maxDecisions; i++ {
		view, ok := ViewOf(g.Snapshot())
		if !ok {
			return nil, decisions, blackjack.ErrInvalidState("player turn without a view")
		}
		action := brain.Decide(view)
		d, res, err := g.Act(action)
		if err != nil {
			return nil, decisions, fmt.Errorf("%s chose %s: %w", brain.Name(), action, err)
		}
		decisions = append(decisions, *d)
		if res != nil {
			return res, decisions, nil
		}
	}
	return nil, decisions, blackjack.ErrInvalidState("round did not settle")
}
