package bot

import (
	"blackjack-lite/blackjack"
	"blackjack-lite/card"
)

// View is a read-only projection of the table visible to the autoplayer.
type View struct {
	Hand         []card.Card
	HandIndex    int
	Upcard       card.Card
	LegalActions []blackjack.Action
	RunningCount int
	TrueCount    float64
	// Recommendation is the engine's optimal play for the hand.
	Recommendation blackjack.Recommendation
}

// Brain is the interface every autoplayer implements.
type Brain interface {
	// Decide is called when the player is to act.
	Decide(view View) blackjack.Action
	// Name returns a human-readable identifier for logs.
	Name() string
}

// ViewOf projects a snapshot for the active hand. ok is false outside the player turn.
func ViewOf(s blackjack.Snapshot) (View, bool) {
	if s.Phase != blackjack.PhasePlayerTurn || s.Recommendation == nil || s.ActiveHand >= len(s.Hands) {
		return View{}, false
	}
	return View{
		Hand:           s.Hands[s.ActiveHand].Cards,
		HandIndex:      s.ActiveHand,
		Upcard:         s.DealerCards[0],
		LegalActions:   s.LegalActions,
		RunningCount:   s.RunningCount,
		TrueCount:      s.TrueCount,
		Recommendation: *s.Recommendation,
	}, true
}
