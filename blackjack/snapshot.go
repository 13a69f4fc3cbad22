package blackjack

import "blackjack-lite/card"

type HandSnapshot struct {
	Cards     []card.Card
	Total     int
	Soft      bool
	Doubled   bool
	FromSplit bool
	Complete  bool
	Outcome   Outcome
}

// Snapshot is a read-only view of the table as the player sees it: the hole card is
// card.CardRear and the counts leave it out until it is revealed.
type Snapshot struct {
	Round uint32
	Phase Phase

	DealerCards []card.Card
	// DealerTotal covers the visible dealer cards only.
	DealerTotal int

	Hands      []HandSnapshot
	ActiveHand int

	Recommendation *Recommendation
	LegalActions   []Action

	RunningCount   int
	TrueCount      float64
	DecksRemaining float64
	CardsDealt     int
	Reshuffles     int

	Stats Stats
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		Round:          g.round,
		Phase:          g.phase,
		ActiveHand:     g.active,
		LegalActions:   g.legalActions(),
		RunningCount:   g.visibleCount(),
		DecksRemaining: g.shoe.DecksRemaining(),
		CardsDealt:     g.shoe.Dealt(),
		Reshuffles:     g.shoe.Reshuffles(),
		Stats:          g.stats,
	}
	s.TrueCount = TrueCount(s.RunningCount, s.DecksRemaining, g.cfg.DeckCount)

	visible := g.dealerCards.Clone()
	if !g.holeRevealed && len(visible) > 1 {
		visible[1] = card.CardRear
		s.DealerTotal = Evaluate(visible[:1]).Total
	} else {
		s.DealerTotal = Evaluate(visible).Total
	}
	s.DealerCards = visible

	for _, h := range g.hands {
		v := h.Value()
		s.Hands = append(s.Hands, HandSnapshot{
			Cards:     h.Cards(),
			Total:     v.Total,
			Soft:      v.Soft,
			Doubled:   h.doubled,
			FromSplit: h.fromSplit,
			Complete:  h.complete,
			Outcome:   h.outcome,
		})
	}
	if g.rec != nil {
		rec := *g.rec
		s.Recommendation = &rec
	}
	return s
}
