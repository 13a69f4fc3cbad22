package blackjack

import "blackjack-lite/card"

// HandResult is the settled state of one player hand. Units are measured in initial
// bets: a doubled hand wins or loses two, a natural pays one and a half.
type HandResult struct {
	Slot    int
	Cards   []card.Card
	Total   int
	Doubled bool
	Outcome Outcome
	Units   float64
}

type SettlementResult struct {
	Round       uint32
	DealerCards []card.Card
	DealerTotal int
	DealerBust  bool
	Hands       []HandResult
	NetUnits    float64
}

func outcomeUnits(o Outcome, doubled bool) float64 {
	stake := 1.0
	if doubled {
		stake = 2
	}
	switch o {
	case OutcomeWin:
		return stake
	case OutcomeLoss:
		return -stake
	case OutcomeBlackjack:
		return 1.5
	default:
		return 0
	}
}

// resolve decides a hand that was played out against a dealer without blackjack.
func resolve(h *PlayerHand, dealer HandValue) Outcome {
	v := h.Value()
	switch {
	case v.Bust():
		return OutcomeLoss
	case h.Natural():
		return OutcomeBlackjack
	case dealer.Bust():
		return OutcomeWin
	case v.Total > dealer.Total:
		return OutcomeWin
	case v.Total < dealer.Total:
		return OutcomeLoss
	default:
		return OutcomePush
	}
}

// settle requires every hand to carry an outcome and the hole card to be revealed.
func (g *Game) settle() *SettlementResult {
	dv := Evaluate(g.dealerCards)
	res := &SettlementResult{
		Round:       g.round,
		DealerCards: g.dealerCards.Clone(),
		DealerTotal: dv.Total,
		DealerBust:  dv.Bust(),
	}
	for i, h := range g.hands {
		units := outcomeUnits(h.outcome, h.doubled)
		res.Hands = append(res.Hands, HandResult{
			Slot:    i,
			Cards:   h.Cards(),
			Total:   h.Value().Total,
			Doubled: h.doubled,
			Outcome: h.outcome,
			Units:   units,
		})
		res.NetUnits += units
		g.stats.record(h.outcome, units)
	}
	g.stats.HandsPlayed++
	g.phase = PhaseSettled
	g.shoe.EndRound()
	g.lastSettlement = res
	return res
}
