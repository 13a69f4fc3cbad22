package blackjack

import "blackjack-lite/card"

// DealerState is the dealer automaton state.
type DealerState byte

const (
	DealerDrawing DealerState = 1
	DealerDone    DealerState = 2
)

// Dealer plays the house hand with a fixed policy: draw below 17, and on soft 17 when
// HitSoft17 is set.
type Dealer struct {
	HitSoft17 bool
}

// Next evaluates the hand after a card and returns the state to move to.
func (d Dealer) Next(cards []card.Card) DealerState {
	v := Evaluate(cards)
	if v.Total < 17 {
		return DealerDrawing
	}
	if v.Total == 17 && v.Soft && d.HitSoft17 {
		return DealerDrawing
	}
	return DealerDone
}

// Play draws until the automaton is Done and returns the final hand.
func (d Dealer) Play(cards []card.Card, draw func() card.Card) []card.Card {
	hand := append([]card.Card(nil), cards...)
	for d.Next(hand) == DealerDrawing {
		hand = append(hand, draw())
	}
	return hand
}
