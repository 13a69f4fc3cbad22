package blackjack

import "blackjack-lite/card"

// PlayerHand is one of the player's hands. Its position in Game.hands is its slot;
// a split inserts the new hand directly to the right of the one it came from.
type PlayerHand struct {
	cards     card.CardList
	doubled   bool
	fromSplit bool
	complete  bool
	outcome   Outcome
}

func (h *PlayerHand) Cards() []card.Card { return append([]card.Card(nil), h.cards...) }
func (h *PlayerHand) Value() HandValue   { return Evaluate(h.cards) }
func (h *PlayerHand) Doubled() bool      { return h.doubled }
func (h *PlayerHand) FromSplit() bool    { return h.fromSplit }
func (h *PlayerHand) Complete() bool     { return h.complete }
func (h *PlayerHand) Outcome() Outcome   { return h.outcome }

// Natural reports a two-card 21 from the initial deal.
func (h *PlayerHand) Natural() bool {
	return !h.fromSplit && IsBlackjack(h.cards)
}

func (h *PlayerHand) canDouble() bool {
	return !h.complete && len(h.cards) == 2
}

func (h *PlayerHand) canSplit(handCount, maxHands int) bool {
	return h.canDouble() && IsPair(h.cards) && handCount < maxHands
}
