package blackjack

import (
	"strconv"

	"blackjack-lite/card"
)

// HandValue is the derived total of a hand.
type HandValue struct {
	Total int
	// Soft is set while an ace is still counted as 11.
	Soft bool
}

func (v HandValue) Bust() bool { return v.Total > 21 }

// Evaluate counts aces high and drops them to one, one at a time, while the hand is over 21.
func Evaluate(cards []card.Card) HandValue {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.Point()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return HandValue{Total: total, Soft: aces > 0}
}

// IsBlackjack reports a two-card 21. Callers decide whether the hand came from the
// initial deal; split hands never pay as naturals.
func IsBlackjack(cards []card.Card) bool {
	return len(cards) == 2 && Evaluate(cards).Total == 21
}

// IsPair reports two cards of equal rank.
func IsPair(cards []card.Card) bool {
	return len(cards) == 2 && cards[0].Rank() == cards[1].Rank()
}

// describeHand renders "hard 16", "soft 18" or "pair of 8s" for feedback.
func describeHand(cards []card.Card, canSplit bool) string {
	if canSplit && IsPair(cards) {
		return "pair of " + card.RankString(cards[0].Rank()) + "s"
	}
	v := Evaluate(cards)
	if v.Soft {
		return "soft " + strconv.Itoa(v.Total)
	}
	return "hard " + strconv.Itoa(v.Total)
}

func upcardName(c card.Card) string {
	if c.IsAce() {
		return "A"
	}
	return strconv.Itoa(c.Point())
}
