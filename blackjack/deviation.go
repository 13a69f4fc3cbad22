package blackjack

import (
	"fmt"

	"blackjack-lite/card"
)

// Deviation is one count-dependent override of basic strategy. Upcard is the dealer's
// point value (ace = 11).
type Deviation struct {
	Name string `json:"name"`
	// Total matches hard totals; zero when the entry is a pair entry.
	Total      int     `json:"total,omitempty"`
	PairOfTens bool    `json:"pair_of_tens,omitempty"`
	Upcard     int     `json:"upcard"`
	Threshold  float64 `json:"threshold"`
	Action     Action  `json:"action"`
}

var deviationTable = []Deviation{
	{Name: "16v10", Total: 16, Upcard: 10, Threshold: 0, Action: ActionStand},
	{Name: "15v10", Total: 15, Upcard: 10, Threshold: 4, Action: ActionStand},
	{Name: "16v9", Total: 16, Upcard: 9, Threshold: 5, Action: ActionStand},
	{Name: "TTv5", PairOfTens: true, Upcard: 5, Threshold: 5, Action: ActionSplit},
	{Name: "TTv6", PairOfTens: true, Upcard: 6, Threshold: 4, Action: ActionSplit},
	{Name: "10v10", Total: 10, Upcard: 10, Threshold: 4, Action: ActionDouble},
	{Name: "10vA", Total: 10, Upcard: 11, Threshold: 4, Action: ActionDouble},
	{Name: "12v2", Total: 12, Upcard: 2, Threshold: 3, Action: ActionStand},
	{Name: "12v3", Total: 12, Upcard: 3, Threshold: 2, Action: ActionStand},
	{Name: "12v4", Total: 12, Upcard: 4, Threshold: 0, Action: ActionStand},
	{Name: "12v5", Total: 12, Upcard: 5, Threshold: -2, Action: ActionStand},
	{Name: "12v6", Total: 12, Upcard: 6, Threshold: -1, Action: ActionStand},
	{Name: "13v2", Total: 13, Upcard: 2, Threshold: -1, Action: ActionStand},
	{Name: "13v3", Total: 13, Upcard: 3, Threshold: -2, Action: ActionStand},
	{Name: "11vA", Total: 11, Upcard: 11, Threshold: 1, Action: ActionDouble},
	{Name: "9v2", Total: 9, Upcard: 2, Threshold: 1, Action: ActionDouble},
	{Name: "9v7", Total: 9, Upcard: 7, Threshold: 3, Action: ActionDouble},
}

// Deviations returns a copy of the override table.
func Deviations() []Deviation {
	return append([]Deviation(nil), deviationTable...)
}

func (d Deviation) String() string {
	return fmt.Sprintf("%s %s at TC>=%+g", d.Name, d.Action, d.Threshold)
}

// matches reports whether the entry describes this situation, ignoring the count.
// Total entries never override a basic-strategy split, so 8/8 v 10 stays a split.
func (d Deviation) matches(hand []card.Card, up int, basic Action, canDouble, canSplit bool) bool {
	if d.Upcard != up {
		return false
	}
	if d.Action == ActionDouble && !canDouble {
		return false
	}
	if d.PairOfTens {
		return canSplit && IsPair(hand) && hand[0].IsTenValue()
	}
	if basic == ActionSplit {
		return false
	}
	v := Evaluate(hand)
	return !v.Soft && v.Total == d.Total
}

// MatchDeviation finds the entry that fires for the hand at trueCount.
func MatchDeviation(hand []card.Card, upcard card.Card, trueCount float64, basic Action, canDouble, canSplit bool) (Deviation, bool) {
	up := upcard.Point()
	for _, d := range deviationTable {
		if !d.matches(hand, up, basic, canDouble, canSplit) {
			continue
		}
		if trueCount >= d.Threshold {
			return d, true
		}
	}
	return Deviation{}, false
}

// RecommendWithCount applies the deviation table over basic. With no match the basic
// action is returned unchanged.
func RecommendWithCount(hand []card.Card, upcard card.Card, trueCount float64, basic Action, canDouble, canSplit bool) Action {
	if d, ok := MatchDeviation(hand, upcard, trueCount, basic, canDouble, canSplit); ok {
		return d.Action
	}
	return basic
}
