package blackjack

import "blackjack-lite/card"

// Recommend returns the basic-strategy action for a hand against the dealer upcard.
// Pairs are checked first, then soft totals, then hard totals; the first rule that
// matches wins.
func Recommend(hand []card.Card, upcard card.Card, canDouble, canSplit bool) Action {
	up := upcard.Point()

	if canSplit && IsPair(hand) {
		if a, ok := pairAction(hand[0], up); ok {
			return a
		}
	}

	v := Evaluate(hand)
	if v.Soft {
		return softAction(v.Total, up, canDouble)
	}
	return hardAction(v.Total, up, canDouble)
}

// pairAction covers the pair table. 5/5 is not a pair decision and falls through to hard 10.
func pairAction(c card.Card, up int) (Action, bool) {
	switch {
	case c.IsAce():
		return ActionSplit, true
	case c.IsTenValue():
		return ActionStand, true
	}
	switch c.Rank() {
	case 8:
		return ActionSplit, true
	case 9:
		if up == 7 || up >= 10 {
			return ActionStand, true
		}
		return ActionSplit, true
	case 7:
		if up <= 7 {
			return ActionSplit, true
		}
		return ActionHit, true
	case 6:
		if up <= 6 {
			return ActionSplit, true
		}
		return ActionHit, true
	case 4:
		return ActionHit, true
	case 2, 3:
		if up >= 4 && up <= 7 {
			return ActionSplit, true
		}
		return ActionHit, true
	}
	return ActionNone, false
}

func softAction(total, up int, canDouble bool) Action {
	switch {
	case total >= 19:
		return ActionStand
	case total == 18:
		if up >= 9 {
			return ActionHit
		}
		if up >= 3 && up <= 6 && canDouble {
			return ActionDouble
		}
		return ActionStand
	default:
		if up >= 4 && up <= 6 && canDouble {
			return ActionDouble
		}
		return ActionHit
	}
}

func hardAction(total, up int, canDouble bool) Action {
	switch {
	case total >= 17:
		return ActionStand
	case total >= 13:
		if up <= 6 {
			return ActionStand
		}
		return ActionHit
	case total == 12:
		if up >= 4 && up <= 6 {
			return ActionStand
		}
		return ActionHit
	case total == 11:
		if canDouble {
			return ActionDouble
		}
		return ActionHit
	case total == 10:
		if up <= 9 && canDouble {
			return ActionDouble
		}
		return ActionHit
	case total == 9:
		if up >= 3 && up <= 6 && canDouble {
			return ActionDouble
		}
		return ActionHit
	default:
		return ActionHit
	}
}
