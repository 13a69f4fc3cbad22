package blackjack

import (
	"testing"

	"blackjack-lite/card"
)

func TestRecommend(t *testing.T) {
	cases := []struct {
		hand      []string
		up        string
		canDouble bool
		canSplit  bool
		want      Action
	}{
		{[]string{"Ts", "6h"}, "Td", true, false, ActionHit},
		{[]string{"As", "7h"}, "2d", true, false, ActionStand},
		{[]string{"8s", "8h"}, "6d", true, true, ActionSplit},

		// pairs
		{[]string{"As", "Ah"}, "Td", true, true, ActionSplit},
		{[]string{"8s", "8h"}, "Ad", true, true, ActionSplit},
		{[]string{"Ts", "Th"}, "6d", true, true, ActionStand},
		{[]string{"5s", "5h"}, "9d", true, true, ActionDouble},
		{[]string{"5s", "5h"}, "Td", true, true, ActionHit},
		{[]string{"4s", "4h"}, "5d", true, true, ActionHit},
		{[]string{"9s", "9h"}, "7d", true, true, ActionStand},
		{[]string{"9s", "9h"}, "Kd", true, true, ActionStand},
		{[]string{"9s", "9h"}, "8d", true, true, ActionSplit},
		{[]string{"7s", "7h"}, "7d", true, true, ActionSplit},
		{[]string{"7s", "7h"}, "8d", true, true, ActionHit},
		{[]string{"6s", "6h"}, "2d", true, true, ActionSplit},
		{[]string{"6s", "6h"}, "7d", true, true, ActionHit},
		{[]string{"2s", "2h"}, "4d", true, true, ActionSplit},
		{[]string{"3s", "3h"}, "3d", true, true, ActionHit},
		{[]string{"8s", "8h"}, "Td", false, false, ActionHit},

		// soft
		{[]string{"As", "8h"}, "6d", true, false, ActionStand},
		{[]string{"As", "7h"}, "9d", true, false, ActionHit},
		{[]string{"As", "7h"}, "Ad", true, false, ActionHit},
		{[]string{"As", "7h"}, "4d", true, false, ActionDouble},
		{[]string{"As", "7h"}, "4d", false, false, ActionStand},
		{[]string{"As", "7h"}, "7d", true, false, ActionStand},
		{[]string{"As", "4h"}, "5d", true, false, ActionDouble},
		{[]string{"As", "4h"}, "3d", true, false, ActionHit},
		{[]string{"As", "2h", "3c"}, "5d", false, false, ActionHit},

		// hard
		{[]string{"Ts", "7h"}, "Ad", true, false, ActionStand},
		{[]string{"Ts", "3h"}, "6d", true, false, ActionStand},
		{[]string{"Ts", "3h"}, "7d", true, false, ActionHit},
		{[]string{"Ts", "2h"}, "3d", true, false, ActionHit},
		{[]string{"Ts", "2h"}, "4d", true, false, ActionStand},
		{[]string{"6s", "5h"}, "Ad", true, false, ActionDouble},
		{[]string{"6s", "5h"}, "Ad", false, false, ActionHit},
		{[]string{"6s", "4h"}, "9d", true, false, ActionDouble},
		{[]string{"6s", "4h"}, "Td", true, false, ActionHit},
		{[]string{"5s", "4h"}, "3d", true, false, ActionDouble},
		{[]string{"5s", "4h"}, "2d", true, false, ActionHit},
		{[]string{"5s", "3h"}, "6d", true, false, ActionHit},
	}
	for _, tc := range cases {
		got := Recommend(mustCards(t, tc.hand...), mustCards(t, tc.up)[0], tc.canDouble, tc.canSplit)
		if got != tc.want {
			t.Fatalf("Recommend(%v vs %s, double=%v split=%v) = %v, want %v",
				tc.hand, tc.up, tc.canDouble, tc.canSplit, got, tc.want)
		}
	}
}

func TestRecommend_NeverDoublesOrSplitsWhenDisallowed(t *testing.T) {
	deck := mustCards(t, "As", "2s", "3s", "4s", "5s", "6s", "7s", "8s", "9s", "Ts")
	for _, a := range deck {
		for _, b := range deck {
			for _, up := range deck {
				got := Recommend([]card.Card{a, b}, up, false, false)
				if got == ActionDouble || got == ActionSplit {
					t.Fatalf("%v %v vs %v: got %v without permission", a, b, up, got)
				}
			}
		}
	}
}
