package blackjack

import "testing"

func TestRecommendWithCount_16v10(t *testing.T) {
	hand := mustCards(t, "Ts", "6h")
	up := mustCards(t, "Td")[0]
	basic := Recommend(hand, up, true, false)
	if basic != ActionHit {
		t.Fatalf("basic = %v, want hit", basic)
	}
	if got := RecommendWithCount(hand, up, 1, basic, true, false); got != ActionStand {
		t.Fatalf("TC=1 got %v, want stand", got)
	}
	if got := RecommendWithCount(hand, up, 0, basic, true, false); got != ActionStand {
		t.Fatalf("TC=0 got %v, want stand", got)
	}
	if got := RecommendWithCount(hand, up, -1, basic, true, false); got != ActionHit {
		t.Fatalf("TC=-1 got %v, want hit", got)
	}
}

func TestRecommendWithCount_Table(t *testing.T) {
	cases := []struct {
		hand      []string
		up        string
		tc        float64
		canDouble bool
		canSplit  bool
		want      Action
		dev       string
	}{
		{[]string{"Ts", "5h"}, "Kd", 4, true, false, ActionStand, "15v10"},
		{[]string{"Ts", "5h"}, "Kd", 3.9, true, false, ActionHit, ""},
		{[]string{"Ts", "6h"}, "9d", 5, true, false, ActionStand, "16v9"},
		{[]string{"Ts", "Th"}, "5d", 5, true, true, ActionSplit, "TTv5"},
		{[]string{"Ks", "Kh"}, "6d", 4, true, true, ActionSplit, "TTv6"},
		{[]string{"Ks", "Kh"}, "6d", 4, true, false, ActionStand, ""},
		{[]string{"6s", "4h"}, "Td", 4, true, false, ActionDouble, "10v10"},
		{[]string{"6s", "4h"}, "Ad", 4, true, false, ActionDouble, "10vA"},
		{[]string{"6s", "4h"}, "Ad", 4, false, false, ActionHit, ""},
		{[]string{"Ts", "2h"}, "2d", 3, true, false, ActionStand, "12v2"},
		{[]string{"Ts", "2h"}, "3d", 2, true, false, ActionStand, "12v3"},
		{[]string{"Ts", "2h"}, "4d", 0, true, false, ActionStand, "12v4"},
		{[]string{"Ts", "2h"}, "5d", -2, true, false, ActionStand, "12v5"},
		{[]string{"Ts", "2h"}, "6d", -1, true, false, ActionStand, "12v6"},
		{[]string{"Ts", "3h"}, "2d", -1, true, false, ActionStand, "13v2"},
		{[]string{"Ts", "3h"}, "3d", -2, true, false, ActionStand, "13v3"},
		{[]string{"6s", "5h"}, "Ad", 1, true, false, ActionDouble, "11vA"},
		{[]string{"5s", "4h"}, "2d", 1, true, false, ActionDouble, "9v2"},
		{[]string{"5s", "4h"}, "7d", 3, true, false, ActionDouble, "9v7"},
		// soft 16 is not a hard 16
		{[]string{"As", "5h"}, "Td", 10, true, false, ActionHit, ""},
		// a basic split is never overridden by a total entry
		{[]string{"8s", "8h"}, "Td", 10, true, true, ActionSplit, ""},
		{[]string{"6s", "6h"}, "2d", 10, true, true, ActionSplit, ""},
	}
	for _, tc := range cases {
		hand := mustCards(t, tc.hand...)
		up := mustCards(t, tc.up)[0]
		basic := Recommend(hand, up, tc.canDouble, tc.canSplit)
		got := RecommendWithCount(hand, up, tc.tc, basic, tc.canDouble, tc.canSplit)
		if got != tc.want {
			t.Fatalf("%v vs %s at TC %.1f = %v, want %v", tc.hand, tc.up, tc.tc, got, tc.want)
		}
		d, ok := MatchDeviation(hand, up, tc.tc, basic, tc.canDouble, tc.canSplit)
		if tc.dev == "" && ok {
			t.Fatalf("%v vs %s: unexpected deviation %s", tc.hand, tc.up, d.Name)
		}
		if tc.dev != "" && (!ok || d.Name != tc.dev) {
			t.Fatalf("%v vs %s: deviation = %q ok=%v, want %q", tc.hand, tc.up, d.Name, ok, tc.dev)
		}
	}
}

func TestDeviations_MonotoneInCount(t *testing.T) {
	for _, d := range Deviations() {
		var hand []string
		switch {
		case d.PairOfTens:
			hand = []string{"Ts", "Th"}
		case d.Total == 16:
			hand = []string{"Ts", "6h"}
		case d.Total == 15:
			hand = []string{"Ts", "5h"}
		case d.Total == 13:
			hand = []string{"Ts", "3h"}
		case d.Total == 12:
			hand = []string{"Ts", "2h"}
		case d.Total == 11:
			hand = []string{"6s", "5h"}
		case d.Total == 10:
			hand = []string{"6s", "4h"}
		case d.Total == 9:
			hand = []string{"5s", "4h"}
		}
		cs := mustCards(t, hand...)
		up := mustCards(t, map[int]string{2: "2d", 3: "3d", 4: "4d", 5: "5d", 6: "6d", 7: "7d", 9: "9d", 10: "Td", 11: "Ad"}[d.Upcard])[0]
		basic := Recommend(cs, up, true, d.PairOfTens)
		for tc := d.Threshold; tc <= d.Threshold+6; tc += 0.5 {
			if got := RecommendWithCount(cs, up, tc, basic, true, d.PairOfTens); got != d.Action {
				t.Fatalf("%s at TC %.1f = %v, want %v", d.Name, tc, got, d.Action)
			}
		}
	}
}
