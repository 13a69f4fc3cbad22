package blackjack

import (
	"testing"

	"blackjack-lite/card"
)

func fixedDraw(t *testing.T, ss ...string) (func() card.Card, *int) {
	t.Helper()
	cs := mustCards(t, ss...)
	n := 0
	return func() card.Card {
		if n >= len(cs) {
			t.Fatalf("dealer drew more than %d cards", len(cs))
		}
		c := cs[n]
		n++
		return c
	}, &n
}

func TestDealer_StandsOnHard17(t *testing.T) {
	for _, d := range []Dealer{{HitSoft17: true}, {HitSoft17: false}} {
		draw, n := fixedDraw(t)
		hand := d.Play(mustCards(t, "Ts", "7d"), draw)
		if *n != 0 || len(hand) != 2 {
			t.Fatalf("hard 17 drew %d cards (hitSoft17=%v)", *n, d.HitSoft17)
		}
	}
}

func TestDealer_Soft17(t *testing.T) {
	draw, n := fixedDraw(t, "2c")
	hand := Dealer{HitSoft17: true}.Play(mustCards(t, "As", "6d"), draw)
	if *n != 1 {
		t.Fatalf("soft 17 should draw exactly one card, drew %d", *n)
	}
	if v := Evaluate(hand); v.Total != 19 || !v.Soft {
		t.Fatalf("final = %+v, want soft 19", v)
	}

	draw, n = fixedDraw(t)
	Dealer{HitSoft17: false}.Play(mustCards(t, "As", "6d"), draw)
	if *n != 0 {
		t.Fatalf("S17 dealer drew on soft 17")
	}
}

func TestDealer_DrawsUntilDone(t *testing.T) {
	draw, n := fixedDraw(t, "As", "5c", "Kd")
	hand := Dealer{HitSoft17: true}.Play(mustCards(t, "2s", "3d"), draw)
	// 5, soft 16, soft 21
	if *n != 2 {
		t.Fatalf("drew %d cards, want 2", *n)
	}
	if v := Evaluate(hand); v.Total != 21 {
		t.Fatalf("final total %d, want 21", v.Total)
	}
	if (Dealer{}).Next(hand) != DealerDone {
		t.Fatalf("expected Done")
	}
}

func TestDealer_DoesNotMutateInput(t *testing.T) {
	start := mustCards(t, "2s", "3d")
	draw, _ := fixedDraw(t, "Tc", "9h")
	Dealer{}.Play(start, draw)
	if len(start) != 2 || start[0] != card.CardSpade2 {
		t.Fatalf("input hand changed: %v", start)
	}
}
