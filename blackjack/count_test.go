package blackjack

import (
	"errors"
	"math"
	"testing"
)

func TestCounter_ObserveAndReset(t *testing.T) {
	var c Counter
	c.Observe(mustCards(t, "2s", "6h", "7c", "Td", "As")...)
	if c.RunningCount() != 0 || c.Seen() != 5 {
		t.Fatalf("rc=%d seen=%d, want 0/5", c.RunningCount(), c.Seen())
	}
	c.Observe(mustCards(t, "3s", "4h")...)
	if c.RunningCount() != 2 {
		t.Fatalf("rc=%d, want 2", c.RunningCount())
	}
	c.Reset()
	if c.RunningCount() != 0 || c.Seen() != 0 {
		t.Fatalf("reset left rc=%d seen=%d", c.RunningCount(), c.Seen())
	}
}

func TestDecksRemaining_Floor(t *testing.T) {
	if got := DecksRemaining(312, 0); got != 6 {
		t.Fatalf("got %v, want 6", got)
	}
	if got := DecksRemaining(312, 300); got != 0.5 {
		t.Fatalf("got %v, want floor 0.5", got)
	}
	if got := DecksRemaining(312, 312); got != 0.5 {
		t.Fatalf("got %v, want floor 0.5", got)
	}
}

func TestTrueCount(t *testing.T) {
	if got := TrueCount(7, 0.5, 1); got != 7 {
		t.Fatalf("single deck should pass the running count through, got %v", got)
	}
	if got := TrueCount(6, 3, 6); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
	if got := TrueCount(5, 3, 6); got != 1.7 {
		t.Fatalf("got %v, want 1.7", got)
	}
	if got := TrueCount(-5, 3, 6); got != -1.7 {
		t.Fatalf("got %v, want -1.7", got)
	}
	if got := TrueCount(4, 0.1, 6); got != 8 {
		t.Fatalf("floor not applied, got %v", got)
	}
}

func TestTrueCount_DecreasesWithDecksRemaining(t *testing.T) {
	for _, rc := range []int{-12, -3, 5, 20} {
		prev := math.Inf(1)
		for decks := 0.5; decks <= 8; decks += 0.5 {
			got := math.Abs(TrueCount(rc, decks, 8))
			if got > prev {
				t.Fatalf("rc=%d: |tc| grew from %v to %v at %v decks", rc, prev, got, decks)
			}
			prev = got
		}
	}
}

func TestParseCountInput(t *testing.T) {
	if v, err := ParseCountInput(" -4 "); err != nil || v != -4 {
		t.Fatalf("got %d err=%v", v, err)
	}
	_, err := ParseCountInput("four")
	var cie *CountInputError
	if !errors.As(err, &cie) || cie.Input != "four" {
		t.Fatalf("expected CountInputError, got %v", err)
	}
	if _, err := ParseCountInput("1.5"); err == nil {
		t.Fatalf("expected error for fractional count")
	}
}
