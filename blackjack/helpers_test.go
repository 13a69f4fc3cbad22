package blackjack

import (
	"testing"

	"blackjack-lite/card"
)

func mustCards(t *testing.T, ss ...string) []card.Card {
	t.Helper()
	cs, err := card.ParseList(ss)
	if err != nil {
		t.Fatalf("parse cards %v: %v", ss, err)
	}
	return cs
}

// deckWithPrefix returns a full shoe that starts with prefix, followed by the rest of
// the ordered decks.
func deckWithPrefix(t *testing.T, deckCount int, prefix ...string) []card.Card {
	t.Helper()
	head := mustCards(t, prefix...)
	rest := card.Decks(deckCount)
	for _, c := range head {
		idx := -1
		for i, rc := range rest {
			if rc == c {
				idx = i
				break
			}
		}
		if idx < 0 {
			t.Fatalf("prefix uses %v more than %d times", c, deckCount)
		}
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return append(head, rest...)
}

func newForcedGame(t *testing.T, mode Mode, prefix ...string) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Mode = mode
	cfg.DeckOverride = deckWithPrefix(t, cfg.DeckCount, prefix...)
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}
