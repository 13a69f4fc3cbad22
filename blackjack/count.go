package blackjack

import (
	"math"
	"strconv"
	"strings"

	"blackjack-lite/card"
)

// minDecksRemaining keeps the true count finite near the end of the shoe.
const minDecksRemaining = 0.5

// Counter keeps the Hi-Lo running count since the last shuffle.
type Counter struct {
	running int
	seen    int
}

// Observe adds the Hi-Lo tag of every card.
func (c *Counter) Observe(cards ...card.Card) {
	for _, cc := range cards {
		c.running += cc.HiLo()
		c.seen++
	}
}

func (c *Counter) Reset() {
	c.running = 0
	c.seen = 0
}

func (c *Counter) RunningCount() int { return c.running }

// Seen is the number of cards counted since the last reset.
func (c *Counter) Seen() int { return c.seen }

// DecksRemaining converts unseen cards to decks, floored at half a deck.
func DecksRemaining(totalCards, dealt int) float64 {
	d := float64(totalCards-dealt) / 52
	if d < minDecksRemaining {
		return minDecksRemaining
	}
	return d
}

// TrueCount normalises the running count by decks remaining and rounds to one decimal
// place. Single-deck games use the running count as is.
func TrueCount(running int, decksRemaining float64, deckCount int) float64 {
	if deckCount == 1 {
		return float64(running)
	}
	if decksRemaining < minDecksRemaining {
		decksRemaining = minDecksRemaining
	}
	return roundTenth(float64(running) / decksRemaining)
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

// ParseCountInput reads a user-entered running count.
func ParseCountInput(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &CountInputError{Input: raw}
	}
	return v, nil
}
