package blackjack

import (
	"math"
	"math/rand"

	"blackjack-lite/card"
)

// BuildShoe concatenates deckCount standard decks and shuffles them once.
func BuildShoe(deckCount int, rng *rand.Rand) card.CardList {
	cards := card.Decks(deckCount)
	cards.Shuffle(rng)
	return cards
}

// Shoe deals from a fixed permutation and reshuffles at the cut card. Every card it
// serves is fed to the counter, and the counter resets together with the cursor.
type Shoe struct {
	deckCount   int
	penetration float64
	rng         *rand.Rand
	counter     *Counter

	cards card.CardList
	dealt int
	limit int

	inRound    bool
	reshuffles int
}

func newShoe(deckCount int, penetration float64, rng *rand.Rand, counter *Counter, override []card.Card) *Shoe {
	s := &Shoe{
		deckCount:   deckCount,
		penetration: penetration,
		rng:         rng,
		counter:     counter,
	}
	if len(override) > 0 {
		s.cards.Init(override)
	} else {
		s.cards = BuildShoe(deckCount, rng)
	}
	s.limit = penetrationLimit(len(s.cards), penetration)
	return s
}

func penetrationLimit(total int, penetration float64) int {
	return int(math.Floor(float64(total) * penetration))
}

// Draw serves the next card. Outside a round, reaching the cut card rebuilds the shoe
// before the card is served. Inside a round the cut is deferred to the next BeginRound,
// so only a physically empty shoe reshuffles mid-round.
func (s *Shoe) Draw() card.Card {
	if s.dealt >= len(s.cards) || (!s.inRound && s.dealt >= s.limit) {
		s.reshuffle()
	}
	c := s.cards[s.dealt]
	s.dealt++
	if s.counter != nil {
		s.counter.Observe(c)
	}
	return c
}

// BeginRound reshuffles if the cut card was reached during the previous round.
func (s *Shoe) BeginRound() {
	if s.dealt >= s.limit {
		s.reshuffle()
	}
	s.inRound = true
}

func (s *Shoe) EndRound() {
	s.inRound = false
}

func (s *Shoe) reshuffle() {
	s.cards = BuildShoe(s.deckCount, s.rng)
	s.dealt = 0
	s.limit = penetrationLimit(len(s.cards), s.penetration)
	s.reshuffles++
	if s.counter != nil {
		s.counter.Reset()
	}
}

// Total is the size of the current shoe.
func (s *Shoe) Total() int { return len(s.cards) }

// Dealt counts cards served since the last shuffle.
func (s *Shoe) Dealt() int { return s.dealt }

func (s *Shoe) Remaining() int { return len(s.cards) - s.dealt }

// Limit is the cut card position.
func (s *Shoe) Limit() int { return s.limit }

func (s *Shoe) DeckCount() int { return s.deckCount }

// Reshuffles counts rebuilds after the first shoe.
func (s *Shoe) Reshuffles() int { return s.reshuffles }

// NeedsShuffle reports whether the cut card has been reached.
func (s *Shoe) NeedsShuffle() bool { return s.dealt >= s.limit }

func (s *Shoe) DecksRemaining() float64 {
	return DecksRemaining(len(s.cards), s.dealt)
}

func (s *Shoe) TrueCount() float64 {
	if s.counter == nil {
		return 0
	}
	return TrueCount(s.counter.RunningCount(), s.DecksRemaining(), s.deckCount)
}
