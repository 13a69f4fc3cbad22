package card

import "math/rand"

type CardList []Card

// Init replaces the list with a copy of cards.
func (ds *CardList) Init(cards []Card) {
	*ds = make(CardList, len(cards))
	copy(*ds, cards)
}

// Count returns the number of cards.
func (ds CardList) Count() int {
	return len(ds)
}

// Shuffle applies a Fisher-Yates permutation driven by rng.
func (ds CardList) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

func (ds CardList) Clone() CardList {
	out := make(CardList, len(ds))
	copy(out, ds)
	return out
}

// RankCounts counts cards per rank, indexed 1-13.
func (ds CardList) RankCounts() [14]int {
	var counts [14]int
	for _, c := range ds {
		counts[c.Rank()]++
	}
	return counts
}

func (ds CardList) SuitCounts() [4]int {
	var counts [4]int
	for _, c := range ds {
		if c.Suit() <= Diamond {
			counts[c.Suit()]++
		}
	}
	return counts
}
