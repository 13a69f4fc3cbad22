package card

// StandardDeck returns one ordered 52-card deck.
func StandardDeck() []Card {
	out := make([]Card, 0, 52)
	for _, s := range Suits {
		for rank := byte(1); rank <= 13; rank++ {
			out = append(out, Card(byte(s)<<4|rank))
		}
	}
	return out
}

// Decks concatenates n ordered standard decks.
func Decks(n int) CardList {
	out := make(CardList, 0, n*52)
	for i := 0; i < n; i++ {
		out = append(out, StandardDeck()...)
	}
	return out
}
