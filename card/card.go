package card

import (
	"fmt"
	"strings"
)

// Card is a single playing card.
//
// Encoding:
// - high 4 bits: suit (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - low 4 bits: rank (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K)
type Card byte

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	if c == CardRear {
		return "Rear"
	}
	return RankString(c.Rank()) + c.Suit().Letter()
}

// MarshalText makes cards read as "As" in JSON instead of a byte.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	if string(text) == "Rear" {
		*c = CardRear
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Rank returns 1-13 (A=1, K=13), or 0 for invalid cards.
func (c Card) Rank() byte {
	if c == CardInvalid || c == CardRear {
		return 0
	}
	return byte(c & 0x0F)
}

// Suit (0:Spades, 1:Hearts, 2:Clubs, 3:Diamonds)
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == 1
}

// IsTenValue reports 10, J, Q and K.
func (c Card) IsTenValue() bool {
	return c.Rank() >= 10
}

// Valid reports whether c encodes a real card.
func (c Card) Valid() bool {
	r := c.Rank()
	return r >= 1 && r <= 13 && c.Suit() <= Diamond
}

// Point is the blackjack point value with the ace counted high:
// A=11, T/J/Q/K=10, otherwise the face value.
func (c Card) Point() int {
	r := int(c.Rank())
	switch {
	case r == 1:
		return 11
	case r >= 10:
		return 10
	default:
		return r
	}
}

// HiLo returns the Hi-Lo counting tag: 2-6 => +1, 7-9 => 0, tens and aces => -1.
func (c Card) HiLo() int {
	r := c.Rank()
	switch {
	case r == 0:
		return 0
	case r == 1 || r >= 10:
		return -1
	case r <= 6:
		return 1
	default:
		return 0
	}
}

// RankString renders a rank as "A", "2".."9", "T", "J", "Q", "K".
func RankString(rank byte) string {
	switch rank {
	case 1:
		return "A"
	case 10:
		return "T"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// New builds a card from a suit and a rank 1-13.
func New(s Suit, rank byte) (Card, error) {
	if s > Diamond {
		return CardInvalid, fmt.Errorf("invalid suit: %d", s)
	}
	if rank < 1 || rank > 13 {
		return CardInvalid, fmt.Errorf("invalid rank: %d", rank)
	}
	return Card(byte(s)<<4 | rank), nil
}

// Parse converts a string such as "As", "Td" or "10h" into a Card.
func Parse(cardStr string) (Card, error) {
	cardStr = strings.TrimSpace(cardStr)
	if len(cardStr) < 2 {
		return CardInvalid, fmt.Errorf("invalid card string: %s", cardStr)
	}

	var s Suit
	switch cardStr[len(cardStr)-1] {
	case 's', 'S':
		s = Spade
	case 'h', 'H':
		s = Heart
	case 'c', 'C':
		s = Club
	case 'd', 'D':
		s = Diamond
	default:
		return CardInvalid, fmt.Errorf("invalid suit: %c", cardStr[len(cardStr)-1])
	}

	rank, err := ParseRank(cardStr[:len(cardStr)-1])
	if err != nil {
		return CardInvalid, err
	}
	return New(s, rank)
}

// ParseRank accepts "A", "2".."10", "T", "J", "Q", "K" (case-insensitive).
func ParseRank(rankStr string) (byte, error) {
	switch strings.ToUpper(strings.TrimSpace(rankStr)) {
	case "A":
		return 1, nil
	case "2":
		return 2, nil
	case "3":
		return 3, nil
	case "4":
		return 4, nil
	case "5":
		return 5, nil
	case "6":
		return 6, nil
	case "7":
		return 7, nil
	case "8":
		return 8, nil
	case "9":
		return 9, nil
	case "T", "10":
		return 10, nil
	case "J":
		return 11, nil
	case "Q":
		return 12, nil
	case "K":
		return 13, nil
	default:
		return 0, fmt.Errorf("invalid rank: %s", rankStr)
	}
}

// ParseList parses every string in cards, failing on the first bad entry.
func ParseList(cards []string) ([]Card, error) {
	out := make([]Card, 0, len(cards))
	for i, raw := range cards {
		c, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
