package blackjack

import (
	"fmt"

	"blackjack-lite/card"
)

type Config struct {
	// Shoe
	DeckCount   int
	Penetration float64

	// Table rules
	DealerHitsSoft17 bool
	MaxHands         int

	// Recommendation policy and session label.
	Mode Mode

	// RNG seed (0 => time-based)
	Seed int64

	// DeckOverride fixes the order of the first shoe. It must hold exactly DeckCount
	// copies of every card; later shoes are shuffled from the seed.
	DeckOverride []card.Card
}

// DefaultConfig is a six-deck H17 shoe cut at 75%.
func DefaultConfig() Config {
	return Config{
		DeckCount:        6,
		Penetration:      0.75,
		DealerHitsSoft17: true,
		MaxHands:         MaxPlayerHands,
		Mode:             ModeDeviations,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxHands == 0 {
		c.MaxHands = MaxPlayerHands
	}
	if c.Mode == "" {
		c.Mode = ModeDeviations
	}
	return c
}

func (c Config) validate() error {
	if c.DeckCount < 1 || c.DeckCount > 8 {
		return fmt.Errorf("DeckCount must be within 1..8, got %d", c.DeckCount)
	}
	if c.Penetration < 0.5 || c.Penetration > 0.9 {
		return fmt.Errorf("Penetration must be within 0.5..0.9, got %.2f", c.Penetration)
	}
	if c.MaxHands < 1 || c.MaxHands > MaxPlayerHands {
		return fmt.Errorf("MaxHands must be within 1..%d, got %d", MaxPlayerHands, c.MaxHands)
	}
	if !c.Mode.valid() {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if len(c.DeckOverride) > 0 {
		if err := validateDeckOverride(c.DeckOverride, c.DeckCount); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the settings without building a game.
func (c Config) Validate() error {
	return c.withDefaults().validate()
}

func validateDeckOverride(deck []card.Card, deckCount int) error {
	if len(deck) != deckCount*52 {
		return fmt.Errorf("DeckOverride must contain %d cards, got %d", deckCount*52, len(deck))
	}
	seen := make(map[card.Card]int, 52)
	for i, c := range deck {
		if !c.Valid() {
			return fmt.Errorf("DeckOverride has invalid card at %d", i)
		}
		seen[c]++
		if seen[c] > deckCount {
			return fmt.Errorf("DeckOverride has duplicate card %v at %d", c, i)
		}
	}
	return nil
}
