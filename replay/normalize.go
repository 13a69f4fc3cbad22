package replay

import (
	"fmt"
	"math/rand"

	"blackjack-lite/blackjack"
	"blackjack-lite/card"
)

type normalizedSpec struct {
	cfg     blackjack.Config
	actions []normalizedAction
}

type normalizedAction struct {
	hand   int
	action blackjack.Action
}

func normalizeSpec(spec RoundSpec) (normalizedSpec, error) {
	cfg := blackjack.DefaultConfig()
	if spec.Rules.DeckCount != 0 {
		cfg.DeckCount = spec.Rules.DeckCount
	}
	if spec.Rules.Penetration != 0 {
		cfg.Penetration = spec.Rules.Penetration
	}
	if spec.Rules.HitSoft17 != nil {
		cfg.DealerHitsSoft17 = *spec.Rules.HitSoft17
	}
	if spec.Rules.Mode != "" {
		cfg.Mode = blackjack.Mode(spec.Rules.Mode)
	}
	cfg.Seed = seedFromSpec(spec.RNG)
	if err := cfg.Validate(); err != nil {
		return normalizedSpec{}, &ReplayError{StepIndex: -1, Reason: "invalid_rules", Message: err.Error()}
	}

	deck, err := buildDeck(spec.Deck, cfg.DeckCount, cfg.Seed)
	if err != nil {
		return normalizedSpec{}, err
	}
	cfg.DeckOverride = deck

	ns := normalizedSpec{cfg: cfg}
	for i, a := range spec.Actions {
		action, err := blackjack.ParseAction(a.Type)
		if err != nil {
			return normalizedSpec{}, &ReplayError{StepIndex: int32(i), Reason: "invalid_action_type", Message: err.Error()}
		}
		if a.Hand < 0 || a.Hand >= blackjack.MaxPlayerHands {
			return normalizedSpec{}, &ReplayError{StepIndex: int32(i), Reason: "invalid_hand", Message: fmt.Sprintf("hand %d out of range", a.Hand)}
		}
		ns.actions = append(ns.actions, normalizedAction{hand: a.Hand, action: action})
	}
	return ns, nil
}

// buildDeck puts the given cards on top of the shoe and fills the rest with the
// remaining cards in seeded order.
func buildDeck(prefix []string, deckCount int, seed int64) ([]card.Card, error) {
	remaining := card.Decks(deckCount)
	head := make([]card.Card, 0, len(prefix))
	for i, s := range prefix {
		c, err := card.Parse(s)
		if err != nil {
			return nil, &ReplayError{StepIndex: -1, Reason: "invalid_deck_card", Message: fmt.Sprintf("deck[%d]: %v", i, err)}
		}
		idx := -1
		for j, rc := range remaining {
			if rc == c {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, &ReplayError{
				StepIndex: -1,
				Reason:    "invalid_deck",
				Message:   fmt.Sprintf("deck[%d]: %s used more than %d times", i, c, deckCount),
			}
		}
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		head = append(head, c)
	}
	remaining.Shuffle(rand.New(rand.NewSource(seed)))
	return append(head, remaining...), nil
}

// seedFromSpec never returns 0, which the engine reads as "seed from the clock".
func seedFromSpec(rng *RNGSpec) int64 {
	if rng == nil || rng.Seed == 0 {
		return 1
	}
	return rng.Seed
}
