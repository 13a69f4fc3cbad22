package bot

import (
	"math/rand"

	"blackjack-lite/blackjack"
)

// RuleBrain plays from a Profile: basic strategy or the count-aware play, with a
// seeded chance of a mistake.
type RuleBrain struct {
	Profile *Profile
	rng     *rand.Rand
}

func NewRuleBrain(profile *Profile, seed int64) *RuleBrain {
	return &RuleBrain{
		Profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return b.Profile.Name }

// Decide implements Brain.
func (b *RuleBrain) Decide(view View) blackjack.Action {
	legal := view.LegalActions
	if len(legal) == 0 {
		return blackjack.ActionStand
	}

	rec := view.Recommendation
	want := rec.Basic
	if b.Profile.UsesDeviations {
		want = blackjack.RecommendWithCount(view.Hand, view.Upcard, view.TrueCount, rec.Basic, rec.CanDouble, rec.CanSplit)
	}
	if !contains(legal, want) {
		want = blackjack.ActionStand
	}

	if b.Profile.MistakeRate > 0 && b.rng.Float64() < b.Profile.MistakeRate {
		others := make([]blackjack.Action, 0, len(legal))
		for _, a := range legal {
			if a != want {
				others = append(others, a)
			}
		}
		if len(others) > 0 {
			return others[b.rng.Intn(len(others))]
		}
	}
	return want
}

// PerfectBrain always plays the engine's recommendation.
type PerfectBrain struct{}

func (PerfectBrain) Name() string { return "Perfect" }

func (PerfectBrain) Decide(view View) blackjack.Action {
	return view.Recommendation.Action
}

func contains(actions []blackjack.Action, target blackjack.Action) bool {
	for _, a := range actions {
		if a == target {
			return true
		}
	}
	return false
}
