package replay

import (
	"fmt"

	"blackjack-lite/blackjack"
)

const defaultRoundID = "replay_local"

// GenerateTape plays spec on a fresh engine and records every step. The same spec
// always yields the same tape.
func GenerateTape(spec RoundSpec) (*Tape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	game, err := blackjack.NewGame(ns.cfg)
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "engine_init_failed", Message: err.Error()}
	}

	builder := newTapeBuilder(defaultRoundID)
	builder.push("roundStart", map[string]any{
		"deck_count":  ns.cfg.DeckCount,
		"penetration": ns.cfg.Penetration,
		"hit_soft_17": ns.cfg.DealerHitsSoft17,
		"mode":        string(ns.cfg.Mode),
	})

	settlement, err := game.StartRound()
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "start_round_failed", Message: err.Error()}
	}
	snap := game.Snapshot()
	builder.addDeal(snap)
	if settlement != nil {
		builder.addSettlement(settlement)
	} else {
		builder.addPrompt(snap)
	}

	for stepIdx, action := range ns.actions {
		before := game.Snapshot()
		if before.Phase != blackjack.PhasePlayerTurn {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "no_action_expected",
				Message:   "round is already settled; no further actions are allowed",
			}
		}
		if before.ActiveHand != action.hand {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "out_of_turn",
				Message:   fmt.Sprintf("expected hand %d, got %d", before.ActiveHand, action.hand),
				Expected:  expectedState(before),
			}
		}
		if !isLegalAction(before.LegalActions, action.action) {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "illegal_action",
				Message:   fmt.Sprintf("action %s is not legal for hand %d", action.action, action.hand),
				Expected:  expectedState(before),
			}
		}

		d, result, err := game.Act(action.action)
		if err != nil {
			return nil, &ReplayError{
				StepIndex: int32(stepIdx),
				Reason:    "action_apply_failed",
				Message:   err.Error(),
				Expected:  expectedState(before),
			}
		}

		after := game.Snapshot()
		builder.push("decision", map[string]any{
			"hand":           d.HandIndex,
			"action":         d.Chosen.String(),
			"recommendation": RecommendationValue(d.Recommended),
			"correct":        d.Correct,
			"feedback":       d.Feedback,
			"hands":          HandsValue(after.Hands),
		})
		if result != nil {
			builder.addSettlement(result)
			continue
		}
		builder.addPrompt(after)
	}

	if game.Phase() != blackjack.PhaseSettled {
		return nil, &ReplayError{
			StepIndex: int32(len(ns.actions)),
			Reason:    "incomplete_round",
			Message:   "actions ran out before the round settled",
			Expected:  expectedState(game.Snapshot()),
		}
	}
	if builder.err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "encode_failed", Message: builder.err.Error()}
	}

	return &Tape{
		TapeVersion: 1,
		RoundID:     builder.roundID,
		Events:      builder.events,
	}, nil
}

func isLegalAction(legal []blackjack.Action, action blackjack.Action) bool {
	for _, a := range legal {
		if a == action {
			return true
		}
	}
	return false
}

func expectedState(s blackjack.Snapshot) *ExpectedState {
	out := &ExpectedState{
		ActiveHand:   s.ActiveHand,
		LegalActions: actionNames(s.LegalActions),
		Phase:        s.Phase.String(),
	}
	if s.Recommendation != nil {
		out.Recommended = s.Recommendation.Action.String()
	}
	return out
}

type tapeBuilder struct {
	roundID string
	seq     uint64
	events  []Event
	err     error
}

func newTapeBuilder(roundID string) *tapeBuilder {
	return &tapeBuilder{
		roundID: roundID,
		events:  make([]Event, 0, 16),
	}
}

func (b *tapeBuilder) push(typ string, fields map[string]any) {
	if b.err != nil {
		return
	}
	st, b64, err := EncodeEvent(fields)
	if err != nil {
		b.err = fmt.Errorf("%s event: %w", typ, err)
		return
	}
	b.seq++
	b.events = append(b.events, Event{
		Type:        typ,
		Seq:         b.seq,
		Value:       st,
		EnvelopeB64: b64,
	})
}

func (b *tapeBuilder) addDeal(s blackjack.Snapshot) {
	b.push("deal", map[string]any{
		"round":         int64(s.Round),
		"player_cards":  CardsValue(s.Hands[0].Cards),
		"dealer_cards":  CardsValue(s.DealerCards),
		"dealer_total":  s.DealerTotal,
		"running_count": s.RunningCount,
		"true_count":    s.TrueCount,
	})
}

func (b *tapeBuilder) addPrompt(s blackjack.Snapshot) {
	if s.Recommendation == nil {
		return
	}
	h := s.Hands[s.ActiveHand]
	b.push("prompt", map[string]any{
		"hand":           s.ActiveHand,
		"cards":          CardsValue(h.Cards),
		"total":          h.Total,
		"soft":           h.Soft,
		"legal_actions":  ActionsValue(s.LegalActions),
		"recommendation": RecommendationValue(*s.Recommendation),
	})
}

func (b *tapeBuilder) addSettlement(res *blackjack.SettlementResult) {
	b.push("settle", SettlementValue(res))
}
