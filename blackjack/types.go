package blackjack

import (
	"fmt"
	"strings"
)

// MaxPlayerHands caps the number of hands a round can split into.
const MaxPlayerHands = 4

// Phase is the round lifecycle stage.
type Phase byte

const (
	PhaseNotStarted Phase = 0
	PhaseDealing    Phase = 1
	PhasePlayerTurn Phase = 2
	PhaseDealerTurn Phase = 3
	PhaseSettled    Phase = 4
)

var PhaseDictionary = map[Phase]string{
	PhaseNotStarted: "not_started",
	PhaseDealing:    "dealing",
	PhasePlayerTurn: "player_turn",
	PhaseDealerTurn: "dealer_turn",
	PhaseSettled:    "settled",
}

func (p Phase) String() string {
	if s, ok := PhaseDictionary[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", byte(p))
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Action is a player decision: 0-NONE 1-HIT 2-STAND 3-DOUBLE 4-SPLIT
type Action byte

const (
	ActionNone   Action = 0
	ActionHit    Action = 1
	ActionStand  Action = 2
	ActionDouble Action = 3
	ActionSplit  Action = 4
)

var ActionDictionary = map[Action]string{
	ActionNone:   "none",
	ActionHit:    "hit",
	ActionStand:  "stand",
	ActionDouble: "double",
	ActionSplit:  "split",
}

func (a Action) String() string {
	if s, ok := ActionDictionary[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", byte(a))
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Title is the capitalised form used in feedback text.
func (a Action) Title() string {
	s := a.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseAction accepts the dictionary names (case-insensitive) plus "stay".
func ParseAction(raw string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hit":
		return ActionHit, nil
	case "stand", "stay":
		return ActionStand, nil
	case "double", "double_down":
		return ActionDouble, nil
	case "split":
		return ActionSplit, nil
	default:
		return ActionNone, fmt.Errorf("unknown action %q", raw)
	}
}

// Outcome is the terminal result of one player hand.
type Outcome byte

const (
	OutcomeNone      Outcome = 0
	OutcomeWin       Outcome = 1
	OutcomeLoss      Outcome = 2
	OutcomePush      Outcome = 3
	OutcomeBlackjack Outcome = 4
)

var OutcomeDictionary = map[Outcome]string{
	OutcomeNone:      "none",
	OutcomeWin:       "win",
	OutcomeLoss:      "loss",
	OutcomePush:      "push",
	OutcomeBlackjack: "blackjack",
}

func (o Outcome) String() string {
	if s, ok := OutcomeDictionary[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", byte(o))
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Mode selects how recommendations are produced and what the session records as its
// simulation type.
type Mode string

const (
	// ModeBasic ignores the count entirely.
	ModeBasic Mode = "basic_strategy"
	// ModeDeviations layers count deviations over basic strategy.
	ModeDeviations Mode = "deviations"
	// ModeCounting is ModeDeviations plus running-count checks.
	ModeCounting Mode = "counting"
)

func (m Mode) valid() bool {
	switch m {
	case ModeBasic, ModeDeviations, ModeCounting:
		return true
	}
	return false
}

func (m Mode) usesCount() bool {
	return m == ModeDeviations || m == ModeCounting
}
