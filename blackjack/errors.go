package blackjack

import (
	"errors"
	"fmt"
)

var (
	ErrRoundInProgress = errors.New("round already in progress")
	ErrNoActiveRound   = errors.New("no hand is waiting for a decision")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }

// InvalidActionError rejects an action whose preconditions are not met. The round is
// left untouched.
type InvalidActionError struct {
	Action Action
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %s: %s", e.Action, e.Reason)
}

// CountInputError is returned for a count check that is not a whole number.
type CountInputError struct {
	Input string
}

func (e *CountInputError) Error() string {
	return fmt.Sprintf("count must be a whole number, got %q", e.Input)
}
