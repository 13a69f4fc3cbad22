package blackjack

import (
	"fmt"

	"blackjack-lite/card"
)

// Recommendation is the optimal play served for the active hand.
type Recommendation struct {
	Action    Action
	Basic     Action
	Deviation *Deviation
	TrueCount float64
	CanDouble bool
	CanSplit  bool
}

// Decision is a graded player action.
type Decision struct {
	HandIndex   int
	Hand        []card.Card
	Upcard      card.Card
	Chosen      Action
	Recommended Recommendation
	Correct     bool
	Feedback    string
}

func feedbackText(d Decision) string {
	situation := fmt.Sprintf("%s vs %s", describeHand(d.Hand, d.Recommended.CanSplit), upcardName(d.Upcard))
	rec := d.Recommended.Action

	var msg string
	if d.Correct {
		msg = fmt.Sprintf("Correct! %s is the right play with %s.", rec.Title(), situation)
	} else {
		msg = fmt.Sprintf("Incorrect. You chose %s; the optimal play with %s is %s.", d.Chosen.Title(), situation, rec.Title())
	}
	if dev := d.Recommended.Deviation; dev != nil {
		msg += fmt.Sprintf(" Count deviation %s applies at true count %+.1f (basic strategy: %s).",
			dev.Name, d.Recommended.TrueCount, d.Recommended.Basic.Title())
	}
	return msg
}

// CountCheck is the result of a running-count quiz.
type CountCheck struct {
	Entered  int
	Actual   int
	Correct  bool
	Feedback string
}

func countFeedback(c CountCheck) string {
	if c.Correct {
		return fmt.Sprintf("Correct! The running count is %+d.", c.Actual)
	}
	return fmt.Sprintf("Incorrect. You entered %+d; the running count is %+d.", c.Entered, c.Actual)
}
