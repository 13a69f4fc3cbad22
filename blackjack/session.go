package blackjack

import "time"

// Stats are the practice-session counters. They only grow until ResetStats.
type Stats struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	HandsPlayed int `json:"hands_played"`

	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pushes     int     `json:"pushes"`
	Blackjacks int     `json:"blackjacks"`
	NetUnits   float64 `json:"net_units"`
}

// Accuracy is the share of correct decisions in percent, 0 before any decision.
func (s Stats) Accuracy() float64 {
	n := s.Correct + s.Incorrect
	if n == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(n)
}

// Score rewards a correct decision with 100 and costs 50 per mistake.
func (s Stats) Score() int {
	return s.Correct*100 - s.Incorrect*50
}

func (s *Stats) grade(correct bool) {
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

func (s *Stats) record(o Outcome, units float64) {
	switch o {
	case OutcomeWin:
		s.Wins++
	case OutcomeLoss:
		s.Losses++
	case OutcomePush:
		s.Pushes++
	case OutcomeBlackjack:
		s.Blackjacks++
	}
	s.NetUnits += units
}

// SessionSummary is the record handed to the session store when a session ends.
type SessionSummary struct {
	SimulationType  Mode    `json:"simulation_type"`
	Accuracy        float64 `json:"accuracy"`
	CorrectCount    int     `json:"correct_count"`
	IncorrectCount  int     `json:"incorrect_count"`
	HandsPlayed     int     `json:"hands_played"`
	DurationSeconds int64   `json:"duration_seconds"`
	// Score is set for scored modes only.
	Score *int `json:"score,omitempty"`
}

func (m Mode) scored() bool {
	return m == ModeDeviations || m == ModeCounting
}

func summarize(mode Mode, s Stats, started, now time.Time) SessionSummary {
	sum := SessionSummary{
		SimulationType:  mode,
		Accuracy:        roundTenth(s.Accuracy()),
		CorrectCount:    s.Correct,
		IncorrectCount:  s.Incorrect,
		HandsPlayed:     s.HandsPlayed,
		DurationSeconds: int64(now.Sub(started) / time.Second),
	}
	if mode.scored() {
		score := s.Score()
		sum.Score = &score
	}
	return sum
}
