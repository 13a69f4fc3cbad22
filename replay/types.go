package replay

import "google.golang.org/protobuf/types/known/structpb"

// RoundSpec describes one round to replay: table rules, the cards the shoe starts
// with and the player's actions in order.
type RoundSpec struct {
	Rules   RulesSpec    `json:"rules"`
	Deck    []string     `json:"deck,omitempty"`
	Actions []ActionSpec `json:"actions"`
	RNG     *RNGSpec     `json:"rng,omitempty"`
}

// RulesSpec fields left zero take the engine defaults.
type RulesSpec struct {
	DeckCount   int     `json:"deck_count,omitempty"`
	Penetration float64 `json:"penetration,omitempty"`
	HitSoft17   *bool   `json:"hit_soft_17,omitempty"`
	Mode        string  `json:"mode,omitempty"`
}

type ActionSpec struct {
	Hand int    `json:"hand"`
	Type string `json:"type"`
}

type RNGSpec struct {
	Seed int64 `json:"seed"`
}

type Tape struct {
	TapeVersion int     `json:"tape_version"`
	RoundID     string  `json:"round_id"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type        string           `json:"type"`
	Seq         uint64           `json:"seq"`
	Value       *structpb.Struct `json:"value,omitempty"`
	EnvelopeB64 string           `json:"envelope_b64,omitempty"`
}
