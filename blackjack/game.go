package blackjack

import (
	"math/rand"
	"sync"
	"time"

	"blackjack-lite/card"
)

// Game is one practice table: a shoe, its count, the current round and the session
// counters. All methods are serialized on the game mutex, so overlapping calls queue
// instead of interleaving draws.
type Game struct {
	cfg    Config
	rng    *rand.Rand
	dealer Dealer
	now    func() time.Time

	mu sync.Mutex

	counter Counter
	shoe    *Shoe

	// round state
	round        uint32
	phase        Phase
	dealerCards  card.CardList
	holeRevealed bool
	hands        []*PlayerHand
	active       int
	rec          *Recommendation

	decisions      []Decision
	lastSettlement *SettlementResult

	stats     Stats
	startedAt time.Time
}

func NewGame(cfg Config) (*Game, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		dealer: Dealer{HitSoft17: cfg.DealerHitsSoft17},
		now:    time.Now,
		phase:  PhaseNotStarted,
	}
	g.shoe = newShoe(cfg.DeckCount, cfg.Penetration, g.rng, &g.counter, cfg.DeckOverride)
	g.startedAt = g.now()
	return g, nil
}

func (g *Game) Config() Config { return g.cfg }

func (g *Game) inRound() bool {
	return g.phase == PhaseDealing || g.phase == PhasePlayerTurn || g.phase == PhaseDealerTurn
}

// StartRound deals two cards each. A natural on either side settles the round at once
// and the settlement is returned; otherwise the player is to act and the result is nil.
func (g *Game) StartRound() (*SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inRound() {
		return nil, ErrRoundInProgress
	}

	g.shoe.BeginRound()
	g.round++
	g.phase = PhaseDealing
	g.dealerCards = nil
	g.holeRevealed = false
	g.hands = []*PlayerHand{{}}
	g.active = 0
	g.rec = nil
	g.decisions = nil
	g.lastSettlement = nil

	player := g.hands[0]
	player.cards.Add(g.shoe.Draw())
	g.dealerCards.Add(g.shoe.Draw())
	player.cards.Add(g.shoe.Draw())
	g.dealerCards.Add(g.shoe.Draw())

	dealerNatural := IsBlackjack(g.dealerCards)
	playerNatural := player.Natural()
	if dealerNatural || playerNatural {
		g.holeRevealed = true
		player.complete = true
		switch {
		case dealerNatural && playerNatural:
			player.outcome = OutcomePush
		case dealerNatural:
			player.outcome = OutcomeLoss
		default:
			player.outcome = OutcomeBlackjack
		}
		return g.settle(), nil
	}

	g.phase = PhasePlayerTurn
	g.refreshRecommendation()
	return nil, nil
}

// Act applies an action to the active hand and grades it against the recommendation.
// An action whose preconditions fail returns *InvalidActionError and changes nothing.
// When the action finishes the player's turn the dealer plays and the settlement is
// returned.
func (g *Game) Act(action Action) (*Decision, *SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlayerTurn {
		return nil, nil, ErrNoActiveRound
	}
	h := g.hands[g.active]
	if h.complete || g.rec == nil {
		return nil, nil, ErrInvalidState("active hand already complete")
	}

	switch action {
	case ActionHit, ActionStand:
	case ActionDouble:
		if !h.canDouble() {
			return nil, nil, &InvalidActionError{Action: action, Reason: "double needs exactly two cards"}
		}
	case ActionSplit:
		if !IsPair(h.cards) || !h.canDouble() {
			return nil, nil, &InvalidActionError{Action: action, Reason: "split needs a pair on the first decision"}
		}
		if len(g.hands) >= g.cfg.MaxHands {
			return nil, nil, &InvalidActionError{Action: action, Reason: "hand limit reached"}
		}
	default:
		return nil, nil, &InvalidActionError{Action: action, Reason: "unknown action"}
	}

	d := Decision{
		HandIndex:   g.active,
		Hand:        h.Cards(),
		Upcard:      g.dealerCards[0],
		Chosen:      action,
		Recommended: *g.rec,
		Correct:     action == g.rec.Action,
	}
	d.Feedback = feedbackText(d)
	g.stats.grade(d.Correct)
	g.decisions = append(g.decisions, d)

	switch action {
	case ActionHit:
		h.cards.Add(g.shoe.Draw())
		if v := h.Value(); v.Bust() || v.Total == 21 {
			h.complete = true
		}
	case ActionStand:
		h.complete = true
	case ActionDouble:
		h.cards.Add(g.shoe.Draw())
		h.doubled = true
		h.complete = true
	case ActionSplit:
		g.split()
	}

	for g.active < len(g.hands) && g.hands[g.active].complete {
		g.active++
	}
	if g.active < len(g.hands) {
		g.refreshRecommendation()
		return &d, nil, nil
	}
	return &d, g.playDealer(), nil
}

// split turns the active pair into two hands and deals one card to each, left first.
func (g *Game) split() {
	h := g.hands[g.active]
	second := &PlayerHand{fromSplit: true}
	second.cards.Add(h.cards[1])
	h.cards = card.CardList{h.cards[0]}
	h.fromSplit = true

	hands := make([]*PlayerHand, 0, len(g.hands)+1)
	hands = append(hands, g.hands[:g.active+1]...)
	hands = append(hands, second)
	hands = append(hands, g.hands[g.active+1:]...)
	g.hands = hands

	for _, sh := range []*PlayerHand{h, second} {
		sh.cards.Add(g.shoe.Draw())
		if sh.Value().Total == 21 {
			sh.complete = true
		}
	}
}

// playDealer reveals the hole card, draws for the dealer while a player hand is live
// and settles the round.
func (g *Game) playDealer() *SettlementResult {
	g.phase = PhaseDealerTurn
	g.rec = nil
	g.holeRevealed = true

	live := false
	for _, h := range g.hands {
		if !h.Value().Bust() {
			live = true
			break
		}
	}
	if live {
		g.dealerCards = g.dealer.Play(g.dealerCards, g.shoe.Draw)
	}

	dv := Evaluate(g.dealerCards)
	for _, h := range g.hands {
		h.outcome = resolve(h, dv)
	}
	return g.settle()
}

func (g *Game) refreshRecommendation() {
	h := g.hands[g.active]
	upcard := g.dealerCards[0]
	canDouble := h.canDouble()
	canSplit := h.canSplit(len(g.hands), g.cfg.MaxHands)

	basic := Recommend(h.cards, upcard, canDouble, canSplit)
	rec := &Recommendation{
		Action:    basic,
		Basic:     basic,
		CanDouble: canDouble,
		CanSplit:  canSplit,
	}
	if g.cfg.Mode.usesCount() {
		rec.TrueCount = g.shoe.TrueCount()
		if dev, ok := MatchDeviation(h.cards, upcard, rec.TrueCount, basic, canDouble, canSplit); ok {
			rec.Action = dev.Action
			rec.Deviation = &dev
		}
	}
	g.rec = rec
}

// Recommendation returns the optimal play for the active hand.
func (g *Game) Recommendation() (Recommendation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.rec == nil {
		return Recommendation{}, false
	}
	return *g.rec, true
}

// LegalActions lists what the active hand may do, empty outside the player turn.
func (g *Game) LegalActions() []Action {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.legalActions()
}

func (g *Game) legalActions() []Action {
	if g.phase != PhasePlayerTurn || g.active >= len(g.hands) {
		return nil
	}
	h := g.hands[g.active]
	out := []Action{ActionHit, ActionStand}
	if h.canDouble() {
		out = append(out, ActionDouble)
	}
	if h.canSplit(len(g.hands), g.cfg.MaxHands) {
		out = append(out, ActionSplit)
	}
	return out
}

// RunningCount is the Hi-Lo count of every card dealt since the shuffle, the hole card
// included.
func (g *Game) RunningCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter.RunningCount()
}

func (g *Game) TrueCount() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shoe.TrueCount()
}

// visibleCount leaves out the hole card until it is turned over.
func (g *Game) visibleCount() int {
	rc := g.counter.RunningCount()
	if !g.holeRevealed && len(g.dealerCards) > 1 {
		rc -= g.dealerCards[1].HiLo()
	}
	return rc
}

// CheckCount grades a player's running-count guess against the cards they have seen.
// Input that is not a whole number returns *CountInputError and is not graded.
func (g *Game) CheckCount(raw string) (CountCheck, error) {
	entered, err := ParseCountInput(raw)
	if err != nil {
		return CountCheck{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c := CountCheck{Entered: entered, Actual: g.visibleCount()}
	c.Correct = c.Entered == c.Actual
	c.Feedback = countFeedback(c)
	g.stats.grade(c.Correct)
	return c, nil
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// Decisions returns the graded actions of the current or last round.
func (g *Game) Decisions() []Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Decision(nil), g.decisions...)
}

func (g *Game) LastSettlement() *SettlementResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSettlement
}

// ResetStats clears the session counters and restarts the session clock. The shoe and
// the count are kept.
func (g *Game) ResetStats() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats = Stats{}
	g.startedAt = g.now()
}

// Summary builds the session record for the store.
func (g *Game) Summary() SessionSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return summarize(g.cfg.Mode, g.stats, g.startedAt, g.now())
}
