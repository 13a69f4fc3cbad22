package main

import (
	"fmt"
	"math"

	"blackjack-lite/bankroll"
	"blackjack-lite/blackjack"
	"blackjack-lite/blackjack/bot"
)

type options struct {
	Profile      string
	ProfilesPath string
	Rounds       int
	Decks        int
	Penetration  float64
	HitSoft17    bool
	Seed         int64

	Bankroll      float64
	Unit          float64
	MaxBet        float64
	KellyFraction float64

	RoundsPerHour float64
	Hours         float64
	TargetRisk    float64
}

func defaultOptions() options {
	rules := blackjack.DefaultConfig()
	return options{
		Profile:       "counter",
		Rounds:        10000,
		Decks:         rules.DeckCount,
		Penetration:   rules.Penetration,
		HitSoft17:     rules.DealerHitsSoft17,
		Bankroll:      10000,
		Unit:          10,
		MaxBet:        200,
		KellyFraction: 0.5,
		RoundsPerHour: 100,
		Hours:         100,
		TargetRisk:    5,
	}
}

// rampBucket aggregates rounds dealt within one true-count band.
type rampBucket struct {
	Label    string
	Rounds   int
	TotalBet float64
	Result   float64
}

func (b rampBucket) AvgBet() float64 {
	if b.Rounds == 0 {
		return 0
	}
	return b.TotalBet / float64(b.Rounds)
}

var rampLabels = []string{"<= 0", "+1", "+2", "+3", "+4", ">= +5"}

func rampIndex(tc float64) int {
	switch {
	case tc < 1:
		return 0
	case tc >= 5:
		return len(rampLabels) - 1
	}
	return int(math.Floor(tc))
}

type report struct {
	Profile string
	Sim     bot.SimResult
	Ramp    []rampBucket

	StartBankroll float64
	EndBankroll   float64
	LowBankroll   float64
	MeanPerRound  float64
	SDPerRound    float64

	HourlyWinRate float64
	HourlySD      float64
	TargetRisk    float64
	Projection    bankroll.Session
}

// run plays the rounds, sizing each bet from the true count before the deal. Bets never
// drop below the table minimum.
func run(opts options, registry *bot.Registry) (report, error) {
	profile := registry.Get(opts.Profile)
	if profile == nil {
		return report{}, fmt.Errorf("unknown profile %q", opts.Profile)
	}

	cfg := blackjack.DefaultConfig()
	cfg.DeckCount = opts.Decks
	cfg.Penetration = opts.Penetration
	cfg.DealerHitsSoft17 = opts.HitSoft17
	cfg.Seed = opts.Seed
	cfg.Mode = blackjack.ModeBasic
	if profile.UsesDeviations {
		cfg.Mode = blackjack.ModeDeviations
	}
	g, err := blackjack.NewGame(cfg)
	if err != nil {
		return report{}, err
	}

	rep := report{
		Profile:       profile.Name,
		StartBankroll: opts.Bankroll,
		EndBankroll:   opts.Bankroll,
		LowBankroll:   opts.Bankroll,
		TargetRisk:    opts.TargetRisk,
		Ramp:          make([]rampBucket, len(rampLabels)),
	}
	for i, l := range rampLabels {
		rep.Ramp[i].Label = l
	}

	var sum, sumSq float64
	hook := func(_ int, tc float64, res *blackjack.SettlementResult) {
		bet := bankroll.BetFromTrueCount(rep.EndBankroll, tc, opts.Unit, opts.MaxBet, opts.KellyFraction).Bet
		if bet < opts.Unit {
			bet = opts.Unit
		}
		won := res.NetUnits * bet
		rep.EndBankroll += won
		rep.LowBankroll = math.Min(rep.LowBankroll, rep.EndBankroll)
		sum += won
		sumSq += won * won

		b := &rep.Ramp[rampIndex(tc)]
		b.Rounds++
		b.TotalBet += bet
		b.Result += won
	}

	sim, err := bot.Simulate(g, bot.NewRuleBrain(profile, opts.Seed), opts.Rounds, hook)
	if err != nil {
		return report{}, err
	}
	rep.Sim = sim

	n := float64(sim.Rounds)
	rep.MeanPerRound = sum / n
	rep.SDPerRound = math.Sqrt(math.Max(0, sumSq/n-rep.MeanPerRound*rep.MeanPerRound))
	rep.HourlyWinRate = rep.MeanPerRound * opts.RoundsPerHour
	rep.HourlySD = rep.SDPerRound * math.Sqrt(opts.RoundsPerHour)
	rep.Projection = bankroll.Project(opts.Bankroll, rep.HourlyWinRate, rep.HourlySD, opts.Hours, opts.TargetRisk)
	return rep, nil
}

func isInf(v float64) bool { return math.IsInf(v, 0) }
