// Command bjsim plays practice rounds with a bot profile and reports accuracy, results
// and what a count-based bet ramp would have done to a bankroll.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"blackjack-lite/blackjack/bot"

	"github.com/pterm/pterm"
)

func main() {
	opts := defaultOptions()
	flag.StringVar(&opts.Profile, "profile", opts.Profile, "bot profile id")
	flag.StringVar(&opts.ProfilesPath, "profiles", "", "JSON file with extra bot profiles")
	flag.IntVar(&opts.Rounds, "rounds", opts.Rounds, "rounds to play")
	flag.IntVar(&opts.Decks, "decks", opts.Decks, "decks in the shoe (1-8)")
	flag.Float64Var(&opts.Penetration, "penetration", opts.Penetration, "fraction of the shoe dealt before the cut (0.5-0.9)")
	flag.BoolVar(&opts.HitSoft17, "h17", opts.HitSoft17, "dealer hits soft 17")
	flag.Int64Var(&opts.Seed, "seed", 0, "rng seed (0 = time based)")
	flag.Float64Var(&opts.Bankroll, "bankroll", opts.Bankroll, "starting bankroll")
	flag.Float64Var(&opts.Unit, "unit", opts.Unit, "table minimum and bet rounding unit")
	flag.Float64Var(&opts.MaxBet, "max-bet", opts.MaxBet, "table maximum")
	flag.Float64Var(&opts.KellyFraction, "kelly", opts.KellyFraction, "fraction of the Kelly bet to wager")
	flag.Float64Var(&opts.RoundsPerHour, "rph", opts.RoundsPerHour, "rounds per hour for the risk projection")
	flag.Float64Var(&opts.Hours, "hours", opts.Hours, "hours to project")
	flag.Float64Var(&opts.TargetRisk, "target-risk", opts.TargetRisk, "acceptable risk of ruin in percent")
	flag.Parse()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	registry := bot.NewRegistry()
	if opts.ProfilesPath != "" {
		if err := registry.LoadFromFile(opts.ProfilesPath); err != nil {
			logger.Error("load profiles", "path", opts.ProfilesPath, "err", err)
			os.Exit(1)
		}
	}

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d rounds as %s", opts.Rounds, opts.Profile))
	rep, err := run(opts, registry)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
	if spinner != nil {
		spinner.Success("Done")
	}
	render(rep)
}

func render(rep report) {
	pterm.DefaultSection.Println("Play")
	_ = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Profile", "Rounds", "Hands", "Accuracy", "Wins", "Losses", "Pushes", "Blackjacks", "Net units", "Reshuffles"},
		{
			rep.Profile,
			fmt.Sprint(rep.Sim.Rounds),
			fmt.Sprint(rep.Sim.Stats.HandsPlayed),
			fmt.Sprintf("%.1f%%", rep.Sim.Stats.Accuracy()),
			fmt.Sprint(rep.Sim.Stats.Wins),
			fmt.Sprint(rep.Sim.Stats.Losses),
			fmt.Sprint(rep.Sim.Stats.Pushes),
			fmt.Sprint(rep.Sim.Stats.Blackjacks),
			fmt.Sprintf("%+.1f", rep.Sim.Stats.NetUnits),
			fmt.Sprint(rep.Sim.Reshuffles),
		},
	}).Render()

	pterm.DefaultSection.Println("Bet ramp by true count")
	ramp := pterm.TableData{{"True count", "Rounds", "Avg bet", "Result"}}
	for _, b := range rep.Ramp {
		ramp = append(ramp, []string{
			b.Label,
			fmt.Sprint(b.Rounds),
			fmt.Sprintf("%.2f", b.AvgBet()),
			fmt.Sprintf("%+.2f", b.Result),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(ramp).Render()

	resultColor := pterm.LightGreen
	if rep.EndBankroll < rep.StartBankroll {
		resultColor = pterm.LightRed
	}
	bankBox := pterm.Sprintfln("Start     %.2f", rep.StartBankroll) +
		pterm.Sprintfln("End       %s", resultColor(fmt.Sprintf("%.2f", rep.EndBankroll))) +
		pterm.Sprintfln("Low       %.2f", rep.LowBankroll) +
		pterm.Sprintfln("Per round %+.3f (sd %.2f)", rep.MeanPerRound, rep.SDPerRound)

	p := rep.Projection
	needed := "unbounded"
	if !isInf(p.BankrollNeeded) {
		needed = fmt.Sprintf("%.0f", p.BankrollNeeded)
	}
	riskBox := pterm.Sprintfln("Hourly win   %+.2f", rep.HourlyWinRate) +
		pterm.Sprintfln("Hourly sd    %.2f", rep.HourlySD) +
		pterm.Sprintfln("Risk of ruin %.2f%%", p.RiskOfRuin) +
		pterm.Sprintfln("%.0fh expect %+.2f (sd %.2f)", p.Hours, p.ExpectedWin, p.SD) +
		pterm.Sprintfln("Bankroll for %.1f%% risk: %s", rep.TargetRisk, needed)

	panels := pterm.Panels{{
		{Data: pterm.DefaultBox.WithTitle(pterm.LightYellow("|BANKROLL|")).WithTitleTopCenter().Sprint(bankBox)},
		{Data: pterm.DefaultBox.WithTitle(pterm.LightCyan("|RISK|")).WithTitleTopCenter().Sprint(riskBox)},
	}}
	_ = pterm.DefaultPanel.WithPanels(panels).Render()
}
