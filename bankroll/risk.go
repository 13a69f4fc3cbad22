package bankroll

import "math"

// RiskOfRuin is the chance, in percent, of losing the whole bankroll for a game with
// the given hourly win rate and standard deviation. A losing or degenerate game is
// certain ruin.
func RiskOfRuin(bankroll, hourlyWinRate, hourlySD float64) float64 {
	if bankroll <= 0 || hourlyWinRate <= 0 || hourlySD <= 0 {
		return 100
	}
	return clamp01(math.Exp(-2*hourlyWinRate*bankroll/(hourlySD*hourlySD))) * 100
}

// RequiredBankroll inverts RiskOfRuin for a target risk in percent. No bankroll is
// enough for a losing game or a zero target, so those return +Inf.
func RequiredBankroll(targetRiskPct, hourlyWinRate, hourlySD float64) float64 {
	if hourlyWinRate <= 0 || targetRiskPct <= 0 {
		return math.Inf(1)
	}
	if targetRiskPct >= 100 {
		return 0
	}
	b := -math.Log(targetRiskPct/100) * hourlySD * hourlySD / (2 * hourlyWinRate)
	return math.Max(0, b)
}

// Session projects hourly figures over a number of hours.
type Session struct {
	Hours          float64
	ExpectedWin    float64
	SD             float64
	RiskOfRuin     float64
	LossChance1SD  float64
	BankrollNeeded float64
}

// Project combines the formulas for a bankroll planning view. targetRiskPct feeds
// BankrollNeeded.
func Project(bankroll, hourlyWinRate, hourlySD, hours, targetRiskPct float64) Session {
	s := Session{
		Hours:          hours,
		ExpectedWin:    hourlyWinRate * hours,
		SD:             hourlySD * math.Sqrt(math.Max(0, hours)),
		RiskOfRuin:     RiskOfRuin(bankroll, hourlyWinRate, hourlySD),
		BankrollNeeded: RequiredBankroll(targetRiskPct, hourlyWinRate, hourlySD),
	}
	if s.SD > 0 {
		// normal approximation of finishing below zero
		s.LossChance1SD = 50 * math.Erfc(s.ExpectedWin/(s.SD*math.Sqrt2))
	}
	return s
}
