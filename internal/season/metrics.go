// Package season folds per-game box-score rows into season-level player
// and team aggregates and computes derived efficiency metrics.
package season

import "math"

// MetricTotals is the counting-stat snapshot the metric functions
// operate on. All functions are pure: identical inputs always yield
// identical outputs, and zero denominators yield the documented
// fallbacks rather than a runtime failure.
type MetricTotals struct {
	Points         int
	FGMade         int
	FGAttempted    int
	ThreeMade      int
	ThreeAttempted int
	FTMade         int
	FTAttempted    int
	Rebounds       int
	Assists        int
	Steals         int
	Blocks         int
	Turnovers      int
	Games          int
}

// TrueShooting returns TS% = points / (2 * (FGA + 0.44*FTA)) * 100,
// or 0 when the denominator is 0.
func TrueShooting(t MetricTotals) float64 {
	denom := 2 * (float64(t.FGAttempted) + 0.44*float64(t.FTAttempted))
	if denom == 0 {
		return 0
	}
	return float64(t.Points) / denom * 100
}

// EffectiveFG returns eFG% = (FGM + 0.5*3PM) / FGA * 100, or 0 when FGA
// is 0.
func EffectiveFG(t MetricTotals) float64 {
	if t.FGAttempted == 0 {
		return 0
	}
	return (float64(t.FGMade) + 0.5*float64(t.ThreeMade)) / float64(t.FGAttempted) * 100
}

// AssistTurnover returns the assist-to-turnover ratio. When turnovers is
// 0 and assists > 0 the ratio is undefined (infinite) and the second
// return is false. When both are 0 the ratio is 0 and defined.
func AssistTurnover(assists, turnovers int) (ratio float64, defined bool) {
	if turnovers == 0 {
		if assists == 0 {
			return 0, true
		}
		return 0, false
	}
	return float64(assists) / float64(turnovers), true
}

// FreeThrowRate returns FTA / FGA, or 0 when FGA is 0.
func FreeThrowRate(t MetricTotals) float64 {
	if t.FGAttempted == 0 {
		return 0
	}
	return float64(t.FTAttempted) / float64(t.FGAttempted)
}

// GameScore returns the season-average Game Score. The 0.5 rebound
// weight stands in for the canonical 0.7 offensive / 0.3 defensive split
// because the source data carries only combined rebounds; preserve the
// approximation rather than correcting it.
func GameScore(t MetricTotals) float64 {
	if t.Games == 0 {
		return 0
	}
	total := float64(t.Points) +
		0.4*float64(t.FGMade) -
		0.7*float64(t.FGAttempted) -
		0.4*float64(t.FTAttempted-t.FTMade) +
		0.5*float64(t.Rebounds) +
		float64(t.Steals) +
		0.7*float64(t.Assists) +
		0.7*float64(t.Blocks) -
		float64(t.Turnovers)
	return total / float64(t.Games)
}

// Ratings returns the simplified offensive, defensive, and net ratings:
// points scored per game, points allowed per game, and their difference.
// These are points-per-game proxies, not possession-normalized ratings.
func Ratings(points, pointsAllowed, games int) (off, def, net float64) {
	if games == 0 {
		return 0, 0, 0
	}
	off = float64(points) / float64(games)
	def = float64(pointsAllowed) / float64(games)
	return off, def, off - def
}

// ShootingPct returns made/attempted as a percentage, or 0 when
// attempted is 0.
func ShootingPct(made, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(made) / float64(attempted) * 100
}

// Round1 rounds to one decimal place for display. Internal accumulation
// always uses the unrounded running sums.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places, used for ratio-scale outputs.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func perGame(total, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(total) / float64(games)
}
