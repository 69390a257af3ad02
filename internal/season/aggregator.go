package season

import (
	"sort"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/statparse"
)

// playerKey identifies one accumulator. A player recorded under two team
// values (mid-season transfer, inconsistent naming) accumulates into two
// separate aggregates; no fuzzy name matching is applied.
type playerKey struct {
	name string
	team string
}

// PlayerAggregator folds PlayerGameStat rows into one
// SeasonPlayerTotals per (player name, team). The accumulator is owned
// by a single season-processing invocation; it is not shared across
// calls or goroutines.
type PlayerAggregator struct {
	seasonID string
	totals   map[playerKey]*model.SeasonPlayerTotals
	order    []playerKey
}

// NewPlayerAggregator creates an empty aggregator for one season.
func NewPlayerAggregator(seasonID string) *PlayerAggregator {
	return &PlayerAggregator{
		seasonID: seasonID,
		totals:   make(map[playerKey]*model.SeasonPlayerTotals),
	}
}

// Add folds one box-score line into the matching aggregate, creating it
// on first sighting of the (player, team) key. Aggregation is
// commutative: row order does not affect the result.
func (a *PlayerAggregator) Add(row model.PlayerGameStat) {
	key := playerKey{name: row.Name, team: row.Team}
	agg, ok := a.totals[key]
	if !ok {
		agg = &model.SeasonPlayerTotals{
			SeasonID: a.seasonID,
			Name:     row.Name,
			Team:     row.Team,
		}
		a.totals[key] = agg
		a.order = append(a.order, key)
	}

	agg.Games++
	agg.Minutes += row.Minutes
	agg.Points += row.Points
	agg.Rebounds += row.Rebounds
	agg.Assists += row.Assists
	agg.Steals += row.Steals
	agg.Blocks += row.Blocks
	agg.Turnovers += row.Turnovers
	agg.Fouls += row.Fouls

	fgm, fga := statparse.ParseCompoundStat(row.FieldGoals)
	agg.FGMade += fgm
	agg.FGAttempted += fga

	tpm, tpa := statparse.ParseCompoundStat(row.ThreePointers)
	agg.ThreeMade += tpm
	agg.ThreeAttempted += tpa

	ftm, fta := statparse.ParseCompoundStat(row.FreeThrows)
	agg.FTMade += ftm
	agg.FTAttempted += fta
}

// Finalize computes every derived average and advanced metric from the
// current totals and returns the aggregates sorted descending by season
// total points. Derived values are always recomputed from totals, never
// incrementally averaged, so repeated folding never compounds rounding
// error.
func (a *PlayerAggregator) Finalize() []model.SeasonPlayerTotals {
	out := make([]model.SeasonPlayerTotals, 0, len(a.order))
	for _, key := range a.order {
		agg := *a.totals[key]
		computePlayerDerived(&agg)
		out = append(out, agg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

func computePlayerDerived(agg *model.SeasonPlayerTotals) {
	mt := MetricTotals{
		Points:         agg.Points,
		FGMade:         agg.FGMade,
		FGAttempted:    agg.FGAttempted,
		ThreeMade:      agg.ThreeMade,
		ThreeAttempted: agg.ThreeAttempted,
		FTMade:         agg.FTMade,
		FTAttempted:    agg.FTAttempted,
		Rebounds:       agg.Rebounds,
		Assists:        agg.Assists,
		Steals:         agg.Steals,
		Blocks:         agg.Blocks,
		Turnovers:      agg.Turnovers,
		Games:          agg.Games,
	}

	agg.MPG = Round1(perGame(agg.Minutes, agg.Games))
	agg.PPG = Round1(perGame(agg.Points, agg.Games))
	agg.RPG = Round1(perGame(agg.Rebounds, agg.Games))
	agg.APG = Round1(perGame(agg.Assists, agg.Games))
	agg.SPG = Round1(perGame(agg.Steals, agg.Games))
	agg.BPG = Round1(perGame(agg.Blocks, agg.Games))
	agg.TPG = Round1(perGame(agg.Turnovers, agg.Games))
	agg.FPG = Round1(perGame(agg.Fouls, agg.Games))

	agg.FGPct = Round1(ShootingPct(agg.FGMade, agg.FGAttempted))
	agg.ThreePct = Round1(ShootingPct(agg.ThreeMade, agg.ThreeAttempted))
	agg.FTPct = Round1(ShootingPct(agg.FTMade, agg.FTAttempted))
	agg.EFGPct = Round1(EffectiveFG(mt))
	agg.TSPct = Round1(TrueShooting(mt))
	agg.FTRate = Round2(FreeThrowRate(mt))

	ratio, defined := AssistTurnover(agg.Assists, agg.Turnovers)
	agg.AstToRatio = Round2(ratio)
	agg.AstToDefined = defined

	agg.GameScore = Round1(GameScore(mt))
}
