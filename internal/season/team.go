package season

import (
	"sort"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/statparse"
)

// TeamSeasonBuilder folds team-level per-game stat lines plus win/loss
// results into one season summary per team. The subject team is flagged
// so consumers can render it apart from opponents; opponents stay one
// row per distinct team, never merged.
type TeamSeasonBuilder struct {
	seasonID    string
	subjectTeam string
	totals      map[string]*model.TeamSeasonTotals
	order       []string
	results     map[gameTeamKey]model.TeamGameResult
}

type gameTeamKey struct {
	gameID string
	team   string
}

// NewTeamSeasonBuilder creates an empty builder for one season.
// subjectTeam names the tracked program.
func NewTeamSeasonBuilder(seasonID, subjectTeam string) *TeamSeasonBuilder {
	return &TeamSeasonBuilder{
		seasonID:    seasonID,
		subjectTeam: subjectTeam,
		totals:      make(map[string]*model.TeamSeasonTotals),
		results:     make(map[gameTeamKey]model.TeamGameResult),
	}
}

// AddResults registers game outcomes so AddTotal can attribute wins,
// losses, and points allowed. Call before folding stat lines for the
// matching games; results for unknown games are simply never matched.
func (b *TeamSeasonBuilder) AddResults(results []model.TeamGameResult) {
	for _, r := range results {
		b.results[gameTeamKey{gameID: r.GameID, team: r.Team}] = r
	}
}

// AddTotal folds one team's box-score totals for one game.
func (b *TeamSeasonBuilder) AddTotal(row model.TeamGameTotal) {
	agg, ok := b.totals[row.Team]
	if !ok {
		agg = &model.TeamSeasonTotals{
			SeasonID: b.seasonID,
			Team:     row.Team,
			Subject:  row.Team == b.subjectTeam,
		}
		b.totals[row.Team] = agg
		b.order = append(b.order, row.Team)
	}

	agg.Games++
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

	if result, ok := b.results[gameTeamKey{gameID: row.GameID, team: row.Team}]; ok {
		agg.PointsAllowed += result.PointsAgainst
		if result.Won {
			agg.Wins++
		} else {
			agg.Losses++
		}
	}
}

// Finalize computes derived values for every team and returns the
// summaries sorted descending by wins.
func (b *TeamSeasonBuilder) Finalize() []model.TeamSeasonTotals {
	out := make([]model.TeamSeasonTotals, 0, len(b.order))
	for _, team := range b.order {
		agg := *b.totals[team]
		computeTeamDerived(&agg)
		out = append(out, agg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Wins > out[j].Wins
	})
	return out
}

func computeTeamDerived(agg *model.TeamSeasonTotals) {
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

	if agg.Games > 0 {
		agg.WinPct = Round1(float64(agg.Wins) / float64(agg.Games) * 100)
	}

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

	off, def, net := Ratings(agg.Points, agg.PointsAllowed, agg.Games)
	agg.OffRating = Round1(off)
	agg.DefRating = Round1(def)
	agg.NetRating = Round1(net)
}
