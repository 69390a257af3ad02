package season

import (
	"testing"

	"github.com/fortuna/victoria/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamTotal(game, team string, points int) model.TeamGameTotal {
	return model.TeamGameTotal{
		SeasonID:      "2024-25",
		GameID:        game,
		Team:          team,
		Points:        points,
		FieldGoals:    "25-60",
		ThreePointers: "5-18",
		FreeThrows:    "5-8",
		Rebounds:      38,
		Assists:       15,
		Turnovers:     12,
	}
}

func TestTeamSeasonBuilder_Ratings(t *testing.T) {
	// Subject team scores 60 and 70, allows 55 and 65:
	// off 65.0, def 60.0, net +5.0.
	builder := NewTeamSeasonBuilder("2024-25", "Maryland")
	builder.AddResults([]model.TeamGameResult{
		{GameID: "g1", Team: "Maryland", PointsFor: 60, PointsAgainst: 55, Won: true, Home: true},
		{GameID: "g2", Team: "Maryland", PointsFor: 70, PointsAgainst: 65, Won: true, Home: false},
	})
	builder.AddTotal(teamTotal("g1", "Maryland", 60))
	builder.AddTotal(teamTotal("g2", "Maryland", 70))

	out := builder.Finalize()
	require.Len(t, out, 1)
	assert.Equal(t, 65.0, out[0].OffRating)
	assert.Equal(t, 60.0, out[0].DefRating)
	assert.Equal(t, 5.0, out[0].NetRating)
	assert.Equal(t, 2, out[0].Wins)
	assert.Equal(t, 0, out[0].Losses)
	assert.Equal(t, 100.0, out[0].WinPct)
	assert.True(t, out[0].Subject)
}

func TestTeamSeasonBuilder_OpponentsStaySeparate(t *testing.T) {
	builder := NewTeamSeasonBuilder("2024-25", "Maryland")
	builder.AddResults([]model.TeamGameResult{
		{GameID: "g1", Team: "Maryland", PointsFor: 80, PointsAgainst: 70, Won: true, Home: true},
		{GameID: "g1", Team: "Iowa", PointsFor: 70, PointsAgainst: 80, Won: false, Home: false},
		{GameID: "g2", Team: "Maryland", PointsFor: 62, PointsAgainst: 66, Won: false, Home: false},
		{GameID: "g2", Team: "Ohio State", PointsFor: 66, PointsAgainst: 62, Won: true, Home: true},
	})
	builder.AddTotal(teamTotal("g1", "Maryland", 80))
	builder.AddTotal(teamTotal("g1", "Iowa", 70))
	builder.AddTotal(teamTotal("g2", "Maryland", 62))
	builder.AddTotal(teamTotal("g2", "Ohio State", 66))

	out := builder.Finalize()
	require.Len(t, out, 3)

	byTeam := make(map[string]model.TeamSeasonTotals)
	for _, row := range out {
		byTeam[row.Team] = row
	}
	assert.Equal(t, 2, byTeam["Maryland"].Games)
	assert.Equal(t, 1, byTeam["Iowa"].Games)
	assert.Equal(t, 1, byTeam["Ohio State"].Games)
	assert.False(t, byTeam["Iowa"].Subject)
	assert.Equal(t, 1, byTeam["Maryland"].Wins)
	assert.Equal(t, 1, byTeam["Maryland"].Losses)
}

func TestTeamSeasonBuilder_SortedByWins(t *testing.T) {
	builder := NewTeamSeasonBuilder("2024-25", "Maryland")
	builder.AddResults([]model.TeamGameResult{
		{GameID: "g1", Team: "Maryland", PointsFor: 80, PointsAgainst: 70, Won: true},
		{GameID: "g1", Team: "Iowa", PointsFor: 70, PointsAgainst: 80, Won: false},
	})
	builder.AddTotal(teamTotal("g1", "Iowa", 70))
	builder.AddTotal(teamTotal("g1", "Maryland", 80))

	out := builder.Finalize()
	require.Len(t, out, 2)
	assert.Equal(t, "Maryland", out[0].Team)
}

func TestTeamSeasonBuilder_MissingResultStillAggregates(t *testing.T) {
	// A stat line with no matching game result contributes totals but no
	// win/loss or points-allowed attribution.
	builder := NewTeamSeasonBuilder("2024-25", "Maryland")
	builder.AddTotal(teamTotal("g9", "Maryland", 75))

	out := builder.Finalize()
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Games)
	assert.Equal(t, 0, out[0].Wins)
	assert.Equal(t, 0, out[0].Losses)
	assert.Equal(t, 0, out[0].PointsAllowed)
}
