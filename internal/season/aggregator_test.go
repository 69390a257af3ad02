package season

import (
	"testing"

	"github.com/fortuna/victoria/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statLine(game, team, name string, points int, fg, three, ft string) model.PlayerGameStat {
	return model.PlayerGameStat{
		SeasonID:      "2024-25",
		GameID:        game,
		Team:          team,
		Name:          name,
		Number:        "10",
		Points:        points,
		FieldGoals:    fg,
		ThreePointers: three,
		FreeThrows:    ft,
	}
}

func TestPlayerAggregator_GamesPlayedEqualsRowCount(t *testing.T) {
	agg := NewPlayerAggregator("2024-25")
	agg.Add(statLine("g1", "Maryland", "Smikle", 20, "8-15", "2-5", "2-2"))
	agg.Add(statLine("g2", "Maryland", "Smikle", 14, "5-12", "1-4", "3-4"))
	agg.Add(statLine("g3", "Maryland", "Smikle", 8, "3-9", "0-2", "2-3"))

	out := agg.Finalize()
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Games)
	assert.Equal(t, 42, out[0].Points)
	assert.Equal(t, 16, out[0].FGMade)
	assert.Equal(t, 36, out[0].FGAttempted)
	assert.Equal(t, 7, out[0].FTMade)
	assert.Equal(t, 9, out[0].FTAttempted)
}

func TestPlayerAggregator_SingleGameRoundTrip(t *testing.T) {
	agg := NewPlayerAggregator("2024-25")
	agg.Add(statLine("g1", "Maryland", "Kubek", 10, "4-8", "1-2", "2-2"))

	out := agg.Finalize()
	require.Len(t, out, 1)

	// TS% = 10/(2*(8+0.44*2))*100 ≈ 56.3, eFG% = (4+0.5)/8*100 = 56.25 → 56.3
	assert.Equal(t, 56.3, out[0].TSPct)
	assert.Equal(t, 56.3, out[0].EFGPct)
	assert.Equal(t, 10.0, out[0].PPG)
}

func TestPlayerAggregator_SeparateAggregatePerTeam(t *testing.T) {
	// A player under two team values aggregates separately; this is
	// accepted behavior, not corrected by fuzzy matching.
	agg := NewPlayerAggregator("2024-25")
	agg.Add(statLine("g1", "Maryland", "McLean", 6, "3-5", "0-0", "0-0"))
	agg.Add(statLine("g2", "Rutgers", "McLean", 9, "4-7", "1-1", "0-1"))

	out := agg.Finalize()
	require.Len(t, out, 2)
	for _, row := range out {
		assert.Equal(t, 1, row.Games)
	}
}

func TestPlayerAggregator_OrderIndependent(t *testing.T) {
	rows := []model.PlayerGameStat{
		statLine("g1", "Maryland", "Sellers", 12, "5-10", "2-4", "0-0"),
		statLine("g2", "Maryland", "Sellers", 18, "7-13", "2-6", "2-2"),
		statLine("g1", "Maryland", "Dalce", 4, "2-3", "0-0", "0-2"),
	}

	forward := NewPlayerAggregator("2024-25")
	for _, r := range rows {
		forward.Add(r)
	}
	backward := NewPlayerAggregator("2024-25")
	for i := len(rows) - 1; i >= 0; i-- {
		backward.Add(rows[i])
	}

	f, b := forward.Finalize(), backward.Finalize()
	require.Len(t, f, 2)
	require.Len(t, b, 2)
	assert.Equal(t, f[0].Points, b[0].Points)
	assert.Equal(t, f[1].Games, b[1].Games)
}

func TestPlayerAggregator_SortedByTotalPoints(t *testing.T) {
	agg := NewPlayerAggregator("2024-25")
	agg.Add(statLine("g1", "Maryland", "Dalce", 4, "2-3", "0-0", "0-0"))
	agg.Add(statLine("g1", "Maryland", "Smikle", 24, "9-16", "3-7", "3-3"))
	agg.Add(statLine("g1", "Maryland", "Sellers", 15, "6-11", "1-3", "2-2"))

	out := agg.Finalize()
	require.Len(t, out, 3)
	assert.Equal(t, "Smikle", out[0].Name)
	assert.Equal(t, "Sellers", out[1].Name)
	assert.Equal(t, "Dalce", out[2].Name)
}

func TestPlayerAggregator_MalformedShootingLinesZeroed(t *testing.T) {
	agg := NewPlayerAggregator("2024-25")
	agg.Add(statLine("g1", "Maryland", "Poffenbarger", 2, "", "bad", "1-1"))

	out := agg.Finalize()
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].FGAttempted)
	assert.Equal(t, 0, out[0].ThreeAttempted)
	assert.Equal(t, 1, out[0].FTMade)
}
