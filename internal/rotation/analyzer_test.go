package rotation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/fortuna/victoria/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jersey derives a stable number from the name so each player keeps a
// single (number, name) identity across events.
func jersey(name string) string {
	return fmt.Sprintf("%02d", len(name))
}

func event(game string, period, clock int, outName, inName string, diff int) model.SubstitutionEvent {
	return model.SubstitutionEvent{
		SeasonID:        "2024-25",
		GameID:          game,
		Period:          period,
		ClockSeconds:    clock,
		PlayerOutNumber: jersey(outName),
		PlayerOutName:   outName,
		PlayerInNumber:  jersey(inName),
		PlayerInName:    inName,
		ScoreDiff:       diff,
	}
}

func TestPairings_CountsAndAverages(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 300, "Smikle", "Poffenbarger", 2),
		event("g2", 2, 100, "Smikle", "Poffenbarger", -1),
		event("g1", 1, 500, "Kubek", "McLean", 0),
	}

	pairs := Pairings("2024-25", events)
	require.Len(t, pairs, 2)

	top := pairs[0]
	assert.Equal(t, "Smikle", top.PlayerOutName)
	assert.Equal(t, 2, top.TimesOccurred)
	assert.Equal(t, 2, top.Games)
	assert.Equal(t, 1.5, top.AvgPeriod)
	assert.Equal(t, 200.0, top.AvgClockSeconds)
}

func TestPairings_OrderIndependentCounts(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 300, "A", "B", 0),
		event("g1", 2, 200, "C", "D", 0),
		event("g2", 3, 100, "A", "B", 0),
		event("g2", 4, 50, "C", "D", 0),
		event("g3", 1, 400, "A", "B", 0),
	}

	shuffled := make([]model.SubstitutionEvent, len(events))
	copy(shuffled, events)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	base := Pairings("2024-25", events)
	perm := Pairings("2024-25", shuffled)
	require.Len(t, base, 2)
	require.Len(t, perm, 2)
	assert.Equal(t, base[0].TimesOccurred, perm[0].TimesOccurred)
	assert.Equal(t, base[1].TimesOccurred, perm[1].TimesOccurred)
}

func TestPlayerFrequency(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 300, "Smikle", "Poffenbarger", 0),
		event("g1", 2, 200, "Poffenbarger", "Smikle", 0),
		event("g2", 1, 100, "Smikle", "McLean", 0),
	}

	freq := PlayerFrequency("2024-25", events)
	require.Len(t, freq, 3)

	// Smikle: 2 out, 1 in over 2 games = most active.
	assert.Equal(t, "Smikle", freq[0].PlayerName)
	assert.Equal(t, 2, freq[0].TotalSubsOut)
	assert.Equal(t, 1, freq[0].TotalSubsIn)
	assert.Equal(t, 2, freq[0].GamesWithSubs)
	assert.Equal(t, 1.0, freq[0].AvgSubsOutPerGame)
}

func TestTimingPatterns_Buckets(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 30, "A", "B", 0),  // 0-2min
		event("g1", 1, 119, "A", "B", 0), // 0-2min
		event("g1", 1, 120, "C", "D", 0), // 2-4min
		event("g1", 2, 600, "E", "F", 0), // 10-12min
	}

	buckets := TimingPatterns("2024-25", events)
	require.Len(t, buckets, 3)

	assert.Equal(t, 1, buckets[0].Period)
	assert.Equal(t, "0-2min", buckets[0].BucketLabel)
	assert.Equal(t, 2, buckets[0].TotalSubs)
	assert.Equal(t, "A", buckets[0].MostCommonOut)

	assert.Equal(t, "2-4min", buckets[1].BucketLabel)
	assert.Equal(t, 2, buckets[2].Period)
	assert.Equal(t, "10-12min", buckets[2].BucketLabel)
}

func TestTimingPatterns_ModalTieBreakFirstEncountered(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 60, "Zed", "In1", 0),
		event("g1", 1, 70, "Abe", "In2", 0),
	}

	buckets := TimingPatterns("2024-25", events)
	require.Len(t, buckets, 1)
	// Tie on count 1: first encountered wins.
	assert.Equal(t, "Zed", buckets[0].MostCommonOut)
	assert.Equal(t, 1, buckets[0].TimesOut)
}

func TestSituations_Classification(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 300, "A", "B", 12),
		event("g1", 2, 300, "A", "B", 3),
		event("g1", 3, 300, "C", "D", 0),
		event("g2", 4, 300, "C", "D", -7),
	}

	rows := Situations("2024-25", events)
	require.Len(t, rows, 4)

	assert.Equal(t, "Leading by 10+", rows[0].Detail)
	assert.Equal(t, model.SituationLeading, rows[0].Situation)
	assert.Equal(t, "Leading by 1-4", rows[1].Detail)
	assert.Equal(t, "Tied", rows[2].Detail)
	assert.Equal(t, model.SituationTied, rows[2].Situation)
	assert.Equal(t, "Trailing by 5-9", rows[3].Detail)
	assert.Equal(t, model.SituationTrailing, rows[3].Situation)
}

func TestPeriodTransitions_WindowFilter(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 2, 600, "A", "B", 0), // period start
		event("g1", 2, 575, "C", "D", 0), // within 30s window
		event("g1", 2, 540, "E", "F", 0), // outside window
		event("g2", 3, 590, "A", "G", 0),
	}

	rows := PeriodTransitions("2024-25", events)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Period)
	assert.Equal(t, 2, rows[0].TotalSubs)
	assert.Equal(t, "A", rows[0].MostCommonOut)
	assert.Equal(t, 3, rows[1].Period)
	assert.Equal(t, 1, rows[1].Games)
}

func TestMassSubstitutions_GroupedByOccurrence(t *testing.T) {
	events := []model.SubstitutionEvent{
		event("g1", 1, 300, "A", "B", 4),
		event("g1", 1, 300, "C", "D", 4),
		event("g1", 1, 300, "E", "F", 4),
		event("g1", 2, 450, "G", "H", -2),
	}

	mass := MassSubstitutions("2024-25", events)
	require.Len(t, mass, 2)

	assert.Equal(t, 3, mass[0].NumPlayers)
	assert.Equal(t, []string{"A", "C", "E"}, mass[0].PlayersOut)
	assert.Equal(t, []string{"B", "D", "F"}, mass[0].PlayersIn)
	assert.Equal(t, 4, mass[0].ScoreDiff)
	assert.Equal(t, 1, mass[1].NumPlayers)

	counts := MassSubCounts(mass)
	assert.Equal(t, 1, counts[3])
	assert.Equal(t, 1, counts[1])
}
