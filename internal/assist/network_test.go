package assist

import (
	"testing"

	"github.com/fortuna/victoria/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringPlay(team, narrative string) model.Play {
	return model.Play{
		SeasonID:     "2024-25",
		GameID:       "18730",
		Period:       1,
		ClockSeconds: 300,
		Team:         team,
		Type:         "SHOT",
		Narrative:    narrative,
	}
}

func TestExtractEvents(t *testing.T) {
	plays := []model.Play{
		scoringPlay("Maryland", "14 Allie Kubek LAYUP GOOD (2 Pt); 02 Kaylene Smikle Assist (4 Asst)"),
		scoringPlay("Maryland", "03 Shyanne Sellers 3PTR GOOD (3 Pt); 14 Allie Kubek Assist (1 Asst)"),
		scoringPlay("Maryland", "14 Allie Kubek JUMPER GOOD (2 Pt)"), // unassisted
		scoringPlay("Iowa", "22 Caitlin Clark 3PTR GOOD (3 Pt); 10 Kate Martin Assist (2 Asst)"),
	}

	events := ExtractEvents("2024-25", "Maryland", plays)
	require.Len(t, events, 2)
	assert.Equal(t, "Kaylene Smikle", events[0].AssisterName)
	assert.Equal(t, "Allie Kubek", events[0].ScorerName)
	assert.Equal(t, 2, events[0].Points)
	assert.Equal(t, "3PTR", events[1].ShotType)
	assert.Equal(t, "05:00", events[0].TimeRemaining)
}

func assistEvent(assister, scorer, shotType string, points int) model.AssistEvent {
	return model.AssistEvent{
		SeasonID:     "2024-25",
		GameID:       "18730",
		AssisterName: assister,
		ScorerName:   scorer,
		ShotType:     shotType,
		Points:       points,
	}
}

func TestBuildNetwork_Edges(t *testing.T) {
	events := []model.AssistEvent{
		assistEvent("Smikle", "Kubek", "LAYUP", 2),
		assistEvent("Smikle", "Kubek", "3PTR", 3),
		assistEvent("Smikle", "Sellers", "JUMPER", 2),
		assistEvent("Sellers", "Kubek", "DUNK", 2),
	}

	net := BuildNetwork("2024-25", events)
	require.Len(t, net.Edges, 3)

	top := net.Edges[0]
	assert.Equal(t, "Smikle", top.Assister)
	assert.Equal(t, "Kubek", top.Scorer)
	assert.Equal(t, 2, top.Assists)
	assert.Equal(t, 5, top.TotalPoints)
	assert.Equal(t, 1, top.Threes)
	assert.Equal(t, 1, top.Twos)
	assert.Equal(t, 1, top.Layups)
	assert.Equal(t, 2.5, top.AvgPointsPerAssist)
}

func TestBuildNetwork_Rollups(t *testing.T) {
	events := []model.AssistEvent{
		assistEvent("Smikle", "Kubek", "LAYUP", 2),
		assistEvent("Smikle", "Sellers", "3PTR", 3),
		assistEvent("Smikle", "Sellers", "3PTR", 3),
		assistEvent("Dalce", "Kubek", "JUMPER", 2),
	}

	net := BuildNetwork("2024-25", events)

	require.Len(t, net.Leaders, 2)
	assert.Equal(t, "Smikle", net.Leaders[0].Assister)
	assert.Equal(t, 3, net.Leaders[0].TotalAssists)
	assert.Equal(t, 2, net.Leaders[0].UniqueTeammates)
	assert.Equal(t, 8, net.Leaders[0].PointsCreated)
	assert.Equal(t, 2, net.Leaders[0].ThreesAssisted)
	assert.InDelta(t, 2.67, net.Leaders[0].AvgPointsPerAssist, 0.001)

	require.Len(t, net.Receivers, 2)
	assert.Equal(t, "Sellers", net.Receivers[0].Scorer)
	assert.Equal(t, 2, net.Receivers[0].AssistsReceived)
	assert.Equal(t, 1, net.Receivers[0].UniqueAssisters)

	var kubek model.AssistReceiver
	for _, r := range net.Receivers {
		if r.Scorer == "Kubek" {
			kubek = r
		}
	}
	assert.Equal(t, 2, kubek.UniqueAssisters)
	assert.Equal(t, 4, kubek.PointsFromAssists)
}

func TestBuildNetwork_Empty(t *testing.T) {
	net := BuildNetwork("2024-25", nil)
	assert.Empty(t, net.Edges)
	assert.Empty(t, net.Leaders)
	assert.Empty(t, net.Receivers)
}
