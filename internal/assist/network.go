// Package assist extracts assist attributions from scoring plays and
// builds the season's weighted assister→scorer network.
package assist

import (
	"sort"
	"strings"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/season"
	"github.com/fortuna/victoria/internal/statparse"
)

// ExtractEvents scans the subject team's plays for made baskets carrying
// assist attribution and returns one AssistEvent per match. Narratives
// without the attribution format are skipped silently: most scoring
// plays legitimately have no assist.
func ExtractEvents(seasonID, subjectTeam string, plays []model.Play) []model.AssistEvent {
	var events []model.AssistEvent
	for _, play := range plays {
		if play.Team != subjectTeam {
			continue
		}
		if !strings.Contains(play.Narrative, "Assist") {
			continue
		}

		parsed, ok := statparse.ParseAssistNarrative(play.Narrative)
		if !ok {
			continue
		}

		events = append(events, model.AssistEvent{
			SeasonID:       seasonID,
			GameID:         play.GameID,
			Period:         play.Period,
			TimeRemaining:  statparse.FormatClock(play.ClockSeconds),
			AssisterNumber: parsed.AssisterNumber,
			AssisterName:   parsed.AssisterName,
			ScorerNumber:   parsed.ScorerNumber,
			ScorerName:     parsed.ScorerName,
			ShotType:       parsed.ShotType,
			Points:         parsed.Points,
			Narrative:      play.Narrative,
		})
	}
	return events
}

// Network is the season assist graph: directed edges plus per-player
// rollups derived from the edges without rescanning raw plays.
type Network struct {
	Edges     []model.AssistEdge     `json:"edges"`
	Leaders   []model.AssistLeader   `json:"leaders"`
	Receivers []model.AssistReceiver `json:"receivers"`
}

// BuildNetwork accumulates directed assister→scorer edges from the
// extracted events, then rolls them up per assister and per scorer.
// Every list is sorted by volume descending, stable on first encounter.
func BuildNetwork(seasonID string, events []model.AssistEvent) Network {
	type edgeKey struct {
		assister, scorer string
	}

	edges := make(map[edgeKey]*model.AssistEdge)
	var edgeOrder []edgeKey

	for _, e := range events {
		key := edgeKey{e.AssisterName, e.ScorerName}
		edge, ok := edges[key]
		if !ok {
			edge = &model.AssistEdge{
				SeasonID: seasonID,
				Assister: e.AssisterName,
				Scorer:   e.ScorerName,
			}
			edges[key] = edge
			edgeOrder = append(edgeOrder, key)
		}

		edge.Assists++
		edge.TotalPoints += e.Points
		if e.Points == 3 {
			edge.Threes++
		} else {
			edge.Twos++
		}

		switch {
		case strings.Contains(strings.ToLower(e.ShotType), "layup"):
			edge.Layups++
		case strings.Contains(strings.ToLower(e.ShotType), "jumper"):
			edge.Jumpers++
		case strings.Contains(strings.ToLower(e.ShotType), "dunk"):
			edge.Dunks++
		}
	}

	net := Network{Edges: make([]model.AssistEdge, 0, len(edgeOrder))}
	for _, key := range edgeOrder {
		edge := *edges[key]
		edge.AvgPointsPerAssist = avgPerAssist(edge.TotalPoints, edge.Assists)
		net.Edges = append(net.Edges, edge)
	}
	sort.SliceStable(net.Edges, func(i, j int) bool {
		return net.Edges[i].Assists > net.Edges[j].Assists
	})

	net.Leaders = rollupLeaders(seasonID, net.Edges)
	net.Receivers = rollupReceivers(seasonID, net.Edges)
	return net
}

// NetworkFromEdges rebuilds the rollups from an already-built edge list,
// for serving a network loaded from storage.
func NetworkFromEdges(seasonID string, edges []model.AssistEdge) Network {
	return Network{
		Edges:     edges,
		Leaders:   rollupLeaders(seasonID, edges),
		Receivers: rollupReceivers(seasonID, edges),
	}
}

func rollupLeaders(seasonID string, edges []model.AssistEdge) []model.AssistLeader {
	accs := make(map[string]*model.AssistLeader)
	scorers := make(map[string]map[string]struct{})
	var order []string

	for _, edge := range edges {
		acc, ok := accs[edge.Assister]
		if !ok {
			acc = &model.AssistLeader{SeasonID: seasonID, Assister: edge.Assister}
			accs[edge.Assister] = acc
			scorers[edge.Assister] = make(map[string]struct{})
			order = append(order, edge.Assister)
		}
		acc.TotalAssists += edge.Assists
		acc.ThreesAssisted += edge.Threes
		acc.TwosAssisted += edge.Twos
		acc.PointsCreated += edge.TotalPoints
		scorers[edge.Assister][edge.Scorer] = struct{}{}
	}

	out := make([]model.AssistLeader, 0, len(order))
	for _, name := range order {
		acc := *accs[name]
		acc.UniqueTeammates = len(scorers[name])
		acc.AvgPointsPerAssist = avgPerAssist(acc.PointsCreated, acc.TotalAssists)
		out = append(out, acc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAssists > out[j].TotalAssists
	})
	return out
}

func rollupReceivers(seasonID string, edges []model.AssistEdge) []model.AssistReceiver {
	accs := make(map[string]*model.AssistReceiver)
	assisters := make(map[string]map[string]struct{})
	var order []string

	for _, edge := range edges {
		acc, ok := accs[edge.Scorer]
		if !ok {
			acc = &model.AssistReceiver{SeasonID: seasonID, Scorer: edge.Scorer}
			accs[edge.Scorer] = acc
			assisters[edge.Scorer] = make(map[string]struct{})
			order = append(order, edge.Scorer)
		}
		acc.AssistsReceived += edge.Assists
		acc.ThreesAssisted += edge.Threes
		acc.TwosAssisted += edge.Twos
		acc.PointsFromAssists += edge.TotalPoints
		assisters[edge.Scorer][edge.Assister] = struct{}{}
	}

	out := make([]model.AssistReceiver, 0, len(order))
	for _, name := range order {
		acc := *accs[name]
		acc.UniqueAssisters = len(assisters[name])
		acc.AvgPointsPerAssist = avgPerAssist(acc.PointsFromAssists, acc.AssistsReceived)
		out = append(out, acc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AssistsReceived > out[j].AssistsReceived
	})
	return out
}

func avgPerAssist(points, assists int) float64 {
	if assists == 0 {
		return 0
	}
	return season.Round2(float64(points) / float64(assists))
}
