package service

import (
	"github.com/fortuna/victoria/internal/assist"
	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/rotation"
	"github.com/fortuna/victoria/internal/season"
)

// Report is one season's complete aggregate output: every table the
// engine derives, plus the diagnostics accumulated while deriving them.
type Report struct {
	SeasonID    string `json:"season_id"`
	SubjectTeam string `json:"subject_team"`

	Players []model.SeasonPlayerTotals `json:"players"`
	Teams   []model.TeamSeasonTotals   `json:"teams"`

	Substitutions     []model.SubstitutionEvent   `json:"substitutions"`
	Pairings          []model.SubstitutionPairing `json:"pairings"`
	PlayerFrequency   []model.PlayerSubFrequency  `json:"player_frequency"`
	Timing            []model.TimingBucket        `json:"timing"`
	Situations        []model.SituationBreakdown  `json:"situations"`
	PeriodTransitions []model.PeriodTransition    `json:"period_transitions"`
	MassSubs          []model.MassSubstitution    `json:"mass_subs"`
	MassSubCounts     map[int]int                 `json:"mass_sub_counts"`

	AssistEdges     []model.AssistEdge     `json:"assist_edges"`
	AssistLeaders   []model.AssistLeader   `json:"assist_leaders"`
	AssistReceivers []model.AssistReceiver `json:"assist_receivers"`

	Diagnostics rotation.Diagnostics `json:"diagnostics"`
}

// BuildReport runs every aggregation pass over one season's rows. Pure:
// no I/O, no shared state; all accumulators are scoped to this call.
func BuildReport(rows *model.SeasonRows, subjectTeam string) *Report {
	report := &Report{
		SeasonID:    rows.SeasonID,
		SubjectTeam: subjectTeam,
	}

	players := season.NewPlayerAggregator(rows.SeasonID)
	for _, stat := range rows.PlayerStats {
		players.Add(stat)
	}
	report.Players = players.Finalize()

	teams := season.NewTeamSeasonBuilder(rows.SeasonID, subjectTeam)
	teams.AddResults(rows.Results())
	for _, total := range rows.TeamTotals {
		teams.AddTotal(total)
	}
	report.Teams = teams.Finalize()

	extractor := rotation.NewExtractor(rows.SeasonID, subjectTeam, rows.Games)
	report.Substitutions, report.Diagnostics = extractor.Extract(rows.Plays)

	report.Pairings = rotation.Pairings(rows.SeasonID, report.Substitutions)
	report.PlayerFrequency = rotation.PlayerFrequency(rows.SeasonID, report.Substitutions)
	report.Timing = rotation.TimingPatterns(rows.SeasonID, report.Substitutions)
	report.Situations = rotation.Situations(rows.SeasonID, report.Substitutions)
	report.PeriodTransitions = rotation.PeriodTransitions(rows.SeasonID, report.Substitutions)
	report.MassSubs = rotation.MassSubstitutions(rows.SeasonID, report.Substitutions)
	report.MassSubCounts = rotation.MassSubCounts(report.MassSubs)

	assistEvents := assist.ExtractEvents(rows.SeasonID, subjectTeam, rows.Plays)
	network := assist.BuildNetwork(rows.SeasonID, assistEvents)
	report.AssistEdges = network.Edges
	report.AssistLeaders = network.Leaders
	report.AssistReceivers = network.Receivers

	return report
}
