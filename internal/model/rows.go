package model

// Row types for a single season's source data. One value per CSV row,
// created at ingestion and immutable afterwards. Shooting lines stay in
// their compound "made-attempted" form; the aggregators parse them.

// GameInfo holds one game's metadata and final score.
type GameInfo struct {
	SeasonID       string `json:"season_id"`
	GameID         string `json:"game_id"`
	Date           string `json:"date"`
	Location       string `json:"location,omitempty"`
	Officials      string `json:"officials,omitempty"`
	Attendance     string `json:"attendance,omitempty"`
	HomeTeam       string `json:"home_team"`
	HomeScore      int    `json:"home_score"`
	HomeRecord     string `json:"home_record,omitempty"`
	VisitingTeam   string `json:"visiting_team"`
	VisitingScore  int    `json:"visiting_score"`
	VisitingRecord string `json:"visiting_record,omitempty"`
}

// PlayerGameStat is one player's box-score line for one game.
type PlayerGameStat struct {
	SeasonID      string `json:"season_id"`
	GameID        string `json:"game_id"`
	Team          string `json:"team"`
	Name          string `json:"name"`
	Number        string `json:"number"`
	Position      string `json:"position,omitempty"`
	Minutes       int    `json:"minutes"`
	Points        int    `json:"points"`
	Rebounds      int    `json:"rebounds"`
	Assists       int    `json:"assists"`
	Steals        int    `json:"steals"`
	Blocks        int    `json:"blocks"`
	Turnovers     int    `json:"turnovers"`
	Fouls         int    `json:"fouls"`
	FieldGoals    string `json:"field_goals"`    // "M-A"
	ThreePointers string `json:"three_pointers"` // "M-A"
	FreeThrows    string `json:"free_throws"`    // "M-A"
}

// TeamGameTotal is one team's box-score totals for one game. Parallel
// schema to PlayerGameStat at team granularity.
type TeamGameTotal struct {
	SeasonID      string `json:"season_id"`
	GameID        string `json:"game_id"`
	Team          string `json:"team"`
	Points        int    `json:"points"`
	Rebounds      int    `json:"rebounds"`
	Assists       int    `json:"assists"`
	Steals        int    `json:"steals"`
	Blocks        int    `json:"blocks"`
	Turnovers     int    `json:"turnovers"`
	Fouls         int    `json:"fouls"`
	FieldGoals    string `json:"field_goals"`
	ThreePointers string `json:"three_pointers"`
	FreeThrows    string `json:"free_throws"`
}

// TeamGameResult is one team's outcome for one game. Win/loss is a
// team-level fact not derivable from player rows, so it is modeled
// separately from the stat lines.
type TeamGameResult struct {
	GameID        string `json:"game_id"`
	Team          string `json:"team"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	Won           bool   `json:"won"`
	Home          bool   `json:"home"`
}

// PeriodScore is one team's scoring in one period. Periods beyond 4 are
// overtime.
type PeriodScore struct {
	SeasonID string `json:"season_id"`
	GameID   string `json:"game_id"`
	Team     string `json:"team"`
	Period   int    `json:"period"`
	Points   int    `json:"points"`
}

// Play is one play-by-play row. Team holds the resolved team name (not
// the raw HomeTeam/VisitingTeam marker). HasScore is false when the feed
// omitted running scores for this play.
type Play struct {
	SeasonID      string `json:"season_id"`
	GameID        string `json:"game_id"`
	Period        int    `json:"period"`
	ClockSeconds  int    `json:"clock_seconds"`
	Team          string `json:"team"`
	Type          string `json:"play_type"`
	Action        string `json:"play_action,omitempty"`
	Narrative     string `json:"narrative"`
	PlayerName    string `json:"player_name,omitempty"`
	PlayerNumber  string `json:"player_number,omitempty"`
	HomeScore     int    `json:"home_team_score"`
	VisitingScore int    `json:"visiting_team_score"`
	HasScore      bool   `json:"-"`
}

// PlayTypeSubstitution is the play-by-play type tag for substitutions.
const PlayTypeSubstitution = "SUBS"

// SeasonRows is one season's complete input row sets, as supplied by the
// external loaders.
type SeasonRows struct {
	SeasonID     string
	Games        []GameInfo
	PlayerStats  []PlayerGameStat
	TeamTotals   []TeamGameTotal
	PeriodScores []PeriodScore
	Plays        []Play
}

// Results derives one TeamGameResult per (game, team) from the game
// metadata rows.
func (sr *SeasonRows) Results() []TeamGameResult {
	results := make([]TeamGameResult, 0, len(sr.Games)*2)
	for _, g := range sr.Games {
		results = append(results,
			TeamGameResult{
				GameID:        g.GameID,
				Team:          g.HomeTeam,
				PointsFor:     g.HomeScore,
				PointsAgainst: g.VisitingScore,
				Won:           g.HomeScore > g.VisitingScore,
				Home:          true,
			},
			TeamGameResult{
				GameID:        g.GameID,
				Team:          g.VisitingTeam,
				PointsFor:     g.VisitingScore,
				PointsAgainst: g.HomeScore,
				Won:           g.VisitingScore > g.HomeScore,
				Home:          false,
			},
		)
	}
	return results
}
