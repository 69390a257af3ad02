package model

// Aggregate output types. One value per output table row. Derived fields
// are recomputed from totals at finalize time, never incrementally
// averaged.

// SeasonPlayerTotals is the fully-folded accumulator for one
// (player name, team) across a season.
type SeasonPlayerTotals struct {
	SeasonID string `json:"season_id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Games    int    `json:"games"`

	Minutes   int `json:"minutes"`
	Points    int `json:"points"`
	Rebounds  int `json:"rebounds"`
	Assists   int `json:"assists"`
	Steals    int `json:"steals"`
	Blocks    int `json:"blocks"`
	Turnovers int `json:"turnovers"`
	Fouls     int `json:"fouls"`

	FGMade         int `json:"fg_made"`
	FGAttempted    int `json:"fg_attempted"`
	ThreeMade      int `json:"three_made"`
	ThreeAttempted int `json:"three_attempted"`
	FTMade         int `json:"ft_made"`
	FTAttempted    int `json:"ft_attempted"`

	// Per-game averages.
	MPG float64 `json:"mpg"`
	PPG float64 `json:"ppg"`
	RPG float64 `json:"rpg"`
	APG float64 `json:"apg"`
	SPG float64 `json:"spg"`
	BPG float64 `json:"bpg"`
	TPG float64 `json:"tpg"`
	FPG float64 `json:"fpg"`

	// Shooting percentages and advanced metrics.
	FGPct        float64 `json:"fg_pct"`
	ThreePct     float64 `json:"three_pct"`
	FTPct        float64 `json:"ft_pct"`
	EFGPct       float64 `json:"efg_pct"`
	TSPct        float64 `json:"ts_pct"`
	FTRate       float64 `json:"ft_rate"`
	AstToRatio   float64 `json:"ast_to_ratio"`
	AstToDefined bool    `json:"ast_to_defined"`
	GameScore    float64 `json:"game_score"`
}

// TeamSeasonTotals is the season summary for one team: same shape as the
// player aggregate at team granularity plus record and rating fields.
// OffRating/DefRating/NetRating are points-per-game proxies, not
// possession-normalized ratings.
type TeamSeasonTotals struct {
	SeasonID string `json:"season_id"`
	Team     string `json:"team"`
	Subject  bool   `json:"subject"`

	Games  int     `json:"games"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	WinPct float64 `json:"win_pct"`

	Points        int `json:"points"`
	PointsAllowed int `json:"points_allowed"`
	Rebounds      int `json:"rebounds"`
	Assists       int `json:"assists"`
	Steals        int `json:"steals"`
	Blocks        int `json:"blocks"`
	Turnovers     int `json:"turnovers"`
	Fouls         int `json:"fouls"`

	FGMade         int `json:"fg_made"`
	FGAttempted    int `json:"fg_attempted"`
	ThreeMade      int `json:"three_made"`
	ThreeAttempted int `json:"three_attempted"`
	FTMade         int `json:"ft_made"`
	FTAttempted    int `json:"ft_attempted"`

	PPG float64 `json:"ppg"`
	RPG float64 `json:"rpg"`
	APG float64 `json:"apg"`
	SPG float64 `json:"spg"`
	BPG float64 `json:"bpg"`
	TPG float64 `json:"tpg"`
	FPG float64 `json:"fpg"`

	FGPct        float64 `json:"fg_pct"`
	ThreePct     float64 `json:"three_pct"`
	FTPct        float64 `json:"ft_pct"`
	EFGPct       float64 `json:"efg_pct"`
	TSPct        float64 `json:"ts_pct"`
	FTRate       float64 `json:"ft_rate"`
	AstToRatio   float64 `json:"ast_to_ratio"`
	AstToDefined bool    `json:"ast_to_defined"`

	OffRating float64 `json:"off_rating"`
	DefRating float64 `json:"def_rating"`
	NetRating float64 `json:"net_rating"`
}

// SubstitutionEvent is one player-out/player-in pairing at one game clock
// moment. Events from the same narrative share an occurrence key
// (game, period, clock) for mass-substitution grouping.
type SubstitutionEvent struct {
	SeasonID      string `json:"season_id"`
	GameID        string `json:"game_id"`
	Period        int    `json:"period"`
	ClockSeconds  int    `json:"clock_seconds"`
	TimeRemaining string `json:"time_remaining"`

	PlayerOutNumber string `json:"player_out_number"`
	PlayerOutName   string `json:"player_out_name"`
	PlayerInNumber  string `json:"player_in_number"`
	PlayerInName    string `json:"player_in_name"`

	TeamScore     int `json:"team_score"`
	OpponentScore int `json:"opponent_score"`
	ScoreDiff     int `json:"score_diff"`

	Narrative string `json:"narrative"`
}

// OccurrenceKey identifies the single narrative this event came from.
func (e SubstitutionEvent) OccurrenceKey() SubOccurrenceKey {
	return SubOccurrenceKey{GameID: e.GameID, Period: e.Period, ClockSeconds: e.ClockSeconds}
}

// SubOccurrenceKey is the (game, period, clock) tuple shared by all
// pairings split out of one substitution narrative.
type SubOccurrenceKey struct {
	GameID       string
	Period       int
	ClockSeconds int
}

// SubstitutionPairing aggregates all events sharing one
// (player-out, player-in) identity pair.
type SubstitutionPairing struct {
	SeasonID        string  `json:"season_id"`
	PlayerOutNumber string  `json:"player_out_number"`
	PlayerOutName   string  `json:"player_out_name"`
	PlayerInNumber  string  `json:"player_in_number"`
	PlayerInName    string  `json:"player_in_name"`
	TimesOccurred   int     `json:"times_occurred"`
	Games           int     `json:"games"`
	AvgPeriod       float64 `json:"avg_period"`
	AvgClockSeconds float64 `json:"avg_clock_seconds"`
}

// PlayerSubFrequency is per-player substitution volume across a season.
type PlayerSubFrequency struct {
	SeasonID          string  `json:"season_id"`
	PlayerNumber      string  `json:"player_number"`
	PlayerName        string  `json:"player_name"`
	GamesWithSubs     int     `json:"games_with_subs"`
	TotalSubsIn       int     `json:"total_subs_in"`
	TotalSubsOut      int     `json:"total_subs_out"`
	AvgSubsInPerGame  float64 `json:"avg_subs_in_per_game"`
	AvgSubsOutPerGame float64 `json:"avg_subs_out_per_game"`
}

// TimingBucket is substitution volume for one (period, 2-minute clock
// window) cell, with the modal outgoing and incoming player.
type TimingBucket struct {
	SeasonID       string  `json:"season_id"`
	Period         int     `json:"period"`
	BucketLabel    string  `json:"time_bucket"` // e.g. "4-6min"
	TotalSubs      int     `json:"total_subs"`
	Games          int     `json:"games"`
	AvgSubsPerGame float64 `json:"avg_subs_per_game"`
	MostCommonOut  string  `json:"most_common_out"`
	TimesOut       int     `json:"times_out"`
	MostCommonIn   string  `json:"most_common_in"`
	TimesIn        int     `json:"times_in"`
}

// GameSituation classifies the score differential at a substitution from
// the subject team's perspective.
type GameSituation string

const (
	SituationLeading  GameSituation = "leading"
	SituationTrailing GameSituation = "trailing"
	SituationTied     GameSituation = "tied"
)

// SituationBreakdown aggregates substitutions for one score situation.
// Detail carries the margin band ("Leading by 10+", "Tied", ...).
type SituationBreakdown struct {
	SeasonID       string        `json:"season_id"`
	Situation      GameSituation `json:"situation"`
	Detail         string        `json:"detail"`
	TotalSubs      int           `json:"total_subs"`
	Games          int           `json:"games"`
	AvgSubsPerGame float64       `json:"avg_subs_per_game"`
	AvgPeriod      float64       `json:"avg_period"`
	MostCommonOut  string        `json:"most_common_out"`
	TimesOut       int           `json:"times_out"`
	MostCommonIn   string        `json:"most_common_in"`
	TimesIn        int           `json:"times_in"`
}

// PeriodTransition aggregates substitutions made within the opening
// seconds of one period.
type PeriodTransition struct {
	SeasonID       string  `json:"season_id"`
	Period         int     `json:"period"`
	TotalSubs      int     `json:"total_subs"`
	Games          int     `json:"games"`
	AvgSubsPerGame float64 `json:"avg_subs_per_game"`
	MostCommonOut  string  `json:"most_common_out"`
	TimesOut       int     `json:"times_out"`
	MostCommonIn   string  `json:"most_common_in"`
	TimesIn        int     `json:"times_in"`
}

// MassSubstitution is one occurrence: all pairings sharing one narrative,
// reported as a single N-player substitution record.
type MassSubstitution struct {
	SeasonID     string   `json:"season_id"`
	GameID       string   `json:"game_id"`
	Period       int      `json:"period"`
	ClockSeconds int      `json:"clock_seconds"`
	NumPlayers   int      `json:"num_players"`
	PlayersOut   []string `json:"players_out"`
	PlayersIn    []string `json:"players_in"`
	ScoreDiff    int      `json:"score_diff"`
}

// AssistEvent is one scoring play with assist attribution, extracted from
// a play narrative.
type AssistEvent struct {
	SeasonID      string `json:"season_id"`
	GameID        string `json:"game_id"`
	Period        int    `json:"period"`
	TimeRemaining string `json:"time_remaining"`

	AssisterNumber string `json:"assister_number"`
	AssisterName   string `json:"assister_name"`
	ScorerNumber   string `json:"scorer_number"`
	ScorerName     string `json:"scorer_name"`
	ShotType       string `json:"shot_type"`
	Points         int    `json:"points"`

	Narrative string `json:"narrative"`
}

// AssistEdge is one directed assister→scorer edge in the assist network.
type AssistEdge struct {
	SeasonID string `json:"season_id"`
	Assister string `json:"assister"`
	Scorer   string `json:"scorer"`

	Assists     int `json:"assists"`
	TotalPoints int `json:"total_points"`
	Threes      int `json:"threes"`
	Twos        int `json:"twos"`
	Layups      int `json:"layups"`
	Jumpers     int `json:"jumpers"`
	Dunks       int `json:"dunks"`

	AvgPointsPerAssist float64 `json:"avg_points_per_assist"`
}

// AssistLeader is the per-assister rollup over all outgoing edges.
type AssistLeader struct {
	SeasonID           string  `json:"season_id"`
	Assister           string  `json:"assister"`
	TotalAssists       int     `json:"total_assists"`
	UniqueTeammates    int     `json:"unique_teammates"`
	ThreesAssisted     int     `json:"threes_assisted"`
	TwosAssisted       int     `json:"twos_assisted"`
	PointsCreated      int     `json:"points_created"`
	AvgPointsPerAssist float64 `json:"avg_points_per_assist"`
}

// AssistReceiver is the per-scorer rollup over all incoming edges.
type AssistReceiver struct {
	SeasonID           string  `json:"season_id"`
	Scorer             string  `json:"scorer"`
	AssistsReceived    int     `json:"assists_received"`
	UniqueAssisters    int     `json:"unique_assisters"`
	ThreesAssisted     int     `json:"threes_assisted"`
	TwosAssisted       int     `json:"twos_assisted"`
	PointsFromAssists  int     `json:"points_from_assists"`
	AvgPointsPerAssist float64 `json:"avg_points_per_assist"`
}
