package store

import (
	"database/sql"
	"time"
)

// ProcessingRun records one season-processing invocation: what was
// processed, when, and the row/diagnostic counts it produced.
type ProcessingRun struct {
	RunID       string         `json:"run_id" db:"run_id"`
	SeasonID    string         `json:"season_id" db:"season_id"`
	SubjectTeam string         `json:"subject_team" db:"subject_team"`
	Status      string         `json:"status" db:"status"`
	Error       sql.NullString `json:"error,omitempty" db:"error"`

	GamesProcessed     int `json:"games_processed" db:"games_processed"`
	PlayersAggregated  int `json:"players_aggregated" db:"players_aggregated"`
	TeamsAggregated    int `json:"teams_aggregated" db:"teams_aggregated"`
	SubstitutionEvents int `json:"substitution_events" db:"substitution_events"`
	AssistEdges        int `json:"assist_edges" db:"assist_edges"`
	UnparsedNarratives int `json:"unparsed_narratives" db:"unparsed_narratives"`
	DroppedEntries     int `json:"dropped_entries" db:"dropped_entries"`

	StartedAt  time.Time    `json:"started_at" db:"started_at"`
	FinishedAt sql.NullTime `json:"finished_at,omitempty" db:"finished_at"`
}

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
