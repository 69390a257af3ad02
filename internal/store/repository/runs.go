package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/victoria/internal/store"
)

// RunRepository persists processing run records.
type RunRepository struct {
	db *store.Database
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *store.Database) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run in the running state.
func (r *RunRepository) Create(ctx context.Context, run *store.ProcessingRun) error {
	query := `
		INSERT INTO processing_runs (run_id, season_id, subject_team, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.DB().ExecContext(ctx, query,
		run.RunID, run.SeasonID, run.SubjectTeam, run.Status, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting processing run: %w", err)
	}
	return nil
}

// Finish records the terminal state and counts for a run.
func (r *RunRepository) Finish(ctx context.Context, run *store.ProcessingRun) error {
	query := `
		UPDATE processing_runs SET
			status = $2, error = $3,
			games_processed = $4, players_aggregated = $5, teams_aggregated = $6,
			substitution_events = $7, assist_edges = $8,
			unparsed_narratives = $9, dropped_entries = $10,
			finished_at = $11
		WHERE run_id = $1
	`
	res, err := r.db.DB().ExecContext(ctx, query,
		run.RunID, run.Status, run.Error,
		run.GamesProcessed, run.PlayersAggregated, run.TeamsAggregated,
		run.SubstitutionEvents, run.AssistEdges,
		run.UnparsedNarratives, run.DroppedEntries,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("updating processing run: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("processing run %s not found", run.RunID)
	}
	return nil
}

// Latest returns the most recent run for a season, or nil if the season
// has never been processed.
func (r *RunRepository) Latest(ctx context.Context, seasonID string) (*store.ProcessingRun, error) {
	query := `
		SELECT run_id, season_id, subject_team, status, error,
			games_processed, players_aggregated, teams_aggregated,
			substitution_events, assist_edges, unparsed_narratives, dropped_entries,
			started_at, finished_at
		FROM processing_runs
		WHERE season_id = $1
		ORDER BY started_at DESC
		LIMIT 1
	`
	var run store.ProcessingRun
	err := r.db.DB().QueryRowContext(ctx, query, seasonID).Scan(
		&run.RunID, &run.SeasonID, &run.SubjectTeam, &run.Status, &run.Error,
		&run.GamesProcessed, &run.PlayersAggregated, &run.TeamsAggregated,
		&run.SubstitutionEvents, &run.AssistEdges, &run.UnparsedNarratives, &run.DroppedEntries,
		&run.StartedAt, &run.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest processing run: %w", err)
	}
	return &run, nil
}
