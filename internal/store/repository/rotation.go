package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/store"
)

// RotationRepository persists the substitution event stream and the
// season pairing table. Derived rotation aggregates (timing, situations,
// period transitions, mass groupings) are recomputed from the events on
// demand rather than stored.
type RotationRepository struct {
	db *store.Database
}

// NewRotationRepository creates a new rotation repository.
func NewRotationRepository(db *store.Database) *RotationRepository {
	return &RotationRepository{db: db}
}

// ReplaceEvents swaps out a season's substitution events in one
// transaction.
func (r *RotationRepository) ReplaceEvents(ctx context.Context, seasonID string, events []model.SubstitutionEvent) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM substitution_events WHERE season_id = $1", seasonID); err != nil {
		return fmt.Errorf("clearing substitution events: %w", err)
	}

	query := `
		INSERT INTO substitution_events (
			season_id, game_id, period, clock_seconds, time_remaining,
			player_out_number, player_out_name, player_in_number, player_in_name,
			team_score, opponent_score, score_diff, narrative
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, e := range events {
		_, err := tx.ExecContext(ctx, query,
			e.SeasonID, e.GameID, e.Period, e.ClockSeconds, e.TimeRemaining,
			e.PlayerOutNumber, e.PlayerOutName, e.PlayerInNumber, e.PlayerInName,
			e.TeamScore, e.OpponentScore, e.ScoreDiff, e.Narrative,
		)
		if err != nil {
			return fmt.Errorf("inserting substitution event: %w", err)
		}
	}

	return tx.Commit()
}

// ListEvents returns a season's substitution events in game order.
func (r *RotationRepository) ListEvents(ctx context.Context, seasonID string) ([]model.SubstitutionEvent, error) {
	query := `
		SELECT season_id, game_id, period, clock_seconds, time_remaining,
			player_out_number, player_out_name, player_in_number, player_in_name,
			team_score, opponent_score, score_diff, narrative
		FROM substitution_events
		WHERE season_id = $1
		ORDER BY game_id, period, clock_seconds DESC, id
	`
	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying substitution events: %w", err)
	}
	defer rows.Close()

	var out []model.SubstitutionEvent
	for rows.Next() {
		var e model.SubstitutionEvent
		err := rows.Scan(
			&e.SeasonID, &e.GameID, &e.Period, &e.ClockSeconds, &e.TimeRemaining,
			&e.PlayerOutNumber, &e.PlayerOutName, &e.PlayerInNumber, &e.PlayerInName,
			&e.TeamScore, &e.OpponentScore, &e.ScoreDiff, &e.Narrative,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning substitution event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ReplacePairings swaps out a season's pairing table in one transaction.
func (r *RotationRepository) ReplacePairings(ctx context.Context, seasonID string, pairings []model.SubstitutionPairing) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM substitution_pairings WHERE season_id = $1", seasonID); err != nil {
		return fmt.Errorf("clearing substitution pairings: %w", err)
	}

	query := `
		INSERT INTO substitution_pairings (
			season_id, player_out_number, player_out_name, player_in_number, player_in_name,
			times_occurred, games, avg_period, avg_clock_seconds
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, p := range pairings {
		_, err := tx.ExecContext(ctx, query,
			p.SeasonID, p.PlayerOutNumber, p.PlayerOutName, p.PlayerInNumber, p.PlayerInName,
			p.TimesOccurred, p.Games, p.AvgPeriod, p.AvgClockSeconds,
		)
		if err != nil {
			return fmt.Errorf("inserting substitution pairing: %w", err)
		}
	}

	return tx.Commit()
}

// ListPairings returns a season's pairing table sorted by occurrence
// count descending.
func (r *RotationRepository) ListPairings(ctx context.Context, seasonID string) ([]model.SubstitutionPairing, error) {
	query := `
		SELECT season_id, player_out_number, player_out_name, player_in_number, player_in_name,
			times_occurred, games, avg_period, avg_clock_seconds
		FROM substitution_pairings
		WHERE season_id = $1
		ORDER BY times_occurred DESC, id
	`
	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying substitution pairings: %w", err)
	}
	defer rows.Close()

	var out []model.SubstitutionPairing
	for rows.Next() {
		var p model.SubstitutionPairing
		err := rows.Scan(
			&p.SeasonID, &p.PlayerOutNumber, &p.PlayerOutName, &p.PlayerInNumber, &p.PlayerInName,
			&p.TimesOccurred, &p.Games, &p.AvgPeriod, &p.AvgClockSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning substitution pairing: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
