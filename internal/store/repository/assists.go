package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/store"
)

// AssistRepository persists the season assist network edge table. Leader
// and receiver rollups are derived from edges at read time.
type AssistRepository struct {
	db *store.Database
}

// NewAssistRepository creates a new assist repository.
func NewAssistRepository(db *store.Database) *AssistRepository {
	return &AssistRepository{db: db}
}

// ReplaceEdges swaps out a season's assist edges in one transaction.
func (r *AssistRepository) ReplaceEdges(ctx context.Context, seasonID string, edges []model.AssistEdge) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assist_edges WHERE season_id = $1", seasonID); err != nil {
		return fmt.Errorf("clearing assist edges: %w", err)
	}

	query := `
		INSERT INTO assist_edges (
			season_id, assister, scorer, assists, total_points,
			threes, twos, layups, jumpers, dunks, avg_points_per_assist
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, e := range edges {
		_, err := tx.ExecContext(ctx, query,
			e.SeasonID, e.Assister, e.Scorer, e.Assists, e.TotalPoints,
			e.Threes, e.Twos, e.Layups, e.Jumpers, e.Dunks, e.AvgPointsPerAssist,
		)
		if err != nil {
			return fmt.Errorf("inserting assist edge: %w", err)
		}
	}

	return tx.Commit()
}

// ListEdges returns a season's assist edges sorted by assist count
// descending.
func (r *AssistRepository) ListEdges(ctx context.Context, seasonID string) ([]model.AssistEdge, error) {
	query := `
		SELECT season_id, assister, scorer, assists, total_points,
			threes, twos, layups, jumpers, dunks, avg_points_per_assist
		FROM assist_edges
		WHERE season_id = $1
		ORDER BY assists DESC, id
	`
	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying assist edges: %w", err)
	}
	defer rows.Close()

	var out []model.AssistEdge
	for rows.Next() {
		var e model.AssistEdge
		err := rows.Scan(
			&e.SeasonID, &e.Assister, &e.Scorer, &e.Assists, &e.TotalPoints,
			&e.Threes, &e.Twos, &e.Layups, &e.Jumpers, &e.Dunks, &e.AvgPointsPerAssist,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning assist edge: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
