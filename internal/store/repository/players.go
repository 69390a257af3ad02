package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/store"
)

// SeasonPlayerRepository handles season player aggregate persistence.
type SeasonPlayerRepository struct {
	db *store.Database
}

// NewSeasonPlayerRepository creates a new season player repository.
func NewSeasonPlayerRepository(db *store.Database) *SeasonPlayerRepository {
	return &SeasonPlayerRepository{db: db}
}

// ReplaceSeason swaps out a season's player aggregate rows in one
// transaction: processing is a full re-fold, so partial updates never
// apply.
func (r *SeasonPlayerRepository) ReplaceSeason(ctx context.Context, seasonID string, rows []model.SeasonPlayerTotals) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM season_player_totals WHERE season_id = $1", seasonID); err != nil {
		return fmt.Errorf("clearing season player totals: %w", err)
	}

	query := `
		INSERT INTO season_player_totals (
			season_id, name, team, games, minutes, points, rebounds, assists,
			steals, blocks, turnovers, fouls,
			fg_made, fg_attempted, three_made, three_attempted, ft_made, ft_attempted,
			mpg, ppg, rpg, apg, spg, bpg, tpg, fpg,
			fg_pct, three_pct, ft_pct, efg_pct, ts_pct, ft_rate,
			ast_to_ratio, ast_to_defined, game_score
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26,
			$27, $28, $29, $30, $31, $32, $33, $34, $35
		)
	`
	for _, p := range rows {
		_, err := tx.ExecContext(ctx, query,
			p.SeasonID, p.Name, p.Team, p.Games, p.Minutes, p.Points, p.Rebounds, p.Assists,
			p.Steals, p.Blocks, p.Turnovers, p.Fouls,
			p.FGMade, p.FGAttempted, p.ThreeMade, p.ThreeAttempted, p.FTMade, p.FTAttempted,
			p.MPG, p.PPG, p.RPG, p.APG, p.SPG, p.BPG, p.TPG, p.FPG,
			p.FGPct, p.ThreePct, p.FTPct, p.EFGPct, p.TSPct, p.FTRate,
			p.AstToRatio, p.AstToDefined, p.GameScore,
		)
		if err != nil {
			return fmt.Errorf("inserting player totals for %s/%s: %w", p.Name, p.Team, err)
		}
	}

	return tx.Commit()
}

// ListBySeason returns a season's player aggregates sorted by total
// points descending.
func (r *SeasonPlayerRepository) ListBySeason(ctx context.Context, seasonID string) ([]model.SeasonPlayerTotals, error) {
	query := `
		SELECT season_id, name, team, games, minutes, points, rebounds, assists,
			steals, blocks, turnovers, fouls,
			fg_made, fg_attempted, three_made, three_attempted, ft_made, ft_attempted,
			mpg, ppg, rpg, apg, spg, bpg, tpg, fpg,
			fg_pct, three_pct, ft_pct, efg_pct, ts_pct, ft_rate,
			ast_to_ratio, ast_to_defined, game_score
		FROM season_player_totals
		WHERE season_id = $1
		ORDER BY points DESC
	`
	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying season player totals: %w", err)
	}
	defer rows.Close()

	var out []model.SeasonPlayerTotals
	for rows.Next() {
		var p model.SeasonPlayerTotals
		err := rows.Scan(
			&p.SeasonID, &p.Name, &p.Team, &p.Games, &p.Minutes, &p.Points, &p.Rebounds, &p.Assists,
			&p.Steals, &p.Blocks, &p.Turnovers, &p.Fouls,
			&p.FGMade, &p.FGAttempted, &p.ThreeMade, &p.ThreeAttempted, &p.FTMade, &p.FTAttempted,
			&p.MPG, &p.PPG, &p.RPG, &p.APG, &p.SPG, &p.BPG, &p.TPG, &p.FPG,
			&p.FGPct, &p.ThreePct, &p.FTPct, &p.EFGPct, &p.TSPct, &p.FTRate,
			&p.AstToRatio, &p.AstToDefined, &p.GameScore,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player totals: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
