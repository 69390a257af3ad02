package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/store"
)

// TeamSeasonRepository handles team season summary persistence.
type TeamSeasonRepository struct {
	db *store.Database
}

// NewTeamSeasonRepository creates a new team season repository.
func NewTeamSeasonRepository(db *store.Database) *TeamSeasonRepository {
	return &TeamSeasonRepository{db: db}
}

// ReplaceSeason swaps out a season's team summary rows in one
// transaction.
func (r *TeamSeasonRepository) ReplaceSeason(ctx context.Context, seasonID string, rows []model.TeamSeasonTotals) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_season_totals WHERE season_id = $1", seasonID); err != nil {
		return fmt.Errorf("clearing team season totals: %w", err)
	}

	query := `
		INSERT INTO team_season_totals (
			season_id, team, subject, games, wins, losses, win_pct,
			points, points_allowed, rebounds, assists, steals, blocks, turnovers, fouls,
			fg_made, fg_attempted, three_made, three_attempted, ft_made, ft_attempted,
			ppg, rpg, apg, spg, bpg, tpg, fpg,
			fg_pct, three_pct, ft_pct, efg_pct, ts_pct, ft_rate,
			ast_to_ratio, ast_to_defined, off_rating, def_rating, net_rating
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34,
			$35, $36, $37, $38, $39
		)
	`
	for _, t := range rows {
		_, err := tx.ExecContext(ctx, query,
			t.SeasonID, t.Team, t.Subject, t.Games, t.Wins, t.Losses, t.WinPct,
			t.Points, t.PointsAllowed, t.Rebounds, t.Assists, t.Steals, t.Blocks, t.Turnovers, t.Fouls,
			t.FGMade, t.FGAttempted, t.ThreeMade, t.ThreeAttempted, t.FTMade, t.FTAttempted,
			t.PPG, t.RPG, t.APG, t.SPG, t.BPG, t.TPG, t.FPG,
			t.FGPct, t.ThreePct, t.FTPct, t.EFGPct, t.TSPct, t.FTRate,
			t.AstToRatio, t.AstToDefined, t.OffRating, t.DefRating, t.NetRating,
		)
		if err != nil {
			return fmt.Errorf("inserting team totals for %s: %w", t.Team, err)
		}
	}

	return tx.Commit()
}

// ListBySeason returns a season's team summaries sorted by wins
// descending.
func (r *TeamSeasonRepository) ListBySeason(ctx context.Context, seasonID string) ([]model.TeamSeasonTotals, error) {
	query := `
		SELECT season_id, team, subject, games, wins, losses, win_pct,
			points, points_allowed, rebounds, assists, steals, blocks, turnovers, fouls,
			fg_made, fg_attempted, three_made, three_attempted, ft_made, ft_attempted,
			ppg, rpg, apg, spg, bpg, tpg, fpg,
			fg_pct, three_pct, ft_pct, efg_pct, ts_pct, ft_rate,
			ast_to_ratio, ast_to_defined, off_rating, def_rating, net_rating
		FROM team_season_totals
		WHERE season_id = $1
		ORDER BY wins DESC, team ASC
	`
	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying team season totals: %w", err)
	}
	defer rows.Close()

	var out []model.TeamSeasonTotals
	for rows.Next() {
		var t model.TeamSeasonTotals
		err := rows.Scan(
			&t.SeasonID, &t.Team, &t.Subject, &t.Games, &t.Wins, &t.Losses, &t.WinPct,
			&t.Points, &t.PointsAllowed, &t.Rebounds, &t.Assists, &t.Steals, &t.Blocks, &t.Turnovers, &t.Fouls,
			&t.FGMade, &t.FGAttempted, &t.ThreeMade, &t.ThreeAttempted, &t.FTMade, &t.FTAttempted,
			&t.PPG, &t.RPG, &t.APG, &t.SPG, &t.BPG, &t.TPG, &t.FPG,
			&t.FGPct, &t.ThreePct, &t.FTPct, &t.EFGPct, &t.TSPct, &t.FTRate,
			&t.AstToRatio, &t.AstToDefined, &t.OffRating, &t.DefRating, &t.NetRating,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team totals: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
