// Package ingest loads a season's extracted CSV row sets into typed
// rows. This is the external-collaborator boundary: upstream tooling
// produces the per-game CSVs, the aggregation engine only ever sees the
// typed rows loaded here.
//
// Bad cell values never fail a load; they parse to zero. The only fatal
// conditions are a missing row-set file or one without a readable
// header, since no aggregation is possible without a parseable schema.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/victoria/internal/model"
)

// Row-set file names as written by the game extraction tooling.
const (
	FileGameInfo     = "game_info.csv"
	FilePlayerStats  = "player_stats.csv"
	FileTeamTotals   = "team_totals.csv"
	FilePeriodScores = "period_scores.csv"
	FilePlays        = "plays.csv"
)

// Loader reads row-set CSVs from a data root holding one subdirectory
// per season.
type Loader struct {
	dir string
	log *logrus.Entry
}

// NewLoader creates a loader rooted at the data directory.
func NewLoader(dir string, log *logrus.Logger) *Loader {
	return &Loader{
		dir: dir,
		log: log.WithField("component", "ingest"),
	}
}

// LoadSeason reads all five row sets and returns them as one SeasonRows
// value.
func (l *Loader) LoadSeason(seasonID string) (*model.SeasonRows, error) {
	rows := &model.SeasonRows{SeasonID: seasonID}

	var err error
	if rows.Games, err = l.loadGameInfo(seasonID); err != nil {
		return nil, err
	}
	if rows.PlayerStats, err = l.loadPlayerStats(seasonID); err != nil {
		return nil, err
	}
	if rows.TeamTotals, err = l.loadTeamTotals(seasonID); err != nil {
		return nil, err
	}
	if rows.PeriodScores, err = l.loadPeriodScores(seasonID); err != nil {
		return nil, err
	}
	if rows.Plays, err = l.loadPlays(seasonID); err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"season":        seasonID,
		"games":         len(rows.Games),
		"player_stats":  len(rows.PlayerStats),
		"team_totals":   len(rows.TeamTotals),
		"period_scores": len(rows.PeriodScores),
		"plays":         len(rows.Plays),
	}).Info("Season row sets loaded")

	return rows, nil
}

func (l *Loader) loadGameInfo(seasonID string) ([]model.GameInfo, error) {
	tbl, err := l.readTable(seasonID, FileGameInfo, "file_id", "home_team", "visiting_team")
	if err != nil {
		return nil, err
	}

	games := make([]model.GameInfo, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		games = append(games, model.GameInfo{
			SeasonID:       seasonID,
			GameID:         tbl.get(row, "file_id"),
			Date:           tbl.get(row, "date"),
			Location:       tbl.get(row, "location"),
			Officials:      tbl.get(row, "officials"),
			Attendance:     tbl.get(row, "attendance"),
			HomeTeam:       tbl.get(row, "home_team"),
			HomeScore:      atoi(tbl.get(row, "home_score")),
			HomeRecord:     tbl.get(row, "home_record"),
			VisitingTeam:   tbl.get(row, "visiting_team"),
			VisitingScore:  atoi(tbl.get(row, "visiting_score")),
			VisitingRecord: tbl.get(row, "visiting_record"),
		})
	}
	return games, nil
}

func (l *Loader) loadPlayerStats(seasonID string) ([]model.PlayerGameStat, error) {
	tbl, err := l.readTable(seasonID, FilePlayerStats, "file_id", "team", "name")
	if err != nil {
		return nil, err
	}

	stats := make([]model.PlayerGameStat, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		stats = append(stats, model.PlayerGameStat{
			SeasonID:      seasonID,
			GameID:        tbl.get(row, "file_id"),
			Team:          tbl.get(row, "team"),
			Name:          tbl.get(row, "name"),
			Number:        tbl.get(row, "number"),
			Position:      tbl.get(row, "position"),
			Minutes:       atoi(tbl.get(row, "minutes")),
			Points:        atoi(tbl.get(row, "points")),
			Rebounds:      atoi(tbl.get(row, "rebounds")),
			Assists:       atoi(tbl.get(row, "assists")),
			Steals:        atoi(tbl.get(row, "steals")),
			Blocks:        atoi(tbl.get(row, "blocks")),
			Turnovers:     atoi(tbl.get(row, "turnovers")),
			Fouls:         atoi(tbl.get(row, "fouls")),
			FieldGoals:    tbl.get(row, "field_goals"),
			ThreePointers: tbl.get(row, "three_pointers"),
			FreeThrows:    tbl.get(row, "free_throws"),
		})
	}
	return stats, nil
}

func (l *Loader) loadTeamTotals(seasonID string) ([]model.TeamGameTotal, error) {
	tbl, err := l.readTable(seasonID, FileTeamTotals, "file_id", "team")
	if err != nil {
		return nil, err
	}

	totals := make([]model.TeamGameTotal, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		totals = append(totals, model.TeamGameTotal{
			SeasonID:      seasonID,
			GameID:        tbl.get(row, "file_id"),
			Team:          tbl.get(row, "team"),
			Points:        atoi(tbl.get(row, "points")),
			Rebounds:      atoi(tbl.get(row, "rebounds")),
			Assists:       atoi(tbl.get(row, "assists")),
			Steals:        atoi(tbl.get(row, "steals")),
			Blocks:        atoi(tbl.get(row, "blocks")),
			Turnovers:     atoi(tbl.get(row, "turnovers")),
			Fouls:         atoi(tbl.get(row, "fouls")),
			FieldGoals:    tbl.get(row, "field_goals"),
			ThreePointers: tbl.get(row, "three_pointers"),
			FreeThrows:    tbl.get(row, "free_throws"),
		})
	}
	return totals, nil
}

func (l *Loader) loadPeriodScores(seasonID string) ([]model.PeriodScore, error) {
	tbl, err := l.readTable(seasonID, FilePeriodScores, "file_id", "team", "period")
	if err != nil {
		return nil, err
	}

	scores := make([]model.PeriodScore, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		scores = append(scores, model.PeriodScore{
			SeasonID: seasonID,
			GameID:   tbl.get(row, "file_id"),
			Team:     tbl.get(row, "team"),
			Period:   atoi(tbl.get(row, "period")),
			Points:   atoi(tbl.get(row, "score")),
		})
	}
	return scores, nil
}

func (l *Loader) loadPlays(seasonID string) ([]model.Play, error) {
	tbl, err := l.readTable(seasonID, FilePlays, "file_id", "period", "narrative")
	if err != nil {
		return nil, err
	}

	plays := make([]model.Play, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		homeScore := tbl.get(row, "home_team_score")
		visitingScore := tbl.get(row, "visiting_team_score")
		plays = append(plays, model.Play{
			SeasonID:      seasonID,
			GameID:        tbl.get(row, "file_id"),
			Period:        atoi(tbl.get(row, "period")),
			ClockSeconds:  atoi(tbl.get(row, "time_remaining")),
			Team:          tbl.get(row, "team"),
			Type:          tbl.get(row, "play_type"),
			Action:        tbl.get(row, "play_action"),
			Narrative:     tbl.get(row, "narrative"),
			PlayerName:    tbl.get(row, "player_name"),
			PlayerNumber:  tbl.get(row, "player_number"),
			HomeScore:     atoi(homeScore),
			VisitingScore: atoi(visitingScore),
			HasScore:      homeScore != "" && visitingScore != "",
		})
	}
	return plays, nil
}

// table is one parsed CSV with header-indexed column access.
type table struct {
	index map[string]int
	rows  [][]string
}

// readTable reads and header-validates one row-set file. A missing file
// or a file with no header row is fatal; required columns must be
// present in the header.
func (l *Loader) readTable(seasonID, name string, required ...string) (*table, error) {
	path := filepath.Join(l.dir, seasonID, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening row set %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", name, err)
	}

	tbl := &table{index: make(map[string]int, len(header))}
	for i, col := range header {
		tbl.index[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := tbl.index[col]; !ok {
			return nil, fmt.Errorf("row set %s missing required column %q", name, col)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A single ragged row is bad data, not a structural failure.
			l.log.WithField("file", name).WithError(err).Warn("Skipping unreadable row")
			continue
		}
		tbl.rows = append(tbl.rows, record)
	}
	return tbl, nil
}

// get returns one cell by column name, empty when the column or cell is
// absent.
func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// atoi parses a numeric cell, treating blank or malformed values as
// zero. Float-formatted cells ("12.0") truncate.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
