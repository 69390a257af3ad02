package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeSeasonDir(t *testing.T) (root, dir string) {
	t.Helper()
	root = t.TempDir()
	dir = filepath.Join(root, "2024-25")
	require.NoError(t, os.Mkdir(dir, 0o755))

	writeFile(t, dir, FileGameInfo,
		"source_id,file_id,date,location,officials,attendance,home_team,home_score,home_record,visiting_team,visiting_score,visiting_record\n"+
			"392,18730,2024-11-08,College Park,\"A, B, C\",7412,Maryland,80,\"1-0\",Iowa,70,\"0-1\"\n")

	writeFile(t, dir, FilePlayerStats,
		"source_id,file_id,team,name,number,position,minutes,field_goals,fg_pct,three_pointers,three_pt_pct,free_throws,ft_pct,rebounds,assists,turnovers,steals,blocks,points\n"+
			"392,18730,Maryland,Kaylene Smikle,02,G,32,8-15,53.3,2-5,40.0,6-7,85.7,4,3,2,1,0,24\n"+
			"392,18730,Iowa,Lucy Olsen,03,G,35,7-18,38.9,1-6,16.7,4-4,100.0,3,5,3,2,0,19\n")

	writeFile(t, dir, FileTeamTotals,
		"source_id,file_id,team,points,field_goals,fg_pct,three_pointers,three_pt_pct,free_throws,ft_pct,rebounds,assists,steals,blocks,turnovers,fouls\n"+
			"392,18730,Maryland,80,29-62,46.8,8-21,38.1,14-18,77.8,40,18,7,4,12,15\n"+
			"392,18730,Iowa,70,26-65,40.0,6-20,30.0,12-15,80.0,35,14,6,2,14,17\n")

	writeFile(t, dir, FilePeriodScores,
		"source_id,file_id,team,period,score\n"+
			"392,18730,Maryland,1,22\n392,18730,Maryland,2,18\n392,18730,Iowa,1,15\n")

	writeFile(t, dir, FilePlays,
		"source_id,file_id,period,time_remaining,team,play_type,play_action,narrative,player_name,player_number,home_team_score,visiting_team_score\n"+
			"392,18730,1,254,Maryland,SUBS,SUB,02 Kaylene Smikle OUT; 06 Saylor Poffenbarger IN,,,40,33\n"+
			"392,18730,2,120,Maryland,SHOT,GOOD,14 Allie Kubek LAYUP GOOD (2 Pt); 02 Kaylene Smikle Assist (4 Asst),Allie Kubek,14,,\n")

	return root, dir
}

func TestLoadSeason(t *testing.T) {
	root, _ := writeSeasonDir(t)
	loader := NewLoader(root, logrus.New())
	rows, err := loader.LoadSeason("2024-25")
	require.NoError(t, err)

	require.Len(t, rows.Games, 1)
	assert.Equal(t, "18730", rows.Games[0].GameID)
	assert.Equal(t, "Maryland", rows.Games[0].HomeTeam)
	assert.Equal(t, 80, rows.Games[0].HomeScore)

	require.Len(t, rows.PlayerStats, 2)
	assert.Equal(t, "Kaylene Smikle", rows.PlayerStats[0].Name)
	assert.Equal(t, "8-15", rows.PlayerStats[0].FieldGoals)
	assert.Equal(t, 24, rows.PlayerStats[0].Points)

	require.Len(t, rows.TeamTotals, 2)
	assert.Equal(t, 15, rows.TeamTotals[0].Fouls)

	require.Len(t, rows.PeriodScores, 3)
	assert.Equal(t, 22, rows.PeriodScores[0].Points)

	require.Len(t, rows.Plays, 2)
	assert.Equal(t, 254, rows.Plays[0].ClockSeconds)
	assert.True(t, rows.Plays[0].HasScore)
	assert.False(t, rows.Plays[1].HasScore)
}

func TestLoadSeason_Results(t *testing.T) {
	root, _ := writeSeasonDir(t)
	loader := NewLoader(root, logrus.New())
	rows, err := loader.LoadSeason("2024-25")
	require.NoError(t, err)

	results := rows.Results()
	require.Len(t, results, 2)
	assert.True(t, results[0].Won)
	assert.True(t, results[0].Home)
	assert.Equal(t, 70, results[0].PointsAgainst)
	assert.False(t, results[1].Won)
}

func TestLoadSeason_MissingFileIsFatal(t *testing.T) {
	root, dir := writeSeasonDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, FilePlays)))

	loader := NewLoader(root, logrus.New())
	_, err := loader.LoadSeason("2024-25")
	assert.Error(t, err)
}

func TestLoadSeason_HeaderlessFileIsFatal(t *testing.T) {
	root, dir := writeSeasonDir(t)
	writeFile(t, dir, FileGameInfo, "")

	loader := NewLoader(root, logrus.New())
	_, err := loader.LoadSeason("2024-25")
	assert.Error(t, err)
}

func TestLoadSeason_MissingRequiredColumnIsFatal(t *testing.T) {
	root, dir := writeSeasonDir(t)
	writeFile(t, dir, FileTeamTotals, "source_id,points\n392,80\n")

	loader := NewLoader(root, logrus.New())
	_, err := loader.LoadSeason("2024-25")
	assert.Error(t, err)
}

func TestAtoi(t *testing.T) {
	assert.Equal(t, 12, atoi("12"))
	assert.Equal(t, 12, atoi("12.0"))
	assert.Equal(t, 0, atoi(""))
	assert.Equal(t, 0, atoi("n/a"))
}
