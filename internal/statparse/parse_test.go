package statparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompoundStat(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		made      int
		attempted int
	}{
		{"normal", "4-8", 4, 8},
		{"perfect", "2-2", 2, 2},
		{"zero attempts", "0-0", 0, 0},
		{"whitespace", " 5-11 ", 5, 11},
		{"empty", "", 0, 0},
		{"no separator", "48", 0, 0},
		{"non numeric made", "x-8", 0, 0},
		{"non numeric attempted", "4-y", 0, 0},
		{"wrong separator", "4/8", 0, 0},
		{"made exceeds attempted", "9-8", 0, 0},
		{"negative", "-4-8", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			made, attempted := ParseCompoundStat(tt.input)
			assert.Equal(t, tt.made, made)
			assert.Equal(t, tt.attempted, attempted)
		})
	}
}

func TestParseSubstitutionNarrative_SinglePair(t *testing.T) {
	entries := ParseSubstitutionNarrative("02 Kaylene Smikle OUT; 06 Saylor Poffenbarger IN")

	require.Len(t, entries, 2)
	assert.Equal(t, SubEntry{DirectionOut, "02", "Kaylene Smikle"}, entries[0])
	assert.Equal(t, SubEntry{DirectionIn, "06", "Saylor Poffenbarger"}, entries[1])
}

func TestParseSubstitutionNarrative_MassSub(t *testing.T) {
	entries := ParseSubstitutionNarrative("02 A OUT; 14 B OUT; 06 C IN; 10 D IN")

	require.Len(t, entries, 4)
	assert.Equal(t, DirectionOut, entries[0].Direction)
	assert.Equal(t, DirectionOut, entries[1].Direction)
	assert.Equal(t, DirectionIn, entries[2].Direction)
	assert.Equal(t, DirectionIn, entries[3].Direction)
	assert.Equal(t, "B", entries[1].Name)
	assert.Equal(t, "10", entries[3].Number)
}

func TestParseSubstitutionNarrative_FivePlayerSwap(t *testing.T) {
	entries := ParseSubstitutionNarrative(
		"01 A OUT; 02 B OUT; 03 C OUT; 04 D OUT; 05 E OUT; " +
			"06 F IN; 07 G IN; 08 H IN; 09 I IN; 10 J IN")

	require.Len(t, entries, 10)
	outs := 0
	for _, e := range entries {
		if e.Direction == DirectionOut {
			outs++
		}
	}
	assert.Equal(t, 5, outs)
}

func TestParseSubstitutionNarrative_MalformedSegmentsSkipped(t *testing.T) {
	entries := ParseSubstitutionNarrative("TIMEOUT 30 Sec; 02 Kaylene Smikle OUT; garbage")

	require.Len(t, entries, 1)
	assert.Equal(t, "Kaylene Smikle", entries[0].Name)
}

func TestParseSubstitutionNarrative_Empty(t *testing.T) {
	assert.Empty(t, ParseSubstitutionNarrative(""))
	assert.Empty(t, ParseSubstitutionNarrative(";;"))
}

func TestParseAssistNarrative(t *testing.T) {
	parsed, ok := ParseAssistNarrative("14 Allie Kubek LAYUP GOOD (2 Pt); 02 Kaylene Smikle Assist (4 Asst)")

	require.True(t, ok)
	assert.Equal(t, "14", parsed.ScorerNumber)
	assert.Equal(t, "Allie Kubek", parsed.ScorerName)
	assert.Equal(t, "LAYUP", parsed.ShotType)
	assert.Equal(t, 2, parsed.Points)
	assert.Equal(t, "02", parsed.AssisterNumber)
	assert.Equal(t, "Kaylene Smikle", parsed.AssisterName)
}

func TestParseAssistNarrative_Three(t *testing.T) {
	parsed, ok := ParseAssistNarrative("03 Shyanne Sellers 3PTR GOOD (3 Pt); 25 Christina Dalce Assist (2 Asst)")

	require.True(t, ok)
	assert.Equal(t, "3PTR", parsed.ShotType)
	assert.Equal(t, 3, parsed.Points)
	assert.Equal(t, "Christina Dalce", parsed.AssisterName)
}

func TestParseAssistNarrative_CaseInsensitive(t *testing.T) {
	_, ok := ParseAssistNarrative("14 Allie Kubek Jumper Good (2 Pt); 02 Kaylene Smikle assist (4 Asst)")
	assert.True(t, ok)
}

func TestParseAssistNarrative_NoAssist(t *testing.T) {
	_, ok := ParseAssistNarrative("14 Allie Kubek LAYUP GOOD (2 Pt)")
	assert.False(t, ok)

	_, ok = ParseAssistNarrative("14 Allie Kubek LAYUP MISSED")
	assert.False(t, ok)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "10:00", FormatClock(600))
	assert.Equal(t, "02:05", FormatClock(125))
	assert.Equal(t, "00:09", FormatClock(9))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:00", FormatClock(-30))
}
