// Package statparse parses the compound box-score cell values and
// play-by-play narrative fragments the source feed uses. All narrative
// format coupling lives here, so format drift requires changing one
// place.
package statparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SubDirection marks whether a substitution entry is a player leaving or
// entering the game.
type SubDirection string

const (
	DirectionOut SubDirection = "OUT"
	DirectionIn  SubDirection = "IN"
)

// SubEntry is one parsed segment of a substitution narrative.
type SubEntry struct {
	Direction SubDirection
	Number    string
	Name      string
}

// Segment format: "02 Kaylene Smikle OUT" / "06 Saylor Poffenbarger IN".
var subSegmentPattern = regexp.MustCompile(`^(\d+)\s+(.+?)\s+(OUT|IN)$`)

// Scoring narrative with assist attribution:
// "14 Allie Kubek LAYUP GOOD (2 Pt); 02 Kaylene Smikle Assist (4 Asst)"
var assistPattern = regexp.MustCompile(`(?i)^(\d+)\s+([^;]+?)\s+(LAYUP|3PTR|JUMPER|DUNK|TIP IN)\s+GOOD\s+\((\d+)\s+Pt\);\s+(\d+)\s+([^;]+?)\s+Assist\s+\((\d+)\s+Asst\)`)

// ParseCompoundStat splits a "made-attempted" formatted cell into its two
// integer halves. Empty, malformed, or non-numeric input yields (0, 0);
// so does a line claiming more makes than attempts. Never errors.
func ParseCompoundStat(text string) (made, attempted int) {
	parts := strings.SplitN(strings.TrimSpace(text), "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}

	made, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || made < 0 {
		return 0, 0
	}
	attempted, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || attempted < 0 {
		return 0, 0
	}
	if made > attempted {
		return 0, 0
	}
	return made, attempted
}

// ParseSubstitutionNarrative splits a substitution narrative into its
// individual player entries, preserving narrative order within each
// direction. Segments that do not match the expected format are skipped;
// callers count skips as diagnostics rather than failing.
func ParseSubstitutionNarrative(text string) []SubEntry {
	var entries []SubEntry
	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		match := subSegmentPattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}

		entries = append(entries, SubEntry{
			Direction: SubDirection(match[3]),
			Number:    match[1],
			Name:      strings.TrimSpace(match[2]),
		})
	}
	return entries
}

// ParsedAssist is a scoring narrative's extracted assist attribution.
type ParsedAssist struct {
	ScorerNumber   string
	ScorerName     string
	ShotType       string
	Points         int
	AssisterNumber string
	AssisterName   string
}

// ParseAssistNarrative extracts the scorer, shot type, point value, and
// assister from a made-basket narrative. Returns false when the narrative
// does not carry assist attribution in the expected format.
func ParseAssistNarrative(text string) (ParsedAssist, bool) {
	match := assistPattern.FindStringSubmatch(text)
	if match == nil {
		return ParsedAssist{}, false
	}

	points, err := strconv.Atoi(match[4])
	if err != nil {
		return ParsedAssist{}, false
	}

	return ParsedAssist{
		ScorerNumber:   match[1],
		ScorerName:     strings.TrimSpace(match[2]),
		ShotType:       strings.ToUpper(match[3]),
		Points:         points,
		AssisterNumber: match[5],
		AssisterName:   strings.TrimSpace(match[6]),
	}, true
}

// FormatClock renders seconds remaining as "MM:SS". Negative input is
// treated as zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
