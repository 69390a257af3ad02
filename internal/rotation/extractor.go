// Package rotation extracts structured substitution events from
// play-by-play rows and derives season rotation pattern aggregates.
package rotation

import (
	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/statparse"
)

// Diagnostics counts source-data defects encountered during extraction.
// They are reported, never fatal: a malformed narrative must not abort a
// season batch.
type Diagnostics struct {
	UnparsedNarratives int `json:"unparsed_narratives"`
	DroppedEntries     int `json:"dropped_entries"`
}

// Extractor turns substitution plays for the subject team into
// SubstitutionEvents. One extractor serves one season-processing
// invocation; plays from opponent teams are discarded immediately.
type Extractor struct {
	seasonID    string
	subjectTeam string
	homeByGame  map[string]bool
}

// NewExtractor creates an extractor for one season. The game metadata
// resolves home/visitor running scores to subject-team/opponent scores.
func NewExtractor(seasonID, subjectTeam string, games []model.GameInfo) *Extractor {
	homeByGame := make(map[string]bool, len(games))
	for _, g := range games {
		homeByGame[g.GameID] = g.HomeTeam == subjectTeam
	}
	return &Extractor{
		seasonID:    seasonID,
		subjectTeam: subjectTeam,
		homeByGame:  homeByGame,
	}
}

// Extract runs a single stateless pass over the ordered plays and
// returns every subject-team substitution pairing. OUT and IN entries
// are paired positionally; when the counts differ the unmatched
// remainder is dropped and counted in the diagnostics.
func (x *Extractor) Extract(plays []model.Play) ([]model.SubstitutionEvent, Diagnostics) {
	var events []model.SubstitutionEvent
	var diag Diagnostics

	for _, play := range plays {
		if play.Type != model.PlayTypeSubstitution || play.Team != x.subjectTeam {
			continue
		}

		entries := statparse.ParseSubstitutionNarrative(play.Narrative)
		if len(entries) == 0 {
			diag.UnparsedNarratives++
			continue
		}

		var outs, ins []statparse.SubEntry
		for _, e := range entries {
			if e.Direction == statparse.DirectionOut {
				outs = append(outs, e)
			} else {
				ins = append(ins, e)
			}
		}

		paired := len(outs)
		if len(ins) < paired {
			paired = len(ins)
		}
		diag.DroppedEntries += (len(outs) - paired) + (len(ins) - paired)

		teamScore, oppScore := x.resolveScore(play)

		for i := 0; i < paired; i++ {
			events = append(events, model.SubstitutionEvent{
				SeasonID:        x.seasonID,
				GameID:          play.GameID,
				Period:          play.Period,
				ClockSeconds:    play.ClockSeconds,
				TimeRemaining:   statparse.FormatClock(play.ClockSeconds),
				PlayerOutNumber: outs[i].Number,
				PlayerOutName:   outs[i].Name,
				PlayerInNumber:  ins[i].Number,
				PlayerInName:    ins[i].Name,
				TeamScore:       teamScore,
				OpponentScore:   oppScore,
				ScoreDiff:       teamScore - oppScore,
				Narrative:       play.Narrative,
			})
		}
	}

	return events, diag
}

// resolveScore maps the play's running home/visiting scores onto the
// subject team's perspective. Substitution plays sometimes omit running
// scores; those stay zero.
func (x *Extractor) resolveScore(play model.Play) (team, opponent int) {
	if !play.HasScore {
		return 0, 0
	}
	if x.homeByGame[play.GameID] {
		return play.HomeScore, play.VisitingScore
	}
	return play.VisitingScore, play.HomeScore
}
