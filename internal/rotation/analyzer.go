package rotation

import (
	"fmt"
	"sort"

	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/season"
)

const (
	// periodLengthSeconds is the regulation period length. The feed's
	// clock counts down from 10:00.
	periodLengthSeconds = 600

	// transitionWindowSeconds is how far into a period a substitution
	// still counts as a period-transition move.
	transitionWindowSeconds = 30

	// bucketWidthSeconds is the timing histogram window width.
	bucketWidthSeconds = 120

	// maxBucket is the window holding a full 10:00 clock; anything past
	// it clamps down.
	maxBucket = periodLengthSeconds / bucketWidthSeconds
)

// counter tallies string occurrences with stable first-encountered
// ordering. MostCommon breaks count ties in favor of the earliest
// encountered value; this is the canonical tie-break so outputs are
// deterministic.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(v string) {
	if v == "" {
		return
	}
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

func (c *counter) mostCommon() (string, int) {
	best, bestCount := "", 0
	for _, v := range c.order {
		if c.counts[v] > bestCount {
			best, bestCount = v, c.counts[v]
		}
	}
	return best, bestCount
}

// gameSet tracks distinct game IDs.
type gameSet map[string]struct{}

func (g gameSet) add(id string) { g[id] = struct{}{} }

// Pairings groups events by (player-out, player-in) identity and returns
// one aggregate per pair, sorted by occurrence count descending.
func Pairings(seasonID string, events []model.SubstitutionEvent) []model.SubstitutionPairing {
	type pairKey struct {
		outNumber, outName, inNumber, inName string
	}
	type pairAcc struct {
		count     int
		games     gameSet
		periodSum int
		clockSum  int
	}

	accs := make(map[pairKey]*pairAcc)
	var order []pairKey

	for _, e := range events {
		if e.PlayerOutName == "" || e.PlayerInName == "" {
			continue
		}
		key := pairKey{e.PlayerOutNumber, e.PlayerOutName, e.PlayerInNumber, e.PlayerInName}
		acc, ok := accs[key]
		if !ok {
			acc = &pairAcc{games: make(gameSet)}
			accs[key] = acc
			order = append(order, key)
		}
		acc.count++
		acc.games.add(e.GameID)
		acc.periodSum += e.Period
		acc.clockSum += e.ClockSeconds
	}

	out := make([]model.SubstitutionPairing, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		out = append(out, model.SubstitutionPairing{
			SeasonID:        seasonID,
			PlayerOutNumber: key.outNumber,
			PlayerOutName:   key.outName,
			PlayerInNumber:  key.inNumber,
			PlayerInName:    key.inName,
			TimesOccurred:   acc.count,
			Games:           len(acc.games),
			AvgPeriod:       season.Round1(float64(acc.periodSum) / float64(acc.count)),
			AvgClockSeconds: season.Round1(float64(acc.clockSum) / float64(acc.count)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimesOccurred > out[j].TimesOccurred
	})
	return out
}

// PlayerFrequency computes per-player substitution volume, sorted by
// total subs (in + out) descending.
func PlayerFrequency(seasonID string, events []model.SubstitutionEvent) []model.PlayerSubFrequency {
	type playerKey struct {
		number, name string
	}
	type freqAcc struct {
		in, out int
		games   gameSet
	}

	accs := make(map[playerKey]*freqAcc)
	var order []playerKey

	get := func(key playerKey) *freqAcc {
		acc, ok := accs[key]
		if !ok {
			acc = &freqAcc{games: make(gameSet)}
			accs[key] = acc
			order = append(order, key)
		}
		return acc
	}

	for _, e := range events {
		if e.PlayerOutName != "" {
			acc := get(playerKey{e.PlayerOutNumber, e.PlayerOutName})
			acc.out++
			acc.games.add(e.GameID)
		}
		if e.PlayerInName != "" {
			acc := get(playerKey{e.PlayerInNumber, e.PlayerInName})
			acc.in++
			acc.games.add(e.GameID)
		}
	}

	out := make([]model.PlayerSubFrequency, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		games := len(acc.games)
		row := model.PlayerSubFrequency{
			SeasonID:      seasonID,
			PlayerNumber:  key.number,
			PlayerName:    key.name,
			GamesWithSubs: games,
			TotalSubsIn:   acc.in,
			TotalSubsOut:  acc.out,
		}
		if games > 0 {
			row.AvgSubsInPerGame = season.Round2(float64(acc.in) / float64(games))
			row.AvgSubsOutPerGame = season.Round2(float64(acc.out) / float64(games))
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSubsIn+out[i].TotalSubsOut > out[j].TotalSubsIn+out[j].TotalSubsOut
	})
	return out
}

// TimingPatterns buckets events by period and fixed 2-minute clock
// window (0-2 through 10-12 minutes remaining), with the modal outgoing
// and incoming player per bucket. Sorted by period, then bucket.
func TimingPatterns(seasonID string, events []model.SubstitutionEvent) []model.TimingBucket {
	type bucketKey struct {
		period, bucket int
	}
	type bucketAcc struct {
		count      int
		games      gameSet
		playersOut *counter
		playersIn  *counter
	}

	accs := make(map[bucketKey]*bucketAcc)

	for _, e := range events {
		bucket := e.ClockSeconds / bucketWidthSeconds
		if bucket < 0 {
			bucket = 0
		}
		if bucket > maxBucket {
			bucket = maxBucket
		}

		key := bucketKey{e.Period, bucket}
		acc, ok := accs[key]
		if !ok {
			acc = &bucketAcc{games: make(gameSet), playersOut: newCounter(), playersIn: newCounter()}
			accs[key] = acc
		}
		acc.count++
		acc.games.add(e.GameID)
		acc.playersOut.add(e.PlayerOutName)
		acc.playersIn.add(e.PlayerInName)
	}

	keys := make([]bucketKey, 0, len(accs))
	for key := range accs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].period != keys[j].period {
			return keys[i].period < keys[j].period
		}
		return keys[i].bucket < keys[j].bucket
	})

	out := make([]model.TimingBucket, 0, len(keys))
	for _, key := range keys {
		acc := accs[key]
		mostOut, timesOut := acc.playersOut.mostCommon()
		mostIn, timesIn := acc.playersIn.mostCommon()
		out = append(out, model.TimingBucket{
			SeasonID:       seasonID,
			Period:         key.period,
			BucketLabel:    fmt.Sprintf("%d-%dmin", key.bucket*2, key.bucket*2+2),
			TotalSubs:      acc.count,
			Games:          len(acc.games),
			AvgSubsPerGame: season.Round2(float64(acc.count) / float64(len(acc.games))),
			MostCommonOut:  mostOut,
			TimesOut:       timesOut,
			MostCommonIn:   mostIn,
			TimesIn:        timesIn,
		})
	}
	return out
}

// situationBand classifies a score differential into one of the fixed
// margin bands, from the subject team's perspective.
type situationBand struct {
	detail    string
	situation model.GameSituation
	match     func(diff int) bool
}

var situationBands = []situationBand{
	{"Leading by 10+", model.SituationLeading, func(d int) bool { return d >= 10 }},
	{"Leading by 5-9", model.SituationLeading, func(d int) bool { return d >= 5 && d < 10 }},
	{"Leading by 1-4", model.SituationLeading, func(d int) bool { return d >= 1 && d < 5 }},
	{"Tied", model.SituationTied, func(d int) bool { return d == 0 }},
	{"Trailing by 1-4", model.SituationTrailing, func(d int) bool { return d >= -4 && d < 0 }},
	{"Trailing by 5-9", model.SituationTrailing, func(d int) bool { return d >= -9 && d < -4 }},
	{"Trailing by 10+", model.SituationTrailing, func(d int) bool { return d <= -10 }},
}

// Situations classifies each event by score differential and aggregates
// per margin band. Bands with zero events are omitted. Band order is
// fixed from biggest lead to biggest deficit.
func Situations(seasonID string, events []model.SubstitutionEvent) []model.SituationBreakdown {
	type sitAcc struct {
		count      int
		games      gameSet
		periodSum  int
		playersOut *counter
		playersIn  *counter
	}

	accs := make([]*sitAcc, len(situationBands))

	for _, e := range events {
		for i, band := range situationBands {
			if !band.match(e.ScoreDiff) {
				continue
			}
			if accs[i] == nil {
				accs[i] = &sitAcc{games: make(gameSet), playersOut: newCounter(), playersIn: newCounter()}
			}
			accs[i].count++
			accs[i].games.add(e.GameID)
			accs[i].periodSum += e.Period
			accs[i].playersOut.add(e.PlayerOutName)
			accs[i].playersIn.add(e.PlayerInName)
			break
		}
	}

	var out []model.SituationBreakdown
	for i, acc := range accs {
		if acc == nil {
			continue
		}
		mostOut, timesOut := acc.playersOut.mostCommon()
		mostIn, timesIn := acc.playersIn.mostCommon()
		out = append(out, model.SituationBreakdown{
			SeasonID:       seasonID,
			Situation:      situationBands[i].situation,
			Detail:         situationBands[i].detail,
			TotalSubs:      acc.count,
			Games:          len(acc.games),
			AvgSubsPerGame: season.Round2(float64(acc.count) / float64(len(acc.games))),
			AvgPeriod:      season.Round1(float64(acc.periodSum) / float64(acc.count)),
			MostCommonOut:  mostOut,
			TimesOut:       timesOut,
			MostCommonIn:   mostIn,
			TimesIn:        timesIn,
		})
	}
	return out
}

// PeriodTransitions isolates events within the opening seconds of a
// period and aggregates them per period, sorted by period.
func PeriodTransitions(seasonID string, events []model.SubstitutionEvent) []model.PeriodTransition {
	type transAcc struct {
		count      int
		games      gameSet
		playersOut *counter
		playersIn  *counter
	}

	accs := make(map[int]*transAcc)

	for _, e := range events {
		if e.ClockSeconds < periodLengthSeconds-transitionWindowSeconds || e.ClockSeconds > periodLengthSeconds {
			continue
		}
		acc, ok := accs[e.Period]
		if !ok {
			acc = &transAcc{games: make(gameSet), playersOut: newCounter(), playersIn: newCounter()}
			accs[e.Period] = acc
		}
		acc.count++
		acc.games.add(e.GameID)
		acc.playersOut.add(e.PlayerOutName)
		acc.playersIn.add(e.PlayerInName)
	}

	periods := make([]int, 0, len(accs))
	for p := range accs {
		periods = append(periods, p)
	}
	sort.Ints(periods)

	out := make([]model.PeriodTransition, 0, len(periods))
	for _, p := range periods {
		acc := accs[p]
		mostOut, timesOut := acc.playersOut.mostCommon()
		mostIn, timesIn := acc.playersIn.mostCommon()
		out = append(out, model.PeriodTransition{
			SeasonID:       seasonID,
			Period:         p,
			TotalSubs:      acc.count,
			Games:          len(acc.games),
			AvgSubsPerGame: season.Round2(float64(acc.count) / float64(len(acc.games))),
			MostCommonOut:  mostOut,
			TimesOut:       timesOut,
			MostCommonIn:   mostIn,
			TimesIn:        timesIn,
		})
	}
	return out
}

// MassSubstitutions groups events by occurrence key: one record per
// narrative, sized by the number of pairings it produced. Records are
// sorted by player count descending, stable on first encounter.
func MassSubstitutions(seasonID string, events []model.SubstitutionEvent) []model.MassSubstitution {
	accs := make(map[model.SubOccurrenceKey]*model.MassSubstitution)
	var order []model.SubOccurrenceKey

	for _, e := range events {
		key := e.OccurrenceKey()
		acc, ok := accs[key]
		if !ok {
			acc = &model.MassSubstitution{
				SeasonID:     seasonID,
				GameID:       e.GameID,
				Period:       e.Period,
				ClockSeconds: e.ClockSeconds,
				ScoreDiff:    e.ScoreDiff,
			}
			accs[key] = acc
			order = append(order, key)
		}
		acc.NumPlayers++
		acc.PlayersOut = append(acc.PlayersOut, e.PlayerOutName)
		acc.PlayersIn = append(acc.PlayersIn, e.PlayerInName)
	}

	out := make([]model.MassSubstitution, 0, len(order))
	for _, key := range order {
		out = append(out, *accs[key])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NumPlayers > out[j].NumPlayers
	})
	return out
}

// MassSubCounts tallies occurrences by pairing count (1 through 5
// players swapping at once).
func MassSubCounts(massSubs []model.MassSubstitution) map[int]int {
	counts := make(map[int]int)
	for _, ms := range massSubs {
		counts[ms.NumPlayers]++
	}
	return counts
}
