// Package standings implements the scoring pipeline for the Fantasy Golf Tour:
// given every team's stroke total for a tournament and the tournament tier's
// payout/points tables, it computes each team's finishing position, prize
// earnings, and season points.
//
// Everything in this package is pure computation: no database, no network, no
// clocks. The cron handler and the recalculation endpoint load teams and tier
// data, call UpdateTeamPositions, and persist whatever comes back. Because the
// functions here never mutate their inputs (they return fresh copies), it is
// safe to run them for different tournaments concurrently.
//
// Positions use "competition ranking", the same convention the PGA leaderboard
// uses: tied teams share the best rank of their group and are labelled with a
// "T" prefix ("T3"), and the next score group skips ahead by the size of the
// tie. Two teams tied at 1 are "T1" and "T1"; the next team is "3".
package standings

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PositionCut is the sentinel position for a team that missed the cut.
// Cut teams keep this string forever: they are excluded from ranking and
// always carry zero earnings and zero points.
const PositionCut = "CUT"

// TourChampionship is the season-ending playoff event. It is the one
// tournament where a single team list is scored as two independent
// competitions (gold and silver brackets) sharing one payout table.
const TourChampionship = "TOUR Championship"

// Size of the gold bracket's slice of the TOUR Championship payout table.
// The silver bracket draws from the rows after it.
const championshipBracketSize = 75

// TeamResult is the calculator's view of one team in one tournament.
// Score and Today are pointers because a team that has not started (or whose
// golfers have no live data yet) genuinely has no score — which is different
// from a score of zero (even par).
type TeamResult struct {
	ID           uuid.UUID
	TourCardID   uuid.UUID
	Score        *float64 // cumulative strokes relative to par; lower is better
	Today        *float64 // strokes gained/lost in today's round only
	Position     *string  // "CUT", "1", "T4", ... ; nil before first scoring pass
	PastPosition *string  // position as of the start of today's round
	Earnings     float64
	Points       float64
}

// TourCard is the calculator's view of the card that owns a team: which tour
// it competes on and, at the TOUR Championship, which bracket it plays in.
type TourCard struct {
	ID      uuid.UUID
	TourID  uuid.UUID
	Playoff int // 0 = regular season, 1 = gold bracket, 2 = silver bracket
}

// Tier is a tournament class's award tables. Index 0 is 1st place. The
// calculator only ever reads by index or slice: it does not require the two
// arrays to have equal length, and a rank past the end of a table is simply
// worth nothing.
type Tier struct {
	Points  []float64
	Payouts []float64
}

// sliceTier returns the tier rows [from, to), clamped to each table's length.
// Used to carve the TOUR Championship table into its gold and silver views.
func sliceTier(t Tier, from, to int) Tier {
	clamp := func(vals []float64) []float64 {
		if from >= len(vals) {
			return nil
		}
		end := to
		if end > len(vals) {
			end = len(vals)
		}
		return vals[from:end]
	}
	return Tier{Points: clamp(t.Points), Payouts: clamp(t.Payouts)}
}

// AssignPositions computes a competition-ranking position label for every
// rankable team and returns them keyed by team ID.
//
// A team is rankable when it has not missed the cut and scoreOf reports a
// value for it. Teams are grouped by exact score, groups are ordered from
// lowest (best) to highest, and ranks accumulate: a group starting at rank r
// with k members labels each member "r" when alone or "Tr" when tied, and the
// next group starts at r+k.
//
// The result is a total function of the id→score mapping: the order teams
// appear in the input slice never changes any label.
func AssignPositions(teams []TeamResult, scoreOf func(TeamResult) (float64, bool)) map[uuid.UUID]string {
	// One grouping pass up front; every later lookup is O(1).
	groups := make(map[float64][]uuid.UUID)
	for _, team := range teams {
		if team.Position != nil && *team.Position == PositionCut {
			continue
		}
		score, ok := scoreOf(team)
		if !ok {
			continue
		}
		groups[score] = append(groups[score], team.ID)
	}

	scores := make([]float64, 0, len(groups))
	for score := range groups {
		scores = append(scores, score)
	}
	sort.Float64s(scores)

	positions := make(map[uuid.UUID]string, len(teams))
	rank := 1
	for _, score := range scores {
		ids := groups[score]
		label := strconv.Itoa(rank)
		if len(ids) > 1 {
			label = "T" + label
		}
		for _, id := range ids {
			positions[id] = label
		}
		rank += len(ids)
	}
	return positions
}

// AwardForPosition resolves one team's earnings and points from the tier
// tables, given the field of teams it competes against for tie purposes.
//
// A solo finisher at rank r takes row r-1 of each table (zero when the table
// is shorter than that). A tied group of m teams pools rows r-1 through
// r-1+m-1 — clamped to the end of the table — and splits the pool m ways.
// The divisor stays m even when the group straddles the bottom of the table,
// so a large tie at the cutoff is worth less per team than the surviving rows
// alone would suggest.
//
// Cut teams, empty tables, and unparseable positions are all worth (0, 0).
func AwardForPosition(team TeamResult, field []TeamResult, tier Tier) (earnings, points float64) {
	if team.Position == nil || *team.Position == PositionCut {
		return 0, 0
	}
	if len(tier.Points) == 0 || len(tier.Payouts) == 0 {
		return 0, 0
	}

	pos := *team.Position
	tied := strings.HasPrefix(pos, "T")
	rank, err := strconv.Atoi(strings.TrimPrefix(pos, "T"))
	if err != nil || rank < 1 {
		return 0, 0
	}
	idx := rank - 1

	if !tied {
		return valueAt(tier.Payouts, idx), valueAt(tier.Points, idx)
	}

	// Every field team sharing this exact label, the team itself included.
	tieSize := 0
	for _, other := range field {
		if other.Position != nil && *other.Position == pos {
			tieSize++
		}
	}
	if tieSize == 0 {
		// The team's own position is absent from the field it was given —
		// nothing to split, nothing to award.
		return 0, 0
	}

	return sumRange(tier.Payouts, idx, tieSize) / float64(tieSize),
		sumRange(tier.Points, idx, tieSize) / float64(tieSize)
}

// valueAt reads vals[idx], treating anything out of bounds as worth zero.
func valueAt(vals []float64, idx int) float64 {
	if idx < 0 || idx >= len(vals) {
		return 0
	}
	return vals[idx]
}

// sumRange sums vals[idx : idx+n], clamped to the end of the slice.
func sumRange(vals []float64, idx, n int) float64 {
	if idx < 0 || idx >= len(vals) {
		return 0
	}
	end := idx + n
	if end > len(vals) {
		end = len(vals)
	}
	var sum float64
	for _, v := range vals[idx:end] {
		sum += v
	}
	return sum
}

// UpdateTeamPositions runs the full scoring pass for one tournament: it
// assigns current and start-of-day positions to every team, resolves each
// team's earnings and points from the tier tables, and returns the updated
// copies. The input slice is never modified.
//
// For every tournament except the TOUR Championship, positions are ranked
// across the entire field while ties split awards within a team's own tour
// (teams are grouped by their card's TourID). At the TOUR Championship the
// field is instead split into gold and silver brackets by the card's Playoff
// flag; each bracket is ranked independently, and the silver bracket draws
// its awards from the rows of the tier table after the gold bracket's.
//
// An empty team list or a nil tier is a no-op: the input comes straight back.
// The pass is idempotent — positions, earnings, and points are a function of
// scores and the tier only, so re-running it on its own output changes nothing.
func UpdateTeamPositions(teams []TeamResult, cards []TourCard, tier *Tier, tournamentName string) []TeamResult {
	if len(teams) == 0 || tier == nil {
		return teams
	}

	cardByID := make(map[uuid.UUID]TourCard, len(cards))
	for _, card := range cards {
		cardByID[card.ID] = card
	}

	championship := tournamentName == TourChampionship
	goldTier := *tier
	silverTier := *tier
	if championship {
		goldTier = sliceTier(*tier, 0, championshipBracketSize)
		silverTier = sliceTier(*tier, championshipBracketSize, 2*championshipBracketSize)
	}

	inSilver := func(team TeamResult) bool {
		return championship && cardByID[team.TourCardID].Playoff == 2
	}

	currentScore := func(team TeamResult) (float64, bool) {
		if team.Score == nil {
			return 0, false
		}
		return *team.Score, true
	}
	// "Yesterday's standings": back today's movement out of the total.
	pastScore := func(team TeamResult) (float64, bool) {
		if team.Score == nil {
			return 0, false
		}
		today := 0.0
		if team.Today != nil {
			today = *team.Today
		}
		return *team.Score - today, true
	}

	var positions, pastPositions map[uuid.UUID]string
	if championship {
		var gold, silver []TeamResult
		for _, team := range teams {
			if inSilver(team) {
				silver = append(silver, team)
			} else {
				gold = append(gold, team)
			}
		}
		positions = mergeMaps(
			AssignPositions(gold, currentScore),
			AssignPositions(silver, currentScore),
		)
		pastPositions = mergeMaps(
			AssignPositions(gold, pastScore),
			AssignPositions(silver, pastScore),
		)
	} else {
		positions = AssignPositions(teams, currentScore)
		pastPositions = AssignPositions(teams, pastScore)
	}

	// First pass: fresh copies with the new position labels. Awards are
	// resolved afterwards so tie lookups see the updated field.
	updated := make([]TeamResult, len(teams))
	for i, team := range teams {
		next := team
		if team.Position == nil || *team.Position != PositionCut {
			next.Position = ptr(labelOrDefault(positions, team.ID))
			next.PastPosition = ptr(labelOrDefault(pastPositions, team.ID))
		}
		updated[i] = next
	}

	// Tie pools: bracket-mates at the TOUR Championship, tour-mates elsewhere.
	var goldField, silverField []TeamResult
	fieldByTour := make(map[uuid.UUID][]TeamResult)
	for _, team := range updated {
		if championship {
			if inSilver(team) {
				silverField = append(silverField, team)
			} else {
				goldField = append(goldField, team)
			}
		} else {
			tourID := cardByID[team.TourCardID].TourID
			fieldByTour[tourID] = append(fieldByTour[tourID], team)
		}
	}

	for i, team := range updated {
		view := goldTier
		field := goldField
		switch {
		case inSilver(team):
			view = silverTier
			field = silverField
		case !championship:
			field = fieldByTour[cardByID[team.TourCardID].TourID]
		}

		earnings, points := AwardForPosition(team, field, view)
		updated[i].Earnings = math.Round(earnings*100) / 100 // cents
		updated[i].Points = math.Round(points)
	}

	return updated
}

// labelOrDefault looks up a team's computed label, falling back to "1" for a
// team the ranking pass skipped (a non-cut team with no score yet).
func labelOrDefault(positions map[uuid.UUID]string, id uuid.UUID) string {
	if label, ok := positions[id]; ok {
		return label
	}
	return "1"
}

func mergeMaps(a, b map[uuid.UUID]string) map[uuid.UUID]string {
	merged := make(map[uuid.UUID]string, len(a)+len(b))
	for id, label := range a {
		merged[id] = label
	}
	for id, label := range b {
		merged[id] = label
	}
	return merged
}

func ptr(s string) *string { return &s }
