// rounds.go — round-by-round team scoring.
//
// A team's round score is not the sum of all ten of its golfers: only the
// best N count, and N shrinks as the playoffs progress. These helpers turn
// raw golfer round scores into the team round scores and the cumulative
// tournament score that the standings pass in standings.go ranks on.
package standings

import (
	"math"
	"sort"
)

// CountedGolfers reports how many of a team's golfers count toward its score
// in the given round (1-4) of a tournament in the given playoff week
// (0 = regular season).
//
// Regular-season events and the first playoff event count the best 10 golfers
// before the cut and the best 5 after it. The second playoff event counts 5
// in every round, and the TOUR Championship (week 3) counts 3.
func CountedGolfers(playoffWeek, round int) int {
	switch {
	case playoffWeek >= 3:
		return 3
	case playoffWeek == 2:
		return 5
	case round <= 2:
		return 10
	default:
		return 5
	}
}

// TeamRoundScore averages the lowest `counted` golfer scores for one round,
// rounded to one decimal place. The divisor is always `counted`, even when
// fewer golfers posted a score — a team that lost golfers to withdrawal still
// divides by the full allotment.
func TeamRoundScore(scores []float64, counted int) float64 {
	if counted <= 0 {
		return 0
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	take := counted
	if take > len(sorted) {
		take = len(sorted)
	}
	var sum float64
	for _, s := range sorted[:take] {
		sum += s
	}
	return math.Round(sum/float64(counted)*10) / 10
}

// CumulativeScore folds a team's round scores into its tournament total
// relative to par: starting strokes plus the round scores, less four rounds
// of the course par.
func CumulativeScore(starting float64, rounds []float64, par int) float64 {
	total := starting
	for _, r := range rounds {
		total += r
	}
	return total - float64(par)*4
}

// StartingStrokes resolves the stroke total a team carries into a playoff
// event. The first playoff event staggers the field by regular-season seed —
// the top seed starts ten under, tapering to even par outside the top 25.
// Later playoff events carry the previous event's final score forward
// unchanged. Regular-season events always start from scratch.
func StartingStrokes(playoffWeek, seed int, priorScore float64) float64 {
	if playoffWeek <= 0 {
		return 0
	}
	if playoffWeek >= 2 {
		return priorScore
	}
	switch {
	case seed == 1:
		return -10
	case seed == 2:
		return -8
	case seed == 3:
		return -7
	case seed == 4:
		return -6
	case seed == 5:
		return -5
	case seed >= 6 && seed <= 10:
		return -4
	case seed >= 11 && seed <= 15:
		return -3
	case seed >= 16 && seed <= 20:
		return -2
	case seed >= 21 && seed <= 25:
		return -1
	default:
		return 0
	}
}
