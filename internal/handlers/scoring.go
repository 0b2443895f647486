// scoring.go — the glue between the GORM models and the standings core.
// The core in internal/standings works on its own small value types so it can
// stay pure and testable; these helpers convert model rows into those types,
// run a team's golfer scores through the round policy, and copy computed
// results back onto the rows. Everything here is pure — the cron and
// recalculation handlers do the actual I/O.
package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/opentour/fantasy-golf/internal/models"
	"github.com/opentour/fantasy-golf/internal/standings"
)

// toStandingsTeams converts team rows into the calculator's input records.
func toStandingsTeams(teams []models.Team) []standings.TeamResult {
	results := make([]standings.TeamResult, len(teams))
	for i, team := range teams {
		results[i] = standings.TeamResult{
			ID:           team.ID,
			TourCardID:   team.TourCardID,
			Score:        team.Score,
			Today:        team.Today,
			Position:     team.Position,
			PastPosition: team.PastPosition,
			Earnings:     team.Earnings,
			Points:       team.Points,
		}
	}
	return results
}

// toStandingsCards converts tour card rows into the calculator's card views.
func toStandingsCards(cards []models.TourCard) []standings.TourCard {
	results := make([]standings.TourCard, len(cards))
	for i, card := range cards {
		results[i] = standings.TourCard{
			ID:      card.ID,
			TourID:  card.TourID,
			Playoff: card.Playoff,
		}
	}
	return results
}

// toStandingsTier converts a tier row into the calculator's award tables.
func toStandingsTier(tier models.Tier) standings.Tier {
	return standings.Tier{
		Points:  []float64(tier.Points),
		Payouts: []float64(tier.Payouts),
	}
}

// applyStandings copies the calculator's output back onto the team rows,
// matched by ID. Rows the calculator never saw are left untouched.
func applyStandings(teams []models.Team, results []standings.TeamResult) {
	byID := make(map[string]standings.TeamResult, len(results))
	for _, result := range results {
		byID[result.ID.String()] = result
	}
	for i := range teams {
		result, ok := byID[teams[i].ID.String()]
		if !ok {
			continue
		}
		teams[i].Position = result.Position
		teams[i].PastPosition = result.PastPosition
		teams[i].Earnings = result.Earnings
		teams[i].Points = result.Points
	}
}

// runStandings is the full scoring pass over one tournament's team rows:
// convert, compute, copy back.
func runStandings(teams []models.Team, cards []models.TourCard, tier models.Tier, tournamentName string) {
	stTier := toStandingsTier(tier)
	results := standings.UpdateTeamPositions(
		toStandingsTeams(teams),
		toStandingsCards(cards),
		&stTier,
		tournamentName,
	)
	applyStandings(teams, results)
}

// golferRound reads one golfer's raw strokes for a round (1-4), if posted.
func golferRound(golfer models.Golfer, round int) *float64 {
	switch round {
	case 1:
		return golfer.Round1
	case 2:
		return golfer.Round2
	case 3:
		return golfer.Round3
	case 4:
		return golfer.Round4
	default:
		return nil
	}
}

// setTeamRound writes one team round score onto the row.
func setTeamRound(team *models.Team, round int, score *float64) {
	switch round {
	case 1:
		team.Round1 = score
	case 2:
		team.Round2 = score
	case 3:
		team.Round3 = score
	case 4:
		team.Round4 = score
	}
}

// scoreTeam recomputes one team's round scores, live line, and cumulative
// score from its golfers' rows. golfers is keyed by the feed's golfer id —
// the same ids stored in team.GolferIDs. starting is the stroke total the
// team carried into the event (non-zero only in the playoffs).
//
// Rounds are scored in order until the first round with no posted golfer
// scores; the cumulative score is then
//
//	starting + Σ(posted round scores) − par × (posted rounds)
//
// plus the in-progress round's Today line when play is still out on the
// course. Today and Thru come from the counted golfers' live columns.
func scoreTeam(team *models.Team, golfers map[int]models.Golfer, playoffWeek, par int, starting float64) {
	picks := make([]models.Golfer, 0, len(team.GolferIDs))
	for _, id := range team.GolferIDs {
		if golfer, ok := golfers[id]; ok {
			picks = append(picks, golfer)
		}
	}

	// Completed rounds, in order. The first round with nothing posted ends
	// the scan — later rounds cannot have been played — and every round from
	// there on is cleared.
	posted := 0
	var roundTotal float64
	for round := 1; round <= 4; round++ {
		var scores []float64
		if posted == round-1 {
			for _, golfer := range picks {
				if s := golferRound(golfer, round); s != nil {
					scores = append(scores, *s)
				}
			}
		}
		if len(scores) == 0 {
			setTeamRound(team, round, nil)
			continue
		}
		counted := standings.CountedGolfers(playoffWeek, round)
		roundScore := standings.TeamRoundScore(scores, counted)
		setTeamRound(team, round, &roundScore)
		roundTotal += roundScore
		posted = round
	}

	// Live line for the round in progress: today's strokes against par and
	// holes completed, averaged over the counted golfers.
	var todays []float64
	var thruSum, thruCount int
	for _, golfer := range picks {
		if golfer.Today != nil {
			todays = append(todays, *golfer.Today)
		}
		if golfer.Thru != nil {
			thruSum += *golfer.Thru
			thruCount++
		}
	}

	inProgress := posted < 4 && len(todays) > 0
	if inProgress {
		counted := standings.CountedGolfers(playoffWeek, posted+1)
		today := standings.TeamRoundScore(todays, counted)
		team.Today = &today
		if thruCount > 0 {
			thru := int(math.Round(float64(thruSum) / float64(thruCount)))
			team.Thru = &thru
		} else {
			team.Thru = nil
		}
	} else {
		team.Today = nil
		team.Thru = nil
	}

	if posted == 0 && !inProgress {
		// Nothing has happened yet — the team has no score, not a zero score.
		team.Score = nil
		return
	}

	score := starting + roundTotal - float64(par)*float64(posted)
	if inProgress {
		score += *team.Today
	}
	team.Score = &score
}

// positionSortValue turns a position label into a sortable rank. Numeric
// labels sort by their rank; cut teams go after every ranked team; teams with
// no label at all go last.
func positionSortValue(pos *string) int {
	const (
		cutValue     = 1 << 20
		missingValue = 1 << 21
	)
	if pos == nil {
		return missingValue
	}
	if *pos == standings.PositionCut {
		return cutValue
	}
	rank, err := strconv.Atoi(strings.TrimPrefix(*pos, "T"))
	if err != nil {
		return missingValue
	}
	return rank
}
