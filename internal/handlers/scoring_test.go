package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentour/fantasy-golf/internal/models"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func sp(v string) *string   { return &v }

// fieldOf builds a golfer map for scoreTeam from (externalID, rounds...) rows.
func fieldOf(golfers ...models.Golfer) map[int]models.Golfer {
	byID := make(map[int]models.Golfer, len(golfers))
	for _, g := range golfers {
		byID[g.ExternalID] = g
	}
	return byID
}

func TestScoreTeam(t *testing.T) {
	t.Run("completed rounds average the best counted golfers", func(t *testing.T) {
		// Championship week: 3 golfers count per round.
		team := models.Team{GolferIDs: models.IntSlice{1, 2, 3, 4}}
		golfers := fieldOf(
			models.Golfer{ExternalID: 1, Round1: fp(68)},
			models.Golfer{ExternalID: 2, Round1: fp(70)},
			models.Golfer{ExternalID: 3, Round1: fp(71)},
			models.Golfer{ExternalID: 4, Round1: fp(75)}, // worst score, dropped
		)

		scoreTeam(&team, golfers, 3, 70, 0)

		require.NotNil(t, team.Round1)
		// (68+70+71)/3 = 69.666… → 69.7
		assert.Equal(t, 69.7, *team.Round1)
		assert.Nil(t, team.Round2)
		require.NotNil(t, team.Score)
		// 69.7 - 70 = -0.3
		assert.InDelta(t, -0.3, *team.Score, 1e-9)
	})

	t.Run("in-progress round adds the live today line", func(t *testing.T) {
		team := models.Team{GolferIDs: models.IntSlice{1, 2, 3}}
		golfers := fieldOf(
			models.Golfer{ExternalID: 1, Round1: fp(69), Today: fp(-2), Thru: ip(10)},
			models.Golfer{ExternalID: 2, Round1: fp(70), Today: fp(-1), Thru: ip(12)},
			models.Golfer{ExternalID: 3, Round1: fp(72), Today: fp(1), Thru: ip(14)},
		)

		scoreTeam(&team, golfers, 3, 70, 0)

		require.NotNil(t, team.Round1)
		// Round 1: (69+70+72)/3 = 70.333… → 70.3
		assert.Equal(t, 70.3, *team.Round1)
		require.NotNil(t, team.Today)
		// Today: (-2 + -1 + 1)/3 = -0.666… → -0.7
		assert.Equal(t, -0.7, *team.Today)
		require.NotNil(t, team.Thru)
		assert.Equal(t, 12, *team.Thru)
		require.NotNil(t, team.Score)
		// 70.3 - 70 + (-0.7) = -0.4
		assert.InDelta(t, -0.4, *team.Score, 1e-9)
	})

	t.Run("starting strokes carry into the total", func(t *testing.T) {
		team := models.Team{GolferIDs: models.IntSlice{1, 2, 3}}
		golfers := fieldOf(
			models.Golfer{ExternalID: 1, Round1: fp(70)},
			models.Golfer{ExternalID: 2, Round1: fp(70)},
			models.Golfer{ExternalID: 3, Round1: fp(70)},
		)

		scoreTeam(&team, golfers, 3, 70, -10)

		require.NotNil(t, team.Score)
		assert.InDelta(t, -10.0, *team.Score, 1e-9)
	})

	t.Run("no golfer data means no score", func(t *testing.T) {
		team := models.Team{GolferIDs: models.IntSlice{1, 2}}
		golfers := fieldOf(
			models.Golfer{ExternalID: 1},
			models.Golfer{ExternalID: 2},
		)

		scoreTeam(&team, golfers, 0, 72, 0)

		assert.Nil(t, team.Score)
		assert.Nil(t, team.Round1)
		assert.Nil(t, team.Today)
	})
}

func TestPositionSortValue(t *testing.T) {
	assert.Equal(t, 1, positionSortValue(sp("1")))
	assert.Equal(t, 4, positionSortValue(sp("T4")))
	assert.Less(t, positionSortValue(sp("T30")), positionSortValue(sp("CUT")))
	assert.Less(t, positionSortValue(sp("CUT")), positionSortValue(nil))
	assert.Less(t, positionSortValue(sp("CUT")), positionSortValue(sp("WD")))
}

func TestRunStandings(t *testing.T) {
	tourID := uuid.New()
	cardA := models.TourCard{ID: uuid.New(), TourID: tourID}
	cardB := models.TourCard{ID: uuid.New(), TourID: tourID}
	teams := []models.Team{
		{ID: uuid.New(), TourCardID: cardA.ID, Score: fp(-6)},
		{ID: uuid.New(), TourCardID: cardB.ID, Score: fp(-4)},
	}
	tier := models.Tier{
		Points:  models.Float64Slice{500, 300},
		Payouts: models.Float64Slice{100, 60},
	}

	runStandings(teams, []models.TourCard{cardA, cardB}, tier, "The Masters")

	require.NotNil(t, teams[0].Position)
	assert.Equal(t, "1", *teams[0].Position)
	assert.Equal(t, 100.0, teams[0].Earnings)
	assert.Equal(t, 500.0, teams[0].Points)
	require.NotNil(t, teams[1].Position)
	assert.Equal(t, "2", *teams[1].Position)
	assert.Equal(t, 60.0, teams[1].Earnings)
}

func TestBuildLeaderboard(t *testing.T) {
	tournament := models.Tournament{
		ID:           uuid.New(),
		Name:         "The Masters",
		CurrentRound: 3,
		LivePlay:     true,
	}
	tourID := uuid.New()
	card := func(name string) models.TourCard {
		return models.TourCard{ID: uuid.New(), TourID: tourID, DisplayName: name}
	}
	teams := []models.Team{
		{ID: uuid.New(), TourCard: card("Charlie"), Position: sp("CUT")},
		{ID: uuid.New(), TourCard: card("Alice"), Position: sp("T2"), Score: fp(-5)},
		{ID: uuid.New(), TourCard: card("Dana")}, // no score yet
		{ID: uuid.New(), TourCard: card("Bob"), Position: sp("1"), Score: fp(-7)},
	}

	board := buildLeaderboard(tournament, teams)

	require.Len(t, board.Teams, 4)
	assert.Equal(t, "Bob", board.Teams[0].TourCardName)
	assert.Equal(t, "Alice", board.Teams[1].TourCardName)
	assert.Equal(t, "Charlie", board.Teams[2].TourCardName) // cut after ranked
	assert.Equal(t, "Dana", board.Teams[3].TourCardName)    // unscored last
	assert.Equal(t, tournament.ID.String(), board.TournamentID)
	assert.True(t, board.LivePlay)
}

// Guard against time-zone surprises in the response formatting helpers.
func TestToTeamResponseTimestamps(t *testing.T) {
	team := models.Team{
		ID:        uuid.New(),
		CreatedAt: time.Date(2026, 4, 9, 13, 30, 0, 0, time.FixedZone("EST", -5*3600)),
	}
	resp := toTeamResponse(team)
	assert.Equal(t, "2026-04-09T18:30:00Z", resp.CreatedAt)
}
