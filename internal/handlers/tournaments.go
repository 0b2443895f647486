// tournaments.go — the /api/v1/tournaments routes: the season schedule and the
// live leaderboard for one tournament.
//
// Each exported function follows the "handler factory" pattern: it takes its
// dependencies (*gorm.DB here) and returns a fiber.Handler (a function that
// handles a single HTTP request). This lets us inject the database without
// using global variables.
package handlers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opentour/fantasy-golf/internal/models"
)

// TournamentResponse is what we send back for one schedule entry.
// We use a dedicated response struct (instead of the raw GORM model) so we control
// exactly what fields are serialised to JSON and can flatten related names.
type TournamentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TierName     string `json:"tier_name"`
	CourseName   string `json:"course_name"`
	Location     string `json:"location"`
	Par          int    `json:"par"`
	StartDate    string `json:"start_date"` // ISO 8601 date string
	EndDate      string `json:"end_date"`
	CurrentRound int    `json:"current_round"`
	LivePlay     bool   `json:"live_play"`
	PlayoffWeek  int    `json:"playoff_week"`
}

// LeaderboardEntry is one team's line on the tournament leaderboard.
type LeaderboardEntry struct {
	TeamID       string     `json:"team_id"`
	TourCardName string     `json:"tour_card_name"`
	TourID       string     `json:"tour_id"`
	Position     *string    `json:"position"`
	PastPosition *string    `json:"past_position"`
	Score        *float64   `json:"score"`
	Today        *float64   `json:"today"`
	Thru         *int       `json:"thru"`
	Rounds       []*float64 `json:"rounds"`
	Earnings     float64    `json:"earnings"`
	Points       float64    `json:"points"`
}

// LeaderboardResponse is the full payload for GET /tournaments/:id/leaderboard.
// The cron pass broadcasts exactly this shape over the websocket channel, so
// live watchers and fresh page loads see identical data.
type LeaderboardResponse struct {
	TournamentID   string             `json:"tournament_id"`
	TournamentName string             `json:"tournament_name"`
	CurrentRound   int                `json:"current_round"`
	LivePlay       bool               `json:"live_play"`
	Teams          []LeaderboardEntry `json:"teams"`
}

// GetTournaments returns a handler for GET /api/v1/tournaments.
// Lists the schedule for a season, oldest event first.
// Optional query param: ?season=2026 (defaults to the latest season).
func GetTournaments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Resolve which season the caller wants. With no ?season= we serve
		// the most recent one, which is what the app's schedule page shows.
		var season models.Season
		query := db.Order("year DESC")
		if yearStr := c.Query("season"); yearStr != "" {
			query = db.Where("year = ?", c.QueryInt("season"))
		}
		if err := query.First(&season).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "season not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch season",
			})
		}

		// Preload tells GORM to fetch the related Tier and Course rows in the
		// same pass, avoiding an N+1 query per tournament.
		var tournaments []models.Tournament
		err := db.Preload("Tier").Preload("Course").
			Where("season_id = ?", season.ID).
			Order("start_date ASC").
			Find(&tournaments).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournaments",
			})
		}

		response := make([]TournamentResponse, 0, len(tournaments))
		for _, t := range tournaments {
			response = append(response, TournamentResponse{
				ID:           t.ID.String(),
				Name:         t.Name,
				TierName:     t.Tier.Name,
				CourseName:   t.Course.Name,
				Location:     t.Course.Location,
				Par:          t.Course.Par,
				StartDate:    t.StartDate.UTC().Format(time.RFC3339),
				EndDate:      t.EndDate.UTC().Format(time.RFC3339),
				CurrentRound: t.CurrentRound,
				LivePlay:     t.LivePlay,
				PlayoffWeek:  t.PlayoffWeek,
			})
		}

		return c.JSON(response)
	}
}

// GetLeaderboard returns a handler for GET /api/v1/tournaments/:id/leaderboard.
// Teams are ordered by position (cut teams after ranked teams, unscored teams
// last). Optional query param: ?tour=<uuid> narrows the board to one tour.
func GetLeaderboard(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament id",
			})
		}

		var tournament models.Tournament
		if err := db.First(&tournament, "id = ?", tournamentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "tournament not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournament",
			})
		}

		var teams []models.Team
		query := db.Preload("TourCard").Where("tournament_id = ?", tournamentID)
		if tourFilter := c.Query("tour"); tourFilter != "" {
			tourID, err := uuid.Parse(tourFilter)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid tour id",
				})
			}
			query = query.Joins("JOIN tour_cards ON tour_cards.id = teams.tour_card_id").
				Where("tour_cards.tour_id = ?", tourID)
		}
		if err := query.Find(&teams).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch teams",
			})
		}

		return c.JSON(buildLeaderboard(tournament, teams))
	}
}

// buildLeaderboard assembles the leaderboard payload from a tournament and its
// teams. Shared by the GET route and the cron pass's websocket broadcast.
func buildLeaderboard(tournament models.Tournament, teams []models.Team) LeaderboardResponse {
	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		entries = append(entries, LeaderboardEntry{
			TeamID:       team.ID.String(),
			TourCardName: team.TourCard.DisplayName,
			TourID:       team.TourCard.TourID.String(),
			Position:     team.Position,
			PastPosition: team.PastPosition,
			Score:        team.Score,
			Today:        team.Today,
			Thru:         team.Thru,
			Rounds:       []*float64{team.Round1, team.Round2, team.Round3, team.Round4},
			Earnings:     team.Earnings,
			Points:       team.Points,
		})
	}

	// Position first; equal positions (ties) fall back to name so the order
	// is stable between refreshes.
	sort.SliceStable(entries, func(i, j int) bool {
		ri := positionSortValue(entries[i].Position)
		rj := positionSortValue(entries[j].Position)
		if ri != rj {
			return ri < rj
		}
		return entries[i].TourCardName < entries[j].TourCardName
	})

	return LeaderboardResponse{
		TournamentID:   tournament.ID.String(),
		TournamentName: tournament.Name,
		CurrentRound:   tournament.CurrentRound,
		LivePlay:       tournament.LivePlay,
		Teams:          entries,
	}
}
