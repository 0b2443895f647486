// standings.go — GET /api/v1/tours/:id/standings: the season-long points race
// for one tour, the page that decides who makes the playoffs.
package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opentour/fantasy-golf/internal/models"
	"github.com/opentour/fantasy-golf/internal/standings"
)

// Playoff qualification cut lines: the top goldCutLine cards make the gold
// bracket, the next cards through silverCutLine make silver.
const (
	goldCutLine   = 15
	silverCutLine = 35
)

// StandingsEntry is one tour card's line in the season standings.
type StandingsEntry struct {
	TourCardID  string  `json:"tour_card_id"`
	DisplayName string  `json:"display_name"`
	Rank        string  `json:"rank"` // competition-ranked, "T"-prefixed when tied on points
	Points      float64 `json:"points"`
	Earnings    float64 `json:"earnings"`
	Wins        int     `json:"wins"`
	TopFives    int     `json:"top_fives"`
	TopTens     int     `json:"top_tens"`
	Appearances int     `json:"appearances"`
	PlayoffSpot string  `json:"playoff_spot"` // "gold", "silver", or ""
}

// StandingsResponse is the payload for GET /tours/:id/standings.
type StandingsResponse struct {
	TourID    string           `json:"tour_id"`
	TourName  string           `json:"tour_name"`
	ShortForm string           `json:"short_form"`
	Cards     []StandingsEntry `json:"cards"`
}

// GetTourStandings returns a handler for GET /api/v1/tours/:id/standings.
// Cards are ranked by season points, most first, with competition-ranking
// labels — two cards tied on points share a "T" rank and the next card skips
// a slot, exactly like a tournament leaderboard.
func GetTourStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tourID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tour id",
			})
		}

		var tour models.Tour
		if err := db.First(&tour, "id = ?", tourID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "tour not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tour",
			})
		}

		var cards []models.TourCard
		if err := db.Where("tour_id = ?", tourID).Find(&cards).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tour cards",
			})
		}

		return c.JSON(buildStandings(tour, cards))
	}
}

// buildStandings ranks a tour's cards by season points. The position
// calculator ranks ascending (golf scores: lower is better), so points are
// negated on the way in — the card with the most points becomes the "lowest
// score" and takes rank 1.
func buildStandings(tour models.Tour, cards []models.TourCard) StandingsResponse {
	asTeams := make([]standings.TeamResult, len(cards))
	for i, card := range cards {
		negated := -card.Points
		asTeams[i] = standings.TeamResult{ID: card.ID, Score: &negated}
	}
	ranks := standings.AssignPositions(asTeams, func(t standings.TeamResult) (float64, bool) {
		return *t.Score, true
	})

	entries := make([]StandingsEntry, 0, len(cards))
	for _, card := range cards {
		entries = append(entries, StandingsEntry{
			TourCardID:  card.ID.String(),
			DisplayName: card.DisplayName,
			Rank:        ranks[card.ID],
			Points:      card.Points,
			Earnings:    card.Earnings,
			Wins:        card.Wins,
			TopFives:    card.TopFives,
			TopTens:     card.TopTens,
			Appearances: card.AppearanceCount,
		})
	}

	// Most points first; ties keep a stable name order under their shared rank.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	// Cut-line flags come from the sorted order, not the rank label: a tie
	// straddling the line still only sends the allotted number of cards
	// through, decided by the stable ordering above.
	for i := range entries {
		switch {
		case i < goldCutLine:
			entries[i].PlayoffSpot = "gold"
		case i < silverCutLine:
			entries[i].PlayoffSpot = "silver"
		}
	}

	return StandingsResponse{
		TourID:    tour.ID.String(),
		TourName:  tour.Name,
		ShortForm: tour.ShortForm,
		Cards:     entries,
	}
}
