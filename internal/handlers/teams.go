// teams.go — roster submission and retrieval:
//
//	POST /api/v1/tournaments/:id/teams     — submit (or replace) the caller's team
//	GET  /api/v1/tournaments/:id/teams/me  — the caller's team for a tournament
//
// A team is exactly ten golfers, two from each of the five pick groups. The
// window closes when the tournament starts: once golfers are on the course,
// submissions are rejected outright.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opentour/fantasy-golf/internal/models"
)

// Roster shape: ten picks, two per pick group 1-5.
const (
	rosterSize     = 10
	picksPerGroup  = 2
	pickGroupCount = 5
)

// SubmitTeamRequest is the JSON body we expect on POST /tournaments/:id/teams.
// The validator tags handle the basic shape; group balance needs the golfer
// rows and is checked against the database in the handler.
type SubmitTeamRequest struct {
	GolferIDs []int `json:"golfer_ids" validate:"required,len=10,unique"`
}

// TeamResponse is what we send back for a member's own team.
type TeamResponse struct {
	ID           string   `json:"id"`
	TournamentID string   `json:"tournament_id"`
	TourCardID   string   `json:"tour_card_id"`
	GolferIDs    []int    `json:"golfer_ids"`
	Position     *string  `json:"position"`
	Score        *float64 `json:"score"`
	Earnings     float64  `json:"earnings"`
	Points       float64  `json:"points"`
	CreatedAt    string   `json:"created_at"`
}

// validateRosterGroups checks the two-per-group rule against the tournament's
// golfer rows. Returns a human-readable problem, or "" when the roster is fine.
func validateRosterGroups(picks []int, golfers []models.Golfer) string {
	groupByID := make(map[int]int, len(golfers))
	for _, golfer := range golfers {
		groupByID[golfer.ExternalID] = golfer.Group
	}

	counts := make(map[int]int, pickGroupCount)
	for _, id := range picks {
		group, ok := groupByID[id]
		if !ok {
			return "golfer is not in this tournament's field"
		}
		counts[group]++
	}

	for group := 1; group <= pickGroupCount; group++ {
		if counts[group] != picksPerGroup {
			return "rosters need exactly two golfers from each group"
		}
	}
	return ""
}

// SubmitTeam returns a handler for POST /api/v1/tournaments/:id/teams.
// Upserts the caller's team for the tournament: a second submission before
// the deadline replaces the first.
func SubmitTeam(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberIDStr, _ := c.Locals("memberID").(string)
		memberID, err := uuid.Parse(memberIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament id",
			})
		}

		var req SubmitTeamRequest
		if !parseAndValidate(c, &req) {
			return nil
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

		// The submission window closes at the first tee time.
		if tournament.LivePlay || !time.Now().Before(tournament.StartDate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "tournament has started; teams are locked",
			})
		}

		// The caller needs a tour card this season to field a team. A member
		// with cards on several tours plays the same roster on each card's
		// tour, so any card will do — we take the first.
		var card models.TourCard
		err = db.Joins("JOIN tours ON tours.id = tour_cards.tour_id").
			Where("tour_cards.member_id = ? AND tours.season_id = ?", memberID, tournament.SeasonID).
			First(&card).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "no tour card for this season",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tour card",
			})
		}

		// Check the two-per-group rule against the tournament's field.
		var golfers []models.Golfer
		if err := db.Where("tournament_id = ?", tournamentID).Find(&golfers).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch field",
			})
		}
		if problem := validateRosterGroups(req.GolferIDs, golfers); problem != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": problem,
			})
		}

		// Upsert: replace the picks on an existing team, or create a new row.
		var team models.Team
		result := db.Where("tour_card_id = ? AND tournament_id = ?", card.ID, tournamentID).First(&team)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to fetch team",
				})
			}
			team = models.Team{
				TourCardID:   card.ID,
				TournamentID: tournamentID,
				GolferIDs:    models.IntSlice(req.GolferIDs),
			}
			if err := db.Create(&team).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to create team",
				})
			}
			return c.Status(fiber.StatusCreated).JSON(toTeamResponse(team))
		}

		team.GolferIDs = models.IntSlice(req.GolferIDs)
		if err := db.Model(&team).Update("golfer_ids", team.GolferIDs).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update team",
			})
		}
		return c.JSON(toTeamResponse(team))
	}
}

// GetMyTeam returns a handler for GET /api/v1/tournaments/:id/teams/me.
func GetMyTeam(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberIDStr, _ := c.Locals("memberID").(string)
		memberID, err := uuid.Parse(memberIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament id",
			})
		}

		var team models.Team
		err = db.Joins("JOIN tour_cards ON tour_cards.id = teams.tour_card_id").
			Where("teams.tournament_id = ? AND tour_cards.member_id = ?", tournamentID, memberID).
			First(&team).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "no team submitted for this tournament",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch team",
			})
		}

		return c.JSON(toTeamResponse(team))
	}
}

func toTeamResponse(team models.Team) TeamResponse {
	return TeamResponse{
		ID:           team.ID.String(),
		TournamentID: team.TournamentID.String(),
		TourCardID:   team.TourCardID.String(),
		GolferIDs:    []int(team.GolferIDs),
		Position:     team.Position,
		Score:        team.Score,
		Earnings:     team.Earnings,
		Points:       team.Points,
		CreatedAt:    team.CreatedAt.UTC().Format(time.RFC3339),
	}
}
