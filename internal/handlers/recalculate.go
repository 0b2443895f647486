// recalculate.go — POST /api/v1/tournaments/:id/recalculate, the admin-only
// historical rebuild.
//
// The live pass in cron.go trusts whatever the feed said at the time. When a
// payout table was wrong, a golfer score was corrected after the fact, or the
// round policy changed, an admin hits this route to rebuild a tournament from
// the stored golfer rows: round scores, cumulative scores, positions,
// earnings, and points all come out fresh, and the owning tour cards' season
// tallies are re-summed to match.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/opentour/fantasy-golf/internal/models"
)

// RecalculateTournament returns the handler for the historical rebuild.
// Route-level middleware.RequireRole("admin") keeps it admin-only.
func RecalculateTournament(db *gorm.DB, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournamentID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid tournament id",
			})
		}

		var tournament models.Tournament
		err = db.Preload("Tier").Preload("Course").
			First(&tournament, "id = ?", tournamentID).Error
		if err != nil {
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
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Preload("TourCard").
				Where("tournament_id = ?", tournamentID).
				Find(&teams).Error; err != nil {
				return err
			}

			// Same pipeline the live pass runs, from the stored golfer rows.
			if err := rescoreTeams(tx, tournament, teams); err != nil {
				return err
			}

			for i := range teams {
				if err := tx.Model(&teams[i]).
					Select("round1", "round2", "round3", "round4", "score", "today",
						"thru", "position", "past_position", "earnings", "points").
					Updates(&teams[i]).Error; err != nil {
					return err
				}
			}

			// The rebuilt earnings/points change the owning cards' season
			// totals, so re-sum each affected card from its teams.
			for i := range teams {
				if err := resyncTourCard(tx, teams[i].TourCardID); err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			log.WithError(txErr).WithField("tournament_id", tournamentID).
				Error("Recalculation failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to recalculate tournament",
			})
		}

		log.WithFields(logrus.Fields{
			"tournament": tournament.Name,
			"teams":      len(teams),
		}).Info("Tournament recalculated")

		return c.JSON(fiber.Map{
			"status": "recalculated",
			"teams":  len(teams),
		})
	}
}

// resyncTourCard recomputes one card's season tallies from its team rows.
func resyncTourCard(tx *gorm.DB, cardID uuid.UUID) error {
	var teams []models.Team
	if err := tx.Where("tour_card_id = ?", cardID).Find(&teams).Error; err != nil {
		return err
	}

	var earnings, points float64
	var wins, topFives, topTens, appearances int
	for _, team := range teams {
		earnings += team.Earnings
		points += team.Points
		appearances++

		rank := positionSortValue(team.Position)
		if rank == 1 {
			wins++
		}
		if rank <= 5 {
			topFives++
		}
		if rank <= 10 {
			topTens++
		}
	}

	return tx.Model(&models.TourCard{}).Where("id = ?", cardID).
		Updates(map[string]interface{}{
			"earnings":         earnings,
			"points":           points,
			"wins":             wins,
			"top_fives":        topFives,
			"top_tens":         topTens,
			"appearance_count": appearances,
		}).Error
}
