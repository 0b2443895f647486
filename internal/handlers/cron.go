// cron.go — GET /api/v1/cron/update-teams, the scheduled live-scoring pass.
//
// An external scheduler hits this route every few minutes while a tournament
// is live. One pass:
//  1. pulls live golfer stats (and the field update, for withdrawals) from
//     the feed — the two fetches run concurrently
//  2. upserts the golfer rows for the live tournament
//  3. recomputes every team's round scores and cumulative score
//  4. runs the standings pipeline (positions, earnings, points)
//  5. persists the teams and broadcasts the fresh leaderboard to websocket
//     watchers
//
// The route is guarded by middleware.RequireCronSecret, not by a member JWT.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/opentour/fantasy-golf/internal/datagolf"
	"github.com/opentour/fantasy-golf/internal/models"
	"github.com/opentour/fantasy-golf/internal/standings"
	"github.com/opentour/fantasy-golf/internal/websocket"
)

// feedTour is the feed's identifier for the tour we mirror golfer data from.
const feedTour = "pga"

// UpdateTeams returns the handler for the scheduled live-scoring pass.
func UpdateTeams(db *gorm.DB, feed datagolf.Client, hub *websocket.Hub, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Only one tournament is ever live at a time; nothing live means
		// nothing to do, which for a cron route is a success, not an error.
		var tournament models.Tournament
		err := db.Preload("Tier").Preload("Course").
			Where("live_play = ?", true).
			First(&tournament).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(fiber.Map{"status": "no live tournament"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch live tournament",
			})
		}

		// Pull live stats and the field update concurrently — they're
		// independent endpoints and this pass runs on a tight schedule.
		var (
			live  *datagolf.LiveStats
			field *datagolf.FieldUpdate
		)
		g, ctx := errgroup.WithContext(c.Context())
		g.Go(func() error {
			var err error
			live, err = feed.GetLiveStats(ctx, feedTour)
			return err
		})
		g.Go(func() error {
			var err error
			field, err = feed.GetFieldUpdate(ctx, feedTour)
			return err
		})
		if err := g.Wait(); err != nil {
			log.WithError(err).Error("Feed fetch failed; skipping this pass")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "feed unavailable",
			})
		}

		// Mirror the feed into our golfer rows, then rescore every team in
		// one transaction so a half-updated leaderboard is never visible.
		var teams []models.Team
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := upsertGolfers(tx, &tournament, live, field); err != nil {
				return err
			}

			if err := tx.Preload("TourCard").
				Where("tournament_id = ?", tournament.ID).
				Find(&teams).Error; err != nil {
				return err
			}

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

			// Keep the schedule row in step with the feed's round counter.
			if live.CurrentRound > tournament.CurrentRound {
				tournament.CurrentRound = live.CurrentRound
				if err := tx.Model(&tournament).
					Update("current_round", tournament.CurrentRound).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			log.WithError(txErr).Error("Live scoring pass failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update teams",
			})
		}

		// Push the fresh board to everyone watching. A marshal failure here
		// only costs the push — the scoring work is already committed.
		if payload, err := json.Marshal(buildLeaderboard(tournament, teams)); err == nil {
			hub.BroadcastToTournament(tournament.ID.String(), payload)
		} else {
			log.WithError(err).Warn("Failed to marshal leaderboard broadcast")
		}

		log.WithFields(logrus.Fields{
			"tournament": tournament.Name,
			"round":      tournament.CurrentRound,
			"teams":      len(teams),
			"golfers":    len(live.Golfers),
		}).Info("Live scoring pass complete")

		return c.JSON(fiber.Map{
			"status":  "updated",
			"teams":   len(teams),
			"golfers": len(live.Golfers),
		})
	}
}

// upsertGolfers mirrors one live-stats response (plus withdrawal flags from
// the field update) into the tournament's golfer rows.
func upsertGolfers(tx *gorm.DB, tournament *models.Tournament, live *datagolf.LiveStats, field *datagolf.FieldUpdate) error {
	withdrawn := make(map[int]bool, len(field.Field))
	for _, f := range field.Field {
		if f.Withdrew {
			withdrawn[f.GolferID] = true
		}
	}

	for _, lg := range live.Golfers {
		position := lg.Position
		if withdrawn[lg.GolferID] {
			position = "WD"
		}

		var golfer models.Golfer
		result := tx.Where("tournament_id = ? AND external_id = ?", tournament.ID, lg.GolferID).
			First(&golfer)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return result.Error
			}
			// A golfer we never saw in the pre-tournament field (late
			// addition): create the row so team picks can still match it.
			golfer = models.Golfer{
				TournamentID: tournament.ID,
				ExternalID:   lg.GolferID,
				Name:         lg.Name,
			}
			if err := tx.Create(&golfer).Error; err != nil {
				return err
			}
		}

		today, thru := lg.Today, lg.Thru
		updates := map[string]interface{}{
			"position": &position,
			"today":    &today,
			"thru":     &thru,
			"round1":   lg.R1,
			"round2":   lg.R2,
			"round3":   lg.R3,
			"round4":   lg.R4,
		}
		if err := tx.Model(&golfer).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}

// rescoreTeams recomputes round scores, live lines, cumulative scores, and
// then the standings pipeline for every team of one tournament. Mutates the
// slice in place; the caller persists.
func rescoreTeams(tx *gorm.DB, tournament models.Tournament, teams []models.Team) error {
	var golfers []models.Golfer
	if err := tx.Where("tournament_id = ?", tournament.ID).Find(&golfers).Error; err != nil {
		return err
	}
	golfersByID := make(map[int]models.Golfer, len(golfers))
	for _, golfer := range golfers {
		golfersByID[golfer.ExternalID] = golfer
	}

	cards := make([]models.TourCard, 0, len(teams))
	for i := range teams {
		cards = append(cards, teams[i].TourCard)

		starting, err := resolveStartingStrokes(tx, tournament, teams[i].TourCard)
		if err != nil {
			return err
		}
		scoreTeam(&teams[i], golfersByID, tournament.PlayoffWeek, tournament.Course.Par, starting)
	}

	runStandings(teams, cards, tournament.Tier, tournament.Name)
	return nil
}

// resolveStartingStrokes computes the stroke total a team carries into a
// playoff event. Week 1 staggers by the card's seed; later weeks carry the
// card's final score from the previous playoff event forward.
func resolveStartingStrokes(tx *gorm.DB, tournament models.Tournament, card models.TourCard) (float64, error) {
	if tournament.PlayoffWeek <= 0 {
		return 0, nil
	}
	if tournament.PlayoffWeek == 1 {
		return standings.StartingStrokes(1, card.PlayoffSeed, 0), nil
	}

	// Week 2 onward: find the card's team in the previous playoff event.
	var prior models.Team
	err := tx.Joins("JOIN tournaments ON tournaments.id = teams.tournament_id").
		Where("teams.tour_card_id = ? AND tournaments.season_id = ? AND tournaments.playoff_week = ?",
			card.ID, tournament.SeasonID, tournament.PlayoffWeek-1).
		First(&prior).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// No prior entry (card skipped the event): no carry-over.
			return 0, nil
		}
		return 0, err
	}

	priorScore := 0.0
	if prior.Score != nil {
		priorScore = *prior.Score
	}
	return standings.StartingStrokes(tournament.PlayoffWeek, card.PlayoffSeed, priorScore), nil
}
