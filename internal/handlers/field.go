// field.go — GET /api/v1/cron/sync-field, the pre-tournament field sync.
//
// An external scheduler hits this route in the days before an event, while
// the submission window is still open. One pass:
//  1. pulls the season schedule and the confirmed field from the feed — the
//     two fetches run concurrently
//  2. matches the field's event to our tournament row via the schedule's
//     event id
//  3. upserts a golfer row per field entry and assigns the five pick groups
//     from the feed's ranking order
//
// Without this pass there are no golfer rows to pick from, so the sync has to
// land before roster submissions can succeed. Like update-teams, the route is
// guarded by middleware.RequireCronSecret.
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/opentour/fantasy-golf/internal/datagolf"
	"github.com/opentour/fantasy-golf/internal/models"
)

// SyncField returns the handler for the pre-tournament field sync.
func SyncField(db *gorm.DB, feed datagolf.Client, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Pull the schedule and the field concurrently — the field update
		// only names its event, the schedule carries the event id we key
		// tournament rows on.
		var (
			schedule *datagolf.Schedule
			field    *datagolf.FieldUpdate
		)
		g, ctx := errgroup.WithContext(c.Context())
		g.Go(func() error {
			var err error
			schedule, err = feed.GetSchedule(ctx, feedTour)
			return err
		})
		g.Go(func() error {
			var err error
			field, err = feed.GetFieldUpdate(ctx, feedTour)
			return err
		})
		if err := g.Wait(); err != nil {
			log.WithError(err).Error("Feed fetch failed; skipping field sync")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "feed unavailable",
			})
		}

		eventID := 0
		for _, event := range schedule.Schedule {
			if event.EventName == field.EventName {
				eventID = event.EventID
				break
			}
		}
		if eventID == 0 {
			// The feed can flip to next week's field before our schedule
			// row exists. Nothing to sync yet is a cron success.
			return c.JSON(fiber.Map{"status": "field event not on the schedule"})
		}

		var tournament models.Tournament
		err := db.Where("external_id = ?", strconv.Itoa(eventID)).
			First(&tournament).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(fiber.Map{"status": "no tournament for this event"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tournament",
			})
		}

		// Once play starts the live pass owns the golfer rows; re-cutting
		// the pick groups mid-event would invalidate submitted rosters.
		if tournament.LivePlay {
			return c.JSON(fiber.Map{"status": "tournament already live; field is frozen"})
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			return syncFieldGolfers(tx, &tournament, field)
		})
		if txErr != nil {
			log.WithError(txErr).Error("Field sync failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to sync field",
			})
		}

		log.WithFields(logrus.Fields{
			"tournament": tournament.Name,
			"golfers":    len(field.Field),
		}).Info("Field sync complete")

		return c.JSON(fiber.Map{
			"status":  "synced",
			"golfers": len(field.Field),
		})
	}
}

// syncFieldGolfers mirrors one field update into the tournament's golfer
// rows, assigning pick groups and ranks. Re-running the sync as the field
// firms up re-cuts the groups, so late commitments and withdrawals settle
// before the first tee time locks everything.
func syncFieldGolfers(tx *gorm.DB, tournament *models.Tournament, field *datagolf.FieldUpdate) error {
	for i, fg := range field.Field {
		var golfer models.Golfer
		result := tx.Where("tournament_id = ? AND external_id = ?", tournament.ID, fg.GolferID).
			First(&golfer)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return result.Error
			}
			golfer = models.Golfer{
				TournamentID: tournament.ID,
				ExternalID:   fg.GolferID,
				Name:         fg.Name,
			}
			if err := tx.Create(&golfer).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"name":       fg.Name,
			"group":      pickGroupFor(i, len(field.Field)),
			"world_rank": i + 1,
		}
		if fg.Withdrew {
			wd := "WD"
			updates["position"] = &wd
		}
		if err := tx.Model(&golfer).Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}

// pickGroupFor maps a golfer's position in the field list to a pick group.
// The feed lists the field in its ranking order, so contiguous fifths of the
// list make the five groups, top of the field first.
func pickGroupFor(index, fieldSize int) int {
	if fieldSize <= 0 {
		return 1
	}
	group := index*pickGroupCount/fieldSize + 1
	if group > pickGroupCount {
		group = pickGroupCount
	}
	return group
}
