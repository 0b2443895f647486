package handlers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentour/fantasy-golf/internal/models"
)

func TestBuildStandings(t *testing.T) {
	tour := models.Tour{ID: uuid.New(), Name: "PGC Tour", ShortForm: "PGC"}

	t.Run("ranks by points with T labels for ties", func(t *testing.T) {
		cards := []models.TourCard{
			{ID: uuid.New(), DisplayName: "Alice", Points: 420},
			{ID: uuid.New(), DisplayName: "Bob", Points: 380},
			{ID: uuid.New(), DisplayName: "Carol", Points: 380},
			{ID: uuid.New(), DisplayName: "Dan", Points: 120},
		}

		resp := buildStandings(tour, cards)
		require.Len(t, resp.Cards, 4)

		assert.Equal(t, "Alice", resp.Cards[0].DisplayName)
		assert.Equal(t, "1", resp.Cards[0].Rank)
		assert.Equal(t, "T2", resp.Cards[1].Rank)
		assert.Equal(t, "T2", resp.Cards[2].Rank)
		assert.Equal(t, "4", resp.Cards[3].Rank)
	})

	t.Run("playoff cut lines follow the sorted order", func(t *testing.T) {
		// 40 cards with strictly decreasing points: the first 15 are gold,
		// the next 20 silver, the last 5 out.
		cards := make([]models.TourCard, 40)
		for i := range cards {
			cards[i] = models.TourCard{
				ID:          uuid.New(),
				DisplayName: fmt.Sprintf("Card %02d", i),
				Points:      float64(1000 - i),
			}
		}

		resp := buildStandings(tour, cards)
		require.Len(t, resp.Cards, 40)

		assert.Equal(t, "gold", resp.Cards[0].PlayoffSpot)
		assert.Equal(t, "gold", resp.Cards[14].PlayoffSpot)
		assert.Equal(t, "silver", resp.Cards[15].PlayoffSpot)
		assert.Equal(t, "silver", resp.Cards[34].PlayoffSpot)
		assert.Equal(t, "", resp.Cards[35].PlayoffSpot)
	})

	t.Run("empty tour", func(t *testing.T) {
		resp := buildStandings(tour, nil)
		assert.Empty(t, resp.Cards)
		assert.Equal(t, "PGC", resp.ShortForm)
	})
}
