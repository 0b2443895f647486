package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opentour/fantasy-golf/internal/models"
)

// fieldWithGroups builds a tournament field where golfer ids 1-2 are group 1,
// 3-4 group 2, and so on — a legal roster is any even split.
func fieldWithGroups() []models.Golfer {
	var golfers []models.Golfer
	id := 1
	for group := 1; group <= 5; group++ {
		for i := 0; i < 4; i++ { // four golfers per group to choose from
			golfers = append(golfers, models.Golfer{ExternalID: id, Group: group})
			id++
		}
	}
	return golfers
}

func TestValidateRosterGroups(t *testing.T) {
	field := fieldWithGroups()

	t.Run("two picks per group passes", func(t *testing.T) {
		picks := []int{1, 2, 5, 6, 9, 10, 13, 14, 17, 18}
		assert.Empty(t, validateRosterGroups(picks, field))
	})

	t.Run("three from one group fails", func(t *testing.T) {
		// Three group-1 golfers, one group-2.
		picks := []int{1, 2, 3, 5, 9, 10, 13, 14, 17, 18}
		assert.NotEmpty(t, validateRosterGroups(picks, field))
	})

	t.Run("unknown golfer fails", func(t *testing.T) {
		picks := []int{999, 2, 5, 6, 9, 10, 13, 14, 17, 18}
		assert.Equal(t, "golfer is not in this tournament's field",
			validateRosterGroups(picks, field))
	})

	t.Run("missing group entirely fails", func(t *testing.T) {
		// Four from group 1, none from group 2.
		picks := []int{1, 2, 3, 4, 9, 10, 13, 14, 17, 18}
		assert.NotEmpty(t, validateRosterGroups(picks, field))
	})
}
