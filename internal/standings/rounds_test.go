package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountedGolfers(t *testing.T) {
	tests := []struct {
		name        string
		playoffWeek int
		round       int
		want        int
	}{
		{"regular season early round", 0, 1, 10},
		{"regular season pre-cut", 0, 2, 10},
		{"regular season post-cut", 0, 3, 5},
		{"regular season final round", 0, 4, 5},
		{"first playoff event early round", 1, 2, 10},
		{"first playoff event weekend", 1, 4, 5},
		{"second playoff event any round", 2, 1, 5},
		{"second playoff event weekend", 2, 4, 5},
		{"championship any round", 3, 1, 3},
		{"championship weekend", 3, 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountedGolfers(tt.playoffWeek, tt.round))
		})
	}
}

func TestTeamRoundScore(t *testing.T) {
	t.Run("averages the lowest counted scores", func(t *testing.T) {
		scores := []float64{72, 68, 75, 70, 69}
		// Best 3: 68 + 69 + 70 = 207; 207/3 = 69.0
		assert.Equal(t, 69.0, TeamRoundScore(scores, 3))
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		scores := []float64{70, 71, 71}
		// 212/3 = 70.666… → 70.7
		assert.Equal(t, 70.7, TeamRoundScore(scores, 3))
	})

	t.Run("short field still divides by the full allotment", func(t *testing.T) {
		// Two golfers posted but five count: divisor stays 5.
		scores := []float64{70, 72}
		assert.Equal(t, 28.4, TeamRoundScore(scores, 5))
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Zero(t, TeamRoundScore(nil, 5))
		assert.Zero(t, TeamRoundScore([]float64{70}, 0))
	})

	t.Run("does not reorder the caller's slice", func(t *testing.T) {
		scores := []float64{75, 68, 71}
		TeamRoundScore(scores, 2)
		assert.Equal(t, []float64{75, 68, 71}, scores)
	})
}

func TestCumulativeScore(t *testing.T) {
	t.Run("rounds relative to four rounds of par", func(t *testing.T) {
		rounds := []float64{70, 71, 69, 72}
		// 282 total on a par 71 course: 282 - 284 = -2.
		assert.Equal(t, -2.0, CumulativeScore(0, rounds, 71))
	})

	t.Run("starting strokes carry in", func(t *testing.T) {
		rounds := []float64{71, 71, 71, 71}
		assert.Equal(t, -10.0, CumulativeScore(-10, rounds, 71))
	})
}

func TestStartingStrokes(t *testing.T) {
	t.Run("regular season always starts level", func(t *testing.T) {
		assert.Zero(t, StartingStrokes(0, 1, -12))
		assert.Zero(t, StartingStrokes(-1, 3, 5))
	})

	t.Run("first playoff event staggers by seed", func(t *testing.T) {
		tests := []struct {
			seed int
			want float64
		}{
			{1, -10}, {2, -8}, {3, -7}, {4, -6}, {5, -5},
			{6, -4}, {10, -4},
			{11, -3}, {15, -3},
			{16, -2}, {20, -2},
			{21, -1}, {25, -1},
			{26, 0}, {40, 0}, {0, 0},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, StartingStrokes(1, tt.seed, 0), "seed %d", tt.seed)
		}
	})

	t.Run("later playoff events carry the prior score", func(t *testing.T) {
		assert.Equal(t, -7.5, StartingStrokes(2, 1, -7.5))
		assert.Equal(t, 3.0, StartingStrokes(3, 25, 3))
	})
}
