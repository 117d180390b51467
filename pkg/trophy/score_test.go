package trophy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/trophykit/pkg/types"
)

func TestScore(t *testing.T) {
	trophies := []Trophy{
		{ID: 0, Grade: types.GradeBronze, Unlocked: true},
		{ID: 1, Grade: types.GradeSilver, Unlocked: true},
		{ID: 2, Grade: types.GradeGold, Unlocked: true},
		{ID: 3, Grade: types.GradePlatinum},
		{ID: 4, Grade: types.GradeBronze},
		{ID: 5, Grade: types.GradeUnknown, Unlocked: true},
	}
	assert.Equal(t, 135, Score(trophies))
	assert.Equal(t, 0, Score(nil))
}

func TestScoreCapped(t *testing.T) {
	trophies := make([]Trophy, 30)
	for i := range trophies {
		trophies[i] = Trophy{ID: uint32(i), Grade: types.GradePlatinum, Unlocked: true}
	}
	assert.Equal(t, MaxGameScore, Score(trophies))
	assert.Equal(t, 1230, (&Game{Trophies: trophies}).Score())
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{-10, 0},
		{0, 0},
		{1, 1},
		{50, 1},
		{199, 1},
		{200, 2},
		{250, 2},
		{599, 2},
		{600, 3},
		{1200, 4},
		{2399, 4},
		{2400, 5},
		{2500, 5},
		{4000, 6},
		{6000, 7},
		{14000, 11},
		{15999, 11},
		{16000, 12},
		{64000, 18},
		{69999, 18},
		{70000, 19},
		{76000, 19},
		{80000, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.points), "points=%d", tt.points)
	}
}

func TestLevelIsMonotonic(t *testing.T) {
	prev := 0
	for p := 0; p <= 200000; p += 50 {
		l := LevelFor(p)
		if l < prev {
			t.Fatalf("level dropped from %d to %d at %d points", prev, l, p)
		}
		prev = l
	}
}

func TestLevelProgressFor(t *testing.T) {
	level, pct := LevelProgressFor(100)
	assert.Equal(t, 1, level)
	assert.Equal(t, 50, pct)

	level, pct = LevelProgressFor(2400)
	assert.Equal(t, 5, level)
	assert.Equal(t, 0, pct)

	level, pct = LevelProgressFor(75000)
	assert.Equal(t, 19, level)
	assert.Equal(t, 50, pct)
}
