package trophy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/trophykit/pkg/types"
)

func ts(sec int64) *time.Time {
	t := time.Unix(sec, 0).UTC()
	return &t
}

func sampleGame() *Game {
	return &Game{
		NpCommID: "NPWR00001_00",
		Title:    "Sample",
		Trophies: []Trophy{
			{ID: 0, Grade: types.GradePlatinum},
			{ID: 1, Grade: types.GradeGold, Unlocked: true, UnlockedAt: ts(100)},
			{ID: 2, Grade: types.GradeSilver},
		},
	}
}

func TestGameTrophyLookup(t *testing.T) {
	g := sampleGame()
	tr, ok := g.Trophy(1)
	require.True(t, ok)
	assert.Equal(t, types.GradeGold, tr.Grade)

	_, ok = g.Trophy(9)
	assert.False(t, ok)
}

func TestMergeUpdatesAndAdds(t *testing.T) {
	g := sampleGame()
	snap := &Game{
		NpCommID: "NPWR00001_00",
		Title:    "Sample (Remaster)",
		Trophies: []Trophy{
			{ID: 2, Grade: types.GradeSilver, Unlocked: true, UnlockedAt: ts(200)},
			{ID: 3, Grade: types.GradeBronze, Unlocked: true, UnlockedAt: ts(300)},
		},
	}

	res := g.Merge(snap)
	assert.Equal(t, MergeResult{Added: 1, Updated: 1, NewlyUnlocked: 2}, res)
	assert.Equal(t, "Sample (Remaster)", g.Title)
	require.Len(t, g.Trophies, 4)

	tr, ok := g.Trophy(2)
	require.True(t, ok)
	assert.True(t, tr.Unlocked)
	assert.Equal(t, time.Unix(300, 0).UTC(), g.LastUnlock())
}

func TestTrophyLookupAfterSliceReplaced(t *testing.T) {
	g := sampleGame()
	_, ok := g.Trophy(2)
	require.True(t, ok)

	g.Trophies = []Trophy{
		{ID: 10, Grade: types.GradeBronze},
		{ID: 11, Grade: types.GradeBronze},
		{ID: 12, Grade: types.GradeGold},
	}

	_, ok = g.Trophy(2)
	assert.False(t, ok)
	tr, ok := g.Trophy(12)
	require.True(t, ok)
	assert.Equal(t, types.GradeGold, tr.Grade)

	res := g.Merge(&Game{Trophies: []Trophy{{ID: 2, Grade: types.GradeSilver}}})
	assert.Equal(t, MergeResult{Added: 1}, res)
	require.Len(t, g.Trophies, 4)
	assert.Equal(t, uint32(10), g.Trophies[0].ID)
}

func TestMergeKeepsParentalLevelWhenUnset(t *testing.T) {
	g := sampleGame()
	g.ParentalLevel = 5

	g.Merge(&Game{Title: "Sample"})
	assert.Equal(t, 5, g.ParentalLevel)

	g.Merge(&Game{ParentalLevel: 9})
	assert.Equal(t, 9, g.ParentalLevel)
}

func TestMergeNeverRemoves(t *testing.T) {
	g := sampleGame()
	g.Merge(&Game{NpCommID: g.NpCommID, Trophies: []Trophy{{ID: 2, Grade: types.GradeSilver}}})
	require.Len(t, g.Trophies, 3)
	assert.Equal(t, "Sample", g.Title, "empty snapshot fields keep the stored value")

	_, ok := g.Trophy(0)
	assert.True(t, ok)
}

func TestMergeIdempotent(t *testing.T) {
	g := sampleGame()
	snap := sampleGame()
	snap.Trophies[2].Unlocked = true
	snap.Trophies[2].UnlockedAt = ts(50)

	first := g.Merge(snap)
	assert.Equal(t, 1, first.NewlyUnlocked)
	after := g.Clone()

	second := g.Merge(snap)
	assert.Equal(t, 0, second.NewlyUnlocked)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, after.Trophies, g.Trophies)
}

func TestMergeNil(t *testing.T) {
	g := sampleGame()
	assert.Equal(t, MergeResult{}, g.Merge(nil))
}

func TestCloneIsDeep(t *testing.T) {
	g := sampleGame()
	c := g.Clone()
	*c.Trophies[1].UnlockedAt = time.Unix(999, 0)
	c.Trophies[0].Name = "changed"

	assert.Equal(t, time.Unix(100, 0).UTC(), *g.Trophies[1].UnlockedAt)
	assert.Empty(t, g.Trophies[0].Name)
}

func TestGameProgress(t *testing.T) {
	g := sampleGame()
	p := g.Progress()
	assert.Equal(t, 1, p.Unlocked)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 33, p.Percent())
	assert.Equal(t, 1, p.UnlockedGrade[types.GradeGold])
	assert.Equal(t, 1, p.TotalGrade[types.GradePlatinum])

	assert.Equal(t, 0, Progress{}.Percent())
}

func TestLastUnlockNone(t *testing.T) {
	g := &Game{Trophies: []Trophy{{ID: 0}}}
	assert.True(t, g.LastUnlock().IsZero())
}
