package trophy

import (
	"time"

	"github.com/joshuapare/trophykit/pkg/types"
)

// Trophy is the reconciled view of one trophy.
type Trophy struct {
	ID               uint32      `json:"id"`
	Name             string      `json:"name"`
	Detail           string      `json:"detail"`
	Grade            types.Grade `json:"grade"`
	Hidden           bool        `json:"hidden"`
	PlatinumRelevant bool        `json:"platinum_relevant"`
	Unlocked         bool        `json:"unlocked"`
	UnlockedAt       *time.Time  `json:"unlocked_at,omitempty"`
}

// Game is one title's trophy set plus the user's progress in it.
type Game struct {
	NpCommID      string   `json:"np_comm_id"`
	Title         string   `json:"title"`
	Detail        string   `json:"detail"`
	Version       string   `json:"version"`
	ParentalLevel int      `json:"parental_level"`
	Trophies      []Trophy `json:"trophies"`

	// index maps trophy id to its position in Trophies. It is rebuilt on
	// demand, so a Game decoded from JSON or built by hand works too.
	index map[uint32]int
}

// MergeResult reports what a refresh changed.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	// NewlyUnlocked counts trophies that went from locked to unlocked.
	NewlyUnlocked int `json:"newly_unlocked"`
}

// ensureIndex rebuilds the id index when Trophies no longer matches it.
// Callers may replace the slice wholesale, so positions are checked too.
func (g *Game) ensureIndex() {
	if g.indexValid() {
		return
	}
	g.index = make(map[uint32]int, len(g.Trophies))
	for i, t := range g.Trophies {
		g.index[t.ID] = i
	}
}

func (g *Game) indexValid() bool {
	if g.index == nil || len(g.index) != len(g.Trophies) {
		return false
	}
	for i, t := range g.Trophies {
		if j, ok := g.index[t.ID]; !ok || j != i {
			return false
		}
	}
	return true
}

// Trophy returns the trophy with the given id.
func (g *Game) Trophy(id uint32) (Trophy, bool) {
	if i, ok := g.index[id]; ok && i < len(g.Trophies) && g.Trophies[i].ID == id {
		return g.Trophies[i], true
	}
	g.ensureIndex()
	i, ok := g.index[id]
	if !ok {
		return Trophy{}, false
	}
	return g.Trophies[i], true
}

// Merge refreshes g from a newer snapshot of the same game. Game-level
// fields are taken from the snapshot when it has them (non-empty strings,
// non-zero parental level); trophies are upserted
// by id. Trophies missing from the snapshot are kept as they are.
func (g *Game) Merge(snapshot *Game) MergeResult {
	var res MergeResult
	if snapshot == nil {
		return res
	}
	if snapshot.Title != "" {
		g.Title = snapshot.Title
	}
	if snapshot.Detail != "" {
		g.Detail = snapshot.Detail
	}
	if snapshot.Version != "" {
		g.Version = snapshot.Version
	}
	if snapshot.ParentalLevel != 0 {
		g.ParentalLevel = snapshot.ParentalLevel
	}

	g.ensureIndex()
	for _, t := range snapshot.Trophies {
		t = t.clone()
		if i, ok := g.index[t.ID]; ok {
			if !g.Trophies[i].Unlocked && t.Unlocked {
				res.NewlyUnlocked++
			}
			g.Trophies[i] = t
			res.Updated++
			continue
		}
		g.index[t.ID] = len(g.Trophies)
		g.Trophies = append(g.Trophies, t)
		res.Added++
		if t.Unlocked {
			res.NewlyUnlocked++
		}
	}
	return res
}

// Clone returns a deep copy of g.
func (g *Game) Clone() *Game {
	out := *g
	out.index = nil
	out.Trophies = make([]Trophy, len(g.Trophies))
	for i, t := range g.Trophies {
		out.Trophies[i] = t.clone()
	}
	return &out
}

func (t Trophy) clone() Trophy {
	if t.UnlockedAt != nil {
		at := *t.UnlockedAt
		t.UnlockedAt = &at
	}
	return t
}

// GradeCounts tallies trophies per grade.
type GradeCounts map[types.Grade]int

// Progress summarizes unlocked versus total trophies, per grade and overall.
type Progress struct {
	Unlocked      int         `json:"unlocked"`
	Total         int         `json:"total"`
	UnlockedGrade GradeCounts `json:"unlocked_by_grade"`
	TotalGrade    GradeCounts `json:"total_by_grade"`
}

// Percent returns the share of unlocked trophies, rounded down.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Unlocked * 100 / p.Total
}

// Progress tallies g's trophies.
func (g *Game) Progress() Progress {
	p := Progress{UnlockedGrade: GradeCounts{}, TotalGrade: GradeCounts{}}
	for _, t := range g.Trophies {
		p.Total++
		p.TotalGrade[t.Grade]++
		if t.Unlocked {
			p.Unlocked++
			p.UnlockedGrade[t.Grade]++
		}
	}
	return p
}

// LastUnlock returns the most recent unlock time, or the zero time.
func (g *Game) LastUnlock() time.Time {
	var last time.Time
	for _, t := range g.Trophies {
		if t.UnlockedAt != nil && t.UnlockedAt.After(last) {
			last = *t.UnlockedAt
		}
	}
	return last
}
