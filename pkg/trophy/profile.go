package trophy

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/trophykit/pkg/types"
)

// Profile aggregates every known game of one user. All methods are safe for
// concurrent use; each Upsert completes before the next one starts.
type Profile struct {
	mu        sync.RWMutex
	id        uuid.UUID
	userName  string
	updatedAt time.Time
	games     map[string]*Game
}

// NewProfile returns an empty profile with a fresh id.
func NewProfile(userName string) *Profile {
	return &Profile{
		id:       uuid.New(),
		userName: userName,
		games:    make(map[string]*Game),
	}
}

// ID returns the profile's stable identifier.
func (p *Profile) ID() uuid.UUID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.id
}

// UserName returns the display name.
func (p *Profile) UserName() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.userName
}

// SetUserName replaces the display name.
func (p *Profile) SetUserName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userName = name
}

// UpdatedAt returns when a game was last upserted.
func (p *Profile) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

// Upsert stores a copy of g, or merges it into the stored game with the same
// NpCommID. Existing trophies are never removed.
func (p *Profile) Upsert(g *Game) MergeResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updatedAt = time.Now().UTC()
	if p.games == nil {
		p.games = make(map[string]*Game)
	}
	if cur, ok := p.games[g.NpCommID]; ok {
		return cur.Merge(g)
	}
	c := g.Clone()
	p.games[g.NpCommID] = c
	res := MergeResult{Added: len(c.Trophies)}
	for _, t := range c.Trophies {
		if t.Unlocked {
			res.NewlyUnlocked++
		}
	}
	return res
}

// Has reports whether a game is stored.
func (p *Profile) Has(npCommID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.games[npCommID]
	return ok
}

// Game returns a copy of the stored game.
func (p *Profile) Game(npCommID string) (*Game, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.games[npCommID]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// Games returns copies of all stored games ordered by NpCommID.
func (p *Profile) Games() []*Game {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, 0, len(p.games))
	for id := range p.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Game, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.games[id].Clone())
	}
	return out
}

// Summary is the profile-wide roll-up.
type Summary struct {
	Games    int         `json:"games"`
	Points   int         `json:"points"`
	Level    int         `json:"level"`
	Percent  int         `json:"percent"`
	Unlocked int         `json:"unlocked"`
	Total    int         `json:"total"`
	ByGrade  GradeCounts `json:"unlocked_by_grade"`
}

// Summary computes points (sum of capped game scores), level and counts.
func (p *Profile) Summary() Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := Summary{Games: len(p.games), ByGrade: GradeCounts{}}
	for _, g := range p.games {
		s.Points += g.Score()
		pr := g.Progress()
		s.Unlocked += pr.Unlocked
		s.Total += pr.Total
		for _, gr := range types.Grades() {
			s.ByGrade[gr] += pr.UnlockedGrade[gr]
		}
	}
	s.Level, s.Percent = LevelProgressFor(s.Points)
	return s
}

type profileJSON struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	UpdatedAt time.Time `json:"updated_at"`
	Games     []*Game   `json:"games"`
}

// MarshalJSON encodes the profile with games ordered by NpCommID.
func (p *Profile) MarshalJSON() ([]byte, error) {
	games := p.Games()
	p.mu.RLock()
	doc := profileJSON{ID: p.id, UserName: p.userName, UpdatedAt: p.updatedAt, Games: games}
	p.mu.RUnlock()
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the profile's contents. A missing id is replaced by
// a fresh one.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var doc profileJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = doc.ID
	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	p.userName = doc.UserName
	p.updatedAt = doc.UpdatedAt
	p.games = make(map[string]*Game, len(doc.Games))
	for _, g := range doc.Games {
		if g == nil {
			continue
		}
		p.games[g.NpCommID] = g
	}
	return nil
}
