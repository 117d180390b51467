package trophy

// MaxGameScore caps the points a single game contributes to the profile.
const MaxGameScore = 1230

// Score sums the grade points of the unlocked trophies, capped at
// MaxGameScore.
func Score(trophies []Trophy) int {
	total := 0
	for _, t := range trophies {
		if t.Unlocked {
			total += t.Grade.Points()
		}
	}
	return min(total, MaxGameScore)
}

// Score returns the game's capped score.
func (g *Game) Score() int { return Score(g.Trophies) }

// levelStep is one segment of the level curve: from Start points on, each
// Cost points add one level on top of Level.
type levelStep struct {
	Start int
	Level int
	Cost  int
}

// levelSteps is the fixed level curve, ascending by Start.
var levelSteps = [...]levelStep{
	{Start: 0, Level: 1, Cost: 200},
	{Start: 200, Level: 2, Cost: 400},
	{Start: 600, Level: 3, Cost: 600},
	{Start: 1200, Level: 4, Cost: 1200},
	{Start: 2400, Level: 5, Cost: 1600},
	{Start: 4000, Level: 6, Cost: 2000},
	{Start: 16000, Level: 12, Cost: 8000},
	{Start: 70000, Level: 19, Cost: 10000},
}

// LevelFor maps cumulative points to a level. No points means level 0.
func LevelFor(points int) int {
	level, _ := LevelProgressFor(points)
	return level
}

// LevelProgressFor returns the level for points and the percentage (0-99)
// of the way to the next level.
func LevelProgressFor(points int) (level, percent int) {
	if points <= 0 {
		return 0, 0
	}
	step := levelSteps[0]
	for _, s := range levelSteps[1:] {
		if points < s.Start {
			break
		}
		step = s
	}
	into := points - step.Start
	level = step.Level + into/step.Cost
	percent = (into % step.Cost) * 100 / step.Cost
	return level, percent
}
