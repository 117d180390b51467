package types

import "fmt"

// Grade is a trophy's tier.
type Grade uint8

const (
	GradeUnknown Grade = iota
	GradePlatinum
	GradeGold
	GradeSilver
	GradeBronze
)

// gradeInfo is one row of the grade mapping table.
type gradeInfo struct {
	grade  Grade
	name   string
	token  string // ttype attribute in the trophy-set descriptor
	code   uint32 // grade field of a type 4 progress record
	points int
}

// grades is the single source of truth for every Grade conversion. Lookups
// below are total: anything not listed maps to GradeUnknown.
var grades = [...]gradeInfo{
	{GradeUnknown, "Unknown", "", 0, 0},
	{GradePlatinum, "Platinum", "P", 1, 180},
	{GradeGold, "Gold", "G", 2, 90},
	{GradeSilver, "Silver", "S", 3, 30},
	{GradeBronze, "Bronze", "B", 4, 15},
}

func (g Grade) info() gradeInfo {
	if int(g) < len(grades) {
		return grades[g]
	}
	return grades[GradeUnknown]
}

// Grades lists the known grades from highest to lowest, excluding Unknown.
func Grades() []Grade {
	return []Grade{GradePlatinum, GradeGold, GradeSilver, GradeBronze}
}

func (g Grade) String() string { return g.info().name }

// Token returns the one-character descriptor token ("" for Unknown).
func (g Grade) Token() string { return g.info().token }

// Code returns the numeric grade code used in progress records.
func (g Grade) Code() uint32 { return g.info().code }

// Points returns the score contribution of one unlocked trophy of this grade.
func (g Grade) Points() int { return g.info().points }

// GradeFromToken maps a descriptor ttype token to a Grade.
func GradeFromToken(tok string) Grade {
	for _, gi := range grades[1:] {
		if gi.token == tok {
			return gi.grade
		}
	}
	return GradeUnknown
}

// GradeFromCode maps a progress-record grade code to a Grade.
func GradeFromCode(code uint32) Grade {
	for _, gi := range grades[1:] {
		if gi.code == code {
			return gi.grade
		}
	}
	return GradeUnknown
}

// ParseGrade maps a grade name (as produced by String) back to a Grade.
func ParseGrade(name string) (Grade, error) {
	for _, gi := range grades {
		if gi.name == name {
			return gi.grade, nil
		}
	}
	return GradeUnknown, fmt.Errorf("unknown grade %q", name)
}

// MarshalText encodes the grade by name.
func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText decodes a grade name.
func (g *Grade) UnmarshalText(b []byte) error {
	v, err := ParseGrade(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
