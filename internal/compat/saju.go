// Package compat scores the compatibility of two charts and fuses that
// score with optional relationship-graph and astrological inputs into
// prioritised guidance.
package compat

import (
	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/sibsin"
	"github.com/roach88/saju/internal/yongsin"
)

// SajuScore is the chart-to-chart compatibility of two profiles. A is the
// reference side: positive Influence means A leads.
type SajuScore struct {
	ElementHarmony int                      `json:"element_harmony"`
	RoleHarmony    int                      `json:"role_harmony"`
	StemHarmony    int                      `json:"stem_harmony"`
	BranchHarmony  int                      `json:"branch_harmony"`
	Overall        int                      `json:"overall"`
	Influence      int                      `json:"influence"`
	RoleAToB       sibsin.Role              `json:"role_a_to_b"`
	RoleBToA       sibsin.Role              `json:"role_b_to_a"`
	StemRelation   ganji.StemRelationKind   `json:"stem_relation"`
	DayRelation    ganji.BranchRelationKind `json:"day_relation"`
	YearRelation   ganji.BranchRelationKind `json:"year_relation"`
}

// Weights of the sub-scores in Overall, in percent.
const (
	elementWeight = 30
	roleWeight    = 25
	stemWeight    = 20
	branchWeight  = 25
)

var roleScores = map[sibsin.Role]int{
	sibsin.Bigyeon:   60,
	sibsin.Geopjae:   45,
	sibsin.Siksin:    75,
	sibsin.Sanggwan:  50,
	sibsin.Pyeonjae:  65,
	sibsin.Jeongjae:  80,
	sibsin.Pyeongwan: 40,
	sibsin.Jeonggwan: 75,
	sibsin.Pyeonin:   55,
	sibsin.Jeongin:   80,
}

var stemScores = map[ganji.StemRelationKind]int{
	ganji.StemCombination: 90,
	ganji.StemNone:        60,
	ganji.StemClash:       20,
}

var branchScores = map[ganji.BranchRelationKind]int{
	ganji.BranchSixHarmony:   90,
	ganji.BranchThreeHarmony: 80,
	ganji.BranchNone:         60,
	ganji.BranchPunishment:   35,
	ganji.BranchClash:        20,
}

// Analyze compares two charts. Profiles without favorable elements get
// them from the yongsin cascade; the inputs are not modified.
func Analyze(a, b chart.BirthProfile) SajuScore {
	a, b = withElements(a), withElements(b)
	dmA, dmB := a.DayMaster(), b.DayMaster()

	s := SajuScore{
		RoleAToB:     sibsin.RoleOf(dmA, dmB),
		RoleBToA:     sibsin.RoleOf(dmB, dmA),
		StemRelation: ganji.StemRelationOf(dmA, dmB).Kind,
		DayRelation:  ganji.BranchRelationOf(a.Day.Branch, b.Day.Branch).Kind,
		YearRelation: ganji.BranchRelationOf(a.Year.Branch, b.Year.Branch).Kind,
	}
	s.ElementHarmony = elementHarmony(a, b)
	s.RoleHarmony = (roleScores[s.RoleAToB] + roleScores[s.RoleBToA]) / 2
	s.StemHarmony = stemScores[s.StemRelation]
	s.BranchHarmony = (branchScores[s.DayRelation] + branchScores[s.YearRelation]) / 2
	s.Overall = clamp((s.ElementHarmony*elementWeight+s.RoleHarmony*roleWeight+
		s.StemHarmony*stemWeight+s.BranchHarmony*branchWeight)/100, 0, 100)
	s.Influence = influence(a, b)
	return s
}

func withElements(p chart.BirthProfile) chart.BirthProfile {
	if len(p.Favorable) > 0 {
		return p
	}
	return yongsin.Determine(p).Apply(p)
}

// elementHarmony rewards each side's dominant element being what the other
// side needs, and the day masters feeding rather than cutting each other.
func elementHarmony(a, b chart.BirthProfile) int {
	score := 50
	score += supply(a, b.Tally().Dominant())
	score += supply(b, a.Tally().Dominant())

	ea, eb := a.DayMaster().Element(), b.DayMaster().Element()
	switch {
	case ea == eb:
		score += 5
	case ea.Generates() == eb || eb.Generates() == ea:
		score += 15
	case ea.Controls() == eb || eb.Controls() == ea:
		score -= 10
	}
	return clamp(score, 0, 100)
}

func supply(needy chart.BirthProfile, offered ganji.Element) int {
	switch {
	case needy.IsFavorable(offered):
		return 20
	case needy.IsUnfavorable(offered):
		return -20
	default:
		return 0
	}
}

// influence is positive when A's day master restrains or is fed by B's.
func influence(a, b chart.BirthProfile) int {
	ea, eb := a.DayMaster().Element(), b.DayMaster().Element()
	n := 0
	switch {
	case ea.Controls() == eb:
		n += 40
	case eb.Controls() == ea:
		n -= 40
	case eb.Generates() == ea:
		n += 15
	case ea.Generates() == eb:
		n -= 15
	}
	_, pa := yongsin.ClassifyStrength(yongsin.NewInput(a))
	_, pb := yongsin.ClassifyStrength(yongsin.NewInput(b))
	n += (pa - pb) / 2
	return clamp(n, -100, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
