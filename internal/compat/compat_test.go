package compat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/sibsin"
)

func profile(year, month, day, hour string) chart.BirthProfile {
	return chart.BirthProfile{
		BirthYear: 1990,
		Year:      ganji.MustParsePillar(year),
		Month:     ganji.MustParsePillar(month),
		Day:       ganji.MustParsePillar(day),
		Hour:      ganji.MustParsePillar(hour),
	}
}

func pair() (chart.BirthProfile, chart.BirthProfile) {
	return profile("庚午", "戊寅", "甲子", "丙寅"), profile("辛未", "庚寅", "己丑", "甲子")
}

func TestAnalyze(t *testing.T) {
	a, b := pair()
	s := Analyze(a, b)

	want := SajuScore{
		ElementHarmony: 40,
		RoleHarmony:    77,
		StemHarmony:    90,
		BranchHarmony:  90,
		Overall:        71,
		Influence:      46,
		RoleAToB:       sibsin.Jeongjae,
		RoleBToA:       sibsin.Jeonggwan,
		StemRelation:   ganji.StemCombination,
		DayRelation:    ganji.BranchSixHarmony,
		YearRelation:   ganji.BranchSixHarmony,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Analyze mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, a.Favorable, "input profile must not be modified")
}

func TestInfluenceIsAntisymmetric(t *testing.T) {
	a, b := pair()
	assert.Equal(t, -Analyze(a, b).Influence, Analyze(b, a).Influence)
	assert.Equal(t, Analyze(a, b).Overall, Analyze(b, a).Overall)
}

func TestFuseSajuOnly(t *testing.T) {
	a, b := pair()
	r := Fuse(FusionInput{Saju: Analyze(a, b)})

	assert.Equal(t, 71, r.Overall)
	assert.Equal(t, "B", r.Grade.Grade)
	assert.Equal(t, Dynamics{PowerBalance: 46, Intensity: 73, Alignment: 58, Connection: 90}, r.Dynamics)

	require.Len(t, r.Actions, 4)
	assert.Equal(t, []string{
		"supplement-missing-elements",
		"rotate-decision-making",
		"build-joint-projects",
		"keep-shared-routines",
	}, tags(r.Actions))

	assert.Contains(t, r.Insights, Insight{ShortTerm, true, "instant-attraction"})
	assert.Contains(t, r.Insights, Insight{MediumTerm, false, "element-imbalance"})
	assert.Contains(t, r.Insights, Insight{LongTerm, true, "steady-commitment"})
	assert.Contains(t, r.Insights, Insight{LongTerm, true, "mutual-structure"})
}

func TestFuseWithOptionalInputs(t *testing.T) {
	a, b := pair()
	r := Fuse(FusionInput{
		Saju:  Analyze(a, b),
		Graph: &GraphAnalysis{HarmonyIndex: 80, ClusterScore: 60, CriticalNodes: []string{"friend"}},
		Astro: &AstroData{Synastry: 90, Aspects: []Aspect{{Name: "trine", Harmonious: true, Strength: 85}}},
	})

	// (71*60 + 70*25 + 90*15) / 100
	assert.Equal(t, 74, r.Overall)
	assert.Contains(t, tags(r.Actions), "nurture-critical-connections")
	assert.Contains(t, tags(r.Actions), "plan-around-harmonious-transits")
	assert.Contains(t, r.Insights, Insight{MediumTerm, true, "aspect-trine"})
}

func TestActionsSortedByPriority(t *testing.T) {
	for _, s := range []SajuScore{
		{ElementHarmony: 20, StemRelation: ganji.StemClash, DayRelation: ganji.BranchClash, Influence: -90},
		{ElementHarmony: 90, StemRelation: ganji.StemNone, DayRelation: ganji.BranchNone},
		{ElementHarmony: 60, StemRelation: ganji.StemNone, DayRelation: ganji.BranchNone},
	} {
		r := Fuse(FusionInput{Saju: s, Astro: &AstroData{Synastry: 10}})
		require.NotEmpty(t, r.Actions)
		for i := 1; i < len(r.Actions); i++ {
			assert.LessOrEqual(t, priorityRank[r.Actions[i-1].Priority], priorityRank[r.Actions[i].Priority])
		}
		assert.GreaterOrEqual(t, r.Dynamics.PowerBalance, -100)
		assert.LessOrEqual(t, r.Dynamics.PowerBalance, 100)
		for _, v := range []int{r.Dynamics.Intensity, r.Dynamics.Alignment, r.Dynamics.Connection, r.Overall} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestGradeOf(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "S+"}, {95, "S+"}, {94, "S"}, {85, "S"}, {84, "A"}, {75, "A"},
		{74, "B"}, {65, "B"}, {64, "C"}, {50, "C"}, {49, "D"}, {35, "D"},
		{34, "F"}, {0, "F"}, {-10, "F"},
	}
	for _, tt := range tests {
		g := GradeOf(tt.score)
		assert.Equal(t, tt.want, g.Grade, "score %d", tt.score)
		assert.NotEmpty(t, g.Title)
		assert.NotEmpty(t, g.Emoji)
	}
	assert.Len(t, Grades, 7)
}

func tags(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Tag
	}
	return out
}
