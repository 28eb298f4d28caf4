package ganji

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStemRelationSymmetricAndTotal(t *testing.T) {
	combinations := 0
	clashes := 0
	for _, a := range Stems {
		for _, b := range Stems {
			ab := StemRelationOf(a, b)
			ba := StemRelationOf(b, a)
			assert.Equal(t, ab, ba, "%s/%s must be symmetric", a, b)
			assert.Contains(t, []StemRelationKind{StemNone, StemCombination, StemClash}, ab.Kind)
			if a < b {
				switch ab.Kind {
				case StemCombination:
					combinations++
				case StemClash:
					clashes++
				}
			}
		}
	}
	assert.Equal(t, 5, combinations, "exactly five unordered combination pairs")
	assert.Equal(t, 5, clashes, "exactly five unordered clash pairs")
}

func TestStemCombinationResults(t *testing.T) {
	tests := []struct {
		a, b Stem
		want Element
	}{
		{Gap, Gi, Earth},
		{Eul, Gyeong, Metal},
		{Byeong, Sin, Water},
		{Jeong, Im, Wood},
		{Mu, Gye, Fire},
	}
	for _, tt := range tests {
		t.Run(tt.a.String()+tt.b.String(), func(t *testing.T) {
			rel := StemRelationOf(tt.a, tt.b)
			assert.Equal(t, StemCombination, rel.Kind)
			assert.Equal(t, tt.want, rel.Result)
		})
	}
}

func TestStemClashPairs(t *testing.T) {
	assert.Equal(t, StemClash, StemRelationOf(Gap, Gyeong).Kind)
	assert.Equal(t, StemClash, StemRelationOf(Gye, Jeong).Kind)
	assert.Equal(t, StemNone, StemRelationOf(Gap, Gap).Kind)
	assert.Equal(t, StemNone, StemRelationOf(Gap, Byeong).Kind)
}

func TestStemRelationInvalid(t *testing.T) {
	assert.Equal(t, StemNone, StemRelationOf(Stem(10), Gap).Kind)
	assert.Equal(t, StemNone, StemRelationOf(Gap, Stem(-1)).Kind)
}

func TestBranchPairExamples(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Branch
		want   BranchRelationKind
		detail string
	}{
		{"子丑 six harmony", Ja, Chuk, BranchSixHarmony, ""},
		{"子午 clash", Ja, O, BranchClash, ""},
		{"寅巳 punishment", In, Sa, BranchPunishment, PunishUngrateful},
		{"子卯 rude punishment", Ja, Myo, BranchPunishment, PunishRude},
		{"辰辰 self punishment", Jin, Jin, BranchPunishment, PunishSelf},
		{"寅申 clash beats punishment", In, Shin, BranchClash, ""},
		{"巳申 harmony beats punishment", Sa, Shin, BranchSixHarmony, ""},
		{"丑未 clash beats punishment", Chuk, Mi, BranchClash, ""},
		{"子辰 partial trine", Ja, Jin, BranchThreeHarmony, ""},
		{"子寅 nothing", Ja, In, BranchNone, ""},
		{"子子 nothing", Ja, Ja, BranchNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := BranchRelationOf(tt.a, tt.b)
			assert.Equal(t, tt.want, rel.Kind)
			assert.Equal(t, tt.detail, rel.Detail)
		})
	}
}

func TestBranchPairsSymmetricAndTotal(t *testing.T) {
	counts := map[BranchRelationKind]int{}
	for _, a := range Branches {
		for _, b := range Branches {
			ab := BranchRelationOf(a, b)
			ba := BranchRelationOf(b, a)
			require.NotEmpty(t, ab.Kind, "%s%s unclassified", a, b)
			assert.Equal(t, ab.Kind, ba.Kind, "%s%s must be symmetric", a, b)
			assert.Equal(t, ab.Result, ba.Result)
			counts[ab.Kind]++
		}
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 144, total)
	// Ordered pairs: each unordered pair counts twice.
	assert.Equal(t, 12, counts[BranchSixHarmony])
	assert.Equal(t, 12, counts[BranchClash], "寅申 and 丑未 stay clashes")
}

func TestEveryFixedPairKeepsItsKindOrLosesToPrecedence(t *testing.T) {
	for _, p := range SixHarmonies {
		assert.Equal(t, BranchSixHarmony, BranchRelationOf(p.A, p.B).Kind)
	}
	for _, p := range BranchClashes {
		assert.Equal(t, BranchClash, BranchRelationOf(p.A, p.B).Kind, "%s%s", p.A, p.B)
	}
}

func TestBranchTriads(t *testing.T) {
	for _, trine := range Trines {
		m := trine.Members
		for _, order := range [][3]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}} {
			rel := BranchRelationOf(m[order[0]], m[order[1]], m[order[2]])
			assert.Equal(t, BranchThreeHarmony, rel.Kind)
			assert.True(t, rel.Complete)
			assert.Equal(t, trine.Result, rel.Result)
		}
	}

	rel := BranchRelationOf(Shin, Ja, Jin)
	assert.Equal(t, Water, rel.Result)

	rel = BranchRelationOf(In, Sa, Shin)
	assert.Equal(t, BranchPunishment, rel.Kind)
	assert.True(t, rel.Complete)
	assert.Equal(t, PunishUngrateful, rel.Detail)

	rel = BranchRelationOf(Chuk, Sul, Mi)
	assert.Equal(t, BranchPunishment, rel.Kind)
	assert.True(t, rel.Complete)

	// 子丑 harmony wins over 子午 clash inside a mixed triad.
	rel = BranchRelationOf(Ja, Chuk, O)
	assert.Equal(t, BranchSixHarmony, rel.Kind)
	assert.False(t, rel.Complete)

	rel = BranchRelationOf(Ja, In, Sul)
	assert.Equal(t, BranchThreeHarmony, rel.Kind, "寅戌 is a partial trine")
	assert.False(t, rel.Complete)
}

func TestBranchRelationDegenerateSets(t *testing.T) {
	assert.Equal(t, BranchNone, BranchRelationOf().Kind)
	assert.Equal(t, BranchNone, BranchRelationOf(Ja).Kind)
	assert.Equal(t, BranchNone, BranchRelationOf(Ja, Chuk, In, Myo).Kind)
	assert.Equal(t, BranchNone, BranchRelationOf(Ja, Branch(12)).Kind)
}

func TestAllBranchRelations(t *testing.T) {
	rels := AllBranchRelations(Shin, Ja, Jin, O)

	kinds := map[BranchRelationKind]int{}
	complete := 0
	for _, r := range rels {
		kinds[r.Kind]++
		if r.Complete {
			complete++
		}
	}
	// 申子, 申辰, 子辰 partial trines plus the full trine; 子午 clash.
	assert.Equal(t, 4, kinds[BranchThreeHarmony])
	assert.Equal(t, 1, kinds[BranchClash])
	assert.Equal(t, 1, complete)
}

func TestBranchPrecedenceOrder(t *testing.T) {
	assert.Equal(t, []BranchRelationKind{
		BranchSixHarmony, BranchClash, BranchPunishment, BranchThreeHarmony,
	}, BranchPrecedence)
}

func TestBranchRelationResultsAreIndependent(t *testing.T) {
	r := BranchRelationOf(Ja, Chuk)
	r.Branches[0] = O
	assert.Equal(t, []Branch{Ja, Chuk}, BranchRelationOf(Ja, Chuk).Branches)

	triad := BranchRelationOf(Ja, Chuk, Myo)
	require.Equal(t, BranchSixHarmony, triad.Kind)
	triad.Branches[1] = Sul
	assert.Equal(t, []Branch{Ja, Chuk}, BranchRelationOf(Ja, Chuk, Myo).Branches)
	assert.Equal(t, []Branch{Ja, Chuk}, BranchRelationOf(Ja, Chuk).Branches)

	all := AllBranchRelations(In, Hae)
	require.NotEmpty(t, all)
	all[0].Branches[1] = Sa
	again := AllBranchRelations(In, Hae)
	assert.Equal(t, []Branch{In, Hae}, again[0].Branches)
	assert.Equal(t, []Branch{In, Hae}, BranchRelationOf(In, Hae).Branches)
}
