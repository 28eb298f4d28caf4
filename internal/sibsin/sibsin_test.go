package sibsin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
)

func TestRoleOfSelfIsPeer(t *testing.T) {
	for _, s := range ganji.Stems {
		assert.Equal(t, Bigyeon, RoleOf(s, s), s.String())
	}
}

func TestRoleTotalOverAllPairs(t *testing.T) {
	for _, ref := range ganji.Stems {
		seen := map[Role]int{}
		for _, target := range ganji.Stems {
			r := RoleOf(ref, target)
			require.True(t, r.Valid(), "%s→%s", ref, target)
			seen[r]++
		}
		// Each reference stem sees each of the ten roles exactly once.
		assert.Len(t, seen, 10, ref.String())
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
	}
}

func TestRoleKnownValues(t *testing.T) {
	tests := []struct {
		ref, target ganji.Stem
		want        Role
	}{
		{ganji.Gap, ganji.Eul, Geopjae},
		{ganji.Gap, ganji.Byeong, Siksin},
		{ganji.Gap, ganji.Jeong, Sanggwan},
		{ganji.Gap, ganji.Mu, Pyeonjae},
		{ganji.Gap, ganji.Gi, Jeongjae},
		{ganji.Gap, ganji.Gyeong, Pyeongwan},
		{ganji.Gap, ganji.Sin, Jeonggwan},
		{ganji.Gap, ganji.Im, Pyeonin},
		{ganji.Gap, ganji.Gye, Jeongin},
		{ganji.Gye, ganji.Mu, Jeonggwan},
		{ganji.Byeong, ganji.Gyeong, Pyeonjae},
	}
	for _, tt := range tests {
		t.Run(tt.ref.String()+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, RoleOf(tt.ref, tt.target))
		})
	}
}

func TestGroupsAreInverse(t *testing.T) {
	for _, ref := range ganji.Elements {
		for _, g := range Groups {
			assert.Equal(t, g, GroupOf(ref, ElementOf(ref, g)))
		}
	}
	for _, r := range Roles {
		assert.NotEmpty(t, r.Group(), string(r))
		assert.NotEqual(t, "?", r.Hangul())
	}
}

func TestRoleOfBranch(t *testing.T) {
	assert.Equal(t, Pyeonin, RoleOfBranch(ganji.Gap, ganji.Ja))
	assert.Equal(t, Jeongin, RoleOfBranch(ganji.Gap, ganji.Hae))
	assert.Equal(t, Bigyeon, RoleOfBranch(ganji.Gap, ganji.In))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("정관")
	require.NoError(t, err)
	assert.Equal(t, Jeonggwan, r)
	_, err = ParseRole("nope")
	require.Error(t, err)
}

func TestNatalCount(t *testing.T) {
	p := chart.BirthProfile{
		BirthYear: 1990,
		Year:      ganji.MustParsePillar("庚午"),
		Month:     ganji.MustParsePillar("戊寅"),
		Day:       ganji.MustParsePillar("甲子"),
		Hour:      ganji.MustParsePillar("丙寅"),
	}
	placements := Natal(p)
	assert.Len(t, placements, 7)

	counts := Count(p)
	assert.Equal(t, 1, counts[Pyeongwan]) // 庚
	assert.Equal(t, 2, counts[Bigyeon])   // 寅 寅
	assert.Equal(t, 1, counts[Pyeonin])   // 子

	groups := CountGroups(p)
	total := 0
	for _, n := range groups {
		total += n
	}
	assert.Equal(t, 7, total)
}
