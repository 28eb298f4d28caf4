package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/ganji"
)

func TestStageTotalOverAllPairs(t *testing.T) {
	for _, s := range ganji.Stems {
		seen := map[Stage]bool{}
		for _, b := range ganji.Branches {
			r := Of(s, b)
			require.True(t, r.Stage.Valid(), "%s/%s", s, b)
			assert.Contains(t, Energies, r.Energy)
			assert.GreaterOrEqual(t, r.Score, 0)
			assert.LessOrEqual(t, r.Score, 100)
			assert.NotEmpty(t, r.LifePhase)
			assert.NotEmpty(t, r.Advice)
			seen[r.Stage] = true
		}
		assert.Len(t, seen, Count, "every stem passes through all twelve stages")
	}
}

func TestStageKnownValues(t *testing.T) {
	tests := []struct {
		stem   ganji.Stem
		branch ganji.Branch
		want   Stage
	}{
		{ganji.Gap, ganji.Hae, Jangsaeng},
		{ganji.Gap, ganji.In, Geonrok},
		{ganji.Gap, ganji.Myo, Jewang},
		{ganji.Gap, ganji.O, Sa},
		{ganji.Gap, ganji.Mi, Myo},
		{ganji.Eul, ganji.O, Jangsaeng},
		{ganji.Eul, ganji.Myo, Geonrok},
		{ganji.Eul, ganji.In, Jewang},
		{ganji.Byeong, ganji.O, Jewang},
		{ganji.Gyeong, ganji.Shin, Geonrok},
		{ganji.Im, ganji.Ja, Jewang},
		{ganji.Gye, ganji.Ja, Geonrok},
		{ganji.Sin, ganji.Yu, Geonrok},
	}
	for _, tt := range tests {
		t.Run(tt.stem.String()+tt.branch.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StageOf(tt.stem, tt.branch))
		})
	}
}

func TestYinStemsRunBackward(t *testing.T) {
	// For 乙 the cycle runs 午 → 巳 → 辰 ...
	assert.Equal(t, Mokyok, StageOf(ganji.Eul, ganji.Sa))
	assert.Equal(t, Gwandae, StageOf(ganji.Eul, ganji.Jin))
	// For 甲 it runs 亥 → 子 → 丑 ...
	assert.Equal(t, Mokyok, StageOf(ganji.Gap, ganji.Ja))
	assert.Equal(t, Gwandae, StageOf(ganji.Gap, ganji.Chuk))
}

func TestEnergyTiers(t *testing.T) {
	tiers := map[Energy][]Stage{}
	for _, s := range All {
		tiers[s.Energy()] = append(tiers[s.Energy()], s)
	}
	assert.Equal(t, []Stage{Jangsaeng, Mokyok, Gwandae}, tiers[Rising])
	assert.Equal(t, []Stage{Geonrok, Jewang}, tiers[Peak])
	assert.Equal(t, []Stage{Soe, Byeong, Sa}, tiers[Declining])
	assert.Equal(t, []Stage{Myo, Jeol, Tae, Yang}, tiers[Dormant])
}

func TestInvalidInputIsNeutralFloor(t *testing.T) {
	r := Of(ganji.Stem(42), ganji.Ja)
	assert.Equal(t, Jeol, r.Stage)
	assert.Equal(t, Dormant, r.Energy)
}

func TestInvalidStageAccessors(t *testing.T) {
	for _, s := range []Stage{Stage(-1), Stage(Count), Stage(99)} {
		assert.NotPanics(t, func() {
			assert.Equal(t, Dormant, s.Energy())
			assert.Equal(t, 0, s.Score())
			assert.Equal(t, "?", s.Hangul())
		})
	}
}

func TestAdviceIsCopied(t *testing.T) {
	r := Of(ganji.Gap, ganji.Hae)
	r.Advice[0] = "mutated"
	assert.NotEqual(t, "mutated", Of(ganji.Gap, ganji.Hae).Advice[0])
}

func TestStageText(t *testing.T) {
	data, err := Jewang.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "jewang", string(data))

	var s Stage
	require.NoError(t, s.UnmarshalText([]byte("건록")))
	assert.Equal(t, Geonrok, s)
	require.Error(t, s.UnmarshalText([]byte("nope")))
}
