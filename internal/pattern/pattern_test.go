package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
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

func sample() chart.BirthProfile {
	return profile("庚午", "戊寅", "甲子", "丙寅")
}

func TestDetectAllOrder(t *testing.T) {
	results := DetectAll(sample())
	require.Len(t, results, len(Kinds))
	for i, k := range Kinds {
		assert.Equal(t, k, results[i].Kind)
		assert.NotEmpty(t, results[i].Description)
		_, ok := DetectorFor(k)
		assert.True(t, ok)
	}
}

func TestSamgi(t *testing.T) {
	r := DetectSamgi(sample())
	require.True(t, r.Detected)
	assert.Equal(t, "cheonsang", r.Type)
	assert.Equal(t, []chart.Position{chart.DayPillar, chart.MonthPillar, chart.YearPillar}, r.Positions)

	r = DetectSamgi(profile("辛未", "癸巳", "壬申", "丙午"))
	assert.True(t, r.Detected)
	assert.Equal(t, "injung", r.Type)

	r = DetectSamgi(profile("丁卯", "己丑", "甲辰", "丙寅"))
	assert.False(t, r.Detected)
	assert.Empty(t, r.Type)
}

func TestHwagyeok(t *testing.T) {
	r := DetectHwagyeok(profile("丁卯", "己丑", "甲辰", "丙寅"))
	require.True(t, r.Detected, r.Description)
	assert.Equal(t, "hwa-earth", r.Type)
	require.NotNil(t, r.Element)
	assert.Equal(t, ganji.Earth, *r.Element)
	assert.Equal(t, []chart.Position{chart.DayPillar, chart.MonthPillar}, r.Positions)
}

func TestHwagyeokBlockedByClash(t *testing.T) {
	r := DetectHwagyeok(profile("庚午", "己丑", "甲辰", "丙寅"))
	assert.False(t, r.Detected)
	assert.Contains(t, r.Description, "broken")
}

func TestHwagyeokNeedsSupport(t *testing.T) {
	r := DetectHwagyeok(profile("丁卯", "己巳", "甲辰", "丙寅"))
	assert.False(t, r.Detected)
	assert.Contains(t, r.Description, "without")
}

func TestJonggeok(t *testing.T) {
	r := DetectJonggeok(profile("庚申", "辛酉", "甲申", "辛未"))
	require.True(t, r.Detected, r.Description)
	assert.Equal(t, "jongsal", r.Type)
	assert.Equal(t, ganji.Metal, *r.Element)

	rooted := DetectJonggeok(profile("庚申", "辛酉", "甲申", "辛卯"))
	assert.False(t, rooted.Detected)
	assert.Equal(t, []chart.Position{chart.HourPillar}, rooted.Positions)

	assert.False(t, DetectJonggeok(sample()).Detected)
}

func TestVoidBranches(t *testing.T) {
	tests := []struct {
		day  string
		want [2]ganji.Branch
	}{
		{"甲子", [2]ganji.Branch{ganji.Sul, ganji.Hae}},
		{"乙丑", [2]ganji.Branch{ganji.Sul, ganji.Hae}},
		{"甲戌", [2]ganji.Branch{ganji.Shin, ganji.Yu}},
		{"癸亥", [2]ganji.Branch{ganji.Ja, ganji.Chuk}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VoidBranches(ganji.MustParsePillar(tt.day)), tt.day)
	}
}

func TestGongmang(t *testing.T) {
	r := DetectGongmang(sample())
	assert.False(t, r.Detected)
	assert.Equal(t, []ganji.Branch{ganji.Sul, ganji.Hae}, r.Branches)

	r = DetectGongmang(profile("庚午", "戊寅", "甲子", "乙亥"))
	require.True(t, r.Detected)
	assert.Equal(t, "hour", r.Type)
	assert.Equal(t, []chart.Position{chart.HourPillar}, r.Positions)
}

func TestDetectorsDoNotMutateProfile(t *testing.T) {
	p := sample().WithElements([]ganji.Element{ganji.Fire}, nil)
	before := p.Clone()
	DetectAll(p)
	assert.Equal(t, before, p)
}
