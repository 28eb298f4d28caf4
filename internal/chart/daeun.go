package chart

import "github.com/roach88/saju/internal/ganji"

// DefaultDaeunCount is the number of decades BuildDaeun produces when the
// caller passes a non-positive count.
const DefaultDaeunCount = 10

// DaeunForward reports the direction of the decade cycle: forward for a
// yang year stem with a male subject or a yin year stem with a female
// subject, backward otherwise. Unknown gender is treated as male.
func (p BirthProfile) DaeunForward() bool {
	yang := p.Year.Stem.Polarity() == ganji.Yang
	if p.Gender == Female {
		return !yang
	}
	return yang
}

// BuildDaeun derives the decade-cycle list from the month pillar.
//
// startAge is the age at which the first decade begins. Computing it needs
// the distance from birth to the nearest solar term, which belongs to the
// external calendar converter; the engine takes it as given. Negative start
// ages are clamped to 0.
func BuildDaeun(p BirthProfile, startAge, count int) []Daeun {
	if count <= 0 {
		count = DefaultDaeunCount
	}
	if startAge < 0 {
		startAge = 0
	}
	step := 1
	if !p.DaeunForward() {
		step = -1
	}
	out := make([]Daeun, count)
	for i := range out {
		begin := startAge + 10*i
		out[i] = Daeun{
			Pillar:   p.Month.Next(step * (i + 1)),
			StartAge: begin,
			EndAge:   begin + 9,
		}
	}
	return out
}
