package trend

import (
	"sort"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/stage"
	"github.com/roach88/saju/internal/timing"
)

// Impact classifies a decade transition.
type Impact string

const (
	MajorPositive    Impact = "major-positive"
	Positive         Impact = "positive"
	Neutral          Impact = "neutral"
	Challenging      Impact = "challenging"
	MajorChallenging Impact = "major-challenging"
)

// Impacts lists the levels from best to worst.
var Impacts = []Impact{MajorPositive, Positive, Neutral, Challenging, MajorChallenging}

// Transition marks the start of a new decade cycle inside the range.
type Transition struct {
	Year   int          `json:"year"`
	Age    int          `json:"age"`
	From   ganji.Pillar `json:"from"`
	To     ganji.Pillar `json:"to"`
	Stage  stage.Stage  `json:"stage"`
	Energy stage.Energy `json:"energy"`
	Points int          `json:"points"`
	Impact Impact       `json:"impact"`
}

// Phase is a run of years under one decade cycle.
type Phase struct {
	StartYear       int           `json:"start_year"`
	EndYear         int           `json:"end_year"`
	StartAge        int           `json:"start_age"`
	EndAge          int           `json:"end_age"`
	Daeun           *ganji.Pillar `json:"daeun,omitempty"`
	Energy          stage.Energy  `json:"energy"`
	Element         ganji.Element `json:"element"`
	AverageScore    int           `json:"average_score"`
	Recommendations []string      `json:"recommendations"`
}

var energyPoints = map[stage.Energy]int{
	stage.Peak:      2,
	stage.Rising:    1,
	stage.Declining: -1,
	stage.Dormant:   -2,
}

// ImpactOf grades the incoming decade pillar against the day master and
// the favorable and unfavorable elements. Points range -6..6.
func ImpactOf(dm ganji.Stem, to ganji.Pillar, favorable, unfavorable []ganji.Element) (Impact, int) {
	points := energyPoints[stage.StageOf(dm, to.Branch).Energy()]
	points += elementPoints(to.Stem.Element(), 2, favorable, unfavorable)
	points += elementPoints(to.Branch.Element(), 1, favorable, unfavorable)
	switch {
	case points >= 3:
		return MajorPositive, points
	case points >= 1:
		return Positive, points
	case points == 0:
		return Neutral, points
	case points >= -2:
		return Challenging, points
	default:
		return MajorChallenging, points
	}
}

func elementPoints(e ganji.Element, weight int, favorable, unfavorable []ganji.Element) int {
	n := 0
	if contains(favorable, e) {
		n += weight
	}
	if contains(unfavorable, e) {
		n -= weight
	}
	return n
}

func contains(list []ganji.Element, e ganji.Element) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

func elements(p chart.BirthProfile, opts timing.Options) ([]ganji.Element, []ganji.Element) {
	favorable, unfavorable := p.Favorable, p.Unfavorable
	if opts.Favorable != nil {
		favorable = opts.Favorable
	}
	if opts.Unfavorable != nil {
		unfavorable = opts.Unfavorable
	}
	return favorable, unfavorable
}

// Transitions lists the decade changes whose first year falls in
// [start, end]. Decades are taken in start-age order.
func Transitions(p chart.BirthProfile, start, end int, opts timing.Options) []Transition {
	out := []Transition{}
	if opts.NoDecade || len(p.Daeun) < 2 {
		return out
	}
	daeun := append([]chart.Daeun(nil), p.Daeun...)
	sort.SliceStable(daeun, func(i, j int) bool { return daeun[i].StartAge < daeun[j].StartAge })

	favorable, unfavorable := elements(p, opts)
	dm := p.DayMaster()
	for i := 1; i < len(daeun); i++ {
		year := p.BirthYear + daeun[i].StartAge
		if year < start || year > end {
			continue
		}
		to := daeun[i].Pillar
		st := stage.StageOf(dm, to.Branch)
		impact, points := ImpactOf(dm, to, favorable, unfavorable)
		out = append(out, Transition{
			Year:   year,
			Age:    daeun[i].StartAge,
			From:   daeun[i-1].Pillar,
			To:     to,
			Stage:  st,
			Energy: st.Energy(),
			Points: points,
			Impact: impact,
		})
	}
	return out
}

var energyRecommendations = map[stage.Energy][]string{
	stage.Peak:      {"lead-major-initiatives", "consolidate-position"},
	stage.Rising:    {"invest-in-growth", "build-skills"},
	stage.Declining: {"conserve-resources", "simplify-commitments"},
	stage.Dormant:   {"rest-and-plan", "study-and-prepare"},
}

var elementRecommendations = map[ganji.Element]string{
	ganji.Wood:  "start-new-ventures",
	ganji.Fire:  "increase-visibility",
	ganji.Earth: "stabilize-foundations",
	ganji.Metal: "refine-and-decide",
	ganji.Water: "network-and-learn",
}

// Phases splits the scored years into runs sharing one decade cycle. Years
// with no decade form their own runs, characterised by the year layers.
func Phases(p chart.BirthProfile, scores []timing.LayeredScore, opts timing.Options) []Phase {
	out := []Phase{}
	favorable, unfavorable := elements(p, opts)
	dm := p.DayMaster()

	i := 0
	for i < len(scores) {
		key, pillar, hasDecade := decadeKey(scores[i])
		j := i + 1
		for j < len(scores) {
			k, _, _ := decadeKey(scores[j])
			if k != key {
				break
			}
			j++
		}
		run := scores[i:j]

		ph := Phase{
			StartYear:    run[0].Year,
			EndYear:      run[len(run)-1].Year,
			StartAge:     run[0].Age,
			EndAge:       run[len(run)-1].Age,
			AverageScore: average(weighted(run)),
		}
		if hasDecade {
			pl := pillar
			ph.Daeun = &pl
			ph.Energy = stage.StageOf(dm, pl.Branch).Energy()
			ph.Element = pl.Stem.Element()
		} else {
			ph.Energy = commonEnergy(run)
			ph.Element = dm.Element()
		}

		recs := append([]string{}, energyRecommendations[ph.Energy]...)
		recs = append(recs, elementRecommendations[ph.Element])
		switch {
		case contains(favorable, ph.Element):
			recs = append(recs, "lean-in")
		case contains(unfavorable, ph.Element):
			recs = append(recs, "proceed-cautiously")
		}
		ph.Recommendations = recs

		out = append(out, ph)
		i = j
	}
	return out
}

// decadeKey identifies the decade layer of a score; -1 when absent.
func decadeKey(s timing.LayeredScore) (int, ganji.Pillar, bool) {
	la, ok := s.Layer(timing.Decade)
	if !ok {
		return -1, ganji.Pillar{}, false
	}
	return la.Pillar.Index(), la.Pillar, true
}

// commonEnergy is the most frequent year-layer energy of a run. Ties go to
// the stronger tier.
func commonEnergy(run []timing.LayeredScore) stage.Energy {
	counts := map[stage.Energy]int{}
	for _, s := range run {
		if la, ok := s.Layer(timing.Year); ok {
			counts[la.Energy]++
		}
	}
	best := stage.Energies[0]
	for _, e := range stage.Energies[1:] {
		if counts[e] > counts[best] {
			best = e
		}
	}
	return best
}
