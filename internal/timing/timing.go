// Package timing scores a target year (optionally month and day) against a
// natal chart by layering the decade, year, month and day cycles over it.
//
// All arithmetic is integer. A layer that cannot be resolved is simply
// absent: the remaining layers are renormalised and the result carries a
// lower confidence.
package timing

import (
	"fmt"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/sibsin"
	"github.com/roach88/saju/internal/stage"
)

// Layer names one temporal cycle.
type Layer string

const (
	Decade Layer = "daeun" // 대운
	Year   Layer = "seun"  // 세운
	Month  Layer = "wolun" // 월운
	Day    Layer = "iljin" // 일진
)

// Layers lists the layers from coarsest to finest.
var Layers = []Layer{Decade, Year, Month, Day}

// Weights are the base layer weights in percent.
var Weights = map[Layer]int{
	Decade: 50,
	Year:   35,
	Month:  15,
	Day:    10,
}

// Adjustment bounds and per-symbol element bonuses.
const (
	StemElementBonus   = 10
	BranchElementBonus = 5
	MaxElementAdjust   = 20
	MaxRelationAdjust  = 10
	// FullWeight is the layer weight at which element bonuses apply unscaled.
	FullWeight = 50
)

// relationAdjust is the adjustment for a layer branch relating to the natal
// day branch.
var relationAdjust = map[ganji.BranchRelationKind]int{
	ganji.BranchSixHarmony:   4,
	ganji.BranchThreeHarmony: 3,
	ganji.BranchClash:        -5,
	ganji.BranchPunishment:   -3,
}

// Confidence contributions.
const (
	baseConfidence      = 50
	decadeConfidence    = 20
	favorableConfidence = 15
	monthConfidence     = 10
	dayConfidence       = 5
)

// Query selects the period to score. Month and Day are optional (zero means
// absent); Day is ignored without Month or when the date does not exist.
type Query struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Validate rejects a month outside 1..12, a day without a month, and a day
// the month does not have.
func (q Query) Validate() error {
	if q.Month < 0 || q.Month > 12 {
		return fmt.Errorf("month %d out of range 1..12", q.Month)
	}
	if q.Day == 0 {
		return nil
	}
	if q.Month == 0 {
		return fmt.Errorf("day %d needs a month", q.Day)
	}
	if !ganji.ValidDate(q.Year, q.Month, q.Day) {
		return fmt.Errorf("day %d out of range 1..%d for %04d-%02d", q.Day, ganji.DaysInMonth(q.Year, q.Month), q.Year, q.Month)
	}
	return nil
}

// Options override profile-derived inputs.
type Options struct {
	// Favorable and Unfavorable replace the profile's element lists when
	// non-nil.
	Favorable   []ganji.Element
	Unfavorable []ganji.Element
	// NoDecade drops the decade layer even when the profile carries one.
	NoDecade bool
}

// LayerInput is one resolved layer pillar.
type LayerInput struct {
	Layer  Layer        `json:"layer"`
	Pillar ganji.Pillar `json:"pillar"`
}

// LayerAnalysis is the per-layer breakdown.
type LayerAnalysis struct {
	Layer          Layer                    `json:"layer"`
	Pillar         ganji.Pillar             `json:"pillar"`
	Weight         int                      `json:"weight"`
	StemRole       sibsin.Role              `json:"stem_role"`
	BranchRole     sibsin.Role              `json:"branch_role"`
	Stage          stage.Stage              `json:"stage"`
	Energy         stage.Energy             `json:"energy"`
	StageScore     int                      `json:"stage_score"`
	ElementAdjust  int                      `json:"element_adjust"`
	Relation       ganji.BranchRelationKind `json:"relation"`
	RelationAdjust int                      `json:"relation_adjust"`
}

// LayeredScore is the combined score of one period.
type LayeredScore struct {
	Year           int                `json:"year"`
	Month          int                `json:"month,omitempty"`
	Day            int                `json:"day,omitempty"`
	Age            int                `json:"age"`
	Layers         []LayerAnalysis    `json:"layers"`
	RawScore       int                `json:"raw_score"`
	ElementAdjust  int                `json:"element_adjust"`
	RelationAdjust int                `json:"relation_adjust"`
	WeightedScore  int                `json:"weighted_score"`
	Confidence     int                `json:"confidence"`
	Grade          Grade              `json:"grade"`
	Balance        chart.ElementTally `json:"balance"`
	Themes         []string           `json:"themes"`
	Opportunities  []string           `json:"opportunities"`
	Cautions       []string           `json:"cautions"`
	BestActions    []string           `json:"best_actions"`
	AvoidActions   []string           `json:"avoid_actions"`
}

// Layer returns the analysis of layer l if present.
func (s LayeredScore) Layer(l Layer) (LayerAnalysis, bool) {
	for _, la := range s.Layers {
		if la.Layer == l {
			return la, true
		}
	}
	return LayerAnalysis{}, false
}

// Inputs returns the layer pillars the score was computed from.
func (s LayeredScore) Inputs() []LayerInput {
	out := make([]LayerInput, len(s.Layers))
	for i, la := range s.Layers {
		out[i] = LayerInput{Layer: la.Layer, Pillar: la.Pillar}
	}
	return out
}

// Query returns the period the score covers.
func (s LayeredScore) Query() Query {
	return Query{Year: s.Year, Month: s.Month, Day: s.Day}
}

// Resolve returns the layer pillars applicable to q.
func Resolve(p chart.BirthProfile, q Query, opts Options) []LayerInput {
	var out []LayerInput
	if !opts.NoDecade {
		if d, ok := p.DaeunAt(p.Age(q.Year)); ok {
			out = append(out, LayerInput{Layer: Decade, Pillar: d.Pillar})
		}
	}
	out = append(out, LayerInput{Layer: Year, Pillar: ganji.YearlyGanji(q.Year)})
	if q.Month >= 1 && q.Month <= 12 {
		out = append(out, LayerInput{Layer: Month, Pillar: ganji.MonthlyGanji(q.Year, q.Month)})
		if ganji.ValidDate(q.Year, q.Month, q.Day) {
			out = append(out, LayerInput{Layer: Day, Pillar: ganji.DailyGanji(q.Year, q.Month, q.Day)})
		}
	}
	return out
}

// Score resolves the layers for q and scores them.
func Score(p chart.BirthProfile, q Query, opts Options) LayeredScore {
	return ScoreLayers(p, q, Resolve(p, q, opts), opts)
}

// ScoreLayers scores explicitly supplied layers. Unknown layers and layers
// with an invalid pillar are ignored; a repeated layer keeps its first
// occurrence.
func ScoreLayers(p chart.BirthProfile, q Query, layers []LayerInput, opts Options) LayeredScore {
	favorable, unfavorable := p.Favorable, p.Unfavorable
	if opts.Favorable != nil {
		favorable = opts.Favorable
	}
	if opts.Unfavorable != nil {
		unfavorable = opts.Unfavorable
	}

	dm := p.DayMaster()
	s := LayeredScore{
		Year:    q.Year,
		Month:   q.Month,
		Day:     q.Day,
		Age:     p.Age(q.Year),
		Balance: p.Tally(),
	}

	seen := map[Layer]bool{}
	totalWeight := 0
	for _, in := range layers {
		w, ok := Weights[in.Layer]
		if !ok || seen[in.Layer] || !in.Pillar.Valid() {
			continue
		}
		seen[in.Layer] = true
		totalWeight += w

		st := stage.StageOf(dm, in.Pillar.Branch)
		rel := ganji.BranchRelationOf(in.Pillar.Branch, p.Day.Branch)
		la := LayerAnalysis{
			Layer:          in.Layer,
			Pillar:         in.Pillar,
			Weight:         w,
			StemRole:       sibsin.RoleOf(dm, in.Pillar.Stem),
			BranchRole:     sibsin.RoleOfBranch(dm, in.Pillar.Branch),
			Stage:          st,
			Energy:         st.Energy(),
			StageScore:     st.Score(),
			Relation:       rel.Kind,
			RelationAdjust: relationAdjust[rel.Kind],
		}
		bonus := elementBonus(in.Pillar.Stem.Element(), StemElementBonus, favorable, unfavorable) +
			elementBonus(in.Pillar.Branch.Element(), BranchElementBonus, favorable, unfavorable)
		la.ElementAdjust = bonus * w / FullWeight
		s.Layers = append(s.Layers, la)

		s.Balance[in.Pillar.Stem.Element()]++
		s.Balance[in.Pillar.Branch.Element()]++
	}

	if totalWeight == 0 {
		s.RawScore = 50
	} else {
		sum := 0
		for _, la := range s.Layers {
			sum += la.StageScore * la.Weight
		}
		s.RawScore = (sum + totalWeight/2) / totalWeight
	}
	for _, la := range s.Layers {
		s.ElementAdjust += la.ElementAdjust
		s.RelationAdjust += la.RelationAdjust
	}
	s.ElementAdjust = clamp(s.ElementAdjust, -MaxElementAdjust, MaxElementAdjust)
	s.RelationAdjust = clamp(s.RelationAdjust, -MaxRelationAdjust, MaxRelationAdjust)
	s.WeightedScore = clamp(s.RawScore+s.ElementAdjust+s.RelationAdjust, 0, 100)
	s.Grade = GradeOf(s.WeightedScore)

	s.Confidence = baseConfidence
	if seen[Decade] {
		s.Confidence += decadeConfidence
	}
	if len(favorable) > 0 {
		s.Confidence += favorableConfidence
	}
	if seen[Month] {
		s.Confidence += monthConfidence
	}
	if seen[Day] {
		s.Confidence += dayConfidence
	} else {
		s.Day = 0
	}
	s.Confidence = clamp(s.Confidence, 0, 100)

	tag(&s, favorable, unfavorable)
	return s
}

func elementBonus(e ganji.Element, bonus int, favorable, unfavorable []ganji.Element) int {
	n := 0
	for _, f := range favorable {
		if f == e {
			n += bonus
			break
		}
	}
	for _, u := range unfavorable {
		if u == e {
			n -= bonus
			break
		}
	}
	return n
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

// Grade is the letter band of a weighted score.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeBands lists each grade with its inclusive lower bound, best first.
var GradeBands = []struct {
	Grade Grade
	Min   int
}{
	{GradeS, 85},
	{GradeA, 75},
	{GradeB, 60},
	{GradeC, 45},
	{GradeD, 30},
	{GradeF, 0},
}

// GradeOf maps a score to its band.
func GradeOf(score int) Grade {
	for _, b := range GradeBands {
		if score >= b.Min {
			return b.Grade
		}
	}
	return GradeF
}
