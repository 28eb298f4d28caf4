// Package yongsin selects the favorable element (용신) of a birth profile.
//
// Selection is an ordered cascade of independent strategies. Each strategy
// is a predicate over the same Input; the first one that triggers decides
// the result. The order itself is the exported CascadeOrder and is tested
// as a single constant.
package yongsin

import (
	"fmt"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
)

// Type names the strategy that produced a Result.
type Type string

const (
	SeasonalCorrection  Type = "seasonal-correction"  // 조후용신
	ConflictResolution  Type = "conflict-resolution"  // 통관용신
	PathologyCorrection Type = "pathology-correction" // 병약용신
	StrengthBalance     Type = "strength-balance"     // 억부용신
)

// CascadeOrder is the evaluation order of the strategies. StrengthBalance
// always triggers, so the cascade always terminates.
var CascadeOrder = []Type{
	SeasonalCorrection,
	ConflictResolution,
	PathologyCorrection,
	StrengthBalance,
}

// Strength is the five-level classification of the day master.
type Strength string

const (
	VeryStrong Strength = "very-strong"
	Strong     Strength = "strong"
	Balanced   Strength = "balanced"
	Weak       Strength = "weak"
	VeryWeak   Strength = "very-weak"
)

// Strengths lists the levels from strongest to weakest.
var Strengths = []Strength{VeryStrong, Strong, Balanced, Weak, VeryWeak}

// Thresholds. Percentages are of the total natal tally.
const (
	ConflictThreshold  = 3  // both sides of a control pair at least this count
	PathologyThreshold = 4  // a single element at least this count
	VeryStrongPercent  = 75 // supportive share for very-strong
	StrongPercent      = 56
	BalancedPercent    = 44
	WeakPercent        = 25
)

// Extreme months for seasonal correction.
var (
	ColdMonths = []ganji.Branch{ganji.Ja, ganji.Chuk}
	HeatMonths = []ganji.Branch{ganji.O, ganji.Mi}
)

// Result is the favorable-element decision for one profile.
type Result struct {
	Primary     ganji.Element  `json:"primary"`
	Secondary   *ganji.Element `json:"secondary,omitempty"`
	Unfavorable *ganji.Element `json:"unfavorable,omitempty"`
	Type        Type           `json:"type"`
	Strength    Strength       `json:"strength"`
	// SupportPercent is the day master's supportive share of the tally.
	SupportPercent int    `json:"support_percent"`
	Reasoning      string `json:"reasoning"`
}

// Favorable returns the favorable elements, primary first.
func (r Result) Favorable() []ganji.Element {
	out := []ganji.Element{r.Primary}
	if r.Secondary != nil && *r.Secondary != r.Primary {
		out = append(out, *r.Secondary)
	}
	return out
}

// UnfavorableElements returns the unfavorable element as a list.
func (r Result) UnfavorableElements() []ganji.Element {
	if r.Unfavorable == nil {
		return nil
	}
	return []ganji.Element{*r.Unfavorable}
}

// Apply returns a copy of p carrying this result's elements.
func (r Result) Apply(p chart.BirthProfile) chart.BirthProfile {
	return p.WithElements(r.Favorable(), r.UnfavorableElements())
}

// Input is the shared view every strategy evaluates.
type Input struct {
	DayMaster   ganji.Stem
	Tally       chart.ElementTally
	MonthBranch ganji.Branch
}

// NewInput derives the strategy input from a profile.
func NewInput(p chart.BirthProfile) Input {
	return Input{
		DayMaster:   p.DayMaster(),
		Tally:       p.Tally(),
		MonthBranch: p.Month.Branch,
	}
}

// Strategy is one step of the cascade.
type Strategy func(Input) (Result, bool)

var strategies = map[Type]Strategy{
	SeasonalCorrection:  Seasonal,
	ConflictResolution:  Conflict,
	PathologyCorrection: Pathology,
	StrengthBalance:     Balance,
}

// StrategyFor returns the strategy registered for t.
func StrategyFor(t Type) (Strategy, bool) {
	s, ok := strategies[t]
	return s, ok
}

// Determine runs the cascade for a profile.
func Determine(p chart.BirthProfile) Result {
	return DetermineInput(NewInput(p))
}

// DetermineInput runs the cascade for a prepared input.
func DetermineInput(in Input) Result {
	strength, percent := ClassifyStrength(in)
	for _, t := range CascadeOrder {
		if r, ok := strategies[t](in); ok {
			r.Type = t
			r.Strength = strength
			r.SupportPercent = percent
			return r
		}
	}
	// Unreachable: Balance always triggers.
	r, _ := Balance(in)
	r.Type = StrengthBalance
	r.Strength = strength
	r.SupportPercent = percent
	return r
}

// ClassifyStrength grades the day master by the share of the tally that
// supports it (its own element plus the element feeding it).
func ClassifyStrength(in Input) (Strength, int) {
	own := in.DayMaster.Element()
	supportive := in.Tally.Count(own) + in.Tally.Count(own.GeneratedBy())
	total := in.Tally.Total()
	if total == 0 {
		return Balanced, 50
	}
	percent := supportive * 100 / total
	switch {
	case percent >= VeryStrongPercent:
		return VeryStrong, percent
	case percent >= StrongPercent:
		return Strong, percent
	case percent >= BalancedPercent:
		return Balanced, percent
	case percent >= WeakPercent:
		return Weak, percent
	default:
		return VeryWeak, percent
	}
}

// Seasonal triggers for a month branch in the extreme cold or heat sets.
func Seasonal(in Input) (Result, bool) {
	for _, b := range ColdMonths {
		if in.MonthBranch == b {
			return Result{
				Primary:     ganji.Fire,
				Secondary:   ptr(ganji.Wood),
				Unfavorable: ptr(ganji.Water),
				Reasoning:   fmt.Sprintf("born in the %s month of deep winter; fire warms the chart", b),
			}, true
		}
	}
	for _, b := range HeatMonths {
		if in.MonthBranch == b {
			return Result{
				Primary:     ganji.Water,
				Secondary:   ptr(ganji.Metal),
				Unfavorable: ptr(ganji.Fire),
				Reasoning:   fmt.Sprintf("born in the %s month of deep summer; water cools the chart", b),
			}, true
		}
	}
	return Result{}, false
}

// Conflict triggers when an element and the element it controls are both
// heavily present. The element between them on the generation cycle
// mediates: it is fed by the controller and feeds the controlled.
func Conflict(in Input) (Result, bool) {
	for _, a := range ganji.Elements {
		b := a.Controls()
		if in.Tally.Count(a) >= ConflictThreshold && in.Tally.Count(b) >= ConflictThreshold {
			mediator := a.Generates()
			return Result{
				Primary:     mediator,
				Unfavorable: ptr(a),
				Reasoning: fmt.Sprintf("%s (%d) and %s (%d) are locked in conflict; %s mediates %s→%s→%s",
					a, in.Tally.Count(a), b, in.Tally.Count(b), mediator, a, mediator, b),
			}, true
		}
	}
	return Result{}, false
}

// Pathology triggers when one element dominates the chart. The element
// controlling it is favorable and the dominant element is unfavorable.
func Pathology(in Input) (Result, bool) {
	d := in.Tally.Dominant()
	if in.Tally.Count(d) < PathologyThreshold {
		return Result{}, false
	}
	return Result{
		Primary:     d.ControlledBy(),
		Secondary:   ptr(d.Generates()),
		Unfavorable: ptr(d),
		Reasoning: fmt.Sprintf("%s dominates with %d of %d symbols; %s restrains it",
			d, in.Tally.Count(d), in.Tally.Total(), d.ControlledBy()),
	}, true
}

// Balance always triggers. A strong day master is drained through its
// output element; a weak one is fed by its resource element; a balanced
// one is steered toward the scarcest element.
func Balance(in Input) (Result, bool) {
	strength, percent := ClassifyStrength(in)
	own := in.DayMaster.Element()
	switch strength {
	case VeryStrong, Strong:
		return Result{
			Primary:     own.Generates(),
			Secondary:   ptr(own.Controls()),
			Unfavorable: ptr(own.GeneratedBy()),
			Reasoning: fmt.Sprintf("day master %s is %s (%d%% support); %s drains it",
				in.DayMaster, strength, percent, own.Generates()),
		}, true
	case Weak, VeryWeak:
		return Result{
			Primary:     own.GeneratedBy(),
			Secondary:   ptr(own),
			Unfavorable: ptr(own.ControlledBy()),
			Reasoning: fmt.Sprintf("day master %s is %s (%d%% support); %s feeds it",
				in.DayMaster, strength, percent, own.GeneratedBy()),
		}, true
	default:
		weakest := in.Tally.Weakest()
		return Result{
			Primary: weakest,
			Reasoning: fmt.Sprintf("day master %s is balanced (%d%% support); %s is the scarcest element",
				in.DayMaster, percent, weakest),
		}, true
	}
}

func ptr(e ganji.Element) *ganji.Element {
	return &e
}
