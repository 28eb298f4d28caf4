package compat

import (
	"sort"

	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/sibsin"
)

// Path is one strong edge chain reported by a relationship-graph analysis.
type Path struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Strength int    `json:"strength"`
}

// GraphAnalysis is the optional relationship-graph input. Scores are 0..100.
type GraphAnalysis struct {
	HarmonyIndex   int      `json:"harmony_index"`
	ClusterScore   int      `json:"cluster_score"`
	StrongestPaths []Path   `json:"strongest_paths,omitempty"`
	CriticalNodes  []string `json:"critical_nodes,omitempty"`
}

// Aspect is one astrological aspect between the two charts.
type Aspect struct {
	Name       string `json:"name"`
	Harmonious bool   `json:"harmonious"`
	Strength   int    `json:"strength"`
}

// AstroData is the optional astrological input. Synastry is 0..100.
type AstroData struct {
	Synastry int      `json:"synastry"`
	Aspects  []Aspect `json:"aspects,omitempty"`
}

// FusionInput is everything Fuse combines. Only Saju is required.
type FusionInput struct {
	Saju  SajuScore      `json:"saju"`
	Graph *GraphAnalysis `json:"graph,omitempty"`
	Astro *AstroData     `json:"astro,omitempty"`
}

// Priority orders recommended actions.
type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

var priorityRank = map[Priority]int{High: 0, Medium: 1, Low: 2}

// Action is one recommended action.
type Action struct {
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
	Tag      string   `json:"tag"`
}

// Timeframe tags an insight.
type Timeframe string

const (
	ShortTerm  Timeframe = "short"
	MediumTerm Timeframe = "medium"
	LongTerm   Timeframe = "long"
)

// Insight is a timeframe-tagged challenge or opportunity.
type Insight struct {
	Timeframe   Timeframe `json:"timeframe"`
	Opportunity bool      `json:"opportunity"`
	Tag         string    `json:"tag"`
}

// Dynamics describes how the relationship behaves. PowerBalance is in
// [-100, 100]; the rest are in [0, 100].
type Dynamics struct {
	PowerBalance int `json:"power_balance"`
	Intensity    int `json:"intensity"`
	Alignment    int `json:"alignment"`
	Connection   int `json:"connection"`
}

// FusionResult is the fused relationship guidance.
type FusionResult struct {
	Overall  int       `json:"overall"`
	Grade    Grade     `json:"grade"`
	Actions  []Action  `json:"actions"`
	Dynamics Dynamics  `json:"dynamics"`
	Insights []Insight `json:"insights"`
}

// Source weights for the overall score, renormalised over present inputs.
const (
	sajuWeight  = 60
	graphWeight = 25
	astroWeight = 15
)

// Fuse combines the chart score with the optional inputs.
func Fuse(in FusionInput) FusionResult {
	total := sajuWeight
	sum := in.Saju.Overall * sajuWeight
	if in.Graph != nil {
		total += graphWeight
		sum += graphScore(in.Graph) * graphWeight
	}
	if in.Astro != nil {
		total += astroWeight
		sum += clamp(in.Astro.Synastry, 0, 100) * astroWeight
	}
	overall := clamp((sum+total/2)/total, 0, 100)

	r := FusionResult{
		Overall:  overall,
		Grade:    GradeOf(overall),
		Dynamics: dynamics(in),
	}
	r.Actions = actions(in, r.Dynamics)
	r.Insights = insights(in)
	return r
}

func graphScore(g *GraphAnalysis) int {
	return clamp((g.HarmonyIndex+g.ClusterScore)/2, 0, 100)
}

func dynamics(in FusionInput) Dynamics {
	s := in.Saju
	d := Dynamics{PowerBalance: clamp(s.Influence, -100, 100)}

	intensity := abs(d.PowerBalance) / 2
	if s.StemRelation != ganji.StemNone {
		intensity += 30
	}
	if s.DayRelation != ganji.BranchNone {
		intensity += 20
	}
	if in.Graph != nil {
		intensity += clamp(in.Graph.ClusterScore, 0, 100) / 4
	}
	d.Intensity = clamp(intensity, 0, 100)

	alignment := (s.ElementHarmony + s.RoleHarmony) / 2
	if in.Astro != nil {
		alignment = (alignment*2 + clamp(in.Astro.Synastry, 0, 100)) / 3
	}
	d.Alignment = clamp(alignment, 0, 100)

	connection := (s.StemHarmony + s.BranchHarmony) / 2
	if in.Graph != nil {
		connection = (connection + clamp(in.Graph.HarmonyIndex, 0, 100)) / 2
	}
	d.Connection = clamp(connection, 0, 100)
	return d
}

func actions(in FusionInput, d Dynamics) []Action {
	s := in.Saju
	var out []Action
	add := func(category string, p Priority, tag string) {
		out = append(out, Action{Category: category, Priority: p, Tag: tag})
	}

	switch {
	case s.ElementHarmony < 50:
		add("balance", High, "supplement-missing-elements")
	case s.ElementHarmony >= 75:
		add("balance", Low, "leverage-shared-elements")
	}
	switch s.StemRelation {
	case ganji.StemClash:
		add("communication", High, "slow-down-decisions")
	case ganji.StemCombination:
		add("partnership", Medium, "build-joint-projects")
	}
	switch s.DayRelation {
	case ganji.BranchClash, ganji.BranchPunishment:
		add("space", High, "schedule-personal-space")
	case ganji.BranchSixHarmony, ganji.BranchThreeHarmony:
		add("rituals", Low, "keep-shared-routines")
	}
	if abs(d.PowerBalance) > 40 {
		add("balance", High, "rotate-decision-making")
	}
	if in.Graph != nil && len(in.Graph.CriticalNodes) > 0 {
		add("network", Medium, "nurture-critical-connections")
	}
	if in.Astro != nil {
		if in.Astro.Synastry >= 60 {
			add("timing", Medium, "plan-around-harmonious-transits")
		} else {
			add("timing", Low, "review-tense-aspects")
		}
	}
	if len(out) == 0 {
		add("general", Low, "maintain-current-course")
	}

	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})
	return out
}

var longTermRoles = map[sibsin.Role]Insight{
	sibsin.Jeongjae:  {LongTerm, true, "steady-commitment"},
	sibsin.Jeonggwan: {LongTerm, true, "mutual-structure"},
	sibsin.Jeongin:   {LongTerm, true, "nurturing-bond"},
	sibsin.Siksin:    {LongTerm, true, "shared-growth"},
	sibsin.Pyeongwan: {LongTerm, false, "power-struggle"},
	sibsin.Geopjae:   {LongTerm, false, "rivalry"},
	sibsin.Sanggwan:  {LongTerm, false, "criticism"},
}

func insights(in FusionInput) []Insight {
	s := in.Saju
	out := []Insight{}

	switch s.StemRelation {
	case ganji.StemCombination:
		out = append(out, Insight{ShortTerm, true, "instant-attraction"})
	case ganji.StemClash:
		out = append(out, Insight{ShortTerm, false, "early-friction"})
	}
	switch s.DayRelation {
	case ganji.BranchSixHarmony, ganji.BranchThreeHarmony:
		out = append(out, Insight{ShortTerm, true, "easy-daily-rhythm"})
	case ganji.BranchClash:
		out = append(out, Insight{ShortTerm, false, "daily-rhythm-clash"})
	case ganji.BranchPunishment:
		out = append(out, Insight{ShortTerm, false, "recurring-irritation"})
	}

	if s.ElementHarmony >= 70 {
		out = append(out, Insight{MediumTerm, true, "complementary-elements"})
	} else if s.ElementHarmony < 45 {
		out = append(out, Insight{MediumTerm, false, "element-imbalance"})
	}
	if in.Astro != nil {
		for _, a := range in.Astro.Aspects {
			if a.Strength >= 70 {
				out = append(out, Insight{MediumTerm, a.Harmonious, "aspect-" + a.Name})
			}
		}
	}

	for _, r := range []sibsin.Role{s.RoleAToB, s.RoleBToA} {
		if ins, ok := longTermRoles[r]; ok && !containsInsight(out, ins) {
			out = append(out, ins)
		}
	}
	if s.YearRelation == ganji.BranchClash {
		out = append(out, Insight{LongTerm, false, "family-background-gap"})
	}
	return out
}

func containsInsight(list []Insight, ins Insight) bool {
	for _, x := range list {
		if x == ins {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grade is one band of the compatibility table.
type Grade struct {
	Grade string `json:"grade"`
	Min   int    `json:"min"`
	Title string `json:"title"`
	Emoji string `json:"emoji"`
}

// Grades is the fixed table, best band first.
var Grades = []Grade{
	{"S+", 95, "Destined Match", "💫"},
	{"S", 85, "Soulmates", "💖"},
	{"A", 75, "Great Match", "💕"},
	{"B", 65, "Good Match", "💗"},
	{"C", 50, "Workable Match", "💛"},
	{"D", 35, "Challenging Match", "💔"},
	{"F", 0, "Difficult Match", "⚡"},
}

// GradeOf maps a score to its band. Scores below zero fall in F.
func GradeOf(score int) Grade {
	for _, g := range Grades {
		if score >= g.Min {
			return g
		}
	}
	return Grades[len(Grades)-1]
}
