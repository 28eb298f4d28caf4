package timing

import (
	"slices"

	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/sibsin"
	"github.com/roach88/saju/internal/stage"
)

var groupThemes = map[sibsin.Group]string{
	sibsin.Companion: "independence",
	sibsin.Output:    "expression",
	sibsin.Wealth:    "wealth",
	sibsin.Officer:   "career",
	sibsin.Resource:  "learning",
}

var groupActions = map[sibsin.Group]struct {
	best  []string
	avoid []string
}{
	sibsin.Companion: {[]string{"collaborate-with-peers", "build-network"}, []string{"solo-financial-risk"}},
	sibsin.Output:    {[]string{"create", "launch-projects"}, []string{"overcommit"}},
	sibsin.Wealth:    {[]string{"grow-income", "invest-carefully"}, []string{"speculation"}},
	sibsin.Officer:   {[]string{"seek-promotion", "formalize-commitments"}, []string{"confront-authority"}},
	sibsin.Resource:  {[]string{"study", "certify"}, []string{"passivity"}},
}

// tag fills the theme, opportunity, caution and action lists. Every list is
// non-nil so serialised output is stable.
func tag(s *LayeredScore, favorable, unfavorable []ganji.Element) {
	s.Themes = []string{}
	s.Opportunities = []string{}
	s.Cautions = []string{}
	s.BestActions = []string{}
	s.AvoidActions = []string{}

	for _, la := range s.Layers {
		s.Themes = appendUnique(s.Themes, groupThemes[la.StemRole.Group()])

		switch la.Energy {
		case stage.Peak:
			s.Opportunities = appendUnique(s.Opportunities, "momentum")
		case stage.Rising:
			s.Opportunities = appendUnique(s.Opportunities, "growth")
		case stage.Dormant:
			s.Cautions = appendUnique(s.Cautions, "low-energy")
		}
		switch la.Relation {
		case ganji.BranchSixHarmony:
			s.Opportunities = appendUnique(s.Opportunities, "partnership")
		case ganji.BranchThreeHarmony:
			s.Opportunities = appendUnique(s.Opportunities, "alliance")
		case ganji.BranchClash:
			s.Cautions = appendUnique(s.Cautions, "disruption")
		case ganji.BranchPunishment:
			s.Cautions = appendUnique(s.Cautions, "friction")
		}
		if la.ElementAdjust > 0 {
			s.Opportunities = appendUnique(s.Opportunities, "element-support")
		} else if la.ElementAdjust < 0 {
			s.Cautions = appendUnique(s.Cautions, "element-strain")
		}
	}

	// The heaviest present layer drives the action advice.
	if lead, ok := leadLayer(s.Layers); ok {
		acts := groupActions[lead.StemRole.Group()]
		s.BestActions = append(s.BestActions, acts.best...)
		s.AvoidActions = append(s.AvoidActions, acts.avoid...)
	}
	switch s.Grade {
	case GradeS, GradeA:
		s.BestActions = appendUnique(s.BestActions, "expand")
	case GradeD, GradeF:
		s.AvoidActions = appendUnique(s.AvoidActions, "major-decisions")
	}
	if len(favorable) == 0 && len(unfavorable) == 0 {
		s.Cautions = appendUnique(s.Cautions, "elements-unknown")
	}
}

func leadLayer(layers []LayerAnalysis) (LayerAnalysis, bool) {
	if len(layers) == 0 {
		return LayerAnalysis{}, false
	}
	lead := layers[0]
	for _, la := range layers[1:] {
		if la.Weight > lead.Weight {
			lead = la
		}
	}
	return lead, true
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
