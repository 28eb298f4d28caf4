// Package pattern detects rare structural formations in a natal chart.
//
// Every detector is a pure function of the four pillars. Detectors share no
// state and may run in any order or concurrently.
package pattern

import (
	"fmt"
	"strings"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/sibsin"
)

// Kind names a detector.
type Kind string

const (
	Jonggeok Kind = "jonggeok" // 종격, submission
	Hwagyeok Kind = "hwagyeok" // 화격, transformation
	Samgi    Kind = "samgi"    // 삼기, triple treasure
	Gongmang Kind = "gongmang" // 공망, void branches
)

// Kinds lists the detectors in DetectAll order.
var Kinds = []Kind{Jonggeok, Hwagyeok, Samgi, Gongmang}

// Result is the outcome of one detector.
type Result struct {
	Kind        Kind             `json:"kind"`
	Detected    bool             `json:"detected"`
	Type        string           `json:"type,omitempty"`
	Description string           `json:"description"`
	Element     *ganji.Element   `json:"element,omitempty"`
	Positions   []chart.Position `json:"positions,omitempty"`
	Branches    []ganji.Branch   `json:"branches,omitempty"`
}

// Detector is one pattern check.
type Detector func(chart.BirthProfile) Result

var detectors = map[Kind]Detector{
	Jonggeok: DetectJonggeok,
	Hwagyeok: DetectHwagyeok,
	Samgi:    DetectSamgi,
	Gongmang: DetectGongmang,
}

// DetectorFor returns the detector for k.
func DetectorFor(k Kind) (Detector, bool) {
	d, ok := detectors[k]
	return d, ok
}

// DetectAll runs every detector in Kinds order.
func DetectAll(p chart.BirthProfile) []Result {
	out := make([]Result, len(Kinds))
	for i, k := range Kinds {
		out[i] = detectors[k](p)
	}
	return out
}

// JonggeokThreshold is the element count at which the chart submits.
const JonggeokThreshold = 5

var jonggeokTypes = map[sibsin.Group]string{
	sibsin.Companion: "jongwang", // 종왕격
	sibsin.Output:    "jonga",    // 종아격
	sibsin.Wealth:    "jongjae",  // 종재격
	sibsin.Officer:   "jongsal",  // 종살격
	sibsin.Resource:  "jongin",   // 종인격
}

// DetectJonggeok flags a chart in which one element overwhelms the rest and
// the day master has no branch root to resist it. When the overwhelming
// element already supports the day master the root condition does not
// apply.
func DetectJonggeok(p chart.BirthProfile) Result {
	r := Result{Kind: Jonggeok}
	tally := p.Tally()
	d := tally.Dominant()
	if tally.Count(d) < JonggeokThreshold {
		r.Description = fmt.Sprintf("no element reaches %d symbols (max %s %d)", JonggeokThreshold, d, tally.Count(d))
		return r
	}
	dm := p.DayMaster()
	group := sibsin.GroupOf(dm.Element(), d)
	if group != sibsin.Companion && group != sibsin.Resource {
		if roots := rootPositions(p); len(roots) > 0 {
			r.Description = fmt.Sprintf("%s dominates with %d symbols but the day master is rooted", d, tally.Count(d))
			r.Positions = roots
			return r
		}
	}
	r.Detected = true
	r.Type = jonggeokTypes[group]
	r.Element = &d
	r.Description = fmt.Sprintf("day master %s submits to %s (%d of %d symbols)", dm, d, tally.Count(d), tally.Total())
	return r
}

// rootPositions lists the pillars whose branch shares or feeds the day
// master's element.
func rootPositions(p chart.BirthProfile) []chart.Position {
	own := p.DayMaster().Element()
	var out []chart.Position
	for _, pos := range chart.Positions {
		e := p.PillarAt(pos).Branch.Element()
		if e == own || e == own.GeneratedBy() {
			out = append(out, pos)
		}
	}
	return out
}

// DetectHwagyeok flags a day stem that combines with the adjacent month or
// hour stem when the combination's element is supported by the month
// branch or by at least two branches, and no stem in the chart clashes with
// either partner.
func DetectHwagyeok(p chart.BirthProfile) Result {
	r := Result{Kind: Hwagyeok, Description: "day stem forms no transforming combination"}
	dm := p.DayMaster()
	for _, pos := range []chart.Position{chart.MonthPillar, chart.HourPillar} {
		partner := p.PillarAt(pos).Stem
		rel := ganji.StemRelationOf(dm, partner)
		if rel.Kind != ganji.StemCombination {
			continue
		}
		res := rel.Result
		supporting := 0
		for _, b := range p.Branches() {
			if b.Element() == res {
				supporting++
			}
		}
		if p.Month.Branch.Element() != res && supporting < 2 {
			r.Description = fmt.Sprintf("%s%s combine toward %s without seasonal or branch support", dm, partner, res)
			continue
		}
		if blocker, ok := clashWith(p, dm, partner); ok {
			r.Description = fmt.Sprintf("%s%s combination toward %s is broken by %s", dm, partner, res, blocker)
			continue
		}
		r.Detected = true
		r.Type = "hwa-" + res.String()
		r.Element = &res
		r.Positions = []chart.Position{chart.DayPillar, pos}
		r.Description = fmt.Sprintf("%s%s transform into %s (%d supporting branches)", dm, partner, res, supporting)
		return r
	}
	return r
}

func clashWith(p chart.BirthProfile, a, b ganji.Stem) (ganji.Stem, bool) {
	for _, s := range p.Stems() {
		if ganji.StemRelationOf(s, a).Kind == ganji.StemClash || ganji.StemRelationOf(s, b).Kind == ganji.StemClash {
			return s, true
		}
	}
	return 0, false
}

// Triad is a fixed three-stem treasure.
type Triad struct {
	Type    string
	Members [3]ganji.Stem
}

// Triads are the three triple-treasure sets.
var Triads = []Triad{
	{"cheonsang", [3]ganji.Stem{ganji.Gap, ganji.Mu, ganji.Gyeong}}, // 천상삼기 甲戊庚
	{"jiha", [3]ganji.Stem{ganji.Eul, ganji.Byeong, ganji.Jeong}},   // 지하삼기 乙丙丁
	{"injung", [3]ganji.Stem{ganji.Im, ganji.Gye, ganji.Sin}},       // 인중삼기 壬癸辛
}

// DetectSamgi flags a chart whose four stems contain a full triad, in any
// position and order.
func DetectSamgi(p chart.BirthProfile) Result {
	stems := p.Stems()
	for _, tr := range Triads {
		var positions []chart.Position
		found := 0
		for _, m := range tr.Members {
			for i, s := range stems {
				if s == m {
					positions = append(positions, chart.Positions[i])
					found++
					break
				}
			}
		}
		if found == len(tr.Members) {
			return Result{
				Kind:        Samgi,
				Detected:    true,
				Type:        tr.Type,
				Positions:   positions,
				Description: fmt.Sprintf("stems %s%s%s are all present", tr.Members[0], tr.Members[1], tr.Members[2]),
			}
		}
	}
	return Result{Kind: Samgi, Description: "no triple-treasure triad among the stems"}
}

// VoidBranches returns the two branches left over by the ten-day week
// (旬) of a pillar.
func VoidBranches(day ganji.Pillar) [2]ganji.Branch {
	idx := day.Index()
	start := ganji.PillarAt(idx - idx%ganji.StemCount).Branch
	return [2]ganji.Branch{start.Next(10), start.Next(11)}
}

// DetectGongmang flags natal branches falling in the day pillar's void pair.
func DetectGongmang(p chart.BirthProfile) Result {
	void := VoidBranches(p.Day)
	r := Result{Kind: Gongmang, Branches: []ganji.Branch{void[0], void[1]}}
	var hit []string
	for _, pos := range chart.Positions {
		if pos == chart.DayPillar {
			continue
		}
		b := p.PillarAt(pos).Branch
		if b == void[0] || b == void[1] {
			r.Positions = append(r.Positions, pos)
			hit = append(hit, string(pos))
		}
	}
	if len(hit) == 0 {
		r.Description = fmt.Sprintf("void pair %s%s touches no natal branch", void[0], void[1])
		return r
	}
	r.Detected = true
	r.Type = strings.Join(hit, "+")
	r.Description = fmt.Sprintf("void pair %s%s falls on the %s pillar", void[0], void[1], strings.Join(hit, ", "))
	return r
}
