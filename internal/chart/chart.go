// Package chart defines the birth profile contract the engine consumes.
//
// A BirthProfile is produced outside the engine by a calendar/ephemeris
// converter (or authored by hand in CUE, see internal/compiler) and is
// validated once at the boundary. Engine packages assume a validated
// profile and never re-check symbols mid-computation.
package chart

import (
	"encoding/json"
	"slices"

	"github.com/roach88/saju/internal/ganji"
)

// Gender drives the direction of the decade cycle.
type Gender string

const (
	Male    Gender = "male"
	Female  Gender = "female"
	Unknown Gender = ""
)

// Position names one of the four natal pillars.
type Position string

const (
	YearPillar  Position = "year"
	MonthPillar Position = "month"
	DayPillar   Position = "day"
	HourPillar  Position = "hour"
)

// Positions lists the natal pillars in chart order.
var Positions = []Position{YearPillar, MonthPillar, DayPillar, HourPillar}

// Daeun is one decade-cycle pillar with its inclusive age range.
type Daeun struct {
	Pillar   ganji.Pillar `json:"pillar"`
	StartAge int          `json:"start_age"`
	EndAge   int          `json:"end_age"`
}

// Contains reports whether age falls inside the decade.
func (d Daeun) Contains(age int) bool {
	return age >= d.StartAge && age <= d.EndAge
}

// BirthProfile is the natal chart plus the optional layers a host may
// attach: a decade-cycle list and favorable/unfavorable elements.
type BirthProfile struct {
	Name      string       `json:"name,omitempty"`
	BirthYear int          `json:"birth_year"`
	Gender    Gender       `json:"gender,omitempty"`
	Year      ganji.Pillar `json:"year"`
	Month     ganji.Pillar `json:"month"`
	Day       ganji.Pillar `json:"day"`
	Hour      ganji.Pillar `json:"hour"`

	Daeun       []Daeun         `json:"daeun,omitempty"`
	Favorable   []ganji.Element `json:"favorable,omitempty"`
	Unfavorable []ganji.Element `json:"unfavorable,omitempty"`
}

// DayMaster returns the stem of the day pillar, the reference point for
// every relational classification.
func (p BirthProfile) DayMaster() ganji.Stem {
	return p.Day.Stem
}

// Pillars returns the four natal pillars in chart order.
func (p BirthProfile) Pillars() [4]ganji.Pillar {
	return [4]ganji.Pillar{p.Year, p.Month, p.Day, p.Hour}
}

// PillarAt returns the natal pillar at a position.
func (p BirthProfile) PillarAt(pos Position) ganji.Pillar {
	switch pos {
	case YearPillar:
		return p.Year
	case MonthPillar:
		return p.Month
	case HourPillar:
		return p.Hour
	default:
		return p.Day
	}
}

// Stems returns the four natal stems in chart order.
func (p BirthProfile) Stems() []ganji.Stem {
	return []ganji.Stem{p.Year.Stem, p.Month.Stem, p.Day.Stem, p.Hour.Stem}
}

// Branches returns the four natal branches in chart order.
func (p BirthProfile) Branches() []ganji.Branch {
	return []ganji.Branch{p.Year.Branch, p.Month.Branch, p.Day.Branch, p.Hour.Branch}
}

// Age returns year - BirthYear exactly; it may be negative.
func (p BirthProfile) Age(year int) int {
	return year - p.BirthYear
}

// DaeunAt returns the decade cycle covering age, if the profile has one.
func (p BirthProfile) DaeunAt(age int) (Daeun, bool) {
	for _, d := range p.Daeun {
		if d.Contains(age) {
			return d, true
		}
	}
	return Daeun{}, false
}

// PrimaryFavorable returns the first favorable element, if any.
func (p BirthProfile) PrimaryFavorable() (ganji.Element, bool) {
	if len(p.Favorable) == 0 {
		return 0, false
	}
	return p.Favorable[0], true
}

// IsFavorable reports whether e is one of the favorable elements.
func (p BirthProfile) IsFavorable(e ganji.Element) bool {
	return slices.Contains(p.Favorable, e)
}

// IsUnfavorable reports whether e is one of the unfavorable elements.
func (p BirthProfile) IsUnfavorable(e ganji.Element) bool {
	return slices.Contains(p.Unfavorable, e)
}

// WithElements returns a copy of p with favorable and unfavorable elements
// replaced. The receiver is not modified.
func (p BirthProfile) WithElements(favorable, unfavorable []ganji.Element) BirthProfile {
	out := p.Clone()
	out.Favorable = slices.Clone(favorable)
	out.Unfavorable = slices.Clone(unfavorable)
	return out
}

// WithDaeun returns a copy of p with the decade-cycle list replaced.
func (p BirthProfile) WithDaeun(daeun []Daeun) BirthProfile {
	out := p.Clone()
	out.Daeun = slices.Clone(daeun)
	return out
}

// Clone returns a deep copy so callers can never alias slices.
func (p BirthProfile) Clone() BirthProfile {
	out := p
	out.Daeun = slices.Clone(p.Daeun)
	out.Favorable = slices.Clone(p.Favorable)
	out.Unfavorable = slices.Clone(p.Unfavorable)
	return out
}

// ElementTally counts the elements of the eight natal symbols.
type ElementTally [5]int

// Tally counts each element across the four stems and four branches.
func (p BirthProfile) Tally() ElementTally {
	var t ElementTally
	for _, pl := range p.Pillars() {
		t[pl.Stem.Element()]++
		t[pl.Branch.Element()]++
	}
	return t
}

// Count returns the tally for one element.
func (t ElementTally) Count(e ganji.Element) int {
	if !e.Valid() {
		return 0
	}
	return t[e]
}

// Total returns the number of counted symbols.
func (t ElementTally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Dominant returns the element with the highest count. Ties resolve to the
// earlier element in generation order.
func (t ElementTally) Dominant() ganji.Element {
	best := ganji.Wood
	for _, e := range ganji.Elements {
		if t[e] > t[best] {
			best = e
		}
	}
	return best
}

// Weakest returns the element with the lowest count. Ties resolve to the
// earlier element in generation order.
func (t ElementTally) Weakest() ganji.Element {
	best := ganji.Wood
	for _, e := range ganji.Elements {
		if t[e] < t[best] {
			best = e
		}
	}
	return best
}

// Missing lists elements with a zero count, in generation order.
func (t ElementTally) Missing() []ganji.Element {
	var out []ganji.Element
	for _, e := range ganji.Elements {
		if t[e] == 0 {
			out = append(out, e)
		}
	}
	return out
}

// Add returns the element-wise sum of two tallies.
func (t ElementTally) Add(o ElementTally) ElementTally {
	var out ElementTally
	for i := range t {
		out[i] = t[i] + o[i]
	}
	return out
}

// MarshalJSON encodes the tally as an object keyed by element name.
func (t ElementTally) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(t))
	for _, e := range ganji.Elements {
		m[e.String()] = t[e]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by element name.
func (t *ElementTally) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out ElementTally
	for k, v := range m {
		e, err := ganji.ParseElement(k)
		if err != nil {
			return err
		}
		out[e] = v
	}
	*t = out
	return nil
}
