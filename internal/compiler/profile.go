// Package compiler turns birth profiles authored in CUE into validated
// chart.BirthProfile values, reporting problems with source positions.
//
// A profile file declares one or more profiles under "profile":
//
//	profile: alice: {
//		birth_year: 1990
//		gender:     "male"
//		pillars: {year: "庚午", month: "戊寅", day: "甲子", hour: "丙寅"}
//		daeun: {start_age: 3}
//		favorable: ["wood"]
//	}
//
// Each value is unified with the embedded #Profile schema, so unknown
// fields and out-of-range numbers fail at compile time.
package compiler

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
)

//go:embed schema.cue
var schemaSource string

// Compile error codes (E100-E199). Profile validation codes live in
// internal/chart (E200-E299).
const (
	ErrCodeGeneric       = "E100" // CUE error without a more specific code
	ErrCodeMissingField  = "E101" // required field absent
	ErrCodeInvalidPillar = "E102" // pillar text does not parse
	ErrCodeInvalidElem   = "E103" // element text does not parse
	ErrCodeFloat         = "E104" // float where an integer is required
	ErrCodeInvalidDaeun  = "E105" // malformed decade-cycle entry
	ErrCodeSchema        = "E106" // schema violation (unknown field, range)
)

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Code    string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// profileSource mirrors #Profile for decoding.
type profileSource struct {
	Name        string   `json:"name"`
	BirthYear   int      `json:"birth_year"`
	Gender      string   `json:"gender"`
	Favorable   []string `json:"favorable"`
	Unfavorable []string `json:"unfavorable"`
}

var pillarFields = []chart.Position{chart.YearPillar, chart.MonthPillar, chart.DayPillar, chart.HourPillar}

// CompileProfile parses a CUE value into a validated BirthProfile.
// The profile name defaults to the value's label.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(src)
//	p, err := CompileProfile(v.LookupPath(cue.ParsePath("profile.alice")))
func CompileProfile(v cue.Value) (*chart.BirthProfile, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	for _, field := range []string{"birth_year", "pillars"} {
		if !v.LookupPath(cue.ParsePath(field)).Exists() {
			return nil, &CompileError{Field: field, Code: ErrCodeMissingField, Message: field + " is required", Pos: v.Pos()}
		}
	}
	if by := v.LookupPath(cue.ParsePath("birth_year")); by.IncompleteKind() == cue.FloatKind {
		return nil, &CompileError{
			Field:   "birth_year",
			Code:    ErrCodeFloat,
			Message: "float values are forbidden - use int instead",
			Pos:     by.Pos(),
		}
	}

	def := v.Context().CompileString(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Profile"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("profile schema: %w", err)
	}
	u := def.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		ce := formatCUEError(err)
		if c, ok := ce.(*CompileError); ok {
			c.Code = ErrCodeSchema
		}
		return nil, ce
	}

	var src profileSource
	if err := u.Decode(&src); err != nil {
		return nil, formatCUEError(err)
	}

	p := &chart.BirthProfile{
		Name:      src.Name,
		BirthYear: src.BirthYear,
		Gender:    chart.Gender(src.Gender),
	}
	if p.Name == "" {
		if sels := v.Path().Selectors(); len(sels) > 0 {
			p.Name = sels[len(sels)-1].String()
		}
	}

	for _, pos := range pillarFields {
		pv := u.LookupPath(cue.MakePath(cue.Str("pillars"), cue.Str(string(pos))))
		text, err := pv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		pl, err := ganji.ParsePillar(text)
		if err != nil {
			return nil, &CompileError{Field: "pillars." + string(pos), Code: ErrCodeInvalidPillar, Message: err.Error(), Pos: pv.Pos()}
		}
		switch pos {
		case chart.YearPillar:
			p.Year = pl
		case chart.MonthPillar:
			p.Month = pl
		case chart.DayPillar:
			p.Day = pl
		case chart.HourPillar:
			p.Hour = pl
		}
	}

	var err error
	if p.Favorable, err = parseElements(u, "favorable", src.Favorable); err != nil {
		return nil, err
	}
	if p.Unfavorable, err = parseElements(u, "unfavorable", src.Unfavorable); err != nil {
		return nil, err
	}

	if dv := u.LookupPath(cue.ParsePath("daeun")); dv.Exists() {
		p.Daeun, err = parseDaeun(*p, dv)
		if err != nil {
			return nil, err
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return p, nil
}

// CompileProfiles compiles every field of a "profile" struct. It collects
// all errors rather than stopping at the first.
func CompileProfiles(v cue.Value) ([]chart.BirthProfile, []error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}
	var out []chart.BirthProfile
	var errs []error
	for iter.Next() {
		p, err := CompileProfile(iter.Value())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, *p)
	}
	return out, errs
}

func parseElements(v cue.Value, field string, texts []string) ([]ganji.Element, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([]ganji.Element, 0, len(texts))
	for i, text := range texts {
		e, err := ganji.ParseElement(text)
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Code:    ErrCodeInvalidElem,
				Message: err.Error(),
				Pos:     v.LookupPath(cue.MakePath(cue.Str(field), cue.Index(i))).Pos(),
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// parseDaeun accepts either a rule ({start_age, count}) or an explicit list.
func parseDaeun(p chart.BirthProfile, v cue.Value) ([]chart.Daeun, error) {
	if v.IncompleteKind() == cue.StructKind {
		var rule struct {
			StartAge int `json:"start_age"`
			Count    int `json:"count"`
		}
		if err := v.Decode(&rule); err != nil {
			return nil, formatCUEError(err)
		}
		return chart.BuildDaeun(p, rule.StartAge, rule.Count), nil
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []chart.Daeun
	for i := 0; iter.Next(); i++ {
		ev := iter.Value()
		var entry struct {
			Pillar   string `json:"pillar"`
			StartAge int    `json:"start_age"`
			EndAge   int    `json:"end_age"`
		}
		if err := ev.Decode(&entry); err != nil {
			return nil, formatCUEError(err)
		}
		pl, err := ganji.ParsePillar(entry.Pillar)
		if err != nil {
			return nil, &CompileError{Field: fmt.Sprintf("daeun[%d].pillar", i), Code: ErrCodeInvalidDaeun, Message: err.Error(), Pos: ev.Pos()}
		}
		out = append(out, chart.Daeun{Pillar: pl, StartAge: entry.StartAge, EndAge: entry.EndAge})
	}
	return out, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Code:    ErrCodeGeneric,
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
