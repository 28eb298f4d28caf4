package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/saju/internal/ganji"
)

// Validation error codes (E200-E299)
const (
	ErrInvalidPillar   = "E201" // symbol outside the closed sets or impossible pillar
	ErrBirthYear       = "E202" // birth year out of range
	ErrYearMismatch    = "E203" // year pillar does not match birth year
	ErrInvalidGender   = "E204" // unknown gender value
	ErrDaeunRange      = "E205" // decade cycle age range malformed
	ErrDaeunOverlap    = "E206" // decade cycles overlap or are unordered
	ErrInvalidElement  = "E207" // favorable/unfavorable element outside the closed set
	ErrElementConflict = "E208" // element both favorable and unfavorable
)

// MaxBirthYear bounds accepted birth years.
const MaxBirthYear = 9999

// ValidationError is one problem found at the profile boundary.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every problem in a profile.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is/As.
func (es ValidationErrors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Validate checks a profile at the engine boundary. It returns nil or a
// ValidationErrors containing every problem found (does not fail fast).
func (p BirthProfile) Validate() error {
	var errs ValidationErrors
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if p.BirthYear < 1 || p.BirthYear > MaxBirthYear {
		add("birth_year", ErrBirthYear, "must be within 1..%d, got %d", MaxBirthYear, p.BirthYear)
	}

	for _, pos := range Positions {
		if err := p.PillarAt(pos).Validate(); err != nil {
			add(string(pos), ErrInvalidPillar, "%v", err)
		}
	}

	// A birth before the solar new year carries the previous year's pillar.
	if p.Year.Valid() && p.BirthYear >= 1 {
		if p.Year != ganji.YearlyGanji(p.BirthYear) && p.Year != ganji.YearlyGanji(p.BirthYear-1) {
			add("year", ErrYearMismatch, "%s is not the pillar of %d (want %s)",
				p.Year, p.BirthYear, ganji.YearlyGanji(p.BirthYear))
		}
	}

	switch p.Gender {
	case Male, Female, Unknown:
	default:
		add("gender", ErrInvalidGender, "must be male, female or empty, got %q", p.Gender)
	}

	for i, d := range p.Daeun {
		field := fmt.Sprintf("daeun[%d]", i)
		if err := d.Pillar.Validate(); err != nil {
			add(field+".pillar", ErrInvalidPillar, "%v", err)
		}
		if d.StartAge < 0 || d.EndAge < d.StartAge {
			add(field, ErrDaeunRange, "age range %d..%d is malformed", d.StartAge, d.EndAge)
		}
		if i > 0 && d.StartAge <= p.Daeun[i-1].EndAge {
			add(field, ErrDaeunOverlap, "starts at %d before previous cycle ends at %d", d.StartAge, p.Daeun[i-1].EndAge)
		}
	}

	for i, e := range p.Favorable {
		if !e.Valid() {
			add(fmt.Sprintf("favorable[%d]", i), ErrInvalidElement, "invalid element %d", int(e))
		}
	}
	for i, e := range p.Unfavorable {
		if !e.Valid() {
			add(fmt.Sprintf("unfavorable[%d]", i), ErrInvalidElement, "invalid element %d", int(e))
			continue
		}
		if p.IsFavorable(e) {
			add(fmt.Sprintf("unfavorable[%d]", i), ErrElementConflict, "%s is also favorable", e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsValidationError reports whether err carries profile validation errors.
func IsValidationError(err error) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ves ValidationErrors
	return errors.As(err, &ves)
}

// HasCode reports whether err contains a validation error with code.
func HasCode(err error, code string) bool {
	var ves ValidationErrors
	if errors.As(err, &ves) {
		for _, e := range ves {
			if e.Code == code {
				return true
			}
		}
		return false
	}
	var ve ValidationError
	return errors.As(err, &ve) && ve.Code == code
}
