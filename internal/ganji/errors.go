package ganji

import (
	"errors"
	"fmt"
)

// ParseError reports text that is not a member of a closed symbol set.
type ParseError struct {
	Kind  string // "stem", "branch", "element", "polarity", "pillar"
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Input)
}

// SymbolError reports an out-of-range enum value that reached a boundary.
type SymbolError struct {
	Kind  string
	Value int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid %s value %d", e.Kind, e.Value)
}

// PolarityMismatchError reports a (stem, branch) pair that the sexagenary
// cycle never produces, e.g. 甲丑.
type PolarityMismatchError struct {
	Stem   Stem
	Branch Branch
}

func (e *PolarityMismatchError) Error() string {
	return fmt.Sprintf("%s%s is not a sexagenary pillar: %s stem with %s branch",
		e.Stem, e.Branch, e.Stem.Polarity(), e.Branch.Polarity())
}

// IsInvalidSymbol reports whether err stems from a value outside the closed
// stem/branch/element sets or from an impossible pillar.
// Uses errors.As to handle wrapped errors.
func IsInvalidSymbol(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return true
	}
	var se *SymbolError
	if errors.As(err, &se) {
		return true
	}
	var me *PolarityMismatchError
	return errors.As(err, &me)
}
