package ganji

import "fmt"

// CycleLength is the length of the sexagenary cycle.
const CycleLength = 60

// Pillar is one (stem, branch) unit of time.
type Pillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// NewPillar builds a pillar, rejecting symbols outside the closed sets and
// combinations that never occur in the sexagenary cycle.
func NewPillar(s Stem, b Branch) (Pillar, error) {
	p := Pillar{Stem: s, Branch: b}
	if err := p.Validate(); err != nil {
		return Pillar{}, err
	}
	return p, nil
}

// MustPillar is like NewPillar but panics on error.
// Use only in tests or for literal tables.
func MustPillar(s Stem, b Branch) Pillar {
	p, err := NewPillar(s, b)
	if err != nil {
		panic(err)
	}
	return p
}

// PillarAt returns the pillar at position index of the sexagenary cycle,
// with 0 = 甲子. Any integer is accepted and reduced mod 60.
func PillarAt(index int) Pillar {
	i := mod(index, CycleLength)
	return Pillar{Stem: Stem(i % StemCount), Branch: Branch(i % BranchCount)}
}

// Valid reports whether the pillar is one of the 60 real combinations.
func (p Pillar) Valid() bool {
	return p.Validate() == nil
}

// Validate explains why a pillar is not valid.
func (p Pillar) Validate() error {
	if !p.Stem.Valid() {
		return &SymbolError{Kind: "stem", Value: int(p.Stem)}
	}
	if !p.Branch.Valid() {
		return &SymbolError{Kind: "branch", Value: int(p.Branch)}
	}
	if p.Stem.Polarity() != p.Branch.Polarity() {
		return &PolarityMismatchError{Stem: p.Stem, Branch: p.Branch}
	}
	return nil
}

// Index returns the pillar's position 0-59 in the sexagenary cycle.
// The result is only meaningful for valid pillars.
func (p Pillar) Index() int {
	// Solves i ≡ stem (mod 10), i ≡ branch (mod 12).
	return mod(6*int(p.Stem)-5*int(p.Branch), CycleLength)
}

// Next returns the pillar n positions later in the cycle.
func (p Pillar) Next(n int) Pillar {
	return PillarAt(p.Index() + n)
}

func (p Pillar) String() string {
	return p.Stem.String() + p.Branch.String()
}

// Hangul returns the Korean reading, e.g. "갑자".
func (p Pillar) Hangul() string {
	return p.Stem.Hangul() + p.Branch.Hangul()
}

// ParsePillar parses a two-symbol pillar such as "甲子", "갑자" or "gap-ja".
func ParsePillar(s string) (Pillar, error) {
	stemText, branchText, err := splitPillar(s)
	if err != nil {
		return Pillar{}, err
	}
	stem, err := ParseStem(stemText)
	if err != nil {
		return Pillar{}, err
	}
	branch, err := ParseBranch(branchText)
	if err != nil {
		return Pillar{}, err
	}
	p, err := NewPillar(stem, branch)
	if err != nil {
		return Pillar{}, fmt.Errorf("pillar %q: %w", s, err)
	}
	return p, nil
}
