// Package sibsin classifies any stem or branch relative to a reference stem
// into one of the ten relational roles (십신).
//
// The role is fully determined by two facts: how the target's element
// relates to the reference element on the generation/control cycle, and
// whether their polarities match.
package sibsin

import (
	"fmt"

	"github.com/roach88/saju/internal/ganji"
)

// Role is one of the ten gods.
type Role string

const (
	Bigyeon    Role = "bigyeon"    // 비견 peer: same element, same polarity
	Geopjae    Role = "geopjae"    // 겁재 rival: same element, opposite polarity
	Siksin     Role = "siksin"     // 식신 eating god: reference feeds target, same polarity
	Sanggwan   Role = "sanggwan"   // 상관 hurting officer: reference feeds target, opposite polarity
	Pyeonjae   Role = "pyeonjae"   // 편재 indirect wealth: reference restrains target, same polarity
	Jeongjae   Role = "jeongjae"   // 정재 direct wealth: reference restrains target, opposite polarity
	Pyeongwan  Role = "pyeongwan"  // 편관 seven killings: target restrains reference, same polarity
	Jeonggwan  Role = "jeonggwan"  // 정관 direct officer: target restrains reference, opposite polarity
	Pyeonin    Role = "pyeonin"    // 편인 indirect resource: target feeds reference, same polarity
	Jeongin    Role = "jeongin"    // 정인 direct resource: target feeds reference, opposite polarity
)

// Roles lists the ten roles in canonical order.
var Roles = []Role{Bigyeon, Geopjae, Siksin, Sanggwan, Pyeonjae, Jeongjae, Pyeongwan, Jeonggwan, Pyeonin, Jeongin}

// Group is the five-way coarse grouping of roles.
type Group string

const (
	Companion Group = "companion" // 비겁
	Output    Group = "output"    // 식상
	Wealth    Group = "wealth"    // 재성
	Officer   Group = "officer"   // 관성
	Resource  Group = "resource"  // 인성
)

// Groups lists the five groups in cycle order starting from the self.
var Groups = []Group{Companion, Output, Wealth, Officer, Resource}

var hangul = map[Role]string{
	Bigyeon: "비견", Geopjae: "겁재", Siksin: "식신", Sanggwan: "상관", Pyeonjae: "편재",
	Jeongjae: "정재", Pyeongwan: "편관", Jeonggwan: "정관", Pyeonin: "편인", Jeongin: "정인",
}

// roleTable[g][samePolarity?0:1] yields the role.
var roleTable = map[Group][2]Role{
	Companion: {Bigyeon, Geopjae},
	Output:    {Siksin, Sanggwan},
	Wealth:    {Pyeonjae, Jeongjae},
	Officer:   {Pyeongwan, Jeonggwan},
	Resource:  {Pyeonin, Jeongin},
}

// Hangul returns the Korean role name.
func (r Role) Hangul() string {
	if h, ok := hangul[r]; ok {
		return h
	}
	return "?"
}

// Group returns the coarse group of the role.
func (r Role) Group() Group {
	for g, pair := range roleTable {
		if pair[0] == r || pair[1] == r {
			return g
		}
	}
	return ""
}

// Valid reports whether r is one of the ten roles.
func (r Role) Valid() bool {
	_, ok := hangul[r]
	return ok
}

// GroupOf returns the group of target element e relative to reference
// element ref.
func GroupOf(ref, e ganji.Element) Group {
	switch {
	case e == ref:
		return Companion
	case ref.Generates() == e:
		return Output
	case ref.Controls() == e:
		return Wealth
	case ref.ControlledBy() == e:
		return Officer
	default:
		return Resource
	}
}

// ElementOf returns the element that plays group g for reference element ref.
// It is the inverse of GroupOf.
func ElementOf(ref ganji.Element, g Group) ganji.Element {
	switch g {
	case Output:
		return ref.Generates()
	case Wealth:
		return ref.Controls()
	case Officer:
		return ref.ControlledBy()
	case Resource:
		return ref.GeneratedBy()
	default:
		return ref
	}
}

// RoleOfElement classifies an (element, polarity) target against ref.
func RoleOfElement(ref ganji.Stem, e ganji.Element, p ganji.Polarity) Role {
	g := GroupOf(ref.Element(), e)
	if ref.Polarity() == p {
		return roleTable[g][0]
	}
	return roleTable[g][1]
}

// RoleOf classifies target stem against reference stem. RoleOf(s, s) is
// always Bigyeon. Total over the 100 stem pairs.
func RoleOf(ref, target ganji.Stem) Role {
	return RoleOfElement(ref, target.Element(), target.Polarity())
}

// RoleOfBranch classifies a branch by its principal element and polarity.
func RoleOfBranch(ref ganji.Stem, b ganji.Branch) Role {
	return RoleOfElement(ref, b.Element(), b.Polarity())
}

// MustParseRole parses a romanized or hangul role name, panicking on error.
func MustParseRole(s string) Role {
	r, err := ParseRole(s)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRole parses a romanized or hangul role name.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s || r.Hangul() == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown sibsin role %q", s)
}
