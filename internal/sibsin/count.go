package sibsin

import (
	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
)

// Placement is the role of one natal symbol.
type Placement struct {
	Position chart.Position `json:"position"`
	Symbol   string         `json:"symbol"` // "stem" or "branch"
	Role     Role           `json:"role"`
}

// Natal returns the role of every natal symbol except the day master
// itself, in chart order (stem before branch).
func Natal(p chart.BirthProfile) []Placement {
	dm := p.DayMaster()
	out := make([]Placement, 0, 7)
	for _, pos := range chart.Positions {
		pl := p.PillarAt(pos)
		if pos != chart.DayPillar {
			out = append(out, Placement{Position: pos, Symbol: "stem", Role: RoleOf(dm, pl.Stem)})
		}
		out = append(out, Placement{Position: pos, Symbol: "branch", Role: RoleOfBranch(dm, pl.Branch)})
	}
	return out
}

// Count tallies natal roles.
func Count(p chart.BirthProfile) map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, pl := range Natal(p) {
		counts[pl.Role]++
	}
	return counts
}

// CountGroups tallies natal roles by group.
func CountGroups(p chart.BirthProfile) map[Group]int {
	counts := make(map[Group]int, len(Groups))
	for _, pl := range Natal(p) {
		counts[pl.Role.Group()]++
	}
	return counts
}

// GroupOfElement is GroupOf with a stem reference.
func GroupOfElement(ref ganji.Stem, e ganji.Element) Group {
	return GroupOf(ref.Element(), e)
}
