package ganji

import (
	"fmt"
	"slices"
)

// StemRelationKind classifies an unordered pair of stems.
type StemRelationKind string

const (
	StemNone        StemRelationKind = "none"
	StemCombination StemRelationKind = "combination" // 천간합
	StemClash       StemRelationKind = "clash"       // 천간충
)

// StemRelation is the symmetric relation between two stems.
type StemRelation struct {
	Kind StemRelationKind `json:"kind"`
	// Result is the element a combination transforms into.
	// Only meaningful when Kind is StemCombination.
	Result Element `json:"result"`
}

// StemPair is an unordered pair literal used to build the static tables.
type StemPair struct {
	A, B   Stem
	Result Element
}

// StemCombinations are the five fixed combination pairs.
var StemCombinations = []StemPair{
	{Gap, Gi, Earth},
	{Eul, Gyeong, Metal},
	{Byeong, Sin, Water},
	{Jeong, Im, Wood},
	{Mu, Gye, Fire},
}

// StemClashes are the five fixed clash pairs.
var StemClashes = []StemPair{
	{Gap, Gyeong, 0},
	{Eul, Sin, 0},
	{Byeong, Im, 0},
	{Jeong, Gye, 0},
	{Mu, Gap, 0},
}

var stemTable = buildStemTable()

func buildStemTable() [StemCount][StemCount]StemRelation {
	var t [StemCount][StemCount]StemRelation
	for _, a := range Stems {
		for _, b := range Stems {
			t[a][b] = StemRelation{Kind: StemNone}
		}
	}
	for _, p := range StemClashes {
		t[p.A][p.B] = StemRelation{Kind: StemClash}
		t[p.B][p.A] = StemRelation{Kind: StemClash}
	}
	for _, p := range StemCombinations {
		t[p.A][p.B] = StemRelation{Kind: StemCombination, Result: p.Result}
		t[p.B][p.A] = StemRelation{Kind: StemCombination, Result: p.Result}
	}
	return t
}

// StemRelationOf classifies two stems. Symmetric: StemRelationOf(a, b) ==
// StemRelationOf(b, a). Invalid stems classify as none.
func StemRelationOf(a, b Stem) StemRelation {
	if !a.Valid() || !b.Valid() {
		return StemRelation{Kind: StemNone}
	}
	return stemTable[a][b]
}

// BranchRelationKind classifies a set of two or three branches.
type BranchRelationKind string

const (
	BranchNone         BranchRelationKind = "none"
	BranchSixHarmony   BranchRelationKind = "six-harmony"   // 육합
	BranchThreeHarmony BranchRelationKind = "three-harmony" // 삼합
	BranchClash        BranchRelationKind = "clash"         // 충
	BranchPunishment   BranchRelationKind = "punishment"    // 형
)

// BranchPrecedence is the order in which a pair belonging to several
// relations is classified. The first kind that applies wins.
var BranchPrecedence = []BranchRelationKind{
	BranchSixHarmony,
	BranchClash,
	BranchPunishment,
	BranchThreeHarmony,
}

// Punishment sub-types.
const (
	PunishUngrateful = "ungrateful" // 무은지형 寅巳申
	PunishBullying   = "bullying"   // 지세지형 丑戌未
	PunishRude       = "rude"       // 무례지형 子卯
	PunishSelf       = "self"       // 자형
)

// BranchRelation is one relation found among branches.
type BranchRelation struct {
	Kind     BranchRelationKind `json:"kind"`
	Branches []Branch           `json:"branches,omitempty"`
	// Result is the element produced by a harmony.
	Result    Element `json:"result"`
	HasResult bool    `json:"has_result,omitempty"`
	// Complete is true for a full trine or a full punishment trio.
	Complete bool `json:"complete,omitempty"`
	// Detail carries the punishment sub-type.
	Detail string `json:"detail,omitempty"`
}

// BranchPair is an unordered pair literal.
type BranchPair struct {
	A, B   Branch
	Result Element
}

// BranchTrio is a three-branch group literal.
type BranchTrio struct {
	Members [3]Branch
	Result  Element
	Detail  string
}

// SixHarmonies are the six fixed harmony pairs with their resulting element.
var SixHarmonies = []BranchPair{
	{Ja, Chuk, Earth},
	{In, Hae, Wood},
	{Myo, Sul, Fire},
	{Jin, Yu, Metal},
	{Sa, Shin, Water},
	{O, Mi, Fire},
}

// Trines are the four three-harmony groups.
var Trines = []BranchTrio{
	{Members: [3]Branch{Shin, Ja, Jin}, Result: Water},
	{Members: [3]Branch{Hae, Myo, Mi}, Result: Wood},
	{Members: [3]Branch{In, O, Sul}, Result: Fire},
	{Members: [3]Branch{Sa, Yu, Chuk}, Result: Metal},
}

// BranchClashes are the six opposite pairs.
var BranchClashes = []BranchPair{
	{Ja, O, 0},
	{Chuk, Mi, 0},
	{In, Shin, 0},
	{Myo, Yu, 0},
	{Jin, Sul, 0},
	{Sa, Hae, 0},
}

// PunishmentTrios are the two three-branch punishments. Every pair inside a
// trio is also a punishment.
var PunishmentTrios = []BranchTrio{
	{Members: [3]Branch{In, Sa, Shin}, Detail: PunishUngrateful},
	{Members: [3]Branch{Chuk, Sul, Mi}, Detail: PunishBullying},
}

// PunishmentPairs are two-branch punishments outside the trios.
var PunishmentPairs = []BranchPair{{Ja, Myo, 0}}

// SelfPunishments are branches that punish themselves when doubled.
var SelfPunishments = []Branch{Jin, O, Yu, Hae}

// pairCandidates lists every relation that applies to an unordered pair,
// in no particular order.
var pairCandidates = buildPairCandidates()

// pairTable holds the precedence winner for every ordered pair.
var pairTable = buildPairTable()

func buildPairCandidates() [BranchCount][BranchCount][]BranchRelation {
	var t [BranchCount][BranchCount][]BranchRelation
	add := func(a, b Branch, rel BranchRelation) {
		rel.Branches = []Branch{a, b}
		t[a][b] = append(t[a][b], rel)
		if a != b {
			rev := rel
			rev.Branches = []Branch{b, a}
			t[b][a] = append(t[b][a], rev)
		}
	}
	for _, p := range SixHarmonies {
		add(p.A, p.B, BranchRelation{Kind: BranchSixHarmony, Result: p.Result, HasResult: true})
	}
	for _, p := range BranchClashes {
		add(p.A, p.B, BranchRelation{Kind: BranchClash})
	}
	for _, trio := range PunishmentTrios {
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				add(trio.Members[i], trio.Members[j], BranchRelation{Kind: BranchPunishment, Detail: trio.Detail})
			}
		}
	}
	for _, p := range PunishmentPairs {
		add(p.A, p.B, BranchRelation{Kind: BranchPunishment, Detail: PunishRude})
	}
	for _, b := range SelfPunishments {
		add(b, b, BranchRelation{Kind: BranchPunishment, Detail: PunishSelf})
	}
	for _, trine := range Trines {
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				add(trine.Members[i], trine.Members[j], BranchRelation{Kind: BranchThreeHarmony, Result: trine.Result, HasResult: true})
			}
		}
	}
	return t
}

func buildPairTable() [BranchCount][BranchCount]BranchRelation {
	var t [BranchCount][BranchCount]BranchRelation
	for _, a := range Branches {
		for _, b := range Branches {
			t[a][b] = pickByPrecedence(a, b, pairCandidates[a][b])
		}
	}
	return t
}

func pickByPrecedence(a, b Branch, candidates []BranchRelation) BranchRelation {
	for _, kind := range BranchPrecedence {
		for _, c := range candidates {
			if c.Kind == kind {
				return c
			}
		}
	}
	return BranchRelation{Kind: BranchNone, Branches: []Branch{a, b}}
}

// BranchRelationOf classifies a set of two or three branches into a single
// relation.
//
// A pair resolves by BranchPrecedence. A triad is a full three-harmony or a
// full punishment trio when it matches one exactly; otherwise it takes the
// highest-precedence relation among its three pairs. Any other set size, or
// a set containing an invalid branch, classifies as none.
func BranchRelationOf(branches ...Branch) BranchRelation {
	for _, b := range branches {
		if !b.Valid() {
			return BranchRelation{Kind: BranchNone, Branches: slices.Clone(branches)}
		}
	}
	switch len(branches) {
	case 2:
		return pairTable[branches[0]][branches[1]].clone()
	case 3:
		if full, ok := fullTrio(branches); ok {
			return full
		}
		var candidates []BranchRelation
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				rel := pairTable[branches[i]][branches[j]]
				if rel.Kind != BranchNone {
					candidates = append(candidates, rel)
				}
			}
		}
		rel := pickByPrecedence(branches[0], branches[1], candidates)
		if rel.Kind == BranchNone {
			rel.Branches = slices.Clone(branches)
			return rel
		}
		return rel.clone()
	default:
		return BranchRelation{Kind: BranchNone, Branches: slices.Clone(branches)}
	}
}

// fullTrio recognises a complete trine or punishment trio in any order.
// A complete trine takes priority over a punishment trio; the two sets are
// disjoint so the order never matters in practice.
func fullTrio(branches []Branch) (BranchRelation, bool) {
	for _, trine := range Trines {
		if sameSet(branches, trine.Members[:]) {
			return BranchRelation{
				Kind:      BranchThreeHarmony,
				Branches:  slices.Clone(trine.Members[:]),
				Result:    trine.Result,
				HasResult: true,
				Complete:  true,
			}, true
		}
	}
	for _, trio := range PunishmentTrios {
		if sameSet(branches, trio.Members[:]) {
			return BranchRelation{
				Kind:     BranchPunishment,
				Branches: slices.Clone(trio.Members[:]),
				Complete: true,
				Detail:   trio.Detail,
			}, true
		}
	}
	return BranchRelation{}, false
}

func sameSet(a, b []Branch) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range b {
		if !slices.Contains(a, x) {
			return false
		}
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}

// AllBranchRelations reports every relation present among the given
// branches: each pair's full candidate list plus any complete trine or
// punishment trio formed by three distinct members of the set.
//
// Results are ordered by pair position, then by BranchPrecedence, with
// complete trios last. Duplicate relations are not collapsed; the caller
// decides how to weight them.
func AllBranchRelations(branches ...Branch) []BranchRelation {
	var out []BranchRelation
	for i := 0; i < len(branches); i++ {
		if !branches[i].Valid() {
			continue
		}
		for j := i + 1; j < len(branches); j++ {
			if !branches[j].Valid() {
				continue
			}
			candidates := pairCandidates[branches[i]][branches[j]]
			for _, kind := range BranchPrecedence {
				for _, c := range candidates {
					if c.Kind == kind {
						out = append(out, c.clone())
					}
				}
			}
		}
	}
	for _, trine := range Trines {
		if containsAll(branches, trine.Members[:]) {
			rel, _ := fullTrio(trine.Members[:])
			out = append(out, rel)
		}
	}
	for _, trio := range PunishmentTrios {
		if containsAll(branches, trio.Members[:]) {
			rel, _ := fullTrio(trio.Members[:])
			out = append(out, rel)
		}
	}
	return out
}

// clone copies Branches so callers never share the package tables.
func (r BranchRelation) clone() BranchRelation {
	r.Branches = slices.Clone(r.Branches)
	return r
}

func containsAll(set, members []Branch) bool {
	for _, m := range members {
		if !slices.Contains(set, m) {
			return false
		}
	}
	return true
}

func (r BranchRelation) String() string {
	if r.HasResult {
		return fmt.Sprintf("%s%v→%s", r.Kind, r.Branches, r.Result)
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s(%s)%v", r.Kind, r.Detail, r.Branches)
	}
	return fmt.Sprintf("%s%v", r.Kind, r.Branches)
}
