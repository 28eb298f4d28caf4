package ganji

import (
	"fmt"
	"strings"
)

var (
	stemLookup    = buildLookup(stemHanja[:], stemHangul[:], stemRoman[:])
	branchLookup  = buildLookup(branchHanja[:], branchHangul[:], branchRoman[:])
	elementLookup = buildLookup(elementNames[:], elementHangul[:], elementHanja[:])
)

func buildLookup(tables ...[]string) map[string]int {
	m := make(map[string]int)
	for _, table := range tables {
		for i, name := range table {
			m[name] = i
		}
	}
	return m
}

// ParseStem accepts hanja (甲), hangul (갑) or romanized (gap) spellings.
// Romanized input is case-insensitive.
func ParseStem(s string) (Stem, error) {
	if i, ok := stemLookup[normalizeSymbol(s)]; ok {
		return Stem(i), nil
	}
	return 0, &ParseError{Kind: "stem", Input: s}
}

// ParseBranch accepts hanja (子), hangul (자) or romanized (ja) spellings.
func ParseBranch(s string) (Branch, error) {
	if i, ok := branchLookup[normalizeSymbol(s)]; ok {
		return Branch(i), nil
	}
	return 0, &ParseError{Kind: "branch", Input: s}
}

// ParseElement accepts english (wood), hangul (목) or hanja (木) spellings.
func ParseElement(s string) (Element, error) {
	if i, ok := elementLookup[normalizeSymbol(s)]; ok {
		return Element(i), nil
	}
	return 0, &ParseError{Kind: "element", Input: s}
}

func normalizeSymbol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitPillar separates the stem and branch parts of a pillar literal.
// Romanized pillars use a separator ("gap-ja", "gap ja"); hanja and hangul
// pillars are exactly two runes.
func splitPillar(s string) (string, string, error) {
	trimmed := strings.TrimSpace(s)
	if fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '-' || r == ' ' || r == '_' || r == '/'
	}); len(fields) == 2 {
		return fields[0], fields[1], nil
	}
	runes := []rune(trimmed)
	if len(runes) == 2 {
		return string(runes[0]), string(runes[1]), nil
	}
	return "", "", &ParseError{Kind: "pillar", Input: s}
}

// MustParsePillar is like ParsePillar but panics on error.
// Use only in tests or for literal tables.
func MustParsePillar(s string) Pillar {
	p, err := ParsePillar(s)
	if err != nil {
		panic(fmt.Sprintf("MustParsePillar(%q): %v", s, err))
	}
	return p
}
