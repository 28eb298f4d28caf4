package ganji

import "fmt"

// Branch is one of the twelve earthly branches. The value is its position
// in the 12-unit cycle.
type Branch int

const (
	Ja   Branch = iota // 子 rat
	Chuk               // 丑 ox
	In                 // 寅 tiger
	Myo                // 卯 rabbit
	Jin                // 辰 dragon
	Sa                 // 巳 snake
	O                  // 午 horse
	Mi                 // 未 goat
	Shin               // 申 monkey
	Yu                 // 酉 rooster
	Sul                // 戌 dog
	Hae                // 亥 pig
)

// BranchCount is the size of the branch alphabet.
const BranchCount = 12

// Branches lists every branch in cycle order.
var Branches = [BranchCount]Branch{Ja, Chuk, In, Myo, Jin, Sa, O, Mi, Shin, Yu, Sul, Hae}

var branchHanja = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchHangul = [BranchCount]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}

var branchRoman = [BranchCount]string{"ja", "chuk", "in", "myo", "jin", "sa", "o", "mi", "shin", "yu", "sul", "hae"}

var branchElements = [BranchCount]Element{
	Water, Earth, Wood, Wood, Earth, Fire,
	Fire, Earth, Metal, Metal, Earth, Water,
}

// Valid reports whether b is inside the closed branch set.
func (b Branch) Valid() bool {
	return b >= Ja && b <= Hae
}

// Element returns the branch's principal element.
func (b Branch) Element() Element {
	return branchElements[b]
}

// Polarity follows cycle position: even positions are yang.
func (b Branch) Polarity() Polarity {
	return Polarity(b % 2)
}

// Position returns the 0-11 cycle position.
func (b Branch) Position() int {
	return int(b)
}

// Next returns the branch n steps forward in the cycle (n may be negative).
func (b Branch) Next(n int) Branch {
	return Branch(mod(int(b)+n, BranchCount))
}

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchHanja[b]
}

// Hangul returns the Korean reading of the branch.
func (b Branch) Hangul() string {
	if !b.Valid() {
		return "?"
	}
	return branchHangul[b]
}

// Roman returns the romanized reading used in CUE and YAML inputs.
func (b Branch) Roman() string {
	if !b.Valid() {
		return "?"
	}
	return branchRoman[b]
}

// MarshalText encodes the branch as its hanja character.
func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid branch %d", int(b))
	}
	return []byte(branchHanja[b]), nil
}

// UnmarshalText accepts hanja, hangul or romanized spellings.
func (b *Branch) UnmarshalText(text []byte) error {
	parsed, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
