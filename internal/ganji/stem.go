package ganji

import "fmt"

// Stem is one of the ten heavenly stems.
type Stem int

const (
	Gap    Stem = iota // 甲 yang wood
	Eul                // 乙 yin wood
	Byeong             // 丙 yang fire
	Jeong              // 丁 yin fire
	Mu                 // 戊 yang earth
	Gi                 // 己 yin earth
	Gyeong             // 庚 yang metal
	Sin                // 辛 yin metal
	Im                 // 壬 yang water
	Gye                // 癸 yin water
)

// StemCount is the size of the stem alphabet.
const StemCount = 10

// Stems lists every stem in cycle order.
var Stems = [StemCount]Stem{Gap, Eul, Byeong, Jeong, Mu, Gi, Gyeong, Sin, Im, Gye}

var stemHanja = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemHangul = [StemCount]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

var stemRoman = [StemCount]string{"gap", "eul", "byeong", "jeong", "mu", "gi", "gyeong", "sin", "im", "gye"}

// Valid reports whether s is inside the closed stem set.
func (s Stem) Valid() bool {
	return s >= Gap && s <= Gye
}

// Element returns the stem's element. Stems come in yang/yin pairs per element.
func (s Stem) Element() Element {
	return Element(s / 2)
}

// Polarity returns yang for even positions and yin for odd ones.
func (s Stem) Polarity() Polarity {
	return Polarity(s % 2)
}

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemHanja[s]
}

// Hangul returns the Korean reading of the stem.
func (s Stem) Hangul() string {
	if !s.Valid() {
		return "?"
	}
	return stemHangul[s]
}

// Roman returns the romanized reading used in CUE and YAML inputs.
func (s Stem) Roman() string {
	if !s.Valid() {
		return "?"
	}
	return stemRoman[s]
}

// Next returns the stem n steps forward in the cycle (n may be negative).
func (s Stem) Next(n int) Stem {
	return Stem(mod(int(s)+n, StemCount))
}

// MarshalText encodes the stem as its hanja character.
func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stem %d", int(s))
	}
	return []byte(stemHanja[s]), nil
}

// UnmarshalText accepts hanja, hangul or romanized spellings.
func (s *Stem) UnmarshalText(text []byte) error {
	parsed, err := ParseStem(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
