package ganji

import "fmt"

// Element is one of the five phases.
// Declaration order follows the generation cycle: each element feeds the next.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five elements in generation order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}

var elementHangul = [5]string{"목", "화", "토", "금", "수"}

var elementHanja = [5]string{"木", "火", "土", "金", "水"}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Hangul returns the Korean reading (목, 화, ...).
func (e Element) Hangul() string {
	if !e.Valid() {
		return "?"
	}
	return elementHangul[e]
}

// Hanja returns the classical character (木, 火, ...).
func (e Element) Hanja() string {
	if !e.Valid() {
		return "?"
	}
	return elementHanja[e]
}

// Generates returns the element e feeds (wood → fire).
func (e Element) Generates() Element {
	return (e + 1) % 5
}

// GeneratedBy returns the element that feeds e (water → wood).
func (e Element) GeneratedBy() Element {
	return (e + 4) % 5
}

// Controls returns the element e restrains (wood → earth).
func (e Element) Controls() Element {
	return (e + 2) % 5
}

// ControlledBy returns the element that restrains e (metal → wood).
func (e Element) ControlledBy() Element {
	return (e + 3) % 5
}

// MarshalText encodes the element by its English name.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid element %d", int(e))
	}
	return []byte(elementNames[e]), nil
}

// UnmarshalText accepts any spelling ParseElement accepts.
func (e *Element) UnmarshalText(text []byte) error {
	parsed, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Polarity is yin or yang.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	switch p {
	case Yang:
		return "yang"
	case Yin:
		return "yin"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// MarshalText encodes the polarity as "yang" or "yin".
func (p Polarity) MarshalText() ([]byte, error) {
	if p != Yang && p != Yin {
		return nil, fmt.Errorf("invalid polarity %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes "yang" or "yin".
func (p *Polarity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "yang", "양", "陽":
		*p = Yang
	case "yin", "음", "陰":
		*p = Yin
	default:
		return &ParseError{Kind: "polarity", Input: string(text)}
	}
	return nil
}
