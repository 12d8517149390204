// Package constant produces random scalar literals for generated programs.
package constant

import (
	"fmt"

	"vecsmith/internal/types"
)

// Bits is the randomness the maker consumes.
type Bits interface {
	Uint32() uint32
}

// Literal is a rendered constant of a known type.
type Literal struct {
	Type types.Type
	Text string
}

func (l Literal) String() string { return l.Text }

// Maker builds random literals from a random source.
type Maker struct {
	src Bits
}

// NewMaker binds a maker to src.
func NewMaker(src Bits) *Maker {
	return &Maker{src: src}
}

// Random returns a hex literal that fits t, cast to t.
func (m *Maker) Random(t types.Type) Literal {
	if !t.IsScalar() {
		panic(fmt.Errorf("constant: cannot make literal of non-scalar type %s", t))
	}
	var raw string
	switch t.Width {
	case types.Width8:
		raw = fmt.Sprintf("0x%02X", m.src.Uint32()&0xFF)
	case types.Width16:
		raw = fmt.Sprintf("0x%04X", m.src.Uint32()&0xFFFF)
	case types.Width32:
		suffix := "U"
		if t.Signed() {
			suffix = "L"
		}
		raw = fmt.Sprintf("0x%08X%s", m.src.Uint32(), suffix)
	default:
		suffix := "ULL"
		if t.Signed() {
			suffix = "LL"
		}
		raw = fmt.Sprintf("0x%08X%08X%s", m.src.Uint32(), m.src.Uint32(), suffix)
	}
	return cast(t, raw)
}

// Zero returns the literal 0 cast to t.
func (m *Maker) Zero(t types.Type) Literal {
	return cast(t, "0")
}

func cast(t types.Type, raw string) Literal {
	return Literal{Type: t, Text: "(" + t.String() + ")" + raw}
}
