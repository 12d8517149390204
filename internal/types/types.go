package types

import (
	"fmt"
	"strings"
)

// Kind enumerates the type kinds the generator can name.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindInt
	KindUint
	KindPointer
	KindVector
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindPointer:
		return "pointer"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact descriptor for a C type. Elem is only meaningful for
// pointers and vectors.
type Type struct {
	Kind  Kind
	Width Width
	Elem  *Type
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed fixed-width integer.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned fixed-width integer.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakePointer describes T*.
func MakePointer(elem Type) Type {
	return Type{Kind: KindPointer, Elem: &elem}
}

// Void describes the void type.
func Void() Type {
	return Type{Kind: KindVoid}
}

// Scalars returns the element types vectors may be built from, in the order
// CLSmith lists them (char, uchar, short, ushort, int, uint, long, ulong).
func Scalars() []Type {
	return []Type{
		MakeInt(Width8), MakeUint(Width8),
		MakeInt(Width16), MakeUint(Width16),
		MakeInt(Width32), MakeUint(Width32),
		MakeInt(Width64), MakeUint(Width64),
	}
}

// IsScalar reports whether t is a non-void integer with a concrete width.
func (t Type) IsScalar() bool {
	if t.Kind != KindInt && t.Kind != KindUint {
		return false
	}
	switch t.Width {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Signed reports whether t is a signed integer.
func (t Type) Signed() bool { return t.Kind == KindInt }

// Equal compares two descriptors structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Width != o.Width {
		return false
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

// Render writes the C spelling of t.
func (t Type) Render(out *strings.Builder) {
	switch t.Kind {
	case KindVoid:
		out.WriteString("void")
	case KindInt:
		fmt.Fprintf(out, "int%d_t", t.Width)
	case KindUint:
		fmt.Fprintf(out, "uint%d_t", t.Width)
	case KindPointer:
		if t.Elem != nil {
			t.Elem.Render(out)
		} else {
			out.WriteString("void")
		}
		out.WriteByte('*')
	default:
		out.WriteString(t.Kind.String())
	}
}

func (t Type) String() string {
	var sb strings.Builder
	t.Render(&sb)
	return sb.String()
}
