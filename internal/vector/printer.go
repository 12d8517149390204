package vector

import (
	"fmt"
	"strings"
)

const (
	// ChecksumFunc is the runtime function that folds one value into the
	// program checksum.
	ChecksumFunc = "transparent_crc"
	// ChecksumFlag is the runtime variable asking transparent_crc to print
	// each value it folds.
	ChecksumFlag = "print_hash_value"

	indentUnit = "    "
)

// Printer renders definitions and checksum lines.
type Printer struct {
	Init      *InitBuilder
	Checksums bool
}

// Initializer renders the literal for v from [init] ++ aux candidates.
func (p *Printer) Initializer(v *Vector) string {
	return p.Init.Build(v.elem, v.width, v.candidates())
}

// RenderDefinition writes a full definition line for a collective vector and
// nothing for a view.
func (p *Printer) RenderDefinition(out *strings.Builder, v Variable, indent int) {
	switch v := v.(type) {
	case *View:
		return
	case *Vector:
		writeIndent(out, indent)
		v.RenderDeclaration(out)
		if !v.DeferInit {
			out.WriteString(" = ")
			out.WriteString(p.Initializer(v))
		}
		out.WriteString(";\n")
	default:
		panic(fmt.Errorf("vector: cannot define %T", v))
	}
}

// RenderChecksum writes one transparent_crc call per lane of a collective
// vector, in ascending lane order. Views and disabled checksums emit
// nothing.
func (p *Printer) RenderChecksum(out *strings.Builder, v Variable) {
	vec, ok := v.(*Vector)
	if !ok || !p.Checksums {
		return
	}
	// Scratch view; it is never registered anywhere.
	lane := View{parent: vec, indices: []int{0}}
	for i := 0; i < int(vec.width); i++ {
		lane.indices[0] = i
		writeIndent(out, 1)
		out.WriteString(ChecksumFunc)
		out.WriteByte('(')
		lane.RenderReference(out)
		out.WriteString(", \"")
		lane.RenderReference(out)
		out.WriteString("\", ")
		out.WriteString(ChecksumFlag)
		out.WriteString(");\n")
	}
}

func writeIndent(out *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		out.WriteString(indentUnit)
	}
}
