package vector

import (
	"fmt"
	"strings"

	"vecsmith/internal/constant"
	"vecsmith/internal/types"
)

// Variable is anything a generated expression can name: a collective
// Vector or one of its Views.
type Variable interface {
	// Name returns the declared name of the underlying storage.
	Name() string
	// Lanes returns how many lanes the expression yields.
	Lanes() int
	// ElemType returns the lane type.
	ElemType() types.Type
	// RenderReference writes the expression text naming the variable.
	RenderReference(out *strings.Builder)
}

// Source is the primary randomness source.
type Source interface {
	Upto(n int) int
	Flip() bool
}

// ConstantMaker supplies random scalar literals.
type ConstantMaker interface {
	Random(t types.Type) constant.Literal
}

// Scope is a lexical block that owns local variables.
type Scope interface {
	AppendLocal(v Variable)
}

// Registry holds the global variable list and the flat list of every
// variable known to the generator.
type Registry interface {
	AppendGlobal(v Variable)
	AppendAny(v Variable)
}

// Context bundles the collaborators used by creation and projection.
type Context struct {
	Rand   Source
	Consts ConstantMaker
	Vars   Registry
}

// Vector is a collective vector variable.
type Vector struct {
	name    string
	elem    types.Type
	quals   types.Qualifiers
	width   Width
	init    fmt.Stringer
	aux     []fmt.Stringer
	fieldOf Variable

	// DeferInit is set by the declaration policy when the variable is
	// initialised by a later assignment instead of an inline initializer.
	DeferInit bool
}

// Create makes a fresh collective vector of random width and registers it in
// scope, or in the global registry when scope is nil. elem must be a scalar
// type.
func Create(ctx *Context, scope Scope, name string, elem types.Type, init fmt.Stringer, quals types.Qualifiers, fieldOf Variable) *Vector {
	if ctx == nil || ctx.Rand == nil || ctx.Consts == nil || ctx.Vars == nil {
		panic(fmt.Errorf("vector: incomplete context for %q", name))
	}
	if !elem.IsScalar() {
		panic(fmt.Errorf("vector: element type of %q must be a non-void scalar, got %s", name, elem))
	}
	v := &Vector{
		name:    name,
		elem:    elem,
		quals:   quals,
		width:   Widths[ctx.Rand.Upto(len(Widths))],
		init:    init,
		fieldOf: fieldOf,
	}
	v.AddInitValue(ctx.Consts.Random(elem))
	if scope != nil {
		scope.AppendLocal(v)
	} else {
		ctx.Vars.AppendGlobal(v)
	}
	return v
}

// AddInitValue appends an initializer candidate.
func (v *Vector) AddInitValue(e fmt.Stringer) {
	v.aux = append(v.aux, e)
}

// Name returns the name used in generated code. Field vectors are qualified
// by their owner.
func (v *Vector) Name() string {
	if v.fieldOf != nil {
		return v.fieldOf.Name() + "." + v.name
	}
	return v.name
}

// Width returns the lane count.
func (v *Vector) Width() Width { return v.width }

// Lanes implements Variable.
func (v *Vector) Lanes() int { return int(v.width) }

// ElemType implements Variable.
func (v *Vector) ElemType() types.Type { return v.elem }

// Qualifiers returns the declaration qualifiers.
func (v *Vector) Qualifiers() types.Qualifiers { return v.quals }

// Init returns the designated initializer expression, if any.
func (v *Vector) Init() fmt.Stringer { return v.init }

// AuxInitValues returns a copy of the extra initializer candidates.
func (v *Vector) AuxInitValues() []fmt.Stringer {
	return append([]fmt.Stringer(nil), v.aux...)
}

// FieldOf returns the owning aggregate, or nil.
func (v *Vector) FieldOf() Variable { return v.fieldOf }

// RenderReference writes the bare name.
func (v *Vector) RenderReference(out *strings.Builder) {
	out.WriteString(v.Name())
}

// RenderDeclaration writes qualifiers, the vector type and the name.
func (v *Vector) RenderDeclaration(out *strings.Builder) {
	v.quals.RenderLeading(out)
	renderVectorType(out, v.elem, v.width)
	out.WriteByte(' ')
	out.WriteString(v.Name())
}

// candidates returns [init] ++ aux as text.
func (v *Vector) candidates() []string {
	out := make([]string, 0, len(v.aux)+1)
	if v.init != nil {
		out = append(out, v.init.String())
	}
	for _, e := range v.aux {
		out = append(out, e.String())
	}
	return out
}

func renderVectorType(out *strings.Builder, elem types.Type, width Width) {
	out.WriteString("VECTOR(")
	elem.Render(out)
	fmt.Fprintf(out, ", %d)", width)
}
