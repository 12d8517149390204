// Package scope holds the variable lists of a generated program: one Block
// per lexical scope plus a Registry with the globals and the flat list of
// every variable and view the generator may pick from.
package scope

import (
	"vecsmith/internal/vector"
)

// Block is a lexical scope with its own local variables.
type Block struct {
	Name   string
	Parent *Block
	locals []vector.Variable
}

// NewBlock opens a block nested in parent (nil for a function body).
func NewBlock(name string, parent *Block) *Block {
	return &Block{Name: name, Parent: parent}
}

// AppendLocal implements vector.Scope.
func (b *Block) AppendLocal(v vector.Variable) {
	b.locals = append(b.locals, v)
}

// Locals returns the variables declared directly in b.
func (b *Block) Locals() []vector.Variable { return b.locals }

// Visible returns locals of b and all enclosing blocks, innermost last.
func (b *Block) Visible() []vector.Variable {
	if b == nil {
		return nil
	}
	out := b.Parent.Visible()
	return append(out, b.locals...)
}

// Registry owns the program-wide lists.
type Registry struct {
	globals []vector.Variable
	all     []vector.Variable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AppendGlobal implements vector.Registry.
func (r *Registry) AppendGlobal(v vector.Variable) {
	r.globals = append(r.globals, v)
}

// AppendAny implements vector.Registry.
func (r *Registry) AppendAny(v vector.Variable) {
	r.all = append(r.all, v)
}

// Globals returns the global variables in declaration order.
func (r *Registry) Globals() []vector.Variable { return r.globals }

// All returns the flat list fed by AppendAny: every derived view the
// generator may pick from.
func (r *Registry) All() []vector.Variable { return r.all }

// Vectors returns the collective vectors among vars.
func Vectors(vars []vector.Variable) []*vector.Vector {
	var out []*vector.Vector
	for _, v := range vars {
		if vec, ok := v.(*vector.Vector); ok {
			out = append(out, vec)
		}
	}
	return out
}

// Scalars returns the single-lane views among vars, i.e. everything usable
// where a scalar expression is expected.
func Scalars(vars []vector.Variable) []*vector.View {
	var out []*vector.View
	for _, v := range vars {
		if view, ok := v.(*vector.View); ok && view.Lanes() == 1 {
			out = append(out, view)
		}
	}
	return out
}

// Stats counts collective vectors and views in vars.
func Stats(vars []vector.Variable) (vectors, views int) {
	for _, v := range vars {
		switch v.(type) {
		case *vector.Vector:
			vectors++
		case *vector.View:
			views++
		}
	}
	return vectors, views
}
