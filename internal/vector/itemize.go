package vector

import (
	"fmt"
	"strings"

	"vecsmith/internal/types"
)

// View is a lane projection of a collective Vector. Its parent outlives it.
type View struct {
	parent  *Vector
	indices []int
}

// Parent returns the collective vector the view selects from.
func (w *View) Parent() *Vector { return w.parent }

// Indices returns a copy of the selected lanes.
func (w *View) Indices() []int { return append([]int(nil), w.indices...) }

// Name returns the parent's name; views are never declared on their own.
func (w *View) Name() string { return w.parent.Name() }

// Width returns the parent's width.
func (w *View) Width() Width { return w.parent.width }

// Lanes returns the number of selected lanes.
func (w *View) Lanes() int { return len(w.indices) }

// ElemType returns the parent's lane type.
func (w *View) ElemType() types.Type { return w.parent.elem }

// RenderReference writes name.suffix, e.g. v.y or v.s3a.
func (w *View) RenderReference(out *strings.Builder) {
	out.WriteString(w.parent.Name())
	out.WriteByte('.')
	if w.parent.width > 4 {
		out.WriteByte(swizzlePrefix)
	}
	for _, idx := range w.indices {
		out.WriteByte(w.parent.width.laneChar(idx))
	}
}

func (w *View) String() string {
	var sb strings.Builder
	w.RenderReference(&sb)
	return sb.String()
}

// ItemizeSingle selects one random lane.
func (v *Vector) ItemizeSingle(ctx *Context) *View {
	return v.ItemizeIndices(ctx, []int{ctx.Rand.Upto(int(v.width))})
}

// ItemizeIndices builds a single-lane view. indices must hold exactly one
// lane.
func (v *Vector) ItemizeIndices(ctx *Context, indices []int) *View {
	if len(indices) != 1 {
		panic(fmt.Errorf("vector: single-lane view of %q needs exactly one index, got %d", v.Name(), len(indices)))
	}
	return v.derive(ctx, indices)
}

// ItemizeSimdRandom selects a single lane with probability 1/5, otherwise a
// random legal number of lanes.
func (v *Vector) ItemizeSimdRandom(ctx *Context) *View {
	n := ctx.Rand.Upto(len(Widths) + 1)
	if n == len(Widths) {
		return v.ItemizeSingle(ctx)
	}
	return v.ItemizeSimdCount(ctx, int(Widths[n]))
}

// ItemizeSimdCount selects count random lanes, repeats allowed. count must
// be a power of two no larger than 16.
func (v *Vector) ItemizeSimdCount(ctx *Context, count int) *View {
	if count > int(Width16) || !isPowerOfTwo(count) {
		panic(fmt.Errorf("vector: SIMD lane count %d of %q must be a power of two in (0, 16]", count, v.Name()))
	}
	access := make([]int, count)
	for i := range access {
		access[i] = ctx.Rand.Upto(int(v.width))
	}
	return v.ItemizeSimd(ctx, access)
}

// ItemizeSimd builds a view over an explicit, non-empty lane list.
func (v *Vector) ItemizeSimd(ctx *Context, indices []int) *View {
	if len(indices) == 0 {
		panic(fmt.Errorf("vector: SIMD view of %q needs at least one index", v.Name()))
	}
	return v.derive(ctx, indices)
}

func (v *Vector) derive(ctx *Context, indices []int) *View {
	for _, idx := range indices {
		if idx < 0 || idx >= int(v.width) {
			panic(fmt.Errorf("vector: lane %d out of range for %q of width %d", idx, v.Name(), v.width))
		}
	}
	view := &View{parent: v, indices: append([]int(nil), indices...)}
	ctx.Vars.AppendAny(view)
	return view
}
