package scope

import (
	"testing"

	"vecsmith/internal/constant"
	"vecsmith/internal/rng"
	"vecsmith/internal/types"
	"vecsmith/internal/vector"
)

func newContext(reg *Registry) *vector.Context {
	src := rng.New(5)
	return &vector.Context{Rand: src, Consts: constant.NewMaker(src), Vars: reg}
}

func TestCreateUsesBlockOrGlobals(t *testing.T) {
	reg := NewRegistry()
	ctx := newContext(reg)
	fn := NewBlock("func_1", nil)

	g := vector.Create(ctx, nil, "g_1", types.MakeInt(types.Width8), nil, types.Qualifiers{}, nil)
	l := vector.Create(ctx, fn, "l_2", types.MakeInt(types.Width8), nil, types.Qualifiers{}, nil)

	if len(reg.Globals()) != 1 || reg.Globals()[0] != g {
		t.Fatalf("globals = %v", reg.Globals())
	}
	if len(fn.Locals()) != 1 || fn.Locals()[0] != l {
		t.Fatalf("locals = %v", fn.Locals())
	}
	if len(reg.All()) != 0 {
		t.Fatalf("creation must not touch the flat registry")
	}
}

func TestVisibleWalksParents(t *testing.T) {
	reg := NewRegistry()
	ctx := newContext(reg)
	outer := NewBlock("outer", nil)
	inner := NewBlock("inner", outer)
	a := vector.Create(ctx, outer, "a", types.MakeUint(types.Width16), nil, types.Qualifiers{}, nil)
	b := vector.Create(ctx, inner, "b", types.MakeUint(types.Width16), nil, types.Qualifiers{}, nil)

	vis := inner.Visible()
	if len(vis) != 2 || vis[0] != vector.Variable(a) || vis[1] != vector.Variable(b) {
		t.Fatalf("visible = %v", vis)
	}
	if len(outer.Visible()) != 1 {
		t.Fatalf("outer block must not see inner locals")
	}
}

func TestSelectionHelpers(t *testing.T) {
	reg := NewRegistry()
	ctx := newContext(reg)
	g := vector.Create(ctx, nil, "g", types.MakeInt(types.Width32), nil, types.Qualifiers{}, nil)
	lane := g.ItemizeSingle(ctx)
	g.ItemizeSimdCount(ctx, 4)

	vectors, views := Stats(append(append([]vector.Variable(nil), reg.Globals()...), reg.All()...))
	if vectors != 1 || views != 2 {
		t.Fatalf("stats = %d vectors, %d views", vectors, views)
	}
	if vs := Vectors(reg.All()); len(vs) != 0 {
		t.Fatalf("flat list must only hold views, got %v", vs)
	}
	if vs := Vectors(reg.Globals()); len(vs) != 1 || vs[0] != g {
		t.Fatalf("vectors = %v", vs)
	}
	if sc := Scalars(reg.All()); len(sc) != 1 || sc[0] != lane {
		t.Fatalf("scalars = %v", sc)
	}
}
