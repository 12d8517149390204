package vector

import (
	"fmt"
	"strings"
	"testing"

	"vecsmith/internal/constant"
	"vecsmith/internal/rng"
	"vecsmith/internal/types"
)

type recorder struct {
	locals  []Variable
	globals []Variable
	any     []Variable
}

func (r *recorder) AppendLocal(v Variable)  { r.locals = append(r.locals, v) }
func (r *recorder) AppendGlobal(v Variable) { r.globals = append(r.globals, v) }
func (r *recorder) AppendAny(v Variable)    { r.any = append(r.any, v) }

func newTestContext(seed uint64) (*Context, *recorder) {
	src := rng.New(seed)
	rec := &recorder{}
	return &Context{Rand: src, Consts: constant.NewMaker(src), Vars: rec}, rec
}

type lit string

func (l lit) String() string { return string(l) }

func mkVector(name string, w Width) *Vector {
	return &Vector{name: name, elem: types.MakeInt(types.Width32), width: w}
}

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", what)
		}
	}()
	fn()
}

func TestCreateWidthIsLegalAndUniform(t *testing.T) {
	ctx, _ := newTestContext(1)
	counts := map[Width]int{}
	const trials = 4000
	for i := 0; i < trials; i++ {
		v := Create(ctx, nil, fmt.Sprintf("g_%d", i), types.MakeUint(types.Width8), nil, types.Qualifiers{}, nil)
		if !v.Width().Valid() {
			t.Fatalf("illegal width %d", v.Width())
		}
		counts[v.Width()]++
	}
	for _, w := range Widths {
		if c := counts[w]; c < trials/4-200 || c > trials/4+200 {
			t.Errorf("width %d chosen %d times out of %d", w, c, trials)
		}
	}
}

func TestCreateRegistersOnce(t *testing.T) {
	ctx, rec := newTestContext(2)
	g := Create(ctx, nil, "g_1", types.MakeInt(types.Width16), lit("0"), types.Qualifiers{}, nil)
	if len(rec.globals) != 1 || rec.globals[0] != g || len(rec.locals) != 0 || len(rec.any) != 0 {
		t.Fatalf("global creation touched wrong registries: %+v", rec)
	}
	l := Create(ctx, rec, "l_2", types.MakeInt(types.Width16), lit("0"), types.Qualifiers{}, nil)
	if len(rec.locals) != 1 || rec.locals[0] != l || len(rec.globals) != 1 {
		t.Fatalf("local creation touched wrong registries: %+v", rec)
	}
}

func TestCreateAddsOneRandomLiteral(t *testing.T) {
	ctx, _ := newTestContext(3)
	v := Create(ctx, nil, "g", types.MakeUint(types.Width64), lit("1"), types.Qualifiers{}, nil)
	aux := v.AuxInitValues()
	if len(aux) != 1 {
		t.Fatalf("expected one aux value, got %d", len(aux))
	}
	if !strings.HasPrefix(aux[0].String(), "(uint64_t)0x") {
		t.Fatalf("unexpected aux literal %q", aux[0])
	}
	if v.Init().String() != "1" {
		t.Fatalf("init not kept")
	}
}

func TestCreateRejectsNonScalarElements(t *testing.T) {
	elem := types.MakeInt(types.Width8)
	bad := map[string]types.Type{
		"void":    types.Void(),
		"pointer": types.MakePointer(elem),
		"vector":  {Kind: types.KindVector, Elem: &elem},
	}
	for name, ty := range bad {
		ctx, rec := newTestContext(4)
		expectPanic(t, name, func() {
			Create(ctx, nil, "bad", ty, nil, types.Qualifiers{}, nil)
		})
		if len(rec.globals) != 0 {
			t.Fatalf("%s: failed creation must not register", name)
		}
	}
}

func TestFieldVectorName(t *testing.T) {
	owner := mkVector("s_1", Width4)
	v := &Vector{name: "f0", elem: types.MakeInt(types.Width8), width: Width2, fieldOf: owner}
	if v.Name() != "s_1.f0" {
		t.Fatalf("got %q", v.Name())
	}
}

func TestRenderDeclaration(t *testing.T) {
	v := &Vector{
		name:  "g_7",
		elem:  types.MakeUint(types.Width16),
		quals: types.Qualifiers{Volatile: true},
		width: Width8,
	}
	var sb strings.Builder
	v.RenderDeclaration(&sb)
	if got, want := sb.String(), "volatile VECTOR(uint16_t, 8) g_7"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseWidth(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16} {
		if w, err := ParseWidth(n); err != nil || int(w) != n {
			t.Errorf("ParseWidth(%d) = %d, %v", n, w, err)
		}
	}
	for _, n := range []int{-1, 0, 1, 3, 32, 256, 258} {
		if _, err := ParseWidth(n); err == nil {
			t.Errorf("ParseWidth(%d) should fail", n)
		}
	}
}
