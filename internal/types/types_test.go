package types

import (
	"strings"
	"testing"
)

func render(t Type) string {
	var sb strings.Builder
	t.Render(&sb)
	return sb.String()
}

func TestRenderScalars(t *testing.T) {
	want := []string{
		"int8_t", "uint8_t", "int16_t", "uint16_t",
		"int32_t", "uint32_t", "int64_t", "uint64_t",
	}
	got := Scalars()
	if len(got) != len(want) {
		t.Fatalf("expected %d scalars, got %d", len(want), len(got))
	}
	for i, ty := range got {
		if s := render(ty); s != want[i] {
			t.Errorf("scalar %d: got %q, want %q", i, s, want[i])
		}
		if !ty.IsScalar() {
			t.Errorf("%s should be scalar", want[i])
		}
	}
}

func TestIsScalarRejectsNonScalars(t *testing.T) {
	elem := MakeInt(Width32)
	cases := map[string]Type{
		"void":    Void(),
		"pointer": MakePointer(elem),
		"vector":  {Kind: KindVector, Elem: &elem},
		"anyint":  MakeInt(WidthAny),
		"invalid": {},
	}
	for name, ty := range cases {
		if ty.IsScalar() {
			t.Errorf("%s must not be scalar", name)
		}
	}
}

func TestRenderPointer(t *testing.T) {
	if got := render(MakePointer(MakeUint(Width16))); got != "uint16_t*" {
		t.Fatalf("got %q", got)
	}
}

func TestEqual(t *testing.T) {
	if !MakeInt(Width8).Equal(MakeInt(Width8)) {
		t.Fatalf("identical descriptors must be equal")
	}
	if MakeInt(Width8).Equal(MakeUint(Width8)) {
		t.Fatalf("signedness must affect identity")
	}
	if !MakePointer(MakeInt(Width8)).Equal(MakePointer(MakeInt(Width8))) {
		t.Fatalf("pointers to equal types must be equal")
	}
}

func TestQualifiersRenderLeading(t *testing.T) {
	cases := []struct {
		q    Qualifiers
		want string
	}{
		{Qualifiers{}, ""},
		{Qualifiers{Const: true}, "const "},
		{Qualifiers{Volatile: true}, "volatile "},
		{Qualifiers{Const: true, Volatile: true}, "const volatile "},
	}
	for _, tc := range cases {
		var sb strings.Builder
		tc.q.RenderLeading(&sb)
		if sb.String() != tc.want {
			t.Errorf("%+v: got %q, want %q", tc.q, sb.String(), tc.want)
		}
	}
}

type fixedUpto int

func (f fixedUpto) Upto(int) int { return int(f) }

func TestRandomQualifiersNeverConst(t *testing.T) {
	if q := RandomQualifiers(fixedUpto(0)); !q.Volatile || q.Const {
		t.Fatalf("expected volatile-only qualifiers, got %+v", q)
	}
	if q := RandomQualifiers(fixedUpto(3)); q.Volatile || q.Const {
		t.Fatalf("expected no qualifiers, got %+v", q)
	}
}
