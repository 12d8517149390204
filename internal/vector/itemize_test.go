package vector

import (
	"strings"
	"testing"
)

func ref(v Variable) string {
	var sb strings.Builder
	v.RenderReference(&sb)
	return sb.String()
}

func TestRenderReferenceSuffixes(t *testing.T) {
	ctx, _ := newTestContext(1)
	cases := []struct {
		width   Width
		indices []int
		want    string
	}{
		{Width2, []int{1}, "v.y"},
		{Width4, []int{3}, "v.w"},
		{Width4, []int{0, 1, 2, 3}, "v.xyzw"},
		{Width8, []int{0, 2}, "v.s02"},
		{Width8, []int{7}, "v.s7"},
		{Width16, []int{10}, "v.sa"},
		{Width16, []int{15, 15, 0, 11}, "v.sff0b"},
	}
	for _, tc := range cases {
		v := mkVector("v", tc.width)
		var view *View
		if len(tc.indices) == 1 {
			view = v.ItemizeIndices(ctx, tc.indices)
		} else {
			view = v.ItemizeSimd(ctx, tc.indices)
		}
		if got := ref(view); got != tc.want {
			t.Errorf("width %d %v: got %q, want %q", tc.width, tc.indices, got, tc.want)
		}
	}
}

func TestCollectiveRendersBareName(t *testing.T) {
	if got := ref(mkVector("g_3", Width16)); got != "g_3" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderReferenceIsIdempotent(t *testing.T) {
	ctx, _ := newTestContext(9)
	v := mkVector("v", Width16)
	view := v.ItemizeSimdCount(ctx, 8)
	first, second := ref(view), ref(view)
	if first != second {
		t.Fatalf("rendering changed: %q vs %q", first, second)
	}
	if view.String() != first {
		t.Fatalf("String disagrees with RenderReference")
	}
}

// itemizer is the method set only collective vectors have.
type itemizer interface {
	ItemizeSingle(*Context) *View
	ItemizeIndices(*Context, []int) *View
	ItemizeSimdRandom(*Context) *View
	ItemizeSimdCount(*Context, int) *View
}

func TestViewsCannotBeItemized(t *testing.T) {
	ctx, _ := newTestContext(5)
	v := mkVector("v", Width8)
	views := []*View{
		v.ItemizeSingle(ctx),
		v.ItemizeIndices(ctx, []int{4}),
		v.ItemizeSimdRandom(ctx),
		v.ItemizeSimdCount(ctx, 4),
	}
	var _ itemizer = v
	for i, view := range views {
		if _, ok := any(view).(itemizer); ok {
			t.Fatalf("view %d exposes itemize methods", i)
		}
		if view.Parent() != v {
			t.Fatalf("view %d has wrong parent", i)
		}
		if view.Width() != v.Width() || view.Name() != v.Name() {
			t.Fatalf("view %d does not share parent shape", i)
		}
	}
}

func TestItemizeRegistersEveryView(t *testing.T) {
	ctx, rec := newTestContext(6)
	v := mkVector("v", Width4)
	a := v.ItemizeSingle(ctx)
	b := v.ItemizeSimdCount(ctx, 2)
	if len(rec.any) != 2 || rec.any[0] != a || rec.any[1] != b {
		t.Fatalf("views not registered in order: %v", rec.any)
	}
	if len(rec.globals) != 0 || len(rec.locals) != 0 {
		t.Fatalf("views must only go to the flat registry")
	}
}

func TestItemizeSingleStaysInRange(t *testing.T) {
	ctx, _ := newTestContext(7)
	for _, w := range Widths {
		v := mkVector("v", w)
		for i := 0; i < 200; i++ {
			view := v.ItemizeSingle(ctx)
			idx := view.Indices()
			if len(idx) != 1 || idx[0] < 0 || idx[0] >= int(w) {
				t.Fatalf("width %d: bad indices %v", w, idx)
			}
		}
	}
}

func TestItemizeIndicesNeedsExactlyOne(t *testing.T) {
	ctx, _ := newTestContext(8)
	v := mkVector("v", Width4)
	expectPanic(t, "empty", func() { v.ItemizeIndices(ctx, nil) })
	expectPanic(t, "two", func() { v.ItemizeIndices(ctx, []int{0, 1}) })
	expectPanic(t, "range", func() { v.ItemizeIndices(ctx, []int{4}) })
	expectPanic(t, "negative", func() { v.ItemizeIndices(ctx, []int{-1}) })
}

func TestItemizeSimdNeedsIndices(t *testing.T) {
	ctx, _ := newTestContext(8)
	v := mkVector("v", Width2)
	expectPanic(t, "empty", func() { v.ItemizeSimd(ctx, []int{}) })
	expectPanic(t, "range", func() { v.ItemizeSimd(ctx, []int{0, 2}) })
}

func TestItemizeSimdCountValidation(t *testing.T) {
	ctx, _ := newTestContext(10)
	v := mkVector("v", Width8)
	for _, n := range []int{-4, 0, 3, 5, 6, 7, 9, 10, 12, 15, 17, 32} {
		expectPanic(t, "count", func() { v.ItemizeSimdCount(ctx, n) })
	}
	for _, n := range []int{1, 2, 4, 8, 16} {
		view := v.ItemizeSimdCount(ctx, n)
		if view.Lanes() != n {
			t.Fatalf("count %d: got %d lanes", n, view.Lanes())
		}
		for _, idx := range view.Indices() {
			if idx < 0 || idx >= 8 {
				t.Fatalf("count %d: lane %d out of range", n, idx)
			}
		}
	}
}

func TestItemizeSimdRandomCounts(t *testing.T) {
	ctx, _ := newTestContext(11)
	v := mkVector("v", Width16)
	seen := map[int]int{}
	const trials = 2000
	for i := 0; i < trials; i++ {
		seen[v.ItemizeSimdRandom(ctx).Lanes()]++
	}
	for n := range seen {
		switch n {
		case 1, 2, 4, 8, 16:
		default:
			t.Fatalf("unexpected lane count %d", n)
		}
	}
	// Single lanes come only from the 1/5 fallback.
	if c := seen[1]; c < trials/5-150 || c > trials/5+150 {
		t.Fatalf("single-lane views %d of %d", c, trials)
	}
}

func TestIndicesReturnsCopy(t *testing.T) {
	ctx, _ := newTestContext(12)
	v := mkVector("v", Width4)
	view := v.ItemizeSimd(ctx, []int{1, 2})
	idx := view.Indices()
	idx[0] = 3
	if ref(view) != "v.yz" {
		t.Fatalf("view mutated through Indices: %q", ref(view))
	}
}
