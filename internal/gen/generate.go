package gen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vecsmith/internal/constant"
	"vecsmith/internal/project"
	"vecsmith/internal/rng"
	"vecsmith/internal/scope"
	"vecsmith/internal/trace"
	"vecsmith/internal/types"
	"vecsmith/internal/vector"
	"vecsmith/internal/version"
)

// HeaderName is the runtime header every program includes.
const HeaderName = "vecsmith.h"

const funcName = "func_1"

// Program is one generated translation unit.
type Program struct {
	Seed uint64
	Text string
	// Vectors counts declared collective vectors, Views every registered
	// projection.
	Vectors       int
	Views         int
	ChecksumLines int
	Digest        project.Digest
}

type builder struct {
	opts    Options
	src     *rng.Source
	consts  *constant.Maker
	reg     *scope.Registry
	vctx    *vector.Context
	printer *vector.Printer
	body    *scope.Block
	nextID  int

	tracer trace.Tracer
	parent uint64
}

// Generate builds one program. The text depends only on opts and the tool
// version.
func Generate(ctx context.Context, opts Options) (*Program, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	src := rng.New(opts.Seed)
	b := &builder{
		opts:   opts,
		src:    src,
		consts: constant.NewMaker(src),
		reg:    scope.NewRegistry(),
		body:   scope.NewBlock(funcName, nil),
		tracer: trace.FromContext(ctx),
	}
	b.vctx = &vector.Context{Rand: src, Consts: b.consts, Vars: b.reg}
	b.printer = &vector.Printer{Init: vector.NewInitBuilder(src), Checksums: opts.Checksum}

	span := trace.Begin(b.tracer, trace.ScopeProgram, "program", trace.CurrentSpan(ctx)).
		WithExtra("seed", strconv.FormatUint(opts.Seed, 10))
	b.parent = span.ID()

	b.pass("globals", b.createGlobals)
	b.pass("locals", b.createLocals)
	var stmts []string
	err = b.passErr("statements", func() (err error) {
		stmts, err = b.statements(ctx)
		return err
	})
	if err != nil {
		span.End("cancelled")
		return nil, err
	}

	var text string
	b.pass("emit", func() { text = b.emit(stmts) })

	all := append(append([]vector.Variable(nil), b.reg.Globals()...), b.body.Locals()...)
	vectors, views := scope.Stats(append(all, b.reg.All()...))
	prog := &Program{
		Seed:          opts.Seed,
		Text:          text,
		Vectors:       vectors,
		Views:         views,
		ChecksumLines: strings.Count(text, vector.ChecksumFunc+"("),
		Digest:        project.Sum([]byte(text)),
	}
	span.WithExtra("vectors", strconv.Itoa(vectors)).
		WithExtra("views", strconv.Itoa(views)).
		WithExtra("draws", strconv.FormatUint(src.Draws(), 10)).
		End(prog.Digest.String()[:12])
	return prog, nil
}

func (b *builder) pass(name string, fn func()) {
	_ = b.passErr(name, func() error { fn(); return nil })
}

func (b *builder) passErr(name string, fn func() error) error {
	span := trace.Begin(b.tracer, trace.ScopePass, name, b.parent)
	var done func(string)
	if b.opts.Timer != nil {
		done = b.opts.Timer.Track(name)
	}
	err := fn()
	if done != nil {
		done("seed " + strconv.FormatUint(b.opts.Seed, 10))
	}
	span.End("")
	return err
}

func (b *builder) name(kind string) string {
	b.nextID++
	return b.opts.Prefix + kind + "_" + strconv.Itoa(b.nextID)
}

func (b *builder) randomElem() types.Type {
	scalars := types.Scalars()
	return scalars[b.src.Upto(len(scalars))]
}

func (b *builder) noteVariable(v *vector.Vector) {
	trace.Point(b.tracer, trace.ScopeVariable, "vector:"+v.Name(), b.parent,
		fmt.Sprintf("%s x%d", v.ElemType(), v.Width()))
}

// createGlobals declares globals initialised from constants only, so the
// literals stay constant expressions.
func (b *builder) createGlobals() {
	for i := 0; i < b.opts.Globals; i++ {
		elem := b.randomElem()
		v := vector.Create(b.vctx, nil, b.name("g"), elem, b.consts.Zero(elem), types.RandomQualifiers(b.src), nil)
		for extra := b.src.Upto(3); extra > 0; extra-- {
			v.AddInitValue(b.consts.Random(elem))
		}
		b.noteVariable(v)
	}
}

// createLocals declares the function's locals. A local whose element type
// matches a global takes one of that global's lanes as its designated
// initializer.
func (b *builder) createLocals() {
	globals := scope.Vectors(b.reg.Globals())
	for i := 0; i < b.opts.Locals; i++ {
		elem := b.randomElem()
		var init fmt.Stringer
		if same := sameElem(globals, elem); len(same) > 0 {
			init = same[b.src.Upto(len(same))].ItemizeSingle(b.vctx)
		}
		v := vector.Create(b.vctx, b.body, b.name("l"), elem, init, types.RandomQualifiers(b.src), nil)
		v.DeferInit = b.src.Percent(b.opts.DeferInitPercent)
		b.noteVariable(v)
	}
}

func (b *builder) statements(ctx context.Context) ([]string, error) {
	targets := scope.Vectors(append(append([]vector.Variable(nil), b.reg.Globals()...), b.body.Visible()...))
	if len(targets) == 0 {
		return nil, nil
	}
	out := make([]string, 0, b.opts.Statements)
	for i := 0; i < b.opts.Statements; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("seed %d: %w", b.opts.Seed, err)
		}
		dst := targets[b.src.Upto(len(targets))]
		if b.src.Flip() {
			out = append(out, b.laneAssign(dst))
		} else {
			out = append(out, b.vectorMix(dst, sameElem(targets, dst.ElemType())))
		}
	}
	return out, nil
}

// laneAssign writes one lane of dst from a single-lane reference or a fresh
// constant.
func (b *builder) laneAssign(dst *vector.Vector) string {
	lane := dst.ItemizeSingle(b.vctx)
	var rhs string
	if scalars := scope.Scalars(b.reg.All()); len(scalars) > 0 && b.src.Flip() {
		rhs = scalars[b.src.Upto(len(scalars))].String()
	} else {
		rhs = b.consts.Random(dst.ElemType()).String()
	}
	return fmt.Sprintf("%s = (%s)(%s);", lane, dst.ElemType(), rhs)
}

// vectorMix xors dst with a projection of a same-typed vector. Single-lane
// projections broadcast; wider ones must match the width of dst.
func (b *builder) vectorMix(dst *vector.Vector, pool []*vector.Vector) string {
	src := pool[b.src.Upto(len(pool))]
	view := src.ItemizeSimdRandom(b.vctx)
	var rhs string
	switch {
	case view.Lanes() == 1:
		rhs = fmt.Sprintf("(%s)(%s)", dst.ElemType(), view)
	case view.Lanes() != dst.Lanes():
		view = src.ItemizeSimdCount(b.vctx, dst.Lanes())
		rhs = view.String()
	default:
		rhs = view.String()
	}
	return fmt.Sprintf("%s = %s ^ %s;", dst.Name(), dst.Name(), rhs)
}

func sameElem(vars []*vector.Vector, elem types.Type) []*vector.Vector {
	var out []*vector.Vector
	for _, v := range vars {
		if v.ElemType().Equal(elem) {
			out = append(out, v)
		}
	}
	return out
}

func (b *builder) emit(stmts []string) string {
	var sb strings.Builder
	sb.Grow(4096)
	writeLine(&sb, 0, fmt.Sprintf("/* generated by vecsmith %s, seed %d */", version.Current().Version, b.opts.Seed))
	writeLine(&sb, 0, fmt.Sprintf("#include %q", HeaderName))
	writeLine(&sb, 0, "")

	writeLine(&sb, 0, "/* --- GLOBAL VARIABLES --- */")
	for _, g := range b.reg.Globals() {
		b.printer.RenderDefinition(&sb, g, 0)
	}
	writeLine(&sb, 0, "")

	writeLine(&sb, 0, "/* --- FORWARD DECLARATIONS --- */")
	writeLine(&sb, 0, "static void "+funcName+"(void);")
	writeLine(&sb, 0, "")

	writeLine(&sb, 0, "/* --- FUNCTIONS --- */")
	writeLine(&sb, 0, "static void "+funcName+"(void)")
	writeLine(&sb, 0, "{")
	locals := scope.Vectors(b.body.Locals())
	for _, l := range locals {
		b.printer.RenderDefinition(&sb, l, 1)
	}
	for _, l := range locals {
		if l.DeferInit {
			writeLine(&sb, 1, l.Name()+" = "+b.printer.Initializer(l)+";")
		}
	}
	for _, s := range stmts {
		writeLine(&sb, 1, s)
	}
	writeLine(&sb, 0, "}")
	writeLine(&sb, 0, "")

	writeLine(&sb, 0, "int main(int argc, char *argv[])")
	writeLine(&sb, 0, "{")
	writeLine(&sb, 1, "int "+vector.ChecksumFlag+" = 0;")
	writeLine(&sb, 1, "if (argc == 2 && strcmp(argv[1], \"1\") == 0) "+vector.ChecksumFlag+" = 1;")
	writeLine(&sb, 1, "platform_main_begin();")
	writeLine(&sb, 1, "crc32_gentab();")
	writeLine(&sb, 1, funcName+"();")
	for _, g := range b.reg.Globals() {
		b.printer.RenderChecksum(&sb, g)
	}
	writeLine(&sb, 1, "platform_main_end(crc32_context ^ 0xFFFFFFFFUL, "+vector.ChecksumFlag+");")
	writeLine(&sb, 1, "return 0;")
	writeLine(&sb, 0, "}")
	return sb.String()
}

func writeLine(sb *strings.Builder, indent int, line string) {
	for i := 0; i < indent; i++ {
		sb.WriteString("    ")
	}
	sb.WriteString(line)
	sb.WriteByte('\n')
}
