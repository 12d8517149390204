package fuzztests

import (
	"context"
	"strings"
	"testing"

	"vecsmith/internal/gen"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// generatorSeeds are (seed, globals, locals, statements, defer percent)
// tuples covering empty programs, wide programs and all-deferred locals.
var generatorSeeds = [][5]uint64{
	{0, 0, 0, 0, 0},
	{1, 4, 3, 8, 25},
	{42, 1, 0, 16, 0},
	{0xFFFFFFFFFFFFFFFF, 8, 8, 32, 100},
	{0xAB, 2, 6, 4, 50},
}

func addGeneratorSeeds(f *testing.F) {
	for _, s := range generatorSeeds {
		f.Add(s[0], uint8(s[1]), uint8(s[2]), uint8(s[3]), uint8(s[4]), s[0]%2 == 0)
	}
}

// addLiteralSeeds feeds the literal parser with real initializers taken from
// generated programs plus a few malformed ones.
func addLiteralSeeds(f *testing.F) {
	for _, s := range generatorSeeds[1:] {
		prog, err := gen.Generate(context.Background(), gen.Options{
			Seed:    s[0],
			Globals: int(s[1]),
			Locals:  int(s[2]),
		})
		if err != nil {
			f.Fatalf("seed program %d: %v", s[0], err)
		}
		for _, line := range strings.Split(prog.Text, "\n") {
			if _, literal, ok := strings.Cut(line, " = "); ok && strings.HasPrefix(literal, "(VECTOR(") {
				f.Add([]byte(strings.TrimSuffix(literal, ";")))
			}
		}
	}
	f.Add([]byte("(VECTOR(int8_t, 2))(a, b"))
	f.Add([]byte("(VECTOR(int8_t, 300))(a)"))
	f.Add([]byte("(VECTOR(, 2))((((("))
	f.Add([]byte(""))
}
