package vector

import (
	"fmt"
	"strings"

	"vecsmith/internal/types"
)

const (
	seedStart   = 0xAB
	seedCeiling = 0x7AB
	seedScale   = 487
)

// Flipper is the coin used to decide whether a slot becomes a nested vector.
type Flipper interface {
	Flip() bool
}

// InitBuilder produces nested vector literals. Its counter is a second,
// deterministic stream that picks candidates; nesting decisions come from
// the primary source. One builder serves one generated program.
type InitBuilder struct {
	seed uint64
	coin Flipper
}

// NewInitBuilder returns a builder with the counter at its start value.
func NewInitBuilder(coin Flipper) *InitBuilder {
	return &InitBuilder{seed: seedStart, coin: coin}
}

// Seed returns the current counter value.
func (b *InitBuilder) Seed() uint64 { return b.seed }

// next derives the pick value for slot pos and advances the counter.
func (b *InitBuilder) next(pos int) uint64 {
	p := uint64(pos)
	r := (b.seed*b.seed + (p+7)*(p+13)) * seedScale
	b.seed++
	if b.seed >= seedCeiling {
		b.seed = seedStart
	}
	return r
}

// Build renders a literal of the given shape, e.g.
//
//	(VECTOR(int32_t, 4))(a, (VECTOR(int32_t, 2))(b, a), c)
//
// Every slot is filled either with a candidate or, with probability 1/2
// when more than two slots remain, with a nested literal of the largest
// legal width that still leaves one slot free. Nested literals draw from the
// same candidates.
func (b *InitBuilder) Build(elem types.Type, width Width, candidates []string) string {
	if len(candidates) == 0 {
		panic(fmt.Errorf("vector: no initializer candidates for %s", elem))
	}
	if !width.Valid() {
		panic(fmt.Errorf("vector: cannot build initializer of width %d", width))
	}
	var sb strings.Builder
	sb.Grow(64 * int(width))
	b.build(&sb, elem, width, candidates)
	return sb.String()
}

func (b *InitBuilder) build(sb *strings.Builder, elem types.Type, width Width, candidates []string) {
	sb.WriteByte('(')
	renderVectorType(sb, elem, width)
	sb.WriteString(")(")
	for pos := 0; pos < int(width); {
		r := b.next(pos)
		remaining := int(width) - pos
		if remaining > int(Widths[0]) && b.coin.Flip() {
			sub, _ := largestBelow(remaining - 1)
			b.build(sb, elem, sub, candidates)
			pos += int(sub)
		} else {
			sb.WriteString(candidates[r%uint64(len(candidates))])
			pos++
		}
		if pos < int(width) {
			sb.WriteString(", ")
		}
	}
	sb.WriteByte(')')
}
