package types

import "strings"

// Qualifiers is the cv-qualifier set attached to a declaration.
type Qualifiers struct {
	Const    bool
	Volatile bool
}

// RenderLeading writes the qualifiers that precede the type in a declaration.
// Each qualifier is followed by a single space.
func (q Qualifiers) RenderLeading(out *strings.Builder) {
	if q.Const {
		out.WriteString("const ")
	}
	if q.Volatile {
		out.WriteString("volatile ")
	}
}

// Flipper is the slice of a random source needed to pick qualifiers.
type Flipper interface {
	Upto(n int) int
}

// RandomQualifiers picks qualifiers for a mutable variable: const is never
// chosen because generated statements assign to lanes, volatile with
// probability 1/4.
func RandomQualifiers(src Flipper) Qualifiers {
	return Qualifiers{Volatile: src.Upto(4) == 0}
}
