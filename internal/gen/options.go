// Package gen emits complete C programs that exercise vector variables,
// their lane projections and nested vector literals.
package gen

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"vecsmith/internal/observ"
	"vecsmith/internal/project"
)

// ErrInvalidOptions is returned for options Generate cannot honour.
var ErrInvalidOptions = errors.New("invalid generator options")

// Options controls the shape of one generated program.
type Options struct {
	Seed       uint64
	Globals    int
	Locals     int
	Statements int
	// Checksum emits one transparent_crc call per global lane in main.
	Checksum bool
	// Prefix is prepended to every generated identifier.
	Prefix string
	// DeferInitPercent is the chance that a local is declared without an
	// initializer and assigned a literal at the top of the function body.
	DeferInitPercent int

	// Timer, when set, receives one phase per generation pass.
	Timer *observ.Timer
}

// FromConfig copies the [generator] section of a manifest.
func FromConfig(g project.Generator) Options {
	return Options{
		Seed:             g.Seed,
		Globals:          g.Globals,
		Locals:           g.Locals,
		Statements:       g.Statements,
		Checksum:         g.Checksum,
		Prefix:           g.Prefix,
		DeferInitPercent: g.DeferInitPercent,
	}
}

// Normalize returns opts with an NFKC-normalised prefix, or an error
// wrapping ErrInvalidOptions.
func (o Options) Normalize() (Options, error) {
	switch {
	case o.Globals < 0 || o.Locals < 0 || o.Statements < 0:
		return o, fmt.Errorf("%w: negative count (globals %d, locals %d, statements %d)", ErrInvalidOptions, o.Globals, o.Locals, o.Statements)
	case o.DeferInitPercent < 0 || o.DeferInitPercent > 100:
		return o, fmt.Errorf("%w: defer-init percent %d out of [0, 100]", ErrInvalidOptions, o.DeferInitPercent)
	}
	o.Prefix = norm.NFKC.String(o.Prefix)
	if !isIdentPrefix(o.Prefix) {
		return o, fmt.Errorf("%w: prefix %q is not a C identifier", ErrInvalidOptions, o.Prefix)
	}
	return o, nil
}

// isIdentPrefix accepts the empty string and ASCII C identifiers.
func isIdentPrefix(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
