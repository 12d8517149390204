// Package vector models one vector-typed variable of a generated program.
//
// # Shapes
//
// A Vector is a collective variable: it owns storage, has a width of 2, 4, 8
// or 16 lanes and is declared exactly once. A View is a lane projection of a
// collective Vector; it selects one or more lanes (repeats allowed) and is
// rendered as the parent name plus a swizzle suffix:
//
//	v.y     width 2, lane 1
//	v.sa    width 16, lane 10
//	v.s02   width 8, lanes 0 and 2
//
// Views are only ever derived from a Vector, never from another View, so the
// projection depth is at most one. View has no itemize methods, which keeps
// that invariant in the type system.
//
// # Collaborators
//
// Randomness, the constant maker and the variable registries are passed in
// through Context. The literal builder keeps its own counter in InitBuilder,
// one per generated program.
//
// # Failures
//
// Every failure here is a broken contract in the calling generator code
// (bad element type, bad lane index, bad SIMD count). They panic with an
// error value and are never returned.
package vector
