// Package trace is the logging and tracing subsystem of vecsmith.
//
// It records spans for CLI commands, generated programs, generation passes
// and individual variables so slow or stuck runs can be diagnosed.
//
// # Usage
//
//	vecsmith gen --trace=- --trace-level=detail
//	vecsmith batch --trace=run.ndjson --trace-mode=both
//
// # Tracers
//
//   - Nop: disabled tracing, zero cost
//   - StreamTracer: writes each event immediately (stderr or a file)
//   - RingTracer: keeps the last N events for a dump after a generator panic
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Levels are off, error, phase, detail and debug. Scopes, coarse to fine:
// driver (CLI, batch), program (one generated file), pass (globals, locals,
// statements, emit) and variable (one vector or view). LevelPhase shows driver and
// program spans, LevelDetail adds passes, LevelDebug adds variables.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "globals", parent)
//	defer span.End("")
package trace
