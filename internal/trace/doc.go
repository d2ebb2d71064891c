// Package trace records what numlit does while it works: CLI commands,
// scenario files, cases and individual lattice operations.
//
// Enable tracing via command-line flags:
//
//	numlit batch --trace=- --trace-level=detail scenarios/
//
// Tracers:
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer with run-wide span counters, dumped on panic
//   - MultiTracer: fans out to several tracers
//
// Levels map onto scopes: phase shows driver and file spans, detail adds
// cases, debug adds every seed/narrow/check.
//
// Tracers and the current parent span travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeFile, "file:ints.yaml")
//	defer span.End("")
package trace
