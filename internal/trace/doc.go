// Package trace writes structured events about a csclean run: the command
// span, one span per pipeline pass and, at higher levels, per-file and
// per-edit events.
//
//	csclean --trace=- --remove-comments < A.cs
//	csclean concat --trace=run.ndjson --trace-level=detail src/
//
// Levels are off, error, phase, detail and debug; error events are written
// at every level but off. Spans nest through the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "lex")
//	defer span.End("")
package trace
