// Package trace is the structured event log of enumgen.
//
// Every phase of a generation run opens a span (begin/end events with a
// duration) and may emit point events with key/value extras. Output is
// either human-readable text or NDJSON.
//
// # Usage
//
//	enumgen generate --trace=- --trace-level=stage ./...
//
// # Tracers
//
//   - Nop: zero overhead when tracing is off
//   - StreamTracer: writes each event immediately
//   - RingTracer: keeps the last N events in memory for dumps on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level admits every scope at or above its granularity:
//
//   - LevelError: nothing but the failure dump
//   - LevelRun: ScopeRun (the whole command)
//   - LevelStage: + ScopeTarget, ScopeStage (load, inspect, render, write)
//   - LevelDebug: + ScopeMember (one event per discovered member)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "inspect", parent)
//	defer span.End("")
package trace
