// Package harness runs conformance scenarios against the engine.
//
// A scenario names a birth profile (from a CUE file or inline), a list of
// operations to run against it and assertions over the resulting trace and
// the report archive. Each scenario runs against a fresh in-memory store
// with deterministic run IDs, so traces compare byte-for-byte against
// golden files.
//
// # Scenario Format
//
//	name: sample_timing
//	description: "2024 scores a B for the sample chart"
//	profile:
//	  file: profiles.cue
//	  name: alice
//	partner:
//	  inline:
//	    birth_year: 1991
//	    pillars: {year: 辛未, month: 庚寅, day: 己丑, hour: 甲子}
//	steps:
//	  - op: timing
//	    args: {year: 2024}
//	    expect: {grade: B, weighted_score: 63}
//	  - op: trend
//	    args: {start: 2024, end: 2028}
//	assertions:
//	  - type: trace_order
//	    ops: [timing, trend]
//	  - type: final_state
//	    table: reports
//	    where: {kind: timing}
//	    expect: {seq: 1}
//
// # Operations
//
//   - chart: full report (yongsin, natal roles, patterns)
//   - yongsin: favorable-element decision
//   - timing: layered score; args year, month, day
//   - trend: multi-year trend; args start, end, month
//   - patterns: secondary pattern detectors
//   - compat: chart compatibility and fused guidance with the partner
//
// # Assertion Types
//
//   - trace_contains: an op appears in the trace with matching args
//   - trace_order: ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - final_state: one archive row matches where and carries expect
package harness
