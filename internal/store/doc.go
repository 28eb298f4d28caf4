// Package store is the SQLite archive for computed saju results.
//
// Two tables:
//   - profiles: birth profiles keyed by their canonical fingerprint
//   - reports: computed results (chart, timing, trend, patterns, compat)
//     linked to a profile, with canonical params and result JSON
//
// # Ordering
//
// Reports carry a logical seq assigned at insert. Listings use
// ORDER BY seq ASC, id ASC COLLATE BINARY and never wall-clock time, so
// history output is identical however often it is read.
//
// # Idempotency
//
// A report is fingerprinted over its profile, kind, params and result
// (see internal/canon). UNIQUE(profile_id, kind, fingerprint) keeps an
// identical result from being archived twice; SaveReport returns the
// existing record instead.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
