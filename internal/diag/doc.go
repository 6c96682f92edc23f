// Package diag defines the diagnostic model shared by the enumgen phases.
//
// # Purpose
//
//   - Capture findings of manifest validation, package loading, member
//     discovery and code emission as plain data.
//   - Let producers emit through a Reporter without knowing where the
//     diagnostics end up (a Bag, a deduplicating wrapper, nothing).
//
// # Scope
//
// Package diag does no formatting beyond the stable one-line form of
// FormatShort, no IO and no CLI integration. Colored and JSON rendering
// lives in internal/diagfmt.
//
// # Data model
//
//   - Severity: Info, Warning or Error. Only errors stop a target.
//   - Code: numeric identifier with a stable ID (CFG, LOAD, INS, GEN ranges).
//   - Message: short and actionable.
//   - Primary: source.Span of the offending declaration or manifest.
//   - Notes: extra locations, e.g. the first declaration of an aliased value.
//
// A member lying outside a configured scan window is reported as a
// warning (INS3004), never as an error: it is the documented limitation of
// windowed discovery.
package diag
