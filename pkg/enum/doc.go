// Package enum discovers the named members of integer-backed enumeration
// types.
//
// Go has no enum declarations: an "enumeration" here is any defined integer
// type together with the typed constants declared for it. Two discovery
// paths produce the same Descriptor:
//
//   - Declared members. cmd/enumgen inspects the package at build time and
//     emits an explicit (name, value) table as an EnumMembers method, which
//     Of finds through the Declared interface. This is exact: every
//     declared constant is present regardless of its magnitude, and no init
//     ordering is involved. Register installs a hand-built table instead.
//   - Scanning. When a type declares no members, Of falls back to
//     probing every integer of the type's scan window. Each candidate is
//     rendered to text (by default through fmt, i.e. the type's String
//     method) and PrettyName decides from that text alone whether the value
//     is a real member.
//
// # Scan window
//
// The window defaults to DefaultWindow, [-128, 128] inclusive. A type
// overrides it by implementing Ranged on its value receiver. Members whose
// value lies outside the window are silently absent from a scan; this is a
// limitation of scanning, not an error, and declared descriptors do not
// suffer from it.
//
// # Concurrency
//
// Descriptors are immutable once built. Of computes the descriptor for a
// type at most once per process and every caller observes the same value,
// so readers need no synchronization.
package enum
