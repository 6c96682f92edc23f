// Package inspect discovers the declared members of an integer-backed Go
// type.
//
// A package is loaded once with golang.org/x/tools/go/packages; Inspect
// then walks its constant declarations in source order and collects every
// package-level constant whose type is exactly the requested named type.
// Findings that a user should see (unknown type, non-integer type, members
// outside a configured window, aliases) are reported as diagnostics.
package inspect
