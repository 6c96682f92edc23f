// Package enumset implements fixed-capacity sets over the members of an
// enumeration type.
//
// A Set[E] is a bit vector with one bit per member of E as reported by
// enum.Of[E]: capacity equals the number of members, and a member's bit is
// its ordinal in the descriptor, not its raw value. Sparse or large member
// values therefore need no more bits than dense ones, and the complement of
// a set only ever contains real members.
//
// Sets have value semantics. Operations never modify a bit vector that may
// be shared; the in-place forms replace the receiver's vector instead.
package enumset

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/constraints"

	"enumkit/pkg/enum"
)

// ErrNotMember reports a value that is not a member of the set's type and
// therefore has no bit.
var ErrNotMember = errors.New("enumset: value is not a member")

// Set is a set of members of E. The zero value is the empty set.
type Set[E constraints.Integer] struct {
	bits *bitset.BitSet
}

func capacity[E constraints.Integer]() uint {
	return uint(enum.Of[E]().Count())
}

// vector returns the backing vector, materializing an empty one for the
// zero value. The result must not be modified.
func (s Set[E]) vector() *bitset.BitSet {
	if s.bits == nil {
		return bitset.New(capacity[E]())
	}
	return s.bits
}

func index[E constraints.Integer](v E) (uint, error) {
	i, ok := enum.Of[E]().Ordinal(v)
	if !ok {
		var zero E
		return 0, fmt.Errorf("%w: %T(%d)", ErrNotMember, zero, v)
	}
	return uint(i), nil
}

// Empty returns the set with no members.
func Empty[E constraints.Integer]() Set[E] {
	return Set[E]{bits: bitset.New(capacity[E]())}
}

// Full returns the set of every member of E.
func Full[E constraints.Integer]() Set[E] {
	return Empty[E]().Complement()
}

// Singleton returns the set holding only m.
func Singleton[E constraints.Integer](m E) (Set[E], error) {
	return Of(m)
}

// Of returns the set holding ms.
func Of[E constraints.Integer](ms ...E) (Set[E], error) {
	bits := bitset.New(capacity[E]())
	for _, m := range ms {
		i, err := index(m)
		if err != nil {
			return Set[E]{}, err
		}
		bits.Set(i)
	}
	return Set[E]{bits: bits}, nil
}

// MustOf is Of that panics when a value is not a member.
func MustOf[E constraints.Integer](ms ...E) Set[E] {
	s, err := Of(ms...)
	if err != nil {
		panic(err)
	}
	return s
}

// Join is the union of two bare members, the same as
// Singleton(a).Union(Singleton(b)).
func Join[E constraints.Integer](a, b E) (Set[E], error) {
	return Of(a, b)
}

// Add returns s with m added.
func (s Set[E]) Add(m E) (Set[E], error) {
	i, err := index(m)
	if err != nil {
		return s, err
	}
	bits := s.vector().Clone()
	bits.Set(i)
	return Set[E]{bits: bits}, nil
}

// Remove returns s without m. Removing a non-member is a no-op.
func (s Set[E]) Remove(m E) Set[E] {
	i, ok := enum.Of[E]().Ordinal(m)
	if !ok {
		return s
	}
	bits := s.vector().Clone()
	bits.Clear(uint(i))
	return Set[E]{bits: bits}
}

// Union returns s | o.
func (s Set[E]) Union(o Set[E]) Set[E] {
	return Set[E]{bits: s.vector().Union(o.vector())}
}

// Intersect returns s & o.
func (s Set[E]) Intersect(o Set[E]) Set[E] {
	return Set[E]{bits: s.vector().Intersection(o.vector())}
}

// SymmetricDiff returns s ^ o.
func (s Set[E]) SymmetricDiff(o Set[E]) Set[E] {
	return Set[E]{bits: s.vector().SymmetricDifference(o.vector())}
}

// Complement returns ~s: every member of E not in s.
func (s Set[E]) Complement() Set[E] {
	return Set[E]{bits: s.vector().Complement()}
}

// UnionWith sets s to s | o.
func (s *Set[E]) UnionWith(o Set[E]) { *s = s.Union(o) }

// IntersectWith sets s to s & o.
func (s *Set[E]) IntersectWith(o Set[E]) { *s = s.Intersect(o) }

// SymmetricDiffWith sets s to s ^ o.
func (s *Set[E]) SymmetricDiffWith(o Set[E]) { *s = s.SymmetricDiff(o) }

// Any reports whether s has at least one member.
func (s Set[E]) Any() bool {
	return s.bits != nil && s.bits.Any()
}

// Bool is the truth value of s, the same as Any.
func (s Set[E]) Bool() bool { return s.Any() }

// Size is the capacity of the set: the member count of E.
func (s Set[E]) Size() int {
	return int(s.vector().Len())
}

// Count is the number of members in s.
func (s Set[E]) Count() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Contains reports whether m is in s.
func (s Set[E]) Contains(m E) bool {
	i, ok := enum.Of[E]().Ordinal(m)
	return ok && s.bits != nil && s.bits.Test(uint(i))
}

// Equal reports whether s and o hold the same members.
func (s Set[E]) Equal(o Set[E]) bool {
	return s.vector().Equal(o.vector())
}

// All yields the members of s in ordinal order.
func (s Set[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		if s.bits == nil {
			return
		}
		desc := enum.Of[E]()
		for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
			m, _ := desc.At(int(i))
			if !yield(m.Value) {
				return
			}
		}
	}
}

// Members returns the members of s in ordinal order.
func (s Set[E]) Members() []E {
	out := make([]E, 0, s.Count())
	for m := range s.All() {
		out = append(out, m)
	}
	return out
}

// String renders s as {A, B}.
func (s Set[E]) String() string {
	desc := enum.Of[E]()
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for m := range s.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(desc.Name(m))
	}
	b.WriteByte('}')
	return b.String()
}
