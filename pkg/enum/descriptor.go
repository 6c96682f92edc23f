package enum

import (
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"

	"golang.org/x/exp/constraints"
)

// Source tells how a Descriptor was obtained.
type Source uint8

const (
	// SourceDeclared descriptors list every declared constant of the type.
	SourceDeclared Source = iota + 1
	// SourceScanned descriptors come from probing a scan window.
	SourceScanned
)

func (s Source) String() string {
	switch s {
	case SourceDeclared:
		return "declared"
	case SourceScanned:
		return "scanned"
	default:
		return "unknown"
	}
}

var (
	// ErrBadName reports a member name that is not a Go identifier.
	ErrBadName = errors.New("enum: member name is not an identifier")
	// ErrDuplicateName reports two members sharing a name.
	ErrDuplicateName = errors.New("enum: duplicate member name")
)

// Member is one named value of an enumeration.
type Member[E constraints.Integer] struct {
	Name  string
	Value E
}

// CName returns the name as a NUL-terminated byte slice.
func (m Member[E]) CName() []byte {
	out := make([]byte, len(m.Name)+1)
	copy(out, m.Name)
	return out
}

// Descriptor is the immutable member table of one enumeration type.
//
// Members are unique by value and ordered by ascending value. A value that
// was declared under several names keeps the first one as its canonical
// name; the others are aliases that only Lookup resolves.
type Descriptor[E constraints.Integer] struct {
	source   Source
	window   Window
	members  []Member[E]
	ordinals map[E]int
	byName   map[string]E
	aliases  map[string]E
}

// NewDescriptor builds a declared descriptor from members in declaration
// order.
func NewDescriptor[E constraints.Integer](members ...Member[E]) (*Descriptor[E], error) {
	d := &Descriptor[E]{
		source:   SourceDeclared,
		ordinals: make(map[E]int, len(members)),
		byName:   make(map[string]E, len(members)),
	}
	sorted := make([]Member[E], len(members))
	copy(sorted, members)
	slices.SortStableFunc(sorted, func(a, b Member[E]) int { return cmp.Compare(a.Value, b.Value) })

	for _, m := range sorted {
		if !token.IsIdentifier(m.Name) {
			return nil, fmt.Errorf("%w: %q", ErrBadName, m.Name)
		}
		if _, dup := d.byName[m.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, m.Name)
		}
		d.byName[m.Name] = m.Value
		if _, seen := d.ordinals[m.Value]; seen {
			if d.aliases == nil {
				d.aliases = make(map[string]E)
			}
			d.aliases[m.Name] = m.Value
			continue
		}
		d.ordinals[m.Value] = len(d.members)
		d.members = append(d.members, m)
	}
	return d, nil
}

// MustDescriptor is NewDescriptor that panics on error. Generated code uses it.
func MustDescriptor[E constraints.Integer](members ...Member[E]) *Descriptor[E] {
	d, err := NewDescriptor(members...)
	if err != nil {
		panic(err)
	}
	return d
}

// FromResult builds a scanned descriptor.
func FromResult[E constraints.Integer](res *Result[E]) *Descriptor[E] {
	d := &Descriptor[E]{
		source:   SourceScanned,
		window:   res.window,
		members:  make([]Member[E], 0, len(res.candidates)),
		ordinals: make(map[E]int, len(res.candidates)),
		byName:   make(map[string]E, len(res.candidates)),
	}
	for _, c := range res.candidates {
		if _, seen := d.ordinals[c.Value]; seen {
			continue
		}
		if _, dup := d.byName[c.Name]; !dup {
			d.byName[c.Name] = c.Value
		}
		d.ordinals[c.Value] = len(d.members)
		d.members = append(d.members, Member[E]{Name: c.Name, Value: c.Value})
	}
	return d
}

// Source reports how the descriptor was built.
func (d *Descriptor[E]) Source() Source { return d.source }

// Window is the scanned window; zero for declared descriptors.
func (d *Descriptor[E]) Window() Window { return d.window }

// Count is the number of distinct member values.
func (d *Descriptor[E]) Count() int { return len(d.members) }

// Name returns the canonical name of v, or "" when v is not a member.
func (d *Descriptor[E]) Name(v E) string {
	i, ok := d.ordinals[v]
	if !ok {
		return ""
	}
	return d.members[i].Name
}

// Lookup resolves a canonical name or alias.
func (d *Descriptor[E]) Lookup(name string) (E, bool) {
	if v, ok := d.byName[name]; ok {
		return v, true
	}
	v, ok := d.aliases[name]
	return v, ok
}

// Contains reports whether v is a member.
func (d *Descriptor[E]) Contains(v E) bool {
	_, ok := d.ordinals[v]
	return ok
}

// Ordinal returns the dense index of v in [0, Count()).
func (d *Descriptor[E]) Ordinal(v E) (int, bool) {
	i, ok := d.ordinals[v]
	return i, ok
}

// At returns the member with the given ordinal.
func (d *Descriptor[E]) At(ordinal int) (Member[E], bool) {
	if ordinal < 0 || ordinal >= len(d.members) {
		return Member[E]{}, false
	}
	return d.members[ordinal], true
}

// Members returns a copy of the member table.
func (d *Descriptor[E]) Members() []Member[E] {
	return slices.Clone(d.members)
}

// Values returns member values by ascending value.
func (d *Descriptor[E]) Values() []E {
	out := make([]E, len(d.members))
	for i, m := range d.members {
		out[i] = m.Value
	}
	return out
}

// Names returns canonical names in value order.
func (d *Descriptor[E]) Names() []string {
	out := make([]string, len(d.members))
	for i, m := range d.members {
		out[i] = m.Name
	}
	return out
}

// Aliases returns the non-canonical names, sorted.
func (d *Descriptor[E]) Aliases() []string {
	out := make([]string, 0, len(d.aliases))
	for name := range d.aliases {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
