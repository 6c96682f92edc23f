package enum

import (
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
)

// registry maps a (*E)(nil) key to the *slot[E] of that type.
var registry sync.Map

type slot[E constraints.Integer] struct {
	once sync.Once
	desc *Descriptor[E]
}

func slotFor[E constraints.Integer]() *slot[E] {
	v, _ := registry.LoadOrStore(any((*E)(nil)), &slot[E]{})
	return v.(*slot[E])
}

// Declared lists the members of an enumeration type explicitly. Files
// written by cmd/enumgen implement it on the value receiver.
type Declared[E constraints.Integer] interface {
	EnumMembers() []Member[E]
}

// Register installs d as the descriptor of E. It must run before the first
// call to Of for E; types that implement Declared do not need it.
// Installing a second descriptor for the same type panics.
func Register[E constraints.Integer](d *Descriptor[E]) {
	if d == nil {
		panic("enum: Register with nil descriptor")
	}
	s := slotFor[E]()
	installed := false
	s.once.Do(func() {
		s.desc = d
		installed = true
	})
	if !installed {
		var zero E
		panic(fmt.Sprintf("enum: descriptor for %T already installed", zero))
	}
}

// Of returns the descriptor of E. Without a registered descriptor it is
// built once from EnumMembers when E implements Declared, else by scanning
// WindowOf[E] with DefaultRender. The result is shared by every later call.
// A Ranged type reporting an invalid window panics on first use.
//
// Of may run during package variable initialization, before any init
// function of the package declaring E.
func Of[E constraints.Integer]() *Descriptor[E] {
	s := slotFor[E]()
	s.once.Do(func() {
		var zero E
		if d, ok := any(zero).(Declared[E]); ok {
			s.desc = MustDescriptor(d.EnumMembers()...)
			return
		}
		s.desc = FromResult(MustScan(WindowOf[E](), DefaultRender[E]))
	})
	return s.desc
}

// Name returns the member name of v, or "" when v is not a member of E.
func Name[E constraints.Integer](v E) string { return Of[E]().Name(v) }

// Values returns the members of E by ascending value.
func Values[E constraints.Integer]() []E { return Of[E]().Values() }

// Count returns the number of members of E.
func Count[E constraints.Integer]() int { return Of[E]().Count() }

// Lookup resolves a member of E by name.
func Lookup[E constraints.Integer](name string) (E, bool) { return Of[E]().Lookup(name) }
