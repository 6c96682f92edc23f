package enum

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/exp/constraints"
)

// ErrBadWindow reports a scan window whose max is not above its min.
var ErrBadWindow = errors.New("enum: scan window requires max > min")

// Window is an inclusive range of integers probed during a scan.
type Window struct {
	Min int
	Max int
}

// DefaultWindow is used for types that do not implement Ranged.
var DefaultWindow = Window{Min: -128, Max: 128}

// Ranged overrides the scan window of an enumeration type.
type Ranged interface {
	EnumRange() (min, max int)
}

// Validate returns ErrBadWindow when w is empty or inverted.
func (w Window) Validate() error {
	if w.Max <= w.Min {
		return fmt.Errorf("%w: got %s", ErrBadWindow, w)
	}
	if w.Width() <= 0 {
		return fmt.Errorf("%w: %s is too wide", ErrBadWindow, w)
	}
	return nil
}

// Width is the number of candidates probed, both bounds included.
func (w Window) Width() int {
	return w.Max - w.Min + 1
}

func (w Window) String() string {
	return fmt.Sprintf("[%d, %d]", w.Min, w.Max)
}

// Contains reports whether v lies inside w.
func Contains[E constraints.Integer](w Window, v E) bool {
	n, err := safecast.Conv[int](v)
	if err != nil {
		return false
	}
	return n >= w.Min && n <= w.Max
}

// WindowOf returns the scan window configured for E.
func WindowOf[E constraints.Integer]() Window {
	var zero E
	if r, ok := any(zero).(Ranged); ok {
		lo, hi := r.EnumRange()
		return Window{Min: lo, Max: hi}
	}
	return DefaultWindow
}
