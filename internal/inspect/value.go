package inspect

import (
	"go/constant"
	"math"
	"strconv"
)

// Value is an exact 64-bit integer of either signedness.
type Value struct {
	Neg bool
	Abs uint64
}

// ValueOf converts an integer constant. ok is false for values outside
// [math.MinInt64, math.MaxUint64].
func ValueOf(c constant.Value) (Value, bool) {
	c = constant.ToInt(c)
	if c.Kind() != constant.Int {
		return Value{}, false
	}
	if constant.Sign(c) >= 0 {
		u, exact := constant.Uint64Val(c)
		return Value{Abs: u}, exact
	}
	i, exact := constant.Int64Val(c)
	if !exact {
		return Value{}, false
	}
	if i == math.MinInt64 {
		return Value{Neg: true, Abs: 1 << 63}, true
	}
	return Value{Neg: true, Abs: uint64(-i)}, true
}

// Compare orders values numerically.
func (v Value) Compare(o Value) int {
	switch {
	case v.Neg && !o.Neg:
		return -1
	case !v.Neg && o.Neg:
		return 1
	}
	c := 0
	switch {
	case v.Abs < o.Abs:
		c = -1
	case v.Abs > o.Abs:
		c = 1
	}
	if v.Neg {
		return -c
	}
	return c
}

// Int returns v as an int when it fits.
func (v Value) Int() (int, bool) {
	if v.Neg {
		if v.Abs > uint64(math.MaxInt)+1 {
			return 0, false
		}
		return int(-int64(v.Abs-1) - 1), true //nolint:gosec // bounded above
	}
	if v.Abs > math.MaxInt {
		return 0, false
	}
	return int(v.Abs), true //nolint:gosec // bounded above
}

func (v Value) String() string {
	s := strconv.FormatUint(v.Abs, 10)
	if v.Neg {
		return "-" + s
	}
	return s
}
