package enum

import (
	"fortio.org/safecast"
	"golang.org/x/exp/constraints"
)

// Candidate is a scanned value that rendered as a member name.
type Candidate[E constraints.Integer] struct {
	Offset int // distance from Window.Min
	Value  E
	Name   string
}

// Result is the outcome of scanning one window.
type Result[E constraints.Integer] struct {
	window     Window
	candidates []Candidate[E]
}

// Scan probes every integer of w in ascending order and keeps the ones that
// render as member names. Integers that E cannot represent are skipped.
// A result with no candidates is valid.
func Scan[E constraints.Integer](w Window, render Render[E], opts ...ProbeOption) (*Result[E], error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	prober := NewProber(render, opts...)

	width := w.Width()
	valid := make([]bool, width)
	names := make([]string, width)
	values := make([]E, width)
	for off := 0; off < width; off++ {
		v, err := safecast.Conv[E](w.Min + off)
		if err != nil {
			continue
		}
		values[off] = v
		names[off] = prober.Name(v)
		valid[off] = names[off] != ""
	}

	count := 0
	for _, ok := range valid {
		if ok {
			count++
		}
	}
	candidates := make([]Candidate[E], 0, count)
	for off, ok := range valid {
		if ok {
			candidates = append(candidates, Candidate[E]{Offset: off, Value: values[off], Name: names[off]})
		}
	}
	return &Result[E]{window: w, candidates: candidates}, nil
}

// MustScan is Scan that panics on an invalid window.
func MustScan[E constraints.Integer](w Window, render Render[E], opts ...ProbeOption) *Result[E] {
	res, err := Scan(w, render, opts...)
	if err != nil {
		panic(err)
	}
	return res
}

// Window returns the scanned window.
func (r *Result[E]) Window() Window { return r.window }

// Count is the number of members found.
func (r *Result[E]) Count() int { return len(r.candidates) }

// Members returns the members found in ascending offset order.
func (r *Result[E]) Members() []Candidate[E] {
	out := make([]Candidate[E], len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Values returns the member values in ascending offset order.
func (r *Result[E]) Values() []E {
	out := make([]E, len(r.candidates))
	for i, c := range r.candidates {
		out[i] = c.Value
	}
	return out
}
