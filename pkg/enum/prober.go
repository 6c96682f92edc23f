package enum

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Render produces the text the prober inspects for a candidate value.
type Render[E constraints.Integer] func(E) string

// DefaultRender formats v with fmt, which uses the String method of E when
// there is one and the bare integer otherwise.
func DefaultRender[E constraints.Integer](v E) string {
	return fmt.Sprint(v)
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// PrettyName extracts the bare member name from a rendered value.
//
// The trailing run of identifier characters is isolated; it is returned only
// when it is non-empty and starts with a letter or underscore. Renderings of
// values that are not members ("Fruit(42)", "42", "-3") yield "".
func PrettyName(text string) string {
	for i := len(text); i > 0; i-- {
		if !isIdentByte(text[i-1]) {
			text = text[i:]
			break
		}
	}
	if len(text) > 0 && isIdentStart(text[0]) {
		return text
	}
	return ""
}

// ProbeOption tunes a Prober.
type ProbeOption func(*probeConfig)

type probeConfig struct {
	suffixTrim int
}

// WithSuffixTrim drops n trailing bytes of every rendering before the name
// is extracted. Renderers that decorate their output with a fixed suffix
// need this.
func WithSuffixTrim(n int) ProbeOption {
	return func(c *probeConfig) {
		if n > 0 {
			c.suffixTrim = n
		}
	}
}

// Prober judges single candidate values of E.
type Prober[E constraints.Integer] struct {
	render     Render[E]
	suffixTrim int
}

// NewProber returns a prober using render, or DefaultRender when render is nil.
func NewProber[E constraints.Integer](render Render[E], opts ...ProbeOption) *Prober[E] {
	cfg := probeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if render == nil {
		render = DefaultRender[E]
	}
	return &Prober[E]{render: render, suffixTrim: cfg.suffixTrim}
}

// Name returns the member name for v, or "" when v is not a member.
func (p *Prober[E]) Name(v E) string {
	text := p.render(v)
	if p.suffixTrim > 0 {
		if p.suffixTrim >= len(text) {
			return ""
		}
		text = text[:len(text)-p.suffixTrim]
	}
	return PrettyName(text)
}

// Valid reports whether v renders as a member name.
func (p *Prober[E]) Valid(v E) bool {
	return p.Name(v) != ""
}

// Probe is NewProber(render).Name(v).
func Probe[E constraints.Integer](v E, render Render[E]) string {
	return NewProber(render).Name(v)
}

// Valid reports whether v renders through render as a member name.
func Valid[E constraints.Integer](v E, render Render[E]) bool {
	return Probe(v, render) != ""
}
