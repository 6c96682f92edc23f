package enum_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"enumkit/pkg/enum"
)

type fruit uint8

const (
	Apple fruit = iota
	Banana
	Orange
)

func (f fruit) String() string {
	switch f {
	case Apple:
		return "Apple"
	case Banana:
		return "Banana"
	case Orange:
		return "Orange"
	}
	return "fruit(" + strconv.Itoa(int(f)) + ")"
}

func TestPrettyName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "Apple", want: "Apple"},
		{text: "main.Apple", want: "Apple"},
		{text: "auto n() [E = Fruit, V = Fruit::Orange]", want: ""},
		{text: "auto n() [E = Fruit, V = Fruit::Orange", want: "Orange"},
		{text: "_private", want: "_private"},
		{text: "v2", want: "v2"},
		{text: "fruit(42)", want: ""},
		{text: "(Fruit)42", want: ""},
		{text: "42", want: ""},
		{text: "-3", want: ""},
		{text: "", want: ""},
		{text: "a b", want: "b"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, enum.PrettyName(tt.text))
		})
	}
}

func TestProbeUsesStringMethod(t *testing.T) {
	assert.Equal(t, "Banana", enum.Probe(Banana, nil))
	assert.Equal(t, "", enum.Probe(fruit(7), nil))
}

func TestProbeWithoutStringMethod(t *testing.T) {
	type raw int
	assert.Equal(t, "", enum.Probe(raw(1), nil))
}

func TestProberSuffixTrim(t *testing.T) {
	render := func(f fruit) string { return f.String() + "]" }
	assert.Equal(t, "", enum.NewProber(render).Name(Apple))

	p := enum.NewProber(render, enum.WithSuffixTrim(1))
	assert.Equal(t, "Apple", p.Name(Apple))
	assert.True(t, p.Valid(Orange))
	assert.False(t, p.Valid(fruit(9)))
}

func TestProberSuffixTrimLongerThanText(t *testing.T) {
	p := enum.NewProber(func(fruit) string { return "ab" }, enum.WithSuffixTrim(5))
	assert.Equal(t, "", p.Name(Apple))
}

func TestValidWithRender(t *testing.T) {
	assert.True(t, enum.Valid(Banana, enum.DefaultRender[fruit]))
	assert.False(t, enum.Valid(fruit(42), enum.DefaultRender[fruit]))
	assert.True(t, enum.Valid(fruit(42), func(fruit) string { return "pkg.Answer" }))

	type raw int
	assert.False(t, enum.Valid(raw(1), nil))
}
