package gen

import (
	"path/filepath"
	"strings"
	"testing"

	"enumkit/internal/inspect"
	"enumkit/internal/project"
	"enumkit/pkg/enum"
)

func fruitEnum() *inspect.Enum {
	return &inspect.Enum{
		Package: "fruit",
		PkgPath: "example.com/fruit",
		Dir:     "/src/fruit",
		File:    "/src/fruit/fruit.go",
		Type:    "Fruit",
		Basic:   "uint8",
		Members: []inspect.Member{
			{Name: "FruitApple", Value: inspect.Value{Abs: 0}},
			{Name: "FruitBanana", Value: inspect.Value{Abs: 1}},
			{Name: "FruitOrange", Value: inspect.Value{Abs: 2}},
			{Name: "FruitCitrus", Value: inspect.Value{Abs: 2}, Alias: "FruitOrange"},
		},
	}
}

const fruitGolden = `// Code generated by enumgen; DO NOT EDIT.

package fruit

import (
	"strconv"

	"enumkit/pkg/enum"
)

func (f Fruit) String() string {
	switch f {
	case FruitApple:
		return "apple"
	case FruitBanana:
		return "banana"
	case FruitOrange:
		return "orange"
	}
	return "Fruit(" + strconv.FormatUint(uint64(f), 10) + ")"
}

// EnumMembers lists every declared constant of Fruit.
func (Fruit) EnumMembers() []enum.Member[Fruit] {
	return []enum.Member[Fruit]{
		{Name: "FruitApple", Value: FruitApple},
		{Name: "FruitBanana", Value: FruitBanana},
		{Name: "FruitOrange", Value: FruitOrange},
		{Name: "FruitCitrus", Value: FruitCitrus},
	}
}
`

func TestRenderGolden(t *testing.T) {
	out, err := Render(fruitEnum(), Options{Transform: project.TransformLower, TrimPrefix: "Fruit"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != fruitGolden {
		t.Fatalf("output mismatch:\n--- got ---\n%s\n--- want ---\n%s", out, fruitGolden)
	}
}

func TestRenderSignedWindowAndEmpty(t *testing.T) {
	e := &inspect.Enum{
		Package: "lvl",
		Type:    "Level",
		Signed:  true,
		Window:  &enum.Window{Min: -10, Max: 10},
	}
	out, err := Render(e, Options{Runtime: "example.com/rt/enum"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	src := string(out)
	for _, want := range []string{
		`"example.com/rt/enum"`,
		"func (Level) EnumRange() (min, max int) { return -10, 10 }",
		`return "Level(" + strconv.FormatInt(int64(l), 10) + ")"`,
		"func (Level) EnumMembers() []enum.Member[Level] {",
		"return []enum.Member[Level]{}",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("output missing %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "switch") || strings.Contains(src, "func init()") {
		t.Fatalf("empty enum must not render a switch:\n%s", src)
	}
}

func TestReceiverAvoidsMembers(t *testing.T) {
	e := &inspect.Enum{Package: "p", Type: "Flag", Members: []inspect.Member{{Name: "f"}, {Name: "fv", Value: inspect.Value{Abs: 1}}}}
	if got := receiverName(e); got != "fvv" {
		t.Fatalf("receiverName = %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		ident, trim string
		tr          project.Transform
		want        string
	}{
		{"HTTPServer", "", project.TransformNone, "HTTPServer"},
		{"HTTPServer", "", project.TransformSnake, "http_server"},
		{"HTTPServer", "", project.TransformKebab, "http-server"},
		{"HTTPServer", "", project.TransformTitle, "Http Server"},
		{"HTTPServer", "", project.TransformLower, "httpserver"},
		{"max_retry", "", project.TransformUpper, "MAXRETRY"},
		{"ColorDarkRed", "Color", project.TransformKebab, "dark-red"},
		{"Color", "Color", project.TransformLower, "color"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.ident, tt.trim, tt.tr); got != tt.want {
			t.Errorf("DisplayName(%q, %q, %s) = %q, want %q", tt.ident, tt.trim, tt.tr, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	tests := map[string]string{
		"HTTPServer":      "HTTP Server",
		"max_retry2Count": "max retry2 Count",
		"Level2Max":       "Level2 Max",
		"_private":        "private",
		"A":               "A",
	}
	for in, want := range tests {
		if got := strings.Join(Words(in), " "); got != want {
			t.Errorf("Words(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	e := fruitEnum()
	if got := OutputPath(e, "", ""); got != filepath.Join("/src/fruit", "fruit_enum.go") {
		t.Fatalf("default output = %q", got)
	}
	if got := OutputPath(e, "names.go", ""); got != filepath.Join("/src/fruit", "names.go") {
		t.Fatalf("relative output = %q", got)
	}
	if got := OutputPath(e, "", "_string.go"); got != filepath.Join("/src/fruit", "fruit_string.go") {
		t.Fatalf("suffix output = %q", got)
	}
}

func TestIsOutput(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{Header + "\n\npackage p\n", true},
		{"\xEF\xBB\xBF" + Header + "\r\npackage p\n", true},
		{"// Code generated by protoc-gen-go. DO NOT EDIT.\n\npackage p\n", false},
		{"package p\n\n" + Header + "\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsOutput([]byte(tt.src)); got != tt.want {
			t.Errorf("IsOutput(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
