package types

import (
	"strings"
	"testing"
)

const parsePkg = "example.com/parse"

var (
	// Outer<A> { class Inner<B> {}; static class Nested {} }
	parseOuter  = NewClass(parsePkg, "Outer", ModNone)
	parseInner  = parseOuter.NewNested("Inner", ModNone)
	parseNested = parseOuter.NewNested("Nested", ModStatic)
	parseBox    = NewClass(parsePkg, "Box", ModNone)
)

func init() {
	parseOuter.AddTypeParam("A")
	parseInner.AddTypeParam("B")
	parseBox.AddTypeParam("T")
	MustRegister(parseOuter, parseInner, parseNested, parseBox)
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"int", "int"},
		{"int[][]", "int[][]"},
		{"Map<String, List<? extends Number>>", "Map<String, List<? extends Number>>"},
		{"List<? super Integer>", "List<? super Integer>"},
		{"List<?>", "List<?>"},
		{" Map < String , Integer > ", "Map<String, Integer>"},
		{"Outer<String>.Inner<Integer>", "Outer<String>.Inner<Integer>"},
		{"Outer.Nested", "Outer.Nested"},
		{"Outer<Long>.Inner<Long>[]", "Outer<Long>.Inner<Long>[]"},
		{"example.com/parse.Box<String>", "Box<String>"},
		{"builtin.String", "String"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParse_Structure(t *testing.T) {
	got := MustParse("Outer<String>.Inner<Integer>")
	pt, ok := got.(*ParameterizedType)
	if !ok {
		t.Fatalf("expected a parameterized type, got %T", got)
	}
	if pt.Raw() != parseInner {
		t.Errorf("expected raw Inner, got %s", pt.Raw().ID())
	}
	owner, ok := pt.Owner().(*ParameterizedType)
	if !ok || owner.Raw() != parseOuter || owner.Args()[0] != Type(String) {
		t.Errorf("expected owner Outer<String>, got %v", pt.Owner())
	}

	nested := MustParse("Outer.Nested")
	if nested != Type(parseNested) {
		t.Errorf("expected the nested class itself, got %v", nested)
	}

	boxed := MustParse("Box<int[]>").(*ParameterizedType)
	arr, ok := boxed.Args()[0].(*ArrayType)
	if !ok || arr.Elem() != Type(PrimInt) {
		t.Errorf("expected int[] argument, got %v", boxed.Args()[0])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		expr string
		msg  string
	}{
		{"", "expected type name"},
		{"Unknown", "unknown class"},
		{"List<String", "expected , or >"},
		{"List<String, Integer>", "wrong number of type arguments"},
		{"int[", "expected ]"},
		{"String extra", "unexpected"},
		{"Outer.Missing", "unknown class"},
		{"Map<String,>", "expected type name"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestParseWith_CustomLookup(t *testing.T) {
	local := NewClass("", "Local", ModNone)
	lookup := func(name string) (*Class, error) {
		if name == "Local" {
			return local, nil
		}
		return LookupName(name)
	}
	got, err := ParseWith("List<Local>", lookup)
	if err != nil {
		t.Fatal(err)
	}
	if pt := got.(*ParameterizedType); pt.Args()[0] != Type(local) {
		t.Errorf("expected the local class, got %v", pt.Args()[0])
	}
}
