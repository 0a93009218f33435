package scanner

import (
	"context"
	"sync"
	"testing"

	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/generator"
	"github.com/pablor21/typegen/logger"
	"github.com/pablor21/typegen/types"
)

const (
	modelsPkg     = "github.com/pablor21/typegen/scanner/testdata/starwars/models"
	outOfScopePkg = "github.com/pablor21/typegen/scanner/testdata/starwars/outofscope"
)

var (
	fixtureOnce   sync.Once
	fixture       *ScanningResult
	fixtureErr    error
	fixtureConfig = &Config{
		Packages:       []string{"./testdata/starwars/models", "./testdata/starwars/outofscope"},
		Visibility:     VisibilityLevelExported,
		MaxConcurrency: 4,
		LogLevel:       logger.LogLevelError,
	}
)

func scanFixture(t *testing.T) *ScanningResult {
	t.Helper()
	fixtureOnce.Do(func() {
		ctx := NewScanningContext(context.Background(), fixtureConfig).WithLogger(logger.NopLogger{})
		fixture, fixtureErr = NewScanner().Scan(ctx)
	})
	if fixtureErr != nil {
		t.Fatalf("scan failed: %v", fixtureErr)
	}
	return fixture
}

func mustClass(t *testing.T, r *ScanningResult, name string) *types.Class {
	t.Helper()
	c := r.Class(name)
	if c == nil {
		t.Fatalf("class %s not found", name)
	}
	return c
}

func TestScan_Classes(t *testing.T) {
	r := scanFixture(t)

	want := []string{
		modelsPkg + ".Droid",
		modelsPkg + ".EmbeddedInterface",
		modelsPkg + ".EmbeddedStruct",
		modelsPkg + ".Episode",
		modelsPkg + ".GenericStruct",
		modelsPkg + ".Human",
		modelsPkg + ".InterfaceExample",
		modelsPkg + ".Node",
		modelsPkg + ".Pair",
		modelsPkg + ".Side",
		modelsPkg + ".Wrapper",
		outOfScopePkg + ".OtherStruct",
	}
	if len(r.Classes) != len(want) {
		ids := make([]string, len(r.Classes))
		for i, c := range r.Classes {
			ids[i] = c.ID()
		}
		t.Fatalf("expected %d classes, got %v", len(want), ids)
	}
	for i, c := range r.Classes {
		if c.ID() != want[i] {
			t.Errorf("class %d: expected %s, got %s", i, want[i], c.ID())
		}
	}
	if len(r.Packages) != 2 || r.Packages[0] != modelsPkg || r.Packages[1] != outOfScopePkg {
		t.Errorf("unexpected packages %v", r.Packages)
	}

	for _, name := range []string{"Plain", "GenericSliceType", "Number"} {
		if r.Class(name) != nil {
			t.Errorf("%s must not be mapped", name)
		}
	}
}

func TestScan_Fields(t *testing.T) {
	r := scanFixture(t)

	tests := []struct {
		class string
		field string
		want  string
	}{
		{"Human", "Mutex", "Object"},
		{"Human", "Name", "String"},
		{"Human", "Family", "Human[]"},
		{"Human", "Friends", "Map<String, Human>"},
		{"Human", "DeepArray", "Map<String, OtherStruct[][]>"},
		{"Human", "Anonymous", "Object"},
		{"Human", "Born", "Instant"},
		{"Human", "Timeout", "long"},
		{"Human", "Episode", "Episode"},
		{"Human", "Side", "Side"},
		{"EmbeddedStruct", "ID", "long"},
		{"Droid", "Owner", "Human"},
		{"Droid", "Scores", "float[]"},
		{"Droid", "Payload", "byte[]"},
		{"Droid", "Rune", "int"},
		{"Droid", "Code", "char"},
		{"Node", "Next", "Node<T>"},
		{"Node", "Children", "Node<T>[]"},
		{"Node", "Value", "T"},
		{"Wrapper", "Strings", "GenericStruct<String>"},
		{"Wrapper", "Ints", "Node<Integer>"},
		{"OtherStruct", "Recursion", "OtherStruct"},
	}

	for _, tt := range tests {
		t.Run(tt.class+"."+tt.field, func(t *testing.T) {
			f := mustClass(t, r, tt.class).Field(tt.field)
			if f == nil {
				t.Fatalf("field not found")
			}
			if got := f.Type().String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	human := mustClass(t, r, "Human")
	for _, skipped := range []string{"Channel", "Callback", "secret", "EmbeddedStruct"} {
		if human.Field(skipped) != nil {
			t.Errorf("field %s must not be mapped", skipped)
		}
	}
}

func TestScan_Hierarchy(t *testing.T) {
	r := scanFixture(t)
	human := mustClass(t, r, "Human")
	embedded := mustClass(t, r, "EmbeddedStruct")
	iface := mustClass(t, r, "InterfaceExample")
	embeddedIface := mustClass(t, r, "EmbeddedInterface")

	if human.Superclass() != embedded {
		t.Errorf("expected superclass EmbeddedStruct, got %v", human.Superclass())
	}
	if !iface.IsInterface() || !embeddedIface.IsInterface() {
		t.Fatalf("expected interface classes")
	}
	if !iface.IsAssignableFrom(embedded) || !iface.IsAssignableFrom(human) {
		t.Errorf("expected EmbeddedStruct and Human to implement InterfaceExample")
	}
	if embeddedIface.IsAssignableFrom(human) {
		t.Errorf("Human does not implement EmbeddedInterface")
	}
	if !iface.IsAssignableFrom(embeddedIface) {
		t.Errorf("expected EmbeddedInterface to extend InterfaceExample")
	}

	// inherited members are part of the layout
	m, err := descriptor.OfClass(human).Member("ID")
	if err != nil {
		t.Fatal(err)
	}
	if m.Owner.Class() != embedded {
		t.Errorf("expected ID to be declared by EmbeddedStruct")
	}
}

func TestScan_TypeParams(t *testing.T) {
	r := scanFixture(t)

	node := mustClass(t, r, "Node")
	if params := node.TypeParams(); len(params) != 1 || params[0].Name() != "T" {
		t.Fatalf("unexpected type params %v", params)
	}

	pair := mustClass(t, r, "Pair")
	params := pair.TypeParams()
	if len(params) != 2 {
		t.Fatalf("unexpected type params %v", params)
	}
	if b := params[0].Bounds(); len(b) != 1 || b[0] != types.Type(types.Object) {
		t.Errorf("expected K bounded by Object, got %v", b)
	}
	if b := params[1].Bounds(); len(b) != 1 || b[0] != types.Type(mustClass(t, r, "InterfaceExample")) {
		t.Errorf("expected V bounded by InterfaceExample, got %v", b)
	}
}

func TestScan_Enums(t *testing.T) {
	r := scanFixture(t)

	tests := []struct {
		name      string
		constants []string
	}{
		{"Episode", []string{"NewHope", "Empire", "Jedi"}},
		{"Side", []string{"Light", "Dark"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustClass(t, r, tt.name)
			if !c.IsEnum() {
				t.Fatalf("expected an enum")
			}
			if c.Superclass() != types.Enum {
				t.Errorf("expected superclass Enum, got %v", c.Superclass())
			}
			got := c.EnumConstants()
			if len(got) != len(tt.constants) {
				t.Fatalf("expected %v, got %v", tt.constants, got)
			}
			for i, k := range got {
				if k.Name() != tt.constants[i] || k.Ordinal() != i {
					t.Errorf("constant %d: expected %s, got %s (%d)", i, tt.constants[i], k.Name(), k.Ordinal())
				}
			}
		})
	}
}

func TestScan_Registered(t *testing.T) {
	r := scanFixture(t)

	c, err := types.LookupName("Human")
	if err != nil || c != r.Class("Human") {
		t.Errorf("expected Human to be registered, got %v (%v)", c, err)
	}
	typ, err := types.Parse("Node<String>")
	if err != nil {
		t.Fatal(err)
	}
	if typ.String() != "Node<String>" {
		t.Errorf("unexpected parsed type %s", typ)
	}

	// scanning again reuses the mapped classes
	again, err := NewScanner().Scan(NewScanningContext(context.Background(), fixtureConfig).WithLogger(logger.NopLogger{}))
	if err != nil {
		t.Fatal(err)
	}
	if again.Class("Human") != r.Class("Human") {
		t.Errorf("expected the same class on a second scan")
	}
}

func TestScan_Generate(t *testing.T) {
	scanFixture(t)
	policy := generator.NewDefaultPolicy(generator.DefaultOptions().WithSeed(1))

	for _, expr := range []string{"Human", "Droid", "Node<String>", "Wrapper"} {
		t.Run(expr, func(t *testing.T) {
			d := descriptor.Analyze(types.MustParse(expr))
			v, err := generator.Generate(d, policy, generator.WithLogger(logger.NopLogger{}))
			if err != nil {
				t.Fatal(err)
			}
			obj, ok := v.(*types.Instance)
			if !ok || obj.Class() != types.RawClass(d.ResolvedType()) {
				t.Errorf("expected an instance of %s, got %#v", expr, v)
			}
		})
	}

	d := descriptor.Analyze(types.MustParse("Human"))
	v, _ := generator.Generate(d, policy, generator.WithLogger(logger.NopLogger{}))
	h := v.(*types.Instance)
	if ep, _ := h.Get("Episode"); ep == nil {
		t.Errorf("expected an episode")
	} else if c := ep.(*types.EnumConstant); c.Class().Name() != "Episode" {
		t.Errorf("unexpected constant %v", c)
	}
	if id, _ := h.Get("ID"); id == nil {
		t.Errorf("expected the inherited ID to be generated")
	}
}

func TestWarmUp_Cancelled(t *testing.T) {
	r := scanFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := NewScanningContext(ctx, fixtureConfig)
	if err := WarmUp(sc, r.Classes); err == nil {
		t.Error("expected a cancellation error")
	}
}
