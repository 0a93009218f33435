package generator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/logger"
	"github.com/pablor21/typegen/types"
)

const genPkg = "example.com/gen"

var (
	// Box<T> { T value; List<T> items; int[] counts; Map<String, Integer> tags; Instant created }
	box = types.NewClass(genPkg, "Box", types.ModNone)
	// Chicken { Egg egg }, Egg { Chicken chicken }
	chicken = types.NewClass(genPkg, "Chicken", types.ModNone)
	egg     = types.NewClass(genPkg, "Egg", types.ModNone)
	// OuterClass<T> { class MyClass<U> { T t; U u } }
	outerClass = types.NewClass(genPkg, "OuterClass", types.ModNone)
	myClass    = outerClass.NewNested("MyClass", types.ModNone)
	// Infinite<T> { Infinite<T> next; T value }
	infinite = types.NewClass(genPkg, "Infinite", types.ModNone)
	// Sized { Map<String, String> theMap; List<List<Integer>> theList }
	sized = types.NewClass(genPkg, "Sized", types.ModNone)
	// enums
	myEnum      = types.NewClass(genPkg, "MyEnum", types.ModEnum|types.ModFinal).AddEnumConstants("A", "B", "C")
	myOtherEnum = types.NewClass(genPkg, "MyOtherEnum", types.ModEnum|types.ModFinal).AddEnumConstants("X", "Y")
	// Shape is abstract and has no implementation
	shape = types.NewClass(genPkg, "Shape", types.ModAbstract)
	// Counter { int count }
	counter = types.NewClass(genPkg, "Counter", types.ModNone)
	// Secret { String secret } lives in an ignored package; Visible extends it
	secret  = types.NewClass(genPkg+"/hidden/deep", "Secret", types.ModNone)
	visible = types.NewClass(genPkg, "Visible", types.ModNone)
)

func init() {
	t := box.AddTypeParam("T")
	box.AddField("value", t)
	box.AddField("items", types.Parameterized(types.List, t))
	box.AddField("counts", types.ArrayOf(types.PrimInt))
	box.AddField("tags", types.Parameterized(types.Map, types.String, types.Integer))
	box.AddField("created", types.Instant)
	box.AddField("instances", types.PrimInt, types.FieldStatic)

	chicken.AddField("egg", egg)
	egg.AddField("chicken", chicken)

	ot := outerClass.AddTypeParam("T")
	u := myClass.AddTypeParam("U")
	myClass.AddField("t", ot)
	myClass.AddField("u", u)

	it := infinite.AddTypeParam("T")
	infinite.AddField("next", types.Parameterized(infinite, it))
	infinite.AddField("value", it)

	sized.AddField("theMap", types.Parameterized(types.Map, types.String, types.String))
	sized.AddField("theList", types.Parameterized(types.List, types.Parameterized(types.List, types.Integer)))

	for _, e := range []*types.Class{myEnum, myOtherEnum} {
		e.Extends(types.Parameterized(types.Enum, e))
	}

	counter.AddField("count", types.PrimInt)

	secret.AddField("secret", types.String)
	visible.Extends(secret)
	visible.AddField("shown", types.String)
}

func seeded(seed uint64) *DefaultPolicy {
	return NewDefaultPolicy(DefaultOptions().WithSeed(seed))
}

func mustGenerate(t *testing.T, typ types.Type, policy Policy) any {
	t.Helper()
	v, err := Generate(descriptor.Analyze(typ), policy, WithLogger(logger.NopLogger{}))
	if err != nil {
		t.Fatalf("generate %s: %v", typ, err)
	}
	return v
}

func field(t *testing.T, v any, name string) any {
	t.Helper()
	obj, ok := v.(*types.Instance)
	if !ok {
		t.Fatalf("expected an object, got %T", v)
	}
	f, ok := obj.Get(name)
	if !ok {
		t.Fatalf("%s has no field %s", obj.Class().Name(), name)
	}
	return f
}

func TestGenerate_Box(t *testing.T) {
	v := mustGenerate(t, types.Parameterized(box, types.String), seeded(1))

	obj := v.(*types.Instance)
	if obj.Class() != box {
		t.Fatalf("expected a Box, got %s", obj.Class().Name())
	}

	value, ok := field(t, v, "value").(string)
	if !ok {
		t.Fatalf("expected a string value, got %T", field(t, v, "value"))
	}
	if _, err := uuid.Parse(value); err != nil {
		t.Errorf("expected a uuid, got %q", value)
	}

	items, ok := field(t, v, "items").(*types.ListValue)
	if !ok {
		t.Fatalf("expected a list, got %T", field(t, v, "items"))
	}
	if items.Class() != types.ArrayList {
		t.Errorf("expected an ArrayList, got %s", items.Class().Name())
	}
	if items.Len() < 3 || items.Len() > 5 {
		t.Errorf("expected 3 to 5 items, got %d", items.Len())
	}
	for _, item := range items.Items() {
		if _, ok := item.(string); !ok {
			t.Errorf("expected string items, got %T", item)
		}
	}

	counts := field(t, v, "counts").(*types.Array)
	if counts.Len() < 3 || counts.Len() > 5 {
		t.Errorf("expected 3 to 5 counts, got %d", counts.Len())
	}
	for _, c := range counts.Items() {
		if _, ok := c.(int32); !ok {
			t.Errorf("expected int32 counts, got %T", c)
		}
	}

	tags := field(t, v, "tags").(*types.MapValue)
	if tags.Class() != types.LinkedHashMap {
		t.Errorf("expected a LinkedHashMap, got %s", tags.Class().Name())
	}
	for _, k := range tags.Keys() {
		val, _ := tags.Get(k)
		if _, ok := k.(string); !ok {
			t.Errorf("expected string keys, got %T", k)
		}
		if _, ok := val.(int32); !ok {
			t.Errorf("expected int32 values, got %T", val)
		}
	}

	created := field(t, v, "created").(time.Time)
	opts := DefaultOptions()
	if created.Before(opts.MinTime) || created.After(opts.MaxTime) {
		t.Errorf("time %s out of range", created)
	}

	if _, ok := obj.Get("instances"); ok {
		t.Errorf("static fields must not be generated")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	typ := types.Parameterized(box, types.Parameterized(types.List, types.Long))

	a := types.Export(mustGenerate(t, typ, seeded(42)))
	b := types.Export(mustGenerate(t, typ, seeded(42)))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different values:\n%v\n%v", a, b)
	}

	c := types.Export(mustGenerate(t, typ, seeded(43)))
	if reflect.DeepEqual(a, c) {
		t.Errorf("different seeds produced identical values")
	}
}

// sizePolicy picks collection sizes by path
type sizePolicy struct {
	*DefaultPolicy
}

var listElem = regexp.MustCompile(`^theList\[\d+\]$`)

func (p sizePolicy) CollectionSize(d descriptor.Descriptor, path string) int {
	switch {
	case path == "theMap":
		return 0
	case path == "theList":
		return 2
	case listElem.MatchString(path):
		return 1
	}
	return p.DefaultPolicy.CollectionSize(d, path)
}

func TestGenerate_PathKeyedSizes(t *testing.T) {
	v := mustGenerate(t, sized, sizePolicy{seeded(7)})

	if m := field(t, v, "theMap").(*types.MapValue); m.Len() != 0 {
		t.Errorf("expected an empty map, got %d entries", m.Len())
	}
	list := field(t, v, "theList").(*types.ListValue)
	if list.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", list.Len())
	}
	for _, item := range list.Items() {
		inner, ok := item.(*types.ListValue)
		if !ok || inner.Len() != 1 {
			t.Fatalf("expected a single element list, got %#v", item)
		}
		if _, ok := inner.Items()[0].(int32); !ok {
			t.Errorf("expected an Integer element, got %T", inner.Items()[0])
		}
	}
}

// pathRecorder records every path the generator asks about
type pathRecorder struct {
	*DefaultPolicy
	paths []string
}

func (p *pathRecorder) Generate(d descriptor.Descriptor, path string, next Next) (any, error) {
	p.paths = append(p.paths, path)
	return p.DefaultPolicy.Generate(d, path, next)
}

func (p *pathRecorder) CollectionSize(d descriptor.Descriptor, path string) int {
	return 1
}

func TestGenerate_Paths(t *testing.T) {
	p := &pathRecorder{DefaultPolicy: seeded(3)}
	mustGenerate(t, types.Parameterized(box, types.String), p)

	want := []string{
		"",
		"value",
		"items",
		"items[0]",
		"counts",
		"counts[0]",
		"tags",
		"tags[0][:key]",
		"tags[0][:value]",
		"created",
	}
	if !reflect.DeepEqual(p.paths, want) {
		t.Errorf("expected paths %v, got %v", want, p.paths)
	}
}

func TestGenerate_Leaves(t *testing.T) {
	p := seeded(11)

	t.Run("enum", func(t *testing.T) {
		v := mustGenerate(t, myEnum, p)
		c, ok := v.(*types.EnumConstant)
		if !ok || c.Class() != myEnum {
			t.Errorf("expected a MyEnum constant, got %#v", v)
		}
	})

	t.Run("generic enum", func(t *testing.T) {
		v := mustGenerate(t, types.Parameterized(types.Enum, myOtherEnum), p)
		c, ok := v.(*types.EnumConstant)
		if !ok || c.Class() != myOtherEnum {
			t.Errorf("expected a MyOtherEnum constant, got %#v", v)
		}
	})

	t.Run("class literal", func(t *testing.T) {
		v := mustGenerate(t, types.Parameterized(types.ClassClass, types.Wildcard()), p)
		if _, ok := v.(types.Type); !ok {
			t.Errorf("expected a type, got %T", v)
		}
	})

	t.Run("boxed array", func(t *testing.T) {
		v := mustGenerate(t, types.ArrayOf(types.Double), p)
		arr := v.(*types.Array)
		for _, item := range arr.Items() {
			if _, ok := item.(float64); !ok {
				t.Errorf("expected float64 items, got %T", item)
			}
		}
	})

	t.Run("scalars", func(t *testing.T) {
		tests := []struct {
			class *types.Class
			kind  any
		}{
			{types.PrimBoolean, false},
			{types.Byte, int8(0)},
			{types.PrimChar, uint16(0)},
			{types.Short, int16(0)},
			{types.PrimLong, int64(0)},
			{types.Float, float32(0)},
		}
		for _, tt := range tests {
			v := mustGenerate(t, tt.class, p)
			if reflect.TypeOf(v) != reflect.TypeOf(tt.kind) {
				t.Errorf("%s: expected %T, got %T", tt.class.Name(), tt.kind, v)
			}
		}
		if v := mustGenerate(t, types.Void, p); v != nil {
			t.Errorf("expected nil for Void, got %v", v)
		}
	})
}

func TestGenerate_DateTimes(t *testing.T) {
	p := seeded(5)
	opts := DefaultOptions()

	for _, c := range types.DateTimeClasses {
		t.Run(c.Name(), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				v, ok := mustGenerate(t, c, p).(time.Time)
				if !ok {
					t.Fatalf("expected a time, got %T", v)
				}
				switch c {
				case types.LocalDate:
					if v.Hour() != 0 || v.Minute() != 0 || v.Second() != 0 || v.Nanosecond() != 0 {
						t.Errorf("expected a date, got %s", v)
					}
				case types.LocalTime, types.OffsetTime:
					if v.Year() != 0 || v.YearDay() != 1 {
						t.Errorf("expected a time of day, got %s", v)
					}
				default:
					if v.Before(opts.MinTime) || v.After(opts.MaxTime) {
						t.Errorf("time %s out of range", v)
					}
				}
				if v.Nanosecond()%int(time.Millisecond) != 0 {
					t.Errorf("expected millisecond precision, got %s", v)
				}
			}
		})
	}
}

func TestGenerate_RecursionCutByDefault(t *testing.T) {
	v := mustGenerate(t, chicken, seeded(1))
	e := field(t, v, "egg")
	if back := field(t, e, "chicken"); back != nil {
		t.Errorf("expected the recursion to be cut with nil, got %#v", back)
	}
}

// cyclePolicy closes the cycle on the outermost ancestor at the second recursion
type cyclePolicy struct {
	*DefaultPolicy
}

func (p cyclePolicy) OnRecursion(d descriptor.Descriptor, path string, ancestors []any, next Next) (any, error) {
	if len(ancestors) >= 2 {
		return ancestors[0], nil
	}
	return next()
}

func TestGenerate_RecursionWithAncestors(t *testing.T) {
	root := mustGenerate(t, chicken, cyclePolicy{seeded(1)})

	e1 := field(t, root, "egg")
	c2 := field(t, e1, "chicken")
	if c2 == nil || c2 == root {
		t.Fatalf("expected a second chicken, got %#v", c2)
	}
	e2 := field(t, c2, "egg")
	if e2 == nil || e2 == e1 {
		t.Fatalf("expected a second egg, got %#v", e2)
	}
	if back := field(t, e2, "chicken"); back != root {
		t.Errorf("expected the cycle to close on the root")
	}
}

// depthPolicy keeps recursing and cuts at a fixed path depth
type depthPolicy struct {
	*DefaultPolicy
}

func (p depthPolicy) Generate(d descriptor.Descriptor, path string, next Next) (any, error) {
	if len(strings.Split(path, ".")) > 3 {
		return nil, nil
	}
	return p.DefaultPolicy.Generate(d, path, next)
}

func (p depthPolicy) OnRecursion(d descriptor.Descriptor, path string, ancestors []any, next Next) (any, error) {
	return next()
}

func TestGenerate_DepthCutoff(t *testing.T) {
	v := mustGenerate(t, types.Parameterized(infinite, types.String), depthPolicy{seeded(9)})

	depth := 0
	for cur := v; cur != nil; cur = field(t, cur, "next") {
		depth++
		if cur.(*types.Instance).Class() != infinite {
			t.Fatalf("unexpected class at depth %d", depth)
		}
	}
	if depth != 4 {
		t.Errorf("expected 4 levels, got %d", depth)
	}
}

func TestGenerate_OuterClass(t *testing.T) {
	typ := types.ParameterizedIn(types.Parameterized(outerClass, types.String), myClass, types.Integer)
	v := mustGenerate(t, typ, seeded(2))

	obj := v.(*types.Instance)
	outer, ok := obj.Outer().(*types.Instance)
	if !ok || outer.Class() != outerClass {
		t.Fatalf("expected an OuterClass enclosing instance, got %#v", obj.Outer())
	}
	if _, ok := field(t, v, "t").(string); !ok {
		t.Errorf("expected t bound to String, got %T", field(t, v, "t"))
	}
	if _, ok := field(t, v, "u").(int32); !ok {
		t.Errorf("expected u bound to Integer, got %T", field(t, v, "u"))
	}
}

func TestGenerate_IgnoredPackages(t *testing.T) {
	opts := DefaultOptions().WithSeed(4)
	opts.IgnoredPackages = []string{types.BuiltinPackage, genPkg + "/hidden"}
	v := mustGenerate(t, visible, NewDefaultPolicy(opts))

	if s := field(t, v, "secret"); s != nil {
		t.Errorf("expected the ignored member to stay nil, got %v", s)
	}
	if s, ok := field(t, v, "shown").(string); !ok || s == "" {
		t.Errorf("expected a generated string, got %#v", s)
	}
}

// nilPolicy returns nil for every int
type nilPolicy struct {
	*DefaultPolicy
}

func (p nilPolicy) Generate(d descriptor.Descriptor, path string, next Next) (any, error) {
	if d.RawType() == types.Type(types.PrimInt) {
		return nil, nil
	}
	return p.DefaultPolicy.Generate(d, path, next)
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("nil descriptor", func(t *testing.T) {
		if _, err := Generate(nil, seeded(1)); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("abstract class", func(t *testing.T) {
		_, err := Generate(descriptor.Analyze(shape), seeded(1), WithLogger(logger.NopLogger{}))
		var ce *types.ConstructionError
		if !errors.As(err, &ce) {
			t.Fatalf("expected a construction error, got %v", err)
		}
		if ce.Class != shape {
			t.Errorf("unexpected class %v", ce.Class)
		}
	})

	t.Run("nil primitive field", func(t *testing.T) {
		_, err := Generate(descriptor.Analyze(counter), nilPolicy{seeded(1)}, WithLogger(logger.NopLogger{}))
		var mae *types.MemberAccessError
		if !errors.As(err, &mae) {
			t.Fatalf("expected a member access error, got %v", err)
		}
		if mae.Member != "count" {
			t.Errorf("unexpected member %s", mae.Member)
		}
	})

	t.Run("nil primitive array element", func(t *testing.T) {
		_, err := Generate(descriptor.Analyze(types.ArrayOf(types.PrimInt)), nilPolicy{seeded(1)}, WithLogger(logger.NopLogger{}))
		var mae *types.MemberAccessError
		if !errors.As(err, &mae) {
			t.Fatalf("expected a member access error, got %v", err)
		}
		if mae.Class != types.PrimInt || mae.Member != "[0]" {
			t.Errorf("unexpected member %v.%s", mae.Class, mae.Member)
		}
	})
}

func TestNew_Defaults(t *testing.T) {
	g := New(nil)
	if _, ok := g.policy.(*DefaultPolicy); !ok {
		t.Errorf("expected a default policy, got %T", g.policy)
	}
	v, err := g.Generate(descriptor.Analyze(types.String))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(string); !ok {
		t.Errorf("expected a string, got %T", v)
	}
}
