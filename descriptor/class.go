package descriptor

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-set/v3"
	"github.com/pablor21/typegen/types"
)

// ClassDescriptor describes a class with its type parameters (and those of its
// enclosing classes when it is inner) bound to type arguments.
type ClassDescriptor struct {
	original types.Type
	class    *types.Class
	env      types.Env
	outer    *ClassDescriptor

	resolved   lazy[types.Type]
	superclass lazy[*ClassDescriptor]
	interfaces lazy[[]*ClassDescriptor]
	members    lazy[[]*Member]
	ctor       lazy[*types.Constructor]

	implementations *types.SyncMap[*types.Class, *ClassDescriptor]
}

// Member is a field of a class layout with its resolved type
type Member struct {
	Field *types.Field
	// Owner is the descriptor of the declaring level of the hierarchy
	Owner *ClassDescriptor
	Type  Descriptor
}

func (m *Member) Name() string {
	return m.Field.Name()
}

func (m *Member) IsStatic() bool {
	return m.Field.IsStatic()
}

func (m *Member) String() string {
	return m.Field.Name() + " " + m.Type.String()
}

func newClassDescriptor(original types.Type, c *types.Class, env types.Env, outer *ClassDescriptor) *ClassDescriptor {
	return &ClassDescriptor{
		original:        original,
		class:           c,
		env:             env,
		outer:           outer,
		implementations: types.NewSyncMap[*types.Class, *ClassDescriptor](),
	}
}

// OfClass describes a raw class. Inner classes see the environment of their
// (raw) enclosing class.
func OfClass(c *types.Class) *ClassDescriptor {
	if cached, ok := classCache.Get(c.Key()); ok {
		return cached
	}
	env := types.Env{}
	var outer *ClassDescriptor
	if c.Enclosing() != nil {
		outer = OfClass(c.Enclosing())
		if c.IsInner() {
			env = outer.env
		}
	}
	return newClassDescriptor(c, c, env, outer)
}

func ofParameterized(p *types.ParameterizedType) *ClassDescriptor {
	if cached, ok := classCache.Get(p.Key()); ok {
		return cached
	}
	raw := p.Raw()
	env := types.Env{}
	var outer *ClassDescriptor
	if raw.Enclosing() != nil {
		if p.Owner() != nil {
			outer = DescribeClass(p.Owner())
		} else {
			outer = OfClass(raw.Enclosing())
		}
		if raw.IsInner() && outer != nil {
			env = env.Merge(outer.env)
		}
	}
	for i, v := range raw.TypeParams() {
		env[v] = p.Args()[i]
	}
	return newClassDescriptor(p, raw, env, outer)
}

func (d *ClassDescriptor) isDescriptor() {}

// Type returns the declared type the descriptor was built from
func (d *ClassDescriptor) Type() types.Type {
	return d.original
}

// Class returns the raw class
func (d *ClassDescriptor) Class() *types.Class {
	return d.class
}

func (d *ClassDescriptor) RawType() types.Type {
	return d.class
}

// Env returns the bindings of the class' type parameters, including those of
// the enclosing classes for inner classes
func (d *ClassDescriptor) Env() types.Env {
	return d.env
}

// Outer returns the descriptor of the enclosing class, nil for top-level classes
func (d *ClassDescriptor) Outer() *ClassDescriptor {
	return d.outer
}

func (d *ClassDescriptor) ResolvedType() types.Type {
	return d.resolved.get(func() types.Type {
		return types.Resolve(types.ResolvedClassType(d.class, d.env), nil)
	})
}

func (d *ClassDescriptor) Key() string {
	return d.ResolvedType().Key()
}

func (d *ClassDescriptor) Intern() Descriptor {
	return d.InternClass()
}

// InternClass is Intern returning the concrete descriptor
func (d *ClassDescriptor) InternClass() *ClassDescriptor {
	published, _ := classCache.GetOrSet(d.original.Key(), d)
	return published
}

func (d *ClassDescriptor) String() string {
	return d.ResolvedType().String()
}

// of describes a type declared inside this class, resolved against its bindings
func (d *ClassDescriptor) of(t types.Type) *ClassDescriptor {
	switch t := t.(type) {
	case nil:
		return nil
	case *types.ParameterizedType:
		return ofParameterized(types.Resolve(t, d.env).(*types.ParameterizedType))
	case *types.Class:
		return OfClass(t)
	}
	return DescribeClass(types.Resolve(t, d.env))
}

// Superclass returns the descriptor of the generic superclass, nil for
// interfaces, primitives and Object
func (d *ClassDescriptor) Superclass() *ClassDescriptor {
	return d.superclass.get(func() *ClassDescriptor {
		return d.of(d.class.GenericSuperclass())
	})
}

// Interfaces returns every interface implemented by the class or its
// superclasses, most specific first. When an interface is reached more than
// once the first binding is kept.
func (d *ClassDescriptor) Interfaces() []*ClassDescriptor {
	return d.interfaces.get(d.computeInterfaces)
}

func (d *ClassDescriptor) computeInterfaces() []*ClassDescriptor {
	var ret []*ClassDescriptor
	seen := set.New[*types.Class](4)
	add := func(i *ClassDescriptor) {
		if i != nil && seen.Insert(i.class) {
			ret = append(ret, i)
		}
	}
	for _, gi := range d.class.GenericInterfaces() {
		i := d.of(gi)
		add(i)
		if i != nil {
			for _, ii := range i.Interfaces() {
				add(ii)
			}
		}
	}
	if sc := d.Superclass(); sc != nil {
		for _, ii := range sc.Interfaces() {
			add(ii)
		}
	}
	return ret
}

// Interface returns the descriptor of iface as implemented by this class, nil
// when the class does not implement it
func (d *ClassDescriptor) Interface(iface *types.Class) *ClassDescriptor {
	for _, i := range d.Interfaces() {
		if i.class == iface {
			return i
		}
	}
	return nil
}

// Members returns the field layout: fields of this class first, then those of
// the superclasses not shadowed by name. Synthetic fields are left out.
func (d *ClassDescriptor) Members() []*Member {
	return d.members.get(d.computeMembers)
}

func (d *ClassDescriptor) computeMembers() []*Member {
	var ret []*Member
	seen := set.New[string](8)
	for cur := d; cur != nil; cur = cur.Superclass() {
		for _, f := range cur.class.Fields() {
			if f.IsSynthetic() || seen.Contains(f.Name()) {
				continue
			}
			seen.Insert(f.Name())
			t := types.Bound(types.Resolve(f.Type(), cur.env))
			ret = append(ret, &Member{Field: f, Owner: cur, Type: Describe(t)})
		}
	}
	return ret
}

// Member returns the layout entry for a field name
func (d *ClassDescriptor) Member(name string) (*Member, error) {
	for _, m := range d.Members() {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, types.NewMemberAccessError(d.class, name, errors.New("no such field"))
}

// MemberType returns the resolved type descriptor of a field
func (d *ClassDescriptor) MemberType(name string) (Descriptor, error) {
	m, err := d.Member(name)
	if err != nil {
		return nil, err
	}
	return m.Type, nil
}

// constructor finds the first constructor that runs with zero arguments
func (d *ClassDescriptor) constructor() *types.Constructor {
	return d.ctor.get(func() *types.Constructor {
		for _, c := range d.class.Constructors() {
			if _, err := invoke(d.class, c, zeroArgs(c)); err == nil {
				return c
			}
		}
		return nil
	})
}

func zeroArgs(c *types.Constructor) []any {
	args := make([]any, len(c.Params))
	for i, p := range c.Params {
		args[i] = types.ZeroValue(p)
	}
	return args
}

func invoke(class *types.Class, c *types.Constructor, args []any) (ret any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.NewMemberAccessError(class, "<init>", fmt.Errorf("constructor panicked: %v", r))
		}
	}()
	ret, err = c.New(args)
	if err != nil {
		return nil, types.NewMemberAccessError(class, "<init>", err)
	}
	return ret, nil
}

// NewInstance creates a zero instance of the class. For inner classes outer is
// the enclosing instance; when nil one is created the same way. Passing an
// enclosing instance to a class that needs none is an error.
func (d *ClassDescriptor) NewInstance(outer any) (any, error) {
	ctor := d.constructor()
	if ctor == nil {
		return nil, types.NewConstructionError(d.class, "no suitable constructor")
	}
	if d.outer == nil || !d.class.IsInner() {
		if outer != nil {
			return nil, types.NewConstructionError(d.class, "class does not require an enclosing instance")
		}
		return invoke(d.class, ctor, zeroArgs(ctor))
	}
	args := zeroArgs(ctor)
	if outer == nil {
		o, err := d.outer.NewInstance(nil)
		if err != nil {
			return nil, err
		}
		outer = o
	}
	if len(args) == 0 {
		return nil, types.NewConstructionError(d.class, "constructor does not accept an enclosing instance")
	}
	args[0] = outer
	return invoke(d.class, ctor, args)
}

// Implementation describes class c, a subtype of this descriptor's class,
// with its type parameters inferred from this descriptor's bindings.
// Results are memoized per descriptor.
func (d *ClassDescriptor) Implementation(c *types.Class) (*ClassDescriptor, error) {
	if c == d.class {
		return d, nil
	}
	if cached, ok := d.implementations.Get(c); ok {
		return cached, nil
	}
	env, err := Infer(c, d)
	if err != nil {
		return nil, fmt.Errorf("implementation %s of %s: %w", c.ID(), d, err)
	}
	impl := DescribeClass(types.ResolvedClassType(c, env))
	impl, _ = d.implementations.GetOrSet(c, impl)
	return impl, nil
}
