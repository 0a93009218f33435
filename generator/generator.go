// Package generator builds random object graphs for described types. Every
// decision is delegated to a Policy; the generator only walks the type
// structure depth-first and keeps the path and recursion stacks.
package generator

import (
	"fmt"

	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/logger"
	"github.com/pablor21/typegen/types"
)

// Generator walks one top-level generation. It is not safe for concurrent
// use; Generate creates a new one per call.
type Generator struct {
	policy Policy
	logger logger.Logger
	state  *state
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for debug traces
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a generator using policy, or a default policy with random seed
// when policy is nil.
func New(policy Policy, opts ...Option) *Generator {
	if policy == nil {
		policy = NewDefaultPolicy(DefaultOptions())
	}
	g := &Generator{
		policy: policy,
		logger: logger.NewTaggedLogger("GEN"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a value for d under policy
func Generate(d descriptor.Descriptor, policy Policy, opts ...Option) (any, error) {
	return New(policy, opts...).Generate(d)
}

// Generate produces a value for d. Each call starts from an empty path and
// recursion stack.
func (g *Generator) Generate(d descriptor.Descriptor) (any, error) {
	if d == nil {
		return nil, fmt.Errorf("generate: nil descriptor")
	}
	g.state = newState()
	g.logger.Debug(fmt.Sprintf("generating %s", d))
	v, err := g.node(d)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", d, err)
	}
	return v, nil
}

func (g *Generator) node(d descriptor.Descriptor) (any, error) {
	path := g.state.path()

	if cd, ok := d.(*descriptor.ClassDescriptor); ok {
		if impl := g.policy.ImplementationFor(cd, path); impl != nil && impl != cd.Class() {
			id, err := cd.Implementation(impl)
			if err != nil {
				return nil, err
			}
			g.logger.Debug(fmt.Sprintf("%s: %s implemented by %s", displayPath(path), cd, id))
			return g.node(id)
		}
	}

	create := func() (any, error) {
		return g.policy.Generate(d, path, func() (any, error) {
			return g.construct(d)
		})
	}
	if ancestors := g.state.instances(d.Key()); len(ancestors) > 0 {
		return g.policy.OnRecursion(d, path, ancestors, create)
	}
	return create()
}

func (g *Generator) construct(d descriptor.Descriptor) (any, error) {
	switch d := d.(type) {
	case *descriptor.ClassDescriptor:
		return g.constructClass(d)
	case *descriptor.ArrayDescriptor:
		return g.constructArray(d)
	}
	return nil, fmt.Errorf("unsupported descriptor %T", d)
}

func (g *Generator) constructArray(d *descriptor.ArrayDescriptor) (any, error) {
	n := g.policy.CollectionSize(d, g.state.path())
	if n < 0 {
		n = 0
	}
	arr := d.NewInstance(n)
	primitive := isPrimitive(d.Elem().RawType())
	for i := 0; i < n; i++ {
		g.state.pushIndex(i)
		v, err := g.node(d.Elem())
		g.state.pop()
		if err != nil {
			return nil, err
		}
		if v == nil && primitive {
			return nil, types.NewMemberAccessError(types.RawClass(d.Elem().RawType()), fmt.Sprintf("[%d]", i),
				fmt.Errorf("cannot assign nil to primitive array element"))
		}
		arr.Set(i, v)
	}
	return arr, nil
}

func (g *Generator) constructClass(d *descriptor.ClassDescriptor) (any, error) {
	var outer any
	if d.Class().IsInner() && d.Outer() != nil {
		o, err := g.node(d.Outer())
		if err != nil {
			return nil, err
		}
		outer = o
	}
	instance, err := d.NewInstance(outer)
	if err != nil {
		return nil, err
	}

	key := d.Key()
	g.state.pushInstance(key, instance)
	defer g.state.popInstance(key)

	if coll, ok := instance.(types.CollectionValue); ok {
		if err := g.fillCollection(d, coll); err != nil {
			return nil, err
		}
	}
	if m, ok := instance.(types.MappingValue); ok {
		if err := g.fillMap(d, m); err != nil {
			return nil, err
		}
	}
	if err := g.fillMembers(d, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// typeArgDescriptor describes the binding of param as seen by d's view of the
// interface declaring it
func typeArgDescriptor(d *descriptor.ClassDescriptor, iface *types.Class, index int) descriptor.Descriptor {
	view := d
	if d.Class() != iface {
		view = d.Interface(iface)
	}
	param := iface.TypeParams()[index]
	if view == nil {
		return descriptor.Analyze(param)
	}
	return descriptor.Analyze(view.Env().GetOrDefault(param))
}

func (g *Generator) fillCollection(d *descriptor.ClassDescriptor, coll types.CollectionValue) error {
	elem := typeArgDescriptor(d, types.Collection, 0)
	n := g.policy.CollectionSize(d, g.state.path())
	for i := 0; i < n; i++ {
		g.state.pushIndex(i)
		v, err := g.node(elem)
		g.state.pop()
		if err != nil {
			return err
		}
		coll.Add(v)
	}
	return nil
}

func (g *Generator) fillMap(d *descriptor.ClassDescriptor, m types.MappingValue) error {
	keyDesc := typeArgDescriptor(d, types.Map, 0)
	valueDesc := typeArgDescriptor(d, types.Map, 1)
	n := g.policy.CollectionSize(d, g.state.path())
	for i := 0; i < n; i++ {
		g.state.pushIndex(i)

		g.state.pushMapKey()
		k, err := g.node(keyDesc)
		g.state.pop()
		if err != nil {
			g.state.pop()
			return err
		}

		g.state.pushMapValue()
		v, err := g.node(valueDesc)
		g.state.pop()
		if err != nil {
			g.state.pop()
			return err
		}

		m.Put(k, v)
		g.state.pop()
	}
	return nil
}

func (g *Generator) fillMembers(d *descriptor.ClassDescriptor, instance any) error {
	for _, m := range d.Members() {
		if m.IsStatic() || g.policy.IsIgnoredMember(d, g.state.path(), m) {
			continue
		}
		obj, ok := instance.(*types.Instance)
		if !ok {
			return types.NewMemberAccessError(d.Class(), m.Name(), fmt.Errorf("instance %T has no fields", instance))
		}

		g.state.pushField(m.Name())
		v, err := g.node(m.Type)
		g.state.pop()
		if err != nil {
			return err
		}
		if v == nil && isPrimitive(m.Field.Type()) {
			return types.NewMemberAccessError(d.Class(), m.Name(), fmt.Errorf("cannot assign nil to primitive field"))
		}
		if err := obj.Set(m.Name(), v); err != nil {
			return err
		}
	}
	return nil
}

func isPrimitive(t types.Type) bool {
	c, ok := t.(*types.Class)
	return ok && c.IsPrimitive()
}

func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
