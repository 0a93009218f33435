package descriptor

import (
	"strings"
	"time"

	"github.com/pablor21/typegen/types"
)

// CloneOptions decides which values are shared instead of copied and which
// members are left at their zero value.
type CloneOptions interface {
	// IsReassignable reports values that are immutable and can be shared
	IsReassignable(v any) bool
	// IsIgnoredField reports members that are not copied
	IsIgnoredField(m *Member) bool
}

// DefaultCloneOptions shares scalars, strings, times, enum constants and type
// literals, and ignores members declared by builtin classes.
type DefaultCloneOptions struct{}

func (DefaultCloneOptions) IsReassignable(v any) bool {
	switch v.(type) {
	case nil, bool, int8, uint16, int16, int32, int64, float32, float64, string,
		time.Time, *types.EnumConstant, types.Type:
		return true
	}
	return false
}

func (DefaultCloneOptions) IsIgnoredField(m *Member) bool {
	pkg := m.Field.Decl().Package()
	return pkg == types.BuiltinPackage || strings.HasPrefix(pkg, types.BuiltinPackage+"/")
}

// ShallowClone copies the top level of v. Fields, items and entries of the
// copy refer to the same values as v.
func ShallowClone(v any, opts CloneOptions) (any, error) {
	c := &cloner{opts: opts, deep: false, seen: map[any]any{}}
	return c.clone(v)
}

// DeepClone copies the whole graph reachable from v, keeping its sharing and
// cycles.
func DeepClone(v any, opts CloneOptions) (any, error) {
	c := &cloner{opts: opts, deep: true, seen: map[any]any{}}
	return c.clone(v)
}

type cloner struct {
	opts CloneOptions
	deep bool
	seen map[any]any
}

func (c *cloner) child(v any) (any, error) {
	if !c.deep {
		return v, nil
	}
	return c.clone(v)
}

func (c *cloner) clone(v any) (any, error) {
	if c.opts == nil {
		c.opts = DefaultCloneOptions{}
	}
	if c.opts.IsReassignable(v) {
		return v, nil
	}
	switch v.(type) {
	case *types.Instance, *types.Array, types.CollectionValue, types.MappingValue:
		if cp, ok := c.seen[v]; ok {
			return cp, nil
		}
	default:
		// foreign values cannot be copied
		return v, nil
	}

	switch v := v.(type) {
	case *types.Instance:
		return c.cloneInstance(v)
	case *types.Array:
		cp := types.NewArray(v.Elem(), v.Len())
		c.seen[v] = cp
		for i, item := range v.Items() {
			ci, err := c.child(item)
			if err != nil {
				return nil, err
			}
			cp.Set(i, ci)
		}
		return cp, nil
	case types.CollectionValue:
		inst, err := OfClass(v.Class()).NewInstance(nil)
		if err != nil {
			return nil, err
		}
		cp, ok := inst.(types.CollectionValue)
		if !ok {
			return nil, types.NewConstructionError(v.Class(), "constructor did not return a collection")
		}
		c.seen[v] = cp
		for _, item := range v.Items() {
			ci, err := c.child(item)
			if err != nil {
				return nil, err
			}
			cp.Add(ci)
		}
		return cp, nil
	case types.MappingValue:
		inst, err := OfClass(v.Class()).NewInstance(nil)
		if err != nil {
			return nil, err
		}
		cp, ok := inst.(types.MappingValue)
		if !ok {
			return nil, types.NewConstructionError(v.Class(), "constructor did not return a map")
		}
		c.seen[v] = cp
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			ck, err := c.child(k)
			if err != nil {
				return nil, err
			}
			cv, err := c.child(val)
			if err != nil {
				return nil, err
			}
			cp.Put(ck, cv)
		}
		return cp, nil
	}
	return v, nil
}

func (c *cloner) cloneInstance(o *types.Instance) (any, error) {
	d := OfClass(o.Class())
	var outer any
	if o.Class().IsInner() {
		outer = o.Outer()
		if c.deep && outer != nil {
			co, err := c.clone(outer)
			if err != nil {
				return nil, err
			}
			outer = co
		}
	}
	inst, err := d.NewInstance(outer)
	if err != nil {
		return nil, err
	}
	cp, ok := inst.(*types.Instance)
	if !ok {
		return nil, types.NewConstructionError(o.Class(), "constructor did not return an object")
	}
	c.seen[o] = cp
	for _, m := range d.Members() {
		if m.IsStatic() || c.opts.IsIgnoredField(m) {
			continue
		}
		val, ok := o.Get(m.Name())
		if !ok {
			continue
		}
		cv, err := c.child(val)
		if err != nil {
			return nil, err
		}
		if err := cp.Set(m.Name(), cv); err != nil {
			return nil, err
		}
	}
	return cp, nil
}
