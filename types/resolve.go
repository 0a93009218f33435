package types

// Resolve substitutes the bindings of env into t and returns the canonical
// resolved form. Classes and already resolved nodes are returned unchanged.
// A variable without a binding (or bound to itself) becomes a
// BoundedTypeVariable carrying its resolved bounds. Bindings may chain through
// other variables; a variable met again while it is being resolved is left as is.
func Resolve(t Type, env Env) Type {
	r := resolver{env: env}
	return r.resolve(t)
}

type resolver struct {
	env      Env
	visiting map[*TypeVariable]bool
}

func (r *resolver) resolve(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *Class:
		return t
	case *BoundedTypeVariable:
		return t
	case *ArrayType:
		if t.resolved {
			return t
		}
		return &ArrayType{elem: r.resolve(t.elem), resolved: true}
	case *ParameterizedType:
		if t.resolved {
			return t
		}
		args := make([]Type, len(t.args))
		for i, a := range t.args {
			args[i] = r.resolve(a)
		}
		return &ParameterizedType{raw: t.raw, args: args, owner: r.resolve(t.owner), resolved: true}
	case *WildcardType:
		if t.resolved {
			return t
		}
		return &WildcardType{upper: r.resolve(t.upper), lower: r.resolve(t.lower), resolved: true}
	case *TypeVariable:
		if r.visiting[t] {
			return t
		}
		if r.visiting == nil {
			r.visiting = map[*TypeVariable]bool{}
		}
		r.visiting[t] = true
		defer delete(r.visiting, t)

		if bound, ok := r.env[t]; ok && bound != Type(t) {
			return r.resolve(bound)
		}
		bounds := make([]Type, len(t.Bounds()))
		for i, b := range t.Bounds() {
			bounds[i] = r.resolve(b)
		}
		return &BoundedTypeVariable{v: t, bounds: bounds}
	}
	return t
}

// ResolvedClassType builds the type of c as seen through env: each type
// parameter is replaced by its binding (or kept when unbound) and nested
// classes carry their resolved owner. Non-generic classes without a generic
// owner are returned as is.
func ResolvedClassType(c *Class, env Env) Type {
	args := make([]Type, len(c.typeParams))
	for i, p := range c.typeParams {
		args[i] = env.GetOrDefault(p)
	}
	if c.enclosing != nil {
		owner := ResolvedClassType(c.enclosing, env)
		if _, plain := owner.(*Class); plain && len(args) == 0 {
			return c
		}
		return &ParameterizedType{raw: c, args: args, owner: owner}
	}
	if len(args) == 0 {
		return c
	}
	return &ParameterizedType{raw: c, args: args}
}

// ResolvedArrayType returns the array type of elem
func ResolvedArrayType(elem Type) Type {
	return &ArrayType{elem: elem, resolved: isResolved(elem)}
}

func isResolved(t Type) bool {
	switch t := t.(type) {
	case *Class, *BoundedTypeVariable:
		return true
	case *ArrayType:
		return t.resolved
	case *ParameterizedType:
		return t.resolved
	case *WildcardType:
		return t.resolved
	}
	return false
}
